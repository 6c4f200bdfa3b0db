package dummy

import (
	"testing"

	"github.com/mwantia/vfsmux/data"
	"github.com/stretchr/testify/assert"
)

func TestDummyBackend_AlwaysFails(t *testing.T) {
	ctx := t.Context()
	db := NewDummyBackend()

	_, err := db.Read(ctx, "a.txt")
	assert.ErrorIs(t, err, data.ErrOther)
	assert.Contains(t, err.Error(), "not found in dummy FS")

	assert.ErrorIs(t, db.Write(ctx, "a.txt", []byte("x")), data.ErrOther)
	assert.ErrorIs(t, db.Remove(ctx, "a.txt"), data.ErrOther)
	assert.ErrorIs(t, db.Open(ctx, "a.txt"), data.ErrOther)
	assert.ErrorIs(t, db.Close(ctx, "a.txt"), data.ErrOther)

	exists, err := db.Exists(ctx, "a.txt")
	assert.False(t, exists)
	assert.Equal(t, data.KindOther, data.KindOf(err))

	_, err = db.ListDir(ctx, "")
	assert.ErrorIs(t, err, data.ErrOther)
}
