package data

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindNone},
		{"not found", ErrNotFound, KindNotFound},
		{"wrapped not found", fmt.Errorf("%w: a/b", ErrNotFound), KindNotFound},
		{"invalid operation", ErrInvalidOperation, KindInvalidOperation},
		{"already exists", ErrAlreadyExists, KindAlreadyExists},
		{"permission denied", fmt.Errorf("%w: readonly", ErrPermissionDenied), KindPermissionDenied},
		{"other", Other("disk on fire", nil), KindOther},
		{"unknown", errors.New("boom"), KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestOtherError(t *testing.T) {
	cause := errors.New("connection refused")
	err := Other("consul get 'a'", cause)

	assert.ErrorIs(t, err, ErrOther)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "vfs: backend failure: consul get 'a': connection refused", err.Error())

	var other *OtherError
	require.ErrorAs(t, err, &other)
	assert.Equal(t, "consul get 'a'", other.Detail)

	assert.Equal(t, "vfs: backend failure: nothing here", Other("nothing here", nil).Error())
}

func TestErrors(t *testing.T) {
	errs := Errors{}
	assert.NoError(t, errs.Errors())

	errs.Add(nil)
	assert.Equal(t, 0, errs.Len())

	errs.Add(ErrNotFound)
	errs.Add(Other("close failed", nil))
	require.Equal(t, 2, errs.Len())

	joined := errs.Errors()
	assert.ErrorIs(t, joined, ErrNotFound)
	assert.ErrorIs(t, joined, ErrOther)
}
