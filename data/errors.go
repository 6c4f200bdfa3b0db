package data

import (
	"errors"
	"fmt"
	"sync"
)

// Standard errors that the mount table and every backend should use.
var (
	// Resolution and lookup errors
	ErrNotFound = errors.New("vfs: not found")

	// Node errors
	ErrInvalidOperation = errors.New("vfs: invalid operation for node type")
	ErrAlreadyExists    = errors.New("vfs: already exists")
	ErrPermissionDenied = errors.New("vfs: permission denied")

	// Backend specific failures, see OtherError
	ErrOther = errors.New("vfs: backend failure")
)

// OtherError carries a backend specific failure that does not fit any other kind.
type OtherError struct {
	Detail string
	Err    error
}

// Other wraps err (which may be nil) into an *OtherError with a readable detail.
func Other(detail string, err error) error {
	return &OtherError{
		Detail: detail,
		Err:    err,
	}
}

func (e *OtherError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrOther.Error(), e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrOther.Error(), e.Detail)
}

func (e *OtherError) Unwrap() error {
	return e.Err
}

// Is makes every *OtherError match ErrOther.
func (e *OtherError) Is(target error) bool {
	return target == ErrOther
}

// Kind names the category of an error returned by the mount table or a backend.
type Kind string

const (
	KindNone             Kind = ""
	KindNotFound         Kind = "not_found"
	KindInvalidOperation Kind = "invalid_operation"
	KindAlreadyExists    Kind = "already_exists"
	KindPermissionDenied Kind = "permission_denied"
	KindOther            Kind = "other"
)

// KindOf maps err onto the error taxonomy.
// Unknown errors are reported as KindOther, nil as KindNone.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidOperation):
		return KindInvalidOperation
	case errors.Is(err, ErrAlreadyExists):
		return KindAlreadyExists
	case errors.Is(err, ErrPermissionDenied):
		return KindPermissionDenied
	default:
		return KindOther
	}
}

// Errors collects multiple errors, safe for concurrent use.
type Errors struct {
	mu     sync.RWMutex
	errors []error
}

func (e *Errors) Add(err error) {
	if err == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.errors = append(e.errors, err)
}

func (e *Errors) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.errors)
}

// Errors joins all collected errors, or returns nil if there are none.
func (e *Errors) Errors() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.errors) == 0 {
		return nil
	}

	return errors.Join(e.errors...)
}
