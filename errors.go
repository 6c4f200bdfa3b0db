package vfsmux

import "github.com/mwantia/vfsmux/data"

// Re-exported from data so callers only need to import this package.
var (
	ErrNotFound         = data.ErrNotFound
	ErrInvalidOperation = data.ErrInvalidOperation
	ErrAlreadyExists    = data.ErrAlreadyExists
	ErrPermissionDenied = data.ErrPermissionDenied
	ErrOther            = data.ErrOther
)
