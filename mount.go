package vfsmux

import (
	"time"

	"github.com/mwantia/vfsmux/backend"
)

// MountEntry binds a normalized mount path to its backend.
type MountEntry struct {
	path    string
	backend backend.Backend
	info    MountInfo
}

// MountInfo is the read-only view of a mount returned by MountTable.Mounts.
type MountInfo struct {
	ID        string    // UUIDv7, unique per Mount call
	Path      string    // Normalized mount path
	Backend   string    // Backend name
	MountedAt time.Time // When the mount was created
}

func (e *MountEntry) Path() string {
	return e.path
}

func (e *MountEntry) Backend() backend.Backend {
	return e.backend
}

func (e *MountEntry) Info() MountInfo {
	return e.info
}
