package backend

import "slices"

// BackendCapability represents a capability that a backend can provide
type BackendCapability string

const (
	CapabilityRead    BackendCapability = "read"
	CapabilityWrite   BackendCapability = "write"
	CapabilityList    BackendCapability = "list"
	CapabilityRemove  BackendCapability = "remove"
	CapabilitySession BackendCapability = "session"
	// Content survives the process
	CapabilityPersistent BackendCapability = "persistent"
)

// ReadWriteCapabilities returns the capabilities of a plain read/write backend.
func ReadWriteCapabilities() []BackendCapability {
	return []BackendCapability{
		CapabilityRead,
		CapabilityWrite,
		CapabilityList,
		CapabilityRemove,
	}
}

// BackendCapabilities describes what a backend supports
type BackendCapabilities struct {
	Capabilities  []BackendCapability `json:"capabilities"`
	MaxObjectSize int64               `json:"max_object_size"`
}

// Contains checks if a capability is supported
func (bc *BackendCapabilities) Contains(cap BackendCapability) bool {
	return slices.Contains(bc.Capabilities, cap)
}

// Without returns a copy of the capabilities with caps removed.
func (bc *BackendCapabilities) Without(caps ...BackendCapability) *BackendCapabilities {
	filtered := make([]BackendCapability, 0, len(bc.Capabilities))
	for _, c := range bc.Capabilities {
		if !slices.Contains(caps, c) {
			filtered = append(filtered, c)
		}
	}

	return &BackendCapabilities{
		Capabilities:  filtered,
		MaxObjectSize: bc.MaxObjectSize,
	}
}
