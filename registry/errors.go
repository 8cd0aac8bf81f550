package registry

import "errors"

var (
	// ErrUnregistered is returned when no codec is registered for a type.
	ErrUnregistered = errors.New("registry: type not registered")
	// ErrUnknownTypeID is recorded on a Reader when a polymorphic value names a
	// type id this Registry does not know.
	ErrUnknownTypeID = errors.New("registry: unknown type id")
	// ErrManifest is returned when a manifest cannot be encoded or decoded.
	ErrManifest = errors.New("registry: invalid manifest")
)
