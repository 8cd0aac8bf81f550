// Package tickwire provides a compact binary serialization layer for
// real-time state replication.
//
// A tick of simulation state is written either in full or as deltas against
// the previously sent state. Deltas pick the narrowest integer width that
// holds the change and skip unchanged values entirely, so a quiet entity costs
// a few bits per tick instead of its full size.
//
// # Core Features
//
//   - Packed whole numbers (1..9 bytes) with zigzag folding for signed values
//   - Adaptive delta precision for integers, floats, decimals, vectors and rotations
//   - A per-type codec registry with a Generated/Custom override policy
//   - Ring buffers for snapshot history and striped per-connection queues
//   - Packet framing with optional Zstd, S2 or LZ4 compression
//
// # Basic Usage
//
// Registering a type and encoding a value:
//
//	reg := tickwire.NewRegistry()
//	registry.Register(reg, registry.Custom,
//	    func(w *buffer.Writer, p Player) { w.WriteString(p.Name); w.WritePackedInt(p.Score) },
//	    func(r *buffer.Reader) Player { return Player{Name: r.ReadString(), Score: r.ReadPackedInt()} },
//	)
//
//	data, err := tickwire.Marshal(reg, Player{Name: "ann", Score: 42})
//	...
//	p, err := tickwire.Unmarshal[Player](reg, data)
//
// Framing a message for the network:
//
//	frame, err := tickwire.MarshalPacket(reg, 7, p, format.CompressionNone)
//
// # Package Structure
//
// This package holds convenience wrappers. The building blocks live in:
//
//   - packed: variable-length whole-number codec
//   - buffer: Writer, Reader and their pools
//   - delta: delta-precision codecs
//   - registry: per-type dispatch
//   - ring: ring buffer family and unbounded queue
//   - compress, packet: payload compression and framing
//   - config: YAML/env configuration
package tickwire

import (
	"fmt"

	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/format"
	"github.com/arloliu/tickwire/internal/hash"
	"github.com/arloliu/tickwire/packet"
	"github.com/arloliu/tickwire/registry"
)

// Version is the tickwire release version.
const Version = "0.1.0"

// NewRegistry creates a Registry with codecs for the built-in types
// (integers, floats, strings, decimals, vectors and rotations) already
// registered as Generated.
func NewRegistry(opts ...registry.Option) *registry.Registry {
	reg := registry.New(opts...)
	registry.RegisterBuiltins(reg)

	return reg
}

// Marshal encodes v with the write function registered for T.
//
// Returns:
//   - []byte: encoded bytes, owned by the caller
//   - error: registry.ErrUnregistered if T has no write function
func Marshal[T any](reg *registry.Registry, v T) ([]byte, error) {
	w := buffer.NewWriter(buffer.WithInitialCapacity(64))
	if err := registry.Write(reg, w, v); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// Unmarshal decodes a T from data with the read function registered for T.
//
// Returns:
//   - T: decoded value (zero value on error)
//   - error: the reader error, or an error if data has trailing bytes
func Unmarshal[T any](reg *registry.Registry, data []byte) (T, error) {
	r := buffer.NewReader(data)
	v := registry.Read[T](reg, r)
	if err := r.Err(); err != nil {
		var zero T
		return zero, err
	}
	if r.Remaining() != 0 {
		var zero T
		return zero, fmt.Errorf("tickwire: %d trailing bytes after %T", r.Remaining(), v)
	}

	return v, nil
}

// MarshalPacket encodes v and wraps it in a packet frame with the given id
// and compression.
func MarshalPacket[T any](reg *registry.Registry, id uint16, v T, compression format.CompressionType) ([]byte, error) {
	payload, err := Marshal(reg, v)
	if err != nil {
		return nil, err
	}

	return packet.Append(nil, id, payload, compression)
}

// UnmarshalPacket decodes one frame from data and the T in its payload.
func UnmarshalPacket[T any](reg *registry.Registry, data []byte) (uint16, T, error) {
	id, payload, err := packet.Decode(buffer.NewReader(data))
	if err != nil {
		var zero T
		return id, zero, err
	}
	v, err := Unmarshal[T](reg, payload)

	return id, v, err
}

// TypeID returns the stable 64-bit id of a type name, as used in registry
// manifests and type-tagged values.
//
// Example:
//
//	id := tickwire.TypeID("game.Player")
func TypeID(name string) uint64 {
	return hash.ID(name)
}
