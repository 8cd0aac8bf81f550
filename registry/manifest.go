package registry

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"github.com/fxamacker/cbor/v2"

	"github.com/arloliu/tickwire/internal/hash"
)

// ManifestEntry describes the codecs registered for one type.
type ManifestEntry struct {
	Type       string `cbor:"1,keyasint"`
	ID         uint64 `cbor:"2,keyasint"`
	Write      Origin `cbor:"3,keyasint,omitempty"`
	Read       Origin `cbor:"4,keyasint,omitempty"`
	DeltaWrite Origin `cbor:"5,keyasint,omitempty"`
	DeltaRead  Origin `cbor:"6,keyasint,omitempty"`
}

// Mismatch is a difference between a local and a remote manifest entry.
type Mismatch struct {
	Type   string
	Reason string
}

func (m Mismatch) String() string {
	return m.Type + ": " + m.Reason
}

var (
	manifestEnc cbor.EncMode
	manifestDec cbor.DecMode
)

func init() {
	var err error
	if manifestEnc, err = cbor.CanonicalEncOptions().EncMode(); err != nil {
		panic(err)
	}
	if manifestDec, err = (cbor.DecOptions{}).DecMode(); err != nil {
		panic(err)
	}
}

// Manifest lists every registered type sorted by type name.
func (reg *Registry) Manifest() []ManifestEntry {
	out := make([]ManifestEntry, 0, reg.entries.Size())
	reg.entries.Range(func(_ reflect.Type, e *entry) bool {
		out = append(out, ManifestEntry{
			Type:       hash.TypeName(e.typ),
			ID:         e.id,
			Write:      e.slots[slotWrite].origin,
			Read:       e.slots[slotRead].origin,
			DeltaWrite: e.slots[slotDeltaWrite].origin,
			DeltaRead:  e.slots[slotDeltaRead].origin,
		})

		return true
	})
	slices.SortFunc(out, func(a, b ManifestEntry) int { return cmp.Compare(a.Type, b.Type) })

	return out
}

// MarshalManifest encodes entries as deterministic CBOR.
func MarshalManifest(entries []ManifestEntry) ([]byte, error) {
	data, err := manifestEnc.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}

	return data, nil
}

// UnmarshalManifest decodes a manifest produced by MarshalManifest.
func UnmarshalManifest(data []byte) ([]ManifestEntry, error) {
	var entries []ManifestEntry
	if err := manifestDec.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}

	return entries, nil
}

// VerifyManifest compares the Registry with a manifest received from the other
// endpoint and returns every difference, sorted by type name. An empty result
// means both sides encode the listed types the same way.
//
// Origins are compared as well as presence: a Custom codec on one side and a
// Generated one on the other almost always means different encodings.
func (reg *Registry) VerifyManifest(remote []ManifestEntry) []Mismatch {
	local := reg.Manifest()
	byType := make(map[string]ManifestEntry, len(remote))
	for _, e := range remote {
		byType[e.Type] = e
	}

	var out []Mismatch
	for _, l := range local {
		r, ok := byType[l.Type]
		if !ok {
			out = append(out, Mismatch{Type: l.Type, Reason: "missing on remote"})
			continue
		}
		delete(byType, l.Type)

		if l.ID != r.ID {
			out = append(out, Mismatch{Type: l.Type, Reason: fmt.Sprintf("type id %#x != %#x", l.ID, r.ID)})
		}
		out = appendSlotMismatch(out, l.Type, "write", l.Write, r.Write)
		out = appendSlotMismatch(out, l.Type, "read", l.Read, r.Read)
		out = appendSlotMismatch(out, l.Type, "delta write", l.DeltaWrite, r.DeltaWrite)
		out = appendSlotMismatch(out, l.Type, "delta read", l.DeltaRead, r.DeltaRead)
	}
	for name := range byType {
		out = append(out, Mismatch{Type: name, Reason: "missing locally"})
	}
	slices.SortStableFunc(out, func(a, b Mismatch) int { return cmp.Compare(a.Type, b.Type) })

	return out
}

func appendSlotMismatch(out []Mismatch, typ, slot string, local, remote Origin) []Mismatch {
	if local == remote {
		return out
	}

	return append(out, Mismatch{Type: typ, Reason: fmt.Sprintf("%s codec is %s locally, %s on remote", slot, local, remote)})
}
