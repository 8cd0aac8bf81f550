package compress

import "fmt"

// NoOpCompressor passes payloads through unchanged.
//
// Small per-tick packets rarely shrink under compression, so this is the
// default for packet framing.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data itself; the result shares its backing array.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself, enforcing MaxDecodedSize like the other codecs.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) > MaxDecodedSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}

	return data, nil
}
