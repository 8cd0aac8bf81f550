package compress

import (
	"errors"
	"fmt"

	"github.com/arloliu/tickwire/format"
)

// MaxDecodedSize bounds the output of every Decompressor. Packet bodies come
// from the network, so a small compressed body must not expand without limit.
const MaxDecodedSize = 16 * 1024 * 1024 // 16MiB

var (
	// ErrUnsupported is returned for a compression type without a codec.
	ErrUnsupported = errors.New("compress: unsupported compression type")
	// ErrTooLarge is returned when decompressed data would exceed MaxDecodedSize.
	ErrTooLarge = errors.New("compress: decompressed size exceeds limit")
	// ErrCorrupt is returned when compressed data cannot be decoded.
	ErrCorrupt = errors.New("compress: corrupt input")
)

// Compressor compresses packet payloads.
type Compressor interface {
	// Compress returns the compressed form of data. The input is not modified;
	// the result may alias it for the no-op codec.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores payloads produced by the matching Compressor.
//
// Implementations are safe for concurrent use.
type Decompressor interface {
	// Decompress returns the original data. It fails with ErrCorrupt or
	// ErrTooLarge rather than allocating more than MaxDecodedSize bytes.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// Stats describes one compression run.
type Stats struct {
	Algorithm      format.CompressionType
	OriginalSize   int
	CompressedSize int
}

// Ratio returns compressed size / original size, or 0 for empty input.
//
// Values less than 1.0 indicate successful compression.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage.
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.Ratio()) * 100.0
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in Codec for compressionType.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//
// Returns:
//   - Codec: shared, stateless codec instance
//   - error: ErrUnsupported for any other value
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s (%d)", ErrUnsupported, compressionType, uint8(compressionType))
}

// Measure compresses data with compressionType and reports the sizes.
func Measure(compressionType format.CompressionType, data []byte) (Stats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return Stats{}, err
	}
	out, err := codec.Compress(data)
	if err != nil {
		return Stats{}, err
	}

	return Stats{Algorithm: compressionType, OriginalSize: len(data), CompressedSize: len(out)}, nil
}
