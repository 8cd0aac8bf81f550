package compress

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/tickwire/packed"
)

// lz4CompressorPool pools lz4.Compressor instances; their hash tables are
// expensive to allocate.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor provides LZ4 block compression.
//
// LZ4 blocks do not record their decoded size, so the output starts with the
// original length as a packed whole number followed by the raw block.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 compression.
//
// Returns:
//   - []byte: length prefix and compressed block (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := packed.AppendWhole(make([]byte, 0, packed.MaxLen+lz4.CompressBlockBound(len(data))), uint64(len(data)))
	hdr := len(dst)
	dst = dst[:cap(dst)]

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[hdr:])
	if err != nil {
		return nil, err
	}

	return dst[:hdr+n], nil
}

// Decompress reads the length prefix, checks it against MaxDecodedSize and
// decodes the block into a buffer of exactly that size.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, hdr, err := packed.Whole(data)
	if err != nil {
		return nil, fmt.Errorf("%w: lz4 length prefix: %w", ErrCorrupt, err)
	}
	if size > MaxDecodedSize {
		return nil, fmt.Errorf("%w: lz4 prefix declares %d bytes", ErrTooLarge, size)
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data[hdr:], buf)
	if err != nil {
		return nil, fmt.Errorf("%w: lz4: %w", ErrCorrupt, err)
	}
	if n != len(buf) {
		return nil, fmt.Errorf("%w: lz4 decoded %d of %d bytes", ErrCorrupt, n, len(buf))
	}

	return buf, nil
}
