// Package compress provides the payload codecs used by packet framing.
//
// A packet body is compressed as a whole after the writer has produced it.
// Four algorithms are available, selected by format.CompressionType:
//
//   - None: the body is sent as-is (default for small per-tick packets)
//   - Zstd: best ratio, for large snapshots and resynchronisation packets
//   - S2: fastest, Snappy-compatible block format
//   - LZ4: fast decode; the block is prefixed with its decoded length
//
// Every codec is stateless and safe for concurrent use. Heavy state such as
// zstd encoders and lz4 hash tables lives in sync.Pool instances.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	body, err := codec.Compress(payload)
//	...
//	payload, err = codec.Decompress(body)
//
// Decompress never allocates more than MaxDecodedSize bytes. Input that would
// exceed it fails with ErrTooLarge, malformed input with ErrCorrupt.
package compress
