package packet

import (
	"errors"
	"fmt"

	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/compress"
	"github.com/arloliu/tickwire/format"
	"github.com/arloliu/tickwire/internal/metrics"
	"github.com/arloliu/tickwire/packed"
)

const (
	// MaxHeaderSize is the largest possible frame header.
	MaxHeaderSize = 2 + 1 + packed.MaxLen
	// MaxBodySize bounds the encoded body of a single frame.
	MaxBodySize = compress.MaxDecodedSize
)

var (
	// ErrUnknownCompression is returned for a compression byte without a codec.
	ErrUnknownCompression = errors.New("packet: unknown compression type")
	// ErrFrameTooLarge is returned when a body exceeds MaxBodySize.
	ErrFrameTooLarge = errors.New("packet: frame too large")
)

// Header describes a frame without its body.
type Header struct {
	ID          uint16
	Compression format.CompressionType
	BodyLen     int
}

// Encode appends one frame carrying payload to w.
//
// Parameters:
//   - w: destination writer; the frame is written at its cursor
//   - id: packet id used by receivers for routing
//   - payload: serialized message
//   - compression: codec applied to payload
//
// Returns:
//   - error: ErrUnknownCompression, ErrFrameTooLarge, or a codec error. Nothing
//     is written to w when an error is returned.
func Encode(w *buffer.Writer, id uint16, payload []byte, compression format.CompressionType) error {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownCompression, err)
	}

	body, err := codec.Compress(payload)
	if err != nil {
		return fmt.Errorf("packet: compress %s body: %w", compression, err)
	}
	if len(body) > MaxBodySize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(body))
	}

	w.WritePacketID(id)
	w.WriteUint8(uint8(compression))
	w.WritePackedWhole(uint64(len(body)))
	w.WriteRaw(body)
	metrics.FramesEncoded.Inc()

	return nil
}

// Append is Encode into a fresh writer, returning the frame bytes.
func Append(dst []byte, id uint16, payload []byte, compression format.CompressionType) ([]byte, error) {
	w := buffer.NewWriter(buffer.WithInitialCapacity(MaxHeaderSize + len(payload)))
	if err := Encode(w, id, payload, compression); err != nil {
		return dst, err
	}

	return append(dst, w.Bytes()...), nil
}

// readHeader consumes the frame header and returns a view of the body.
// Truncated or oversized frames fail the reader.
func readHeader(r *buffer.Reader) (Header, []byte, error) {
	var h Header
	h.ID = r.ReadPacketID()
	h.Compression = format.CompressionType(r.ReadUint8())
	n := r.ReadPackedWhole()
	if err := r.Err(); err != nil {
		return h, nil, err
	}
	if n > MaxBodySize {
		r.Fail(fmt.Errorf("%w: header declares %d bytes", ErrFrameTooLarge, n))
		return h, nil, r.Err()
	}
	h.BodyLen = int(n)

	body := r.ReadRawView(h.BodyLen)
	if err := r.Err(); err != nil {
		return h, nil, err
	}

	return h, body, nil
}

// Decode reads one frame from r and returns its id and decompressed payload.
//
// A truncated or oversized frame records the error on r, so later reads
// fail too. An unknown compression byte or a corrupt body only fails this
// frame: its bytes are consumed and the next frame can still be decoded.
// Decode does not log; callers decide how to report dropped frames.
//
// For CompressionNone the payload aliases r's backing array.
func Decode(r *buffer.Reader) (uint16, []byte, error) {
	h, body, err := readHeader(r)
	if err != nil {
		metrics.FramesRejected.Inc()
		return h.ID, nil, err
	}

	payload, err := decompress(h, body)
	if err != nil {
		metrics.FramesRejected.Inc()
		return h.ID, nil, err
	}
	metrics.FramesDecoded.Inc()

	return h.ID, payload, nil
}

func decompress(h Header, body []byte) ([]byte, error) {
	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownCompression, err)
	}

	return codec.Decompress(body)
}

// Skip consumes one frame without decompressing it and returns its header.
func Skip(r *buffer.Reader) (Header, error) {
	h, _, err := readHeader(r)
	return h, err
}
