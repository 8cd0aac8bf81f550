package packet

import (
	"go.uber.org/zap"

	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/internal/logging"
	"github.com/arloliu/tickwire/internal/metrics"
	"github.com/arloliu/tickwire/internal/options"
)

// Handler consumes the payload of one frame. The Reader is positioned at the
// start of the payload and is only valid for the duration of the call.
type Handler func(id uint16, r *buffer.Reader) error

// Mux routes frames to handlers by packet id.
//
// Handlers are registered before the first Serve call; Mux is not safe for
// concurrent registration.
type Mux struct {
	handlers map[uint16]Handler
	fallback Handler
	logger   *zap.Logger
	reader   *buffer.Reader
}

// MuxOption configures a Mux.
type MuxOption = options.Option[*Mux]

// WithFallback sets the handler for ids without a registered handler.
// Without one such frames are skipped undecompressed.
func WithFallback(h Handler) MuxOption {
	return options.NoError(func(m *Mux) { m.fallback = h })
}

// WithMuxLogger sets the logger used for skipped and failed frames.
func WithMuxLogger(l *zap.Logger) MuxOption {
	return options.NoError(func(m *Mux) {
		if l != nil {
			m.logger = l
		}
	})
}

// NewMux creates an empty Mux.
func NewMux(opts ...MuxOption) *Mux {
	m := &Mux{handlers: make(map[uint16]Handler), reader: buffer.NewReader(nil)}
	_ = options.Apply(m, opts...)
	if m.logger == nil {
		m.logger = logging.Named("packet")
	}

	return m
}

// Handle registers h for id, replacing any previous handler.
func (m *Mux) Handle(id uint16, h Handler) {
	m.handlers[id] = h
}

// Serve decodes every frame in r and dispatches it.
//
// Frames with an unknown compression or a corrupt body are logged and
// skipped. Serve stops at the first handler error or when r fails, and
// returns that error.
func (m *Mux) Serve(r *buffer.Reader) error {
	for r.Remaining() > 0 {
		id, ok := r.PeekPacketID()
		if !ok {
			_, err := Skip(r)
			return err
		}

		h, found := m.handlers[id]
		if !found {
			h = m.fallback
		}
		if h == nil {
			metrics.FramesUnhandled.Inc()
			hdr, err := Skip(r)
			if err != nil {
				return err
			}
			m.logger.Debug("no handler for frame", zap.Uint16("id", id), zap.Int("body_len", hdr.BodyLen))

			continue
		}

		_, payload, err := Decode(r)
		if err != nil {
			if r.Err() != nil {
				return err
			}
			m.logger.Warn("dropping frame", zap.Uint16("id", id), zap.Error(err))

			continue
		}

		m.reader.Reset(payload)
		if err := h(id, m.reader); err != nil {
			return err
		}
	}

	return r.Err()
}
