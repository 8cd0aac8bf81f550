package buffer

import "errors"

var (
	// ErrShortBuffer is recorded when a read needs more bytes than remain in the window.
	ErrShortBuffer = errors.New("buffer: read past end of buffer")
	// ErrMalformedLength is recorded when a length prefix is negative (other than
	// NullLength) or larger than the bytes remaining.
	ErrMalformedLength = errors.New("buffer: malformed length prefix")
	// ErrInvalidWindow is returned when a Reader window does not fit its backing slice.
	ErrInvalidWindow = errors.New("buffer: invalid reader window")
)
