// Package packet frames serialized messages for transport.
//
// A frame is laid out as:
//
//	+-----------+-------------+----------------------+--------+
//	| ID uint16 | compression | body length (packed) | body   |
//	| 2B, LE    | 1B          | 1..9B                | n B    |
//	+-----------+-------------+----------------------+--------+
//
// The body is the payload produced by a buffer.Writer, compressed with the
// codec named by the compression byte (see format.CompressionType). Frames
// are self-delimiting, so several may be concatenated into one datagram and
// read back with repeated Decode calls or a Mux.
//
// Receivers route on the ID before paying for decompression: Reader.PeekPacketID
// returns it without consuming anything, and Mux skips frames it has no
// handler for without decompressing their bodies.
package packet
