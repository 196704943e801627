// Package cobs provides a Go implementation of Consistent Overhead Byte
// Stuffing (COBS).  COBS rewrites an arbitrary binary payload so that it
// contains no `0x00` bytes, which leaves `0x00` free to mark packet boundaries
// on a byte-oriented link such as a UART.  The encoding costs one byte for
// short payloads, plus at most one extra byte for every 254 bytes of input.
//
// The encoder and decoder work on caller-provided buffers and never allocate;
// use MaxEncodedSize to size the destination of Encode.  (Append is available
// when an allocating convenience is acceptable.)
package cobs
