package cobs

import (
	"errors"
	"io"
	"slices"
)

// Marker is the packet boundary byte.  Encoded output never contains it.
const Marker = 0x00

// overheadCode is the code byte for a full run of maxRun non-zero bytes, which
// is not followed by an implicit zero.
const overheadCode = 0xff
const maxRun = overheadCode - 1

var (
	// ErrTruncated is the error that is returned when a code byte declares a
	// run that extends past the end of the encoded frame.
	ErrTruncated = errors.New("cobs: run length exceeds frame")

	// ErrZeroCode is the error that is returned when an encoded frame
	// contains a zero code byte, which a conformant encoder never produces.
	ErrZeroCode = errors.New("cobs: zero code byte")
)

// MaxEncodedSize returns the largest number of bytes that Encode can produce
// for an n-byte payload.
func MaxEncodedSize(n int) int {
	return n + n/maxRun + 1
}

// Encode writes the COBS encoding of src into dst and returns the number of
// bytes written.  dst must be at least MaxEncodedSize(len(src)) bytes long.
// (We do _not_ write a trailing Marker; it is your responsibility to write one
// in between packets.)
func Encode(dst, src []byte) int {
	// Each run starts by reserving a byte for its code, which we back-fill
	// once we know how long the run is.
	codeIndex := 0
	writeIndex := 1
	code := byte(1)
	for _, b := range src {
		if b == 0 {
			dst[codeIndex] = code
			code = 1
			codeIndex = writeIndex
			writeIndex++
			continue
		}

		dst[writeIndex] = b
		writeIndex++
		code++
		if code == overheadCode {
			dst[codeIndex] = code
			code = 1
			codeIndex = writeIndex
			writeIndex++
		}
	}
	dst[codeIndex] = code
	return writeIndex
}

// Append appends the COBS encoding of src to dst and returns the extended
// buffer.
func Append(dst, src []byte) []byte {
	start := len(dst)
	size := MaxEncodedSize(len(src))
	dst = slices.Grow(dst, size)
	n := Encode(dst[start:start+size], src)
	return dst[:start+n]
}

// Decode writes the payload encoded in src into dst and returns the number of
// bytes written.  src must not contain the trailing Marker.  dst must be at
// least len(src) bytes long; the decoded payload is always shorter than its
// encoding.  On error the returned count is zero.
func Decode(dst, src []byte) (int, error) {
	if len(dst) < len(src) {
		return 0, io.ErrShortBuffer
	}

	n := 0
	for i := 0; i < len(src); {
		code := int(src[i])
		if code == 0 {
			return 0, ErrZeroCode
		}
		// A bare code of 1 is always valid, even as the final byte.
		if i+code > len(src) && code != 1 {
			return 0, ErrTruncated
		}
		i++

		n += copy(dst[n:], src[i:i+code-1])
		i += code - 1

		// Full runs and the final run don't carry an implicit zero.
		if code != overheadCode && i != len(src) {
			dst[n] = 0
			n++
		}
	}
	return n, nil
}

// Codec is the stateless COBS codec.  The zero value is ready to use and safe
// for concurrent use.
type Codec struct{}

// Encode is the package-level Encode.
func (Codec) Encode(dst, src []byte) int { return Encode(dst, src) }

// Decode is the package-level Decode.
func (Codec) Decode(dst, src []byte) (int, error) { return Decode(dst, src) }

// MaxEncodedSize is the package-level MaxEncodedSize.
func (Codec) MaxEncodedSize(n int) int { return MaxEncodedSize(n) }

// String returns the codec's configuration name, "cobs".
func (Codec) String() string { return "cobs" }
