package slip

import (
	"errors"
	"io"
	"slices"
)

// Reserved byte values.
const (
	End    = 0xc0
	Esc    = 0xdb
	EscEnd = 0xdc
	EscEsc = 0xdd
)

// Marker is the packet boundary byte.
const Marker = End

var (
	// ErrTruncatedEscape is the error that is returned when an encoded frame
	// ends in the middle of an escape sequence.
	ErrTruncatedEscape = errors.New("slip: frame ends inside escape sequence")
)

// MaxEncodedSize returns the largest number of bytes that Encode can produce
// for an n-byte payload: every byte escaped, plus the leading End and one
// spare.
func MaxEncodedSize(n int) int {
	return 2*n + 2
}

// Encode writes the SLIP encoding of src into dst and returns the number of
// bytes written.  dst must be at least MaxEncodedSize(len(src)) bytes long.
//
// The output starts with an End byte, which flushes any line noise the
// receiver has accumulated since the previous packet.  (We do _not_ write the
// trailing End; it is your responsibility to write it after each packet.)
func Encode(dst, src []byte) int {
	n := 0
	dst[n] = End
	n++
	for _, b := range src {
		switch b {
		case End:
			dst[n] = Esc
			dst[n+1] = EscEnd
			n += 2
		case Esc:
			dst[n] = Esc
			dst[n+1] = EscEsc
			n += 2
		default:
			dst[n] = b
			n++
		}
	}
	return n
}

// Append appends the SLIP encoding of src to dst and returns the extended
// buffer.
func Append(dst, src []byte) []byte {
	start := len(dst)
	size := MaxEncodedSize(len(src))
	dst = slices.Grow(dst, size)
	n := Encode(dst[start:start+size], src)
	return dst[:start+n]
}

// Decode writes the payload encoded in src into dst and returns the number of
// bytes written.  dst must be at least len(src) bytes long.
//
// End bytes are treated as boundaries and skipped.  An escape followed by
// anything other than EscEnd or EscEsc is a protocol violation; the pair is
// dropped and decoding carries on.  An escape as the very last byte is an
// error, and the returned count is zero.
func Decode(dst, src []byte) (int, error) {
	if len(dst) < len(src) {
		return 0, io.ErrShortBuffer
	}

	n := 0
	for i := 0; i < len(src); i++ {
		switch b := src[i]; b {
		case End:
		case Esc:
			if i+1 == len(src) {
				return 0, ErrTruncatedEscape
			}
			i++
			switch src[i] {
			case EscEnd:
				dst[n] = End
				n++
			case EscEsc:
				dst[n] = Esc
				n++
			}
		default:
			dst[n] = b
			n++
		}
	}
	return n, nil
}

// Codec is the stateless SLIP codec.  The zero value is ready to use and safe
// for concurrent use.
type Codec struct{}

// Encode is the package-level Encode.
func (Codec) Encode(dst, src []byte) int { return Encode(dst, src) }

// Decode is the package-level Decode.
func (Codec) Decode(dst, src []byte) (int, error) { return Decode(dst, src) }

// MaxEncodedSize is the package-level MaxEncodedSize.
func (Codec) MaxEncodedSize(n int) int { return MaxEncodedSize(n) }

// String returns the codec's configuration name, "slip".
func (Codec) String() string { return "slip" }
