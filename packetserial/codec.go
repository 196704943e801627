package packetserial

import (
	"errors"
	"fmt"

	"github.com/dcreager/packetserial-go/cobs"
	"github.com/dcreager/packetserial-go/slip"
)

// Codec is a byte-stuffing encoding that removes a marker byte from arbitrary
// payloads.  Implementations must be stateless.
type Codec interface {
	// Encode writes the encoding of src into dst, which must be at least
	// MaxEncodedSize(len(src)) bytes long, and returns the number of bytes
	// written.
	Encode(dst, src []byte) int
	// Decode writes the payload encoded in src into dst, which must be at
	// least len(src) bytes long.  On error the returned count is zero.
	Decode(dst, src []byte) (int, error)
	// MaxEncodedSize returns the largest encoding of an n-byte payload.
	MaxEncodedSize(n int) int
}

// Names accepted by LookupCodec and Config.
const (
	CodecCOBS = "cobs"
	CodecSLIP = "slip"
)

var (
	// ErrUnknownCodec is the error that is returned for a codec name that we
	// don't know how to build.
	ErrUnknownCodec = errors.New("packetserial: unknown codec")
	// ErrMarker is the error that is returned when a configured marker is not
	// the byte that the codec keeps out of its encoded output.
	ErrMarker = errors.New("packetserial: marker not reserved by codec")
)

type codecEntry struct {
	codec  Codec
	marker byte
}

var codecs = map[string]codecEntry{
	CodecCOBS: {cobs.Codec{}, cobs.Marker},
	CodecSLIP: {slip.Codec{}, slip.Marker},
}

// LookupCodec returns the codec with the given name, along with the marker
// byte that it is normally paired with.
func LookupCodec(name string) (Codec, byte, error) {
	entry, ok := codecs[name]
	if !ok {
		return nil, 0, fmt.Errorf("%w %q", ErrUnknownCodec, name)
	}
	return entry.codec, entry.marker, nil
}
