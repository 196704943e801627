package packetserial

import (
	"fmt"
	"io"
	"reflect"

	"github.com/rs/zerolog"
)

// Framer is the send side of a packet stream: it encodes each payload and
// terminates it with the marker byte.
type Framer struct {
	codec   Codec
	marker  byte
	sink    Sink
	scratch []byte
	logger  zerolog.Logger
}

// NewFramer returns a Framer that encodes packets with codec and writes them,
// followed by marker, to sink.  A nil sink turns Send into a no-op; that
// includes a nil pointer of a concrete sink type, such as (*bytes.Buffer)(nil).
func NewFramer(codec Codec, marker byte, sink Sink, opts ...Option) *Framer {
	o := newOptions(opts)
	if isNilSink(sink) {
		sink = nil
	}
	return &Framer{
		codec:  codec,
		marker: marker,
		sink:   sink,
		logger: o.logger,
	}
}

func isNilSink(sink Sink) bool {
	if sink == nil {
		return true
	}
	switch v := reflect.ValueOf(sink); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Pointer, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Send encodes payload and writes it to the sink, followed by the marker.
// Empty payloads are not sent.  There is no retry: a sink that accepts only
// part of the frame yields io.ErrShortWrite.
func (f *Framer) Send(payload []byte) error {
	if len(payload) == 0 || f.sink == nil {
		return nil
	}

	size := f.codec.MaxEncodedSize(len(payload))
	if cap(f.scratch) < size {
		f.scratch = make([]byte, size)
	}
	n := f.codec.Encode(f.scratch[:size], payload)

	if err := f.writeFrame(f.scratch[:n]); err != nil {
		f.logger.Debug().
			Err(err).
			Int("length", len(payload)).
			Msg("send failed")
		return err
	}
	return nil
}

func (f *Framer) writeFrame(frame []byte) error {
	nn, err := f.sink.Write(frame)
	if err != nil {
		return fmt.Errorf("packetserial: writing frame: %w", err)
	}
	if nn < len(frame) {
		return fmt.Errorf("packetserial: writing frame: %w", io.ErrShortWrite)
	}
	if err := f.sink.WriteByte(f.marker); err != nil {
		return fmt.Errorf("packetserial: writing marker: %w", err)
	}
	return nil
}

// Write sends p as a single packet, so that a Framer can be used wherever an
// io.Writer is expected.
func (f *Framer) Write(p []byte) (n int, err error) {
	if err := f.Send(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
