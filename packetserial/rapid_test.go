package packetserial_test

import (
	"bytes"
	"testing"

	"github.com/dcreager/packetserial-go/packetserial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const maxPayload = 600

var inputPayload = rapid.Custom(func(t *rapid.T) []byte {
	smallChunk := rapid.SliceOf(rapid.Byte())
	largeChunk := rapid.Just(bytes.Repeat([]byte{'a'}, 254))
	reserved := rapid.SliceOf(rapid.SampledFrom([]byte{0x00, 0xc0, 0xdb}))
	chunks := rapid.SliceOfN(rapid.OneOf(smallChunk, largeChunk, reserved), 0, 2).Draw(t, "chunks")
	var buf bytes.Buffer
	for _, chunk := range chunks {
		buf.Write(chunk)
	}
	if buf.Len() > maxPayload {
		buf.Truncate(maxPayload)
	}
	return buf.Bytes()
})

// trickle hands out the bytes of a stream a few at a time, so that packets
// straddle calls to Drain.
type trickle struct {
	data  []byte
	ready int
}

func (s *trickle) Available() bool {
	return s.ready > 0 && len(s.data) > 0
}

func (s *trickle) ReadByte() (byte, error) {
	b := s.data[0]
	s.data = s.data[1:]
	s.ready--
	return b, nil
}

func checkStreamRoundTrip(t *rapid.T, codecName string) {
	codec, marker, err := packetserial.LookupCodec(codecName)
	require.NoError(t, err)
	payloads := rapid.SliceOfN(inputPayload, 0, 8).Draw(t, "payloads")

	var wire bytes.Buffer
	f := packetserial.NewFramer(codec, marker, &wire)
	var expected []string
	for _, p := range payloads {
		require.NoError(t, f.Send(p))
		if len(p) == 0 {
			continue
		}
		if codecName == packetserial.CodecSLIP {
			expected = append(expected, "")
		}
		expected = append(expected, string(p))
	}

	r, err := packetserial.NewReassembler(codec, marker, codec.MaxEncodedSize(maxPayload)+1)
	require.NoError(t, err)
	var c collector
	r.SetHandler(c.handle)

	src := &trickle{data: wire.Bytes()}
	for len(src.data) > 0 {
		src.ready = rapid.IntRange(1, 64).Draw(t, "chunk")
		_, err := r.Drain(src)
		require.NoError(t, err)
	}

	assert.Equal(t, expected, c.packets)
	assert.False(t, r.Overflow())
	assert.Zero(t, r.Buffered())
}

func TestStreamRoundTripCOBS(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		checkStreamRoundTrip(t, packetserial.CodecCOBS)
	})
}

func TestStreamRoundTripSLIP(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		checkStreamRoundTrip(t, packetserial.CodecSLIP)
	})
}

func TestOverflowIsSticky(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(packetserial.MinBufferSize, 64).Draw(t, "capacity")
		extra := rapid.IntRange(0, 16).Draw(t, "extra")
		r, err := packetserial.NewReassembler(testCodec{}, 0x00, capacity)
		require.NoError(t, err)

		for i := 0; i < capacity-1; i++ {
			r.ConsumeByte(0x01)
			require.False(t, r.Overflow())
		}
		for i := 0; i <= extra; i++ {
			r.ConsumeByte(0x01)
			require.True(t, r.Overflow())
			require.Equal(t, capacity-1, r.Buffered())
		}
		r.ConsumeByte(0x00)
		assert.False(t, r.Overflow())
		assert.Equal(t, uint64(extra+1), r.Stats().DroppedBytes)
	})
}

// testCodec passes bytes through unchanged.
type testCodec struct{}

func (testCodec) Encode(dst, src []byte) int { return copy(dst, src) }
func (testCodec) Decode(dst, src []byte) (int, error) { return copy(dst, src), nil }
func (testCodec) MaxEncodedSize(n int) int { return n }
