package packetserial_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/dcreager/packetserial-go/cobs"
	"github.com/dcreager/packetserial-go/packetserial"
	"github.com/dcreager/packetserial-go/slip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := packetserial.DefaultConfig()
	assert.Equal(t, packetserial.CodecCOBS, cfg.Codec)
	assert.Equal(t, 256, cfg.BufferSize)
	assert.Nil(t, cfg.Marker)
	assert.NoError(t, cfg.Validate())
}

func TestParseConfig(t *testing.T) {
	cfg, err := packetserial.ParseConfig([]byte("codec: slip\n"))
	require.NoError(t, err)
	assert.Equal(t, packetserial.CodecSLIP, cfg.Codec)
	assert.Equal(t, packetserial.DefaultBufferSize, cfg.BufferSize)
	assert.Nil(t, cfg.Marker)

	cfg, err = packetserial.ParseConfig([]byte("codec: cobs\nmarker: 0\nbuffer_size: 64\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.Marker)
	assert.Equal(t, byte(cobs.Marker), *cfg.Marker)
	assert.Equal(t, 64, cfg.BufferSize)

	cfg, err = packetserial.ParseConfig([]byte("codec: slip\nmarker: 192\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.Marker)
	assert.Equal(t, byte(slip.End), *cfg.Marker)

	cfg, err = packetserial.ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, packetserial.DefaultConfig(), cfg)
}

func TestParseConfigErrors(t *testing.T) {
	_, err := packetserial.ParseConfig([]byte("codec: hdlc\n"))
	assert.True(t, errors.Is(err, packetserial.ErrUnknownCodec))

	_, err = packetserial.ParseConfig([]byte("buffer_size: 1\n"))
	assert.True(t, errors.Is(err, packetserial.ErrBufferSize))

	_, err = packetserial.ParseConfig([]byte("baud: 115200\n"))
	assert.Error(t, err)

	_, err = packetserial.ParseConfig([]byte("marker: 300\n"))
	assert.Error(t, err)
}

func TestParseConfigMarkerMismatch(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"cobs with tilde", "codec: cobs\nmarker: 126\n"},
		{"cobs with slip end", "codec: cobs\nmarker: 192\n"},
		{"slip with zero", "codec: slip\nmarker: 0\n"},
		{"slip with newline", "codec: slip\nmarker: 10\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := packetserial.ParseConfig([]byte(test.yaml))
			assert.True(t, errors.Is(err, packetserial.ErrMarker), "got %v", err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := packetserial.LoadConfig(strings.NewReader("codec: slip\nbuffer_size: 512\n"))
	require.NoError(t, err)
	assert.Equal(t, packetserial.CodecSLIP, cfg.Codec)
	assert.Equal(t, 512, cfg.BufferSize)
}

func TestLookupCodec(t *testing.T) {
	codec, marker, err := packetserial.LookupCodec("cobs")
	require.NoError(t, err)
	assert.Equal(t, cobs.Codec{}, codec)
	assert.Equal(t, byte(cobs.Marker), marker)

	codec, marker, err = packetserial.LookupCodec("slip")
	require.NoError(t, err)
	assert.Equal(t, slip.Codec{}, codec)
	assert.Equal(t, byte(slip.End), marker)

	_, _, err = packetserial.LookupCodec("COBS")
	assert.True(t, errors.Is(err, packetserial.ErrUnknownCodec))
}
