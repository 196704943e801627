package packetserial

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v2"
)

// Config describes how packets are framed on a stream.  It is fixed once a
// Serial has been built from it.
type Config struct {
	// Codec names the byte stuffing: "cobs" or "slip".
	Codec string `yaml:"codec"`
	// Marker is the packet boundary byte.  It may be omitted; if set, it must
	// be the codec's own marker (0x00 for COBS, 0xC0 for SLIP), since no other
	// byte is guaranteed to be absent from encoded frames.
	Marker *byte `yaml:"marker,omitempty"`
	// BufferSize is the receive buffer capacity, in encoded bytes.
	BufferSize int `yaml:"buffer_size"`
}

// DefaultConfig returns a COBS configuration with a 256-byte receive buffer.
func DefaultConfig() Config {
	return Config{
		Codec:      CodecCOBS,
		BufferSize: DefaultBufferSize,
	}
}

// ParseConfig reads a YAML configuration.  Fields that are not set keep their
// DefaultConfig values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("packetserial: parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML configuration from r.
func LoadConfig(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("packetserial: reading config: %w", err)
	}
	return ParseConfig(data)
}

// Validate checks that cfg names a known codec, a marker that codec reserves,
// and a usable buffer size.
func (cfg Config) Validate() error {
	_, marker, err := LookupCodec(cfg.Codec)
	if err != nil {
		return err
	}
	if cfg.Marker != nil && *cfg.Marker != marker {
		return fmt.Errorf("%w: 0x%02x for %s", ErrMarker, *cfg.Marker, cfg.Codec)
	}
	if cfg.BufferSize < MinBufferSize {
		return fmt.Errorf("%w: %d < %d", ErrBufferSize, cfg.BufferSize, MinBufferSize)
	}
	return nil
}

func (cfg Config) resolve() (Codec, byte, error) {
	return LookupCodec(cfg.Codec)
}
