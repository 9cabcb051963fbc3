package chunk

import (
	"fmt"

	"github.com/arloliu/tszchunk/endian"
	"github.com/arloliu/tszchunk/format"
)

// Config holds the serialization settings shared by both chunk kinds.
//
// For a Gorilla chunk the settings only affect Marshal/Unmarshal; the
// in-memory codec state and the bit layout of the stream are independent of
// them. A raw chunk also keeps its in-memory pairs in the configured byte
// order.
type Config struct {
	compression format.CompressionType
	engine      endian.EndianEngine
}

// Compression returns the payload compression applied by Marshal.
func (c Config) Compression() format.CompressionType {
	return c.compression
}

// Engine returns the endian engine used to serialize bins and the checksum.
func (c Config) Engine() endian.EndianEngine {
	return c.engine
}

func newConfig() Config {
	return Config{
		compression: format.CompressionNone,
		engine:      endian.GetLittleEndianEngine(),
	}
}

// Option represents a functional option for configuring a chunk at
// construction time: the payload compression and the byte order used when
// the chunk is marshaled.
type Option interface {
	apply(*Config) error
}

// optionFunc adapts a plain function to the Option interface.
type optionFunc func(*Config) error

func (f optionFunc) apply(cfg *Config) error {
	return f(cfg)
}

// applyOptions applies the options to cfg in order, stopping at the first
// failure.
func applyOptions(cfg *Config, opts []Option) error {
	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return err
		}
	}

	return nil
}

// WithCompression sets the payload compression applied when the chunk is
// marshaled.
func WithCompression(compression format.CompressionType) Option {
	return optionFunc(func(cfg *Config) error {
		switch compression {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			cfg.compression = compression
			return nil
		default:
			return fmt.Errorf("invalid chunk compression: %v", compression)
		}
	})
}

// WithLittleEndian serializes payload bins in little-endian byte order (the default).
func WithLittleEndian() Option {
	return optionFunc(func(cfg *Config) error {
		cfg.engine = endian.GetLittleEndianEngine()
		return nil
	})
}

// WithBigEndian serializes payload bins in big-endian byte order.
func WithBigEndian() Option {
	return optionFunc(func(cfg *Config) error {
		cfg.engine = endian.GetBigEndianEngine()
		return nil
	})
}
