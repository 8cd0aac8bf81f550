// Package config loads tickwire runtime settings from a YAML file, the
// environment and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/delta"
	"github.com/arloliu/tickwire/format"
	"github.com/arloliu/tickwire/internal/logging"
	"github.com/arloliu/tickwire/registry"
)

// EnvPrefix is the prefix of environment overrides, e.g. TICKWIRE_LOG_LEVEL.
const EnvPrefix = "TICKWIRE"

// ErrInvalidConfig is returned by Load and Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the root configuration.
type Config struct {
	// Log holds logging configuration
	Log logging.Config `mapstructure:"log"`

	// Buffer sizes writers and the writer/reader pools
	Buffer BufferConfig `mapstructure:"buffer"`

	// Packet holds framing defaults
	Packet PacketConfig `mapstructure:"packet"`

	// Delta holds delta codec tolerances
	Delta DeltaConfig `mapstructure:"delta"`
}

// BufferConfig sizes buffer.Writer instances and pools.
type BufferConfig struct {
	WriterCapacity  int `mapstructure:"writer_capacity"`
	// PoolMaxCapacity of 0 keeps writers of any size
	PoolMaxCapacity int `mapstructure:"pool_max_capacity"`
	PoolMaxIdle     int `mapstructure:"pool_max_idle"`
	ReaderMaxIdle   int `mapstructure:"reader_max_idle"`
}

// PacketConfig holds framing defaults.
type PacketConfig struct {
	// Compression: none, zstd, s2 or lz4
	Compression string `mapstructure:"compression"`
}

// DeltaConfig holds delta codec tolerances.
type DeltaConfig struct {
	// RotationPrecision is the angular precision in degrees. Sender and
	// receiver must agree on it.
	RotationPrecision float64 `mapstructure:"rotation_precision"`
	// RotationEpsilon is the angle in degrees a rotation must move before a
	// delta is sent. Zero sends every change that survives quantization.
	RotationEpsilon float64 `mapstructure:"rotation_epsilon"`
}

// Default returns a Config populated with the library defaults.
func Default() *Config {
	return &Config{
		Log: logging.DefaultConfig(),
		Buffer: BufferConfig{
			WriterCapacity:  buffer.DefaultWriterCapacity,
			PoolMaxCapacity: buffer.DefaultPoolMaxCapacity,
			PoolMaxIdle:     buffer.DefaultPoolMaxIdle,
			ReaderMaxIdle:   buffer.DefaultPoolMaxIdle,
		},
		Packet: PacketConfig{Compression: "none"},
		Delta:  DeltaConfig{RotationPrecision: delta.DefaultRotationPrecision},
	}
}

// Load reads configuration from path (if non-empty), otherwise it searches
// ./tickwire.yaml, ./configs and ~/.tickwire. A missing file is not an error.
// Environment variables use the prefix TICKWIRE and `.`/`-` are replaced
// with `_`. Example: TICKWIRE_PACKET_COMPRESSION=zstd
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tickwire")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".tickwire"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// seed defaults for viper so env-only configs work
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.outputs", cfg.Log.Outputs)
	v.SetDefault("log.development", cfg.Log.Development)
	v.SetDefault("log.rotation.enable", cfg.Log.Rotation.Enable)
	v.SetDefault("log.rotation.max_size_mb", cfg.Log.Rotation.MaxSizeMB)
	v.SetDefault("log.rotation.max_backups", cfg.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age_days", cfg.Log.Rotation.MaxAgeDays)
	v.SetDefault("log.rotation.compress", cfg.Log.Rotation.Compress)

	v.SetDefault("buffer.writer_capacity", cfg.Buffer.WriterCapacity)
	v.SetDefault("buffer.pool_max_capacity", cfg.Buffer.PoolMaxCapacity)
	v.SetDefault("buffer.pool_max_idle", cfg.Buffer.PoolMaxIdle)
	v.SetDefault("buffer.reader_max_idle", cfg.Buffer.ReaderMaxIdle)

	v.SetDefault("packet.compression", cfg.Packet.Compression)
	v.SetDefault("delta.rotation_precision", cfg.Delta.RotationPrecision)
	v.SetDefault("delta.rotation_epsilon", cfg.Delta.RotationEpsilon)
}

// Validate normalises the configuration and reports settings that cannot work.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if len(c.Log.Outputs) == 0 {
		c.Log.Outputs = []string{"stderr"}
	}

	if c.Buffer.WriterCapacity <= 0 {
		return fmt.Errorf("%w: buffer.writer_capacity must be positive, got %d", ErrInvalidConfig, c.Buffer.WriterCapacity)
	}
	if c.Buffer.PoolMaxCapacity != 0 && c.Buffer.PoolMaxCapacity < c.Buffer.WriterCapacity {
		return fmt.Errorf("%w: buffer.pool_max_capacity %d is below writer_capacity %d",
			ErrInvalidConfig, c.Buffer.PoolMaxCapacity, c.Buffer.WriterCapacity)
	}
	if c.Buffer.PoolMaxIdle < 0 || c.Buffer.ReaderMaxIdle < 0 {
		return fmt.Errorf("%w: pool idle limits must not be negative", ErrInvalidConfig)
	}

	c.Packet.Compression = strings.ToLower(strings.TrimSpace(c.Packet.Compression))
	if _, ok := format.ParseCompression(c.Packet.Compression); !ok {
		return fmt.Errorf("%w: packet.compression %q", ErrInvalidConfig, c.Packet.Compression)
	}

	if !(c.Delta.RotationPrecision > 0 && c.Delta.RotationPrecision < 180) {
		return fmt.Errorf("%w: delta.rotation_precision must be in (0, 180), got %v", ErrInvalidConfig, c.Delta.RotationPrecision)
	}

	if !(c.Delta.RotationEpsilon >= 0 && c.Delta.RotationEpsilon < 180) {
		return fmt.Errorf("%w: delta.rotation_epsilon must be in [0, 180), got %v", ErrInvalidConfig, c.Delta.RotationEpsilon)
	}

	return nil
}

// RegistryOptions returns the registry options carrying the delta settings.
func (c *Config) RegistryOptions() []registry.Option {
	return []registry.Option{
		registry.WithRotationPrecision(c.Delta.RotationPrecision),
		registry.WithRotationEpsilon(c.Delta.RotationEpsilon),
	}
}

// Compression returns the configured packet compression.
func (c *Config) Compression() format.CompressionType {
	ct, ok := format.ParseCompression(c.Packet.Compression)
	if !ok {
		return format.CompressionNone
	}

	return ct
}

// WriterPool builds a buffer.Pool sized by the buffer settings.
func (c *Config) WriterPool() *buffer.Pool {
	return buffer.NewPool(
		buffer.WithPoolInitialCapacity(c.Buffer.WriterCapacity),
		buffer.WithPoolMaxCapacity(c.Buffer.PoolMaxCapacity),
		buffer.WithPoolMaxIdle(c.Buffer.PoolMaxIdle),
	)
}

// ReaderPool builds a buffer.ReaderPool sized by the buffer settings.
func (c *Config) ReaderPool() *buffer.ReaderPool {
	return buffer.NewReaderPool(c.Buffer.ReaderMaxIdle)
}

// MustLoad is a convenience that panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}
