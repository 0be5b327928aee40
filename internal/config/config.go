// Package config loads allocator settings from YAML files and key=value
// overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"reflect"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/segheap/heap/alloc"
	"github.com/joshuapare/segheap/heap/memlib"
	"github.com/joshuapare/segheap/internal/format"
	"github.com/joshuapare/segheap/internal/logger"
)

// Provider names.
const (
	ProviderSlice = "slice"
	ProviderMmap  = "mmap"
)

var (
	// ErrInvalid indicates a setting outside its legal range.
	ErrInvalid = errors.New("config: invalid setting")

	// ErrBadOverride indicates a malformed key=value override.
	ErrBadOverride = errors.New("config: bad override")
)

// ByteSize is a byte count that reads human forms such as "64MiB" or "4k".
type ByteSize int

// ParseByteSize parses a human-readable byte count.
func ParseByteSize(s string) (ByteSize, error) {
	n, err := humanize.ParseBytes(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: size %q: %w", ErrInvalid, s, err)
	}
	if n > math.MaxInt {
		return 0, fmt.Errorf("%w: size %q too large", ErrInvalid, s)
	}
	return ByteSize(n), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *ByteSize) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseByteSize(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*s = v
	return nil
}

func (s ByteSize) String() string {
	return humanize.IBytes(uint64(s))
}

// Config holds allocator and runtime settings.
type Config struct {
	ChunkSize ByteSize `yaml:"chunk_size" mapstructure:"chunk_size"`
	MaxHeap   ByteSize `yaml:"max_heap" mapstructure:"max_heap"`
	Provider  string   `yaml:"provider" mapstructure:"provider"`
	CheckHeap bool     `yaml:"check_heap" mapstructure:"check_heap"`
	LogLevel  string   `yaml:"log_level" mapstructure:"log_level"`
	LogJSON   bool     `yaml:"log_json" mapstructure:"log_json"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ChunkSize: format.ChunkSize,
		MaxHeap:   memlib.DefaultMaxHeap,
		Provider:  ProviderSlice,
		LogLevel:  "info",
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	d.KnownFields(true)
	if err := d.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// byteSizeHook lets overrides spell sizes the way YAML files do.
func byteSizeHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != reflect.TypeOf(ByteSize(0)) || from.Kind() != reflect.String {
		return data, nil
	}
	return ParseByteSize(data.(string))
}

// Apply sets fields from key=value pairs, keyed by their YAML names.
// Values are converted weakly, so "check_heap=1" and "max_heap=64MiB" work.
func (c *Config) Apply(overrides []string) error {
	if len(overrides) == 0 {
		return nil
	}
	raw := make(map[string]interface{}, len(overrides))
	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("%w: %q (want key=value)", ErrBadOverride, kv)
		}
		raw[key] = strings.TrimSpace(value)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(byteSizeHook),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           c,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %w", ErrBadOverride, err)
	}
	return nil
}

// Validate reports the first setting outside its legal range.
func (c Config) Validate() error {
	if c.ChunkSize < format.MinBlockSize || int(c.ChunkSize)%format.Alignment != 0 {
		return fmt.Errorf("%w: chunk_size %d must be a multiple of %d and at least %d",
			ErrInvalid, c.ChunkSize, format.Alignment, format.MinBlockSize)
	}
	if int(c.MaxHeap) < format.PrefixSize+int(c.ChunkSize) {
		return fmt.Errorf("%w: max_heap %s cannot hold the first chunk", ErrInvalid, c.MaxHeap)
	}
	switch c.Provider {
	case ProviderSlice:
		if c.MaxHeap > memlib.MaxArenaHeap {
			return fmt.Errorf("%w: max_heap %s exceeds the %s slice provider limit (use provider mmap)",
				ErrInvalid, c.MaxHeap, ByteSize(memlib.MaxArenaHeap))
		}
	case ProviderMmap:
	default:
		return fmt.Errorf("%w: provider %q (want %s or %s)", ErrInvalid, c.Provider, ProviderSlice, ProviderMmap)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalid, err)
	}
	return nil
}

// LoggerOptions maps the logging settings onto logger.Options.
func (c Config) LoggerOptions(enabled bool) logger.Options {
	return logger.Options{Enabled: enabled, Level: c.LogLevel, JSON: c.LogJSON}
}

// AllocOptions maps the allocator settings onto alloc options.
func (c Config) AllocOptions() []alloc.Option {
	return []alloc.Option{
		alloc.WithChunkSize(int(c.ChunkSize)),
		alloc.WithCheckHeap(c.CheckHeap),
	}
}

// NewProvider builds the configured provider. The returned release func
// frees its memory and is safe to call more than once.
func (c Config) NewProvider() (memlib.Provider, func() error, error) {
	switch c.Provider {
	case ProviderMmap:
		m, err := memlib.NewMmapArena(int(c.MaxHeap))
		if err != nil {
			return nil, nil, err
		}
		return m, m.Close, nil
	case ProviderSlice, "":
		return memlib.NewArena(int(c.MaxHeap)), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("%w: provider %q", ErrInvalid, c.Provider)
	}
}
