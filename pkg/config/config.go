// Package config loads the voxmemento YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/chazu/voxmemento/pkg/codec"
	"github.com/chazu/voxmemento/pkg/history"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = newValidator()

// maxLevel is the highest compression level each codec accepts.
var maxLevel = map[string]int{
	"zlib": 9,
	"zstd": 22,
	"s2":   22,
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validateLevel, HistoryConfig{})
	return v
}

// validateLevel rejects levels the selected codec would silently clamp.
func validateLevel(sl validator.StructLevel) {
	h := sl.Current().Interface().(HistoryConfig)
	if limit, ok := maxLevel[h.Codec]; ok && h.Level > limit {
		sl.ReportError(h.Level, "Level", "Level", "lte", strconv.Itoa(limit))
	}
}

// Config is the top level configuration document.
type Config struct {
	History HistoryConfig `yaml:"history"`
	Log     LogConfig     `yaml:"log"`
	Console ConsoleConfig `yaml:"console"`
}

// HistoryConfig configures the history store. Level is 0..9 for zlib and
// 0..22 for zstd and s2.
type HistoryConfig struct {
	Codec          string `yaml:"codec" validate:"required,oneof=zlib zstd s2"`
	Level          int    `yaml:"level" validate:"gte=0,lte=22"`
	PartialCapture bool   `yaml:"partial_capture"`
	Strict         bool   `yaml:"strict"`
}

// LogConfig configures the slog logger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"required,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"required,oneof=text json"`
}

// ConsoleConfig configures the diagnostic console.
type ConsoleConfig struct {
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		History: HistoryConfig{
			Codec: "zlib",
			Level: codec.DefaultLevel,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Console: ConsoleConfig{
			Timeout: 2 * time.Second,
		},
	}
}

// Load reads and validates the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML document on top of the defaults and validates the
// result. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks every field constraint.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// YAML encodes the configuration.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Logger builds the slog logger described by the log section.
func (c Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.slogLevel()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (c Config) slogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Codec returns the configured snapshot codec.
func (c Config) Codec() (codec.Codec, error) {
	return codec.ByName(c.History.Codec, c.History.Level)
}

// Options maps the history section to store options. log may be nil.
func (c Config) Options(log *slog.Logger) ([]history.Option, error) {
	cd, err := c.Codec()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return []history.Option{
		history.WithCodec(cd),
		history.WithLogger(log),
		history.WithPartialCapture(c.History.PartialCapture),
		history.WithStrict(c.History.Strict),
	}, nil
}
