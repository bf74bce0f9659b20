// Package config holds the settings of the clearwin command: defaults,
// an optional TOML file, and command-line flags, applied in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Config is the full set of settings.
type Config struct {
	Title  string `toml:"title" comment:"Window title"`
	Width  int    `toml:"width" comment:"Initial window width"`
	Height int    `toml:"height" comment:"Initial window height"`

	Backend     string `toml:"backend" comment:"vulkan, software, noop, or empty for the best available"`
	PresentMode string `toml:"present_mode" comment:"fifo, fifo-relaxed, immediate or mailbox"`
	Power       string `toml:"power" comment:"Adapter power preference: none, low-power or high-performance"`
	Fallback    bool   `toml:"fallback" comment:"Only accept fallback (software) adapters"`
	Color       Color  `toml:"color" comment:"Clear color as [r, g, b, a] in 0..1"`

	Headless bool   `toml:"headless" comment:"Render offscreen without opening a window"`
	Frames   uint64 `toml:"frames" comment:"Stop after this many frames; 0 runs until closed"`
	Out      string `toml:"out" comment:"Write the last frame to this image file (headless software only)"`

	LogLevel string `toml:"log_level" comment:"debug, info, warn or error"`

	// PrintConfig prints the effective settings as TOML and exits.
	PrintConfig bool `toml:"-"`
}

// Default returns the built-in settings: an 800x600 window cleared to blue
// with Fifo presentation.
func Default() Config {
	return Config{
		Title:       "present",
		Width:       800,
		Height:      600,
		PresentMode: "fifo",
		Power:       "none",
		Color:       Color{0, 0, 1, 1},
		LogLevel:    "info",
	}
}

// Load decodes the TOML file at path over c. Unknown keys are rejected.
func (c *Config) Load(path string) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("config: open: %w", err)
	}
	defer func() { _ = f.Close() }()
	return c.Decode(f)
}

// Decode reads TOML from r over c.
func (c *Config) Decode(r io.Reader) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("config: line %d column %d: %w", row, col, err)
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return fmt.Errorf("config: unknown keys:\n%s", serr.String())
		}
		return fmt.Errorf("config: decode: %w", err)
	}
	return nil
}

// Write encodes c as TOML, with a comment above each key.
func (c Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).SetIndentTables(true).Encode(c); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return nil
}

// Parse builds a Config from defaults, the file named by -config if any,
// and the remaining flags. Flags override the file. The result is
// validated. -h returns flag.ErrHelp after printing usage to out.
func Parse(name string, args []string, out io.Writer) (Config, error) {
	cfg := Default()
	fs, path := cfg.flagSet(name, out)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *path != "" {
		cfg = Default()
		if err := cfg.Load(*path); err != nil {
			return Config{}, err
		}
		// Apply the flags again so they win over the file.
		fs, _ = cfg.flagSet(name, out)
		if err := fs.Parse(args); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) flagSet(name string, out io.Writer) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)

	path := fs.String("config", "", "TOML settings file; flags override it")
	fs.StringVar(&c.Title, "title", c.Title, "window title")
	fs.IntVar(&c.Width, "width", c.Width, "window width")
	fs.IntVar(&c.Height, "height", c.Height, "window height")
	fs.StringVar(&c.Backend, "backend", c.Backend, "vulkan, software or noop (default: best available)")
	fs.StringVar(&c.PresentMode, "present-mode", c.PresentMode, "fifo, fifo-relaxed, immediate or mailbox")
	fs.StringVar(&c.Power, "power", c.Power, "none, low-power or high-performance")
	fs.BoolVar(&c.Fallback, "fallback", c.Fallback, "only accept fallback adapters")
	fs.Var(&c.Color, "color", "clear color as r,g,b,a")
	fs.BoolVar(&c.Headless, "headless", c.Headless, "render offscreen without a window")
	fs.Uint64Var(&c.Frames, "frames", c.Frames, "stop after n frames (0: until closed)")
	fs.StringVar(&c.Out, "out", c.Out, "write the last frame to an image file (.png, .jpg, .bmp, .tiff)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&c.PrintConfig, "print-config", c.PrintConfig, "print the effective settings as TOML and exit")
	return fs, path
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height))
	}
	if _, err := present.ParsePresentMode(c.PresentMode); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	if _, err := present.ParsePowerPreference(c.Power); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	for i, v := range c.Color {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%w: color component %d = %g, want 0..1", ErrInvalid, i, v))
		}
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel))
	}
	if c.Out != "" && !c.Headless {
		errs = append(errs, fmt.Errorf("%w: -out needs -headless", ErrInvalid))
	}
	if c.Headless && c.Frames == 0 {
		errs = append(errs, fmt.Errorf("%w: -headless needs -frames", ErrInvalid))
	}
	return errors.Join(errs...)
}

// Level returns the slog level named by LogLevel, or Info.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Size returns the window size.
func (c Config) Size() present.Size {
	return present.Size{Width: uint32(max(c.Width, 0)), Height: uint32(max(c.Height, 0))}
}

// Options converts the settings to present options.
func (c Config) Options() ([]present.Option, error) {
	mode, err := present.ParsePresentMode(c.PresentMode)
	if err != nil {
		return nil, err
	}
	power, err := present.ParsePowerPreference(c.Power)
	if err != nil {
		return nil, err
	}
	return []present.Option{
		present.WithPresentMode(mode),
		present.WithPowerPreference(power),
		present.WithForceFallbackAdapter(c.Fallback),
		present.WithClearColor(c.Color.GPU()),
		present.WithLabel(c.Title),
	}, nil
}

// Color is an RGBA color with components in 0..1. It is a flag.Value
// written as "r,g,b,a"; the alpha may be omitted.
type Color [4]float64

// GPU returns c as a gputypes.Color.
func (c Color) GPU() gputypes.Color {
	return gputypes.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
}

func (c *Color) String() string {
	if c == nil {
		return ""
	}
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// Set parses "r,g,b" or "r,g,b,a".
func (c *Color) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return fmt.Errorf("color %q: want r,g,b or r,g,b,a", s)
	}
	v := Color{0, 0, 0, 1}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("color %q: %w", s, err)
		}
		v[i] = f
	}
	*c = v
	return nil
}
