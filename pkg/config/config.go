// Package config loads causeview settings from a TOML file.
//
// Settings are resolved in three layers: built-in defaults, then the TOML
// file, then command-line flags (applied by the CLI on the returned value).
//
// Example causeview.toml:
//
//	[input]
//	path = "causality_tree.json"
//
//	[server]
//	addr = "0.0.0.0:8080"
//	height = 800
//
//	[layout]
//	engine = "dot"   # or "spring"
//	rankdir = "TB"
//	seed = 42
//
//	[scene]
//	base_size = 10
//	size_scale = 2
//	neutral_color = "#808080"
//
//	[cache]
//	enabled = true
package config

import (
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	cverrors "github.com/matzehuels/causeview/pkg/errors"
	"github.com/matzehuels/causeview/pkg/layout"
	"github.com/matzehuels/causeview/pkg/palette"
	"github.com/matzehuels/causeview/pkg/scene"
)

// DefaultFile is read when no config path is given. It may be absent.
const DefaultFile = "causeview.toml"

// Config is the complete runtime configuration.
type Config struct {
	Input  InputConfig  `toml:"input"`
	Server ServerConfig `toml:"server"`
	Layout LayoutConfig `toml:"layout"`
	Scene  SceneConfig  `toml:"scene"`
	Cache  CacheConfig  `toml:"cache"`
}

type InputConfig struct {
	Path string `toml:"path"`
}

type ServerConfig struct {
	Addr   string `toml:"addr"`
	Title  string `toml:"title"`
	Height int    `toml:"height"`
}

type LayoutConfig struct {
	Engine     string `toml:"engine"`
	RankDir    string `toml:"rankdir"`
	Seed       uint64 `toml:"seed"`
	Iterations int    `toml:"iterations"`
}

type SceneConfig struct {
	BaseSize     float64 `toml:"base_size"`
	SizeScale    float64 `toml:"size_scale"`
	NeutralColor string  `toml:"neutral_color"`
}

type CacheConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Input:  InputConfig{Path: "causality_tree.json"},
		Server: ServerConfig{Addr: "0.0.0.0:8080", Title: "Causality tree", Height: 800},
		Layout: LayoutConfig{
			Engine:     layout.EngineDot,
			RankDir:    string(layout.RankTB),
			Seed:       layout.DefaultSeed,
			Iterations: layout.DefaultIterations,
		},
		Scene: SceneConfig{
			BaseSize:     scene.DefaultBaseSize,
			SizeScale:    scene.DefaultSizeScale,
			NeutralColor: palette.Neutral,
		},
		Cache: CacheConfig{Enabled: true},
	}
}

// Load reads path on top of the defaults and validates the result.
//
// An empty path reads [DefaultFile] if it exists. An explicit path that does
// not exist is an error. Unknown keys are rejected. A nil logger uses
// log.Default.
func Load(path string, logger *log.Logger) (Config, error) {
	if logger == nil {
		logger = log.Default()
	}
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			logger.Debug("no config file, using defaults", "path", path)
			return cfg, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, cverrors.New(cverrors.ErrCodeInvalidConfig, "config file not found: %s", path)
		}
		return cfg, cverrors.Wrap(cverrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := cfg.decode(string(data)); err != nil {
		return cfg, cverrors.Wrap(cverrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	logger.Debug("loaded config", "path", path)
	return cfg, cfg.Validate()
}

// Parse decodes TOML text on top of the defaults and validates the result.
func Parse(text string) (Config, error) {
	cfg := Default()
	if err := cfg.decode(text); err != nil {
		return cfg, cverrors.Wrap(cverrors.ErrCodeInvalidConfig, err, "parse config")
	}
	return cfg, cfg.Validate()
}

func (c *Config) decode(text string) error {
	md, err := toml.Decode(text, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New("unknown keys: " + strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return cverrors.New(cverrors.ErrCodeInvalidConfig, format, args...)
	}
	if c.Input.Path == "" {
		return invalid("input.path must not be empty")
	}
	if c.Server.Height <= 0 {
		return invalid("server.height must be positive, got %d", c.Server.Height)
	}
	if !slices.Contains([]string{layout.EngineDot, layout.EngineSpring}, c.Layout.Engine) {
		return invalid("layout.engine must be %q or %q, got %q", layout.EngineDot, layout.EngineSpring, c.Layout.Engine)
	}
	if !slices.Contains([]string{string(layout.RankTB), string(layout.RankLR)}, c.Layout.RankDir) {
		return invalid("layout.rankdir must be TB or LR, got %q", c.Layout.RankDir)
	}
	if c.Layout.Iterations < 0 {
		return invalid("layout.iterations must not be negative")
	}
	if c.Scene.BaseSize <= 0 || c.Scene.SizeScale <= 0 {
		return invalid("scene.base_size and scene.size_scale must be positive")
	}
	if err := palette.ValidateHex(c.Scene.NeutralColor); err != nil {
		return invalid("scene.neutral_color %q is not a #rrggbb colour", c.Scene.NeutralColor)
	}
	return nil
}

// LayoutOptions converts the layout section for [layout.New].
func (c Config) LayoutOptions(logger *log.Logger) layout.Options {
	return layout.Options{
		Engine:     c.Layout.Engine,
		RankDir:    layout.RankDir(c.Layout.RankDir),
		Seed:       c.Layout.Seed,
		Iterations: c.Layout.Iterations,
		Logger:     logger,
	}
}

// SceneOptions converts the scene section for [scene.Build].
func (c Config) SceneOptions() scene.Options {
	return scene.Options{BaseSize: c.Scene.BaseSize, SizeScale: c.Scene.SizeScale}
}
