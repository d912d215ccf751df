package emu

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"dsfront/emu/log"
	"dsfront/hw/input"
	"dsfront/hw/layout"
	"dsfront/hw/shaders"
)

type Config struct {
	Video     VideoConfig     `toml:"video"`
	Layout    layout.Config   `toml:"layout"`
	Input     input.Config    `toml:"input"`
	Emulation EmulationConfig `toml:"emulation"`
}

type VideoConfig struct {
	// Backend is the name of the render backend, "gl" or "raster".
	Backend      string `toml:"backend"`
	DisableVSync bool   `toml:"disable_vsync"`
	WindowScale  int    `toml:"window_scale"`
	Monitor      int32  `toml:"monitor"`
	Shader       string `toml:"shader"`
	// ShowOSD enables the notices drawn over the screens.
	ShowOSD      bool   `toml:"show_osd"`
}

type EmulationConfig struct {
	LimitFPS        bool     `toml:"limit_fps"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	SaveFile        string   `toml:"save_file"`
}

// Duration is a time.Duration stored as text, such as "1.5s".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

const DefaultShutdownTimeout = 2 * time.Second

// DefaultConfig returns the configuration used when there's no config file.
func DefaultConfig() Config {
	return Config{
		Video: VideoConfig{
			Backend:     "gl",
			WindowScale: 2,
			Shader:      shaders.DefaultName,
			ShowOSD:     true,
		},
		Input: input.DefaultConfig(),
		Emulation: EmulationConfig{
			LimitFPS:        true,
			ShutdownTimeout: Duration{DefaultShutdownTimeout},
		},
	}
}

// Check fixes invalid values, and reports those that can't be fixed.
func (cfg *Config) Check() error {
	if cfg.Video.WindowScale < 1 {
		log.ModEmu.Warnf("Invalid window scale %d, fallback to 1", cfg.Video.WindowScale)
		cfg.Video.WindowScale = 1
	}
	if !slices.Contains(shaders.Names(), cfg.Video.Shader) {
		log.ModEmu.Warnf("Invalid shader name %q, fallback to %q", cfg.Video.Shader, shaders.DefaultName)
		cfg.Video.Shader = shaders.DefaultName
	}
	if cfg.Emulation.ShutdownTimeout.Duration <= 0 {
		cfg.Emulation.ShutdownTimeout.Duration = DefaultShutdownTimeout
	}
	if err := cfg.Layout.Check(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	return nil
}

const DefaultFileMode = os.FileMode(0755)

var ConfigDir = sync.OnceValue(func() string {
	cfgdir, err := os.UserConfigDir()
	if err != nil {
		log.ModEmu.Fatalf("failed to get user config directory: %v", err)
	}

	dir := filepath.Join(cfgdir, "dsfront")
	if err := os.MkdirAll(dir, DefaultFileMode); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

const cfgFilename = "config.toml"

// ConfigPath returns the path of the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), cfgFilename)
}

// LoadConfigOrDefault loads the configuration from the dsfront config
// directory, or provides a default one if there's none.
func LoadConfigOrDefault() Config {
	cfg, err := LoadConfig(ConfigPath())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.ModEmu.WarnZ("Failed to load config, using default").Error("err", err).End()
		}
		return DefaultConfig()
	}
	return cfg
}

// LoadConfig loads the configuration at path. Values missing from the file
// keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Check(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg into the dsfront config directory.
func SaveConfig(cfg Config) error {
	return WriteConfig(ConfigPath(), cfg)
}

func WriteConfig(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}
