package emu

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"dsfront/hw/layout"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.Video.Backend = "raster"
	cfg.Layout = layout.Config{
		Mode:           layout.Horizontal,
		Sizing:         layout.EmphasizeBottom,
		Rotation:       layout.Rot270,
		Gap:            64,
		IntegerScaling: true,
		Filtering:      true,
	}
	cfg.Emulation.ShutdownTimeout = Duration{500 * time.Millisecond}

	if err := WriteConfig(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	const partial = `
[layout]
mode = "vertical"
sizing = "auto"

[video]
window_scale = 0
`
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultConfig()
	want.Layout.Mode = layout.Vertical
	want.Layout.Sizing = layout.Auto
	want.Video.WindowScale = 1
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[layout]\nrotation = 45\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig() with rotation 45 succeeded")
	}
}

func TestSaveConfigDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	cfg := DefaultConfig()
	cfg.Layout.Gap = 90
	cfg.Video.ShowOSD = false
	if err := SaveConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(ConfigPath()); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, LoadConfigOrDefault()); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}
