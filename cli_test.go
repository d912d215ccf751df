package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/go-faster/jx"
	"github.com/google/go-cmp/cmp"

	"dsfront/emu"
	"dsfront/hw/layout"
)

func parse(t *testing.T, args ...string) CLI {
	t.Helper()

	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		t.Fatal(err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%q): %v", args, err)
	}
	cli.mode = commandMode(ctx.Command())
	return cli
}

func TestRunFlagsOverrideConfig(t *testing.T) {
	cli := parse(t, "--layout", "vertical", "--sizing", "emphasize-bottom",
		"--rotation", "90", "--gap", "8", "--swap-screens", "--backend", "raster")
	if cli.mode != runMode {
		t.Fatalf("mode = %v, want run", cli.mode)
	}

	cfg := emu.DefaultConfig()
	if err := cli.Run.apply(&cfg); err != nil {
		t.Fatal(err)
	}

	want := layout.Config{
		Mode:        layout.Vertical,
		Sizing:      layout.EmphasizeBottom,
		Rotation:    layout.Rot90,
		Gap:         8,
		SwapScreens: true,
	}
	if diff := cmp.Diff(want, cfg.Layout); diff != "" {
		t.Errorf("layout config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Video.Backend != "raster" {
		t.Errorf("backend = %q, want raster", cfg.Video.Backend)
	}
}

func TestRunFlagsKeepConfig(t *testing.T) {
	cli := parse(t)

	cfg := emu.DefaultConfig()
	cfg.Layout = layout.Config{Rotation: layout.Rot270, Gap: 64, Filtering: true}
	want := cfg
	if err := cli.Run.apply(&cfg); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestRunInvalidRotation(t *testing.T) {
	cli := parse(t, "run", "--rotation", "45")
	cfg := emu.DefaultConfig()
	if err := cli.Run.apply(&cfg); err == nil {
		t.Error("apply succeeded with rotation 45")
	}
}

func TestRunGapTooLarge(t *testing.T) {
	cli := parse(t, "--gap", "1000000")
	cfg := emu.DefaultConfig()
	if err := cli.Run.apply(&cfg); err == nil {
		t.Error("apply succeeded with a gap of 1000000")
	}
}

func TestSaveConfigToFlagPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dsfront.toml")
	cli := parse(t, "--config", path, "--rotation", "180")

	cfg := emu.DefaultConfig()
	if err := cli.Run.apply(&cfg); err != nil {
		t.Fatal(err)
	}
	if err := saveConfig(cli.Run, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := emu.LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("saved config mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandMode(t *testing.T) {
	if got := parse(t, "version").mode; got != versionMode {
		t.Errorf("version: mode = %v", got)
	}
	if got := parse(t, "layout", "256", "384").mode; got != layoutMode {
		t.Errorf("layout: mode = %v", got)
	}
}

// decodeBounds returns the bounds of each screen in a layout JSON document.
func decodeBounds(t *testing.T, data []byte) map[string][4]float64 {
	t.Helper()

	bounds := make(map[string][4]float64)
	err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) error {
		if key != "screens" {
			return d.Skip()
		}
		return d.Arr(func(d *jx.Decoder) error {
			var (
				name string
				r    [4]float64
			)
			err := d.Obj(func(d *jx.Decoder, key string) error {
				switch key {
				case "screen":
					s, err := d.Str()
					name = s
					return err
				case "bounds":
					i := 0
					return d.Arr(func(d *jx.Decoder) error {
						v, err := d.Float64()
						if i < len(r) {
							r[i] = v
						}
						i++
						return err
					})
				}
				return d.Skip()
			})
			bounds[name] = r
			return err
		})
	})
	if err != nil {
		t.Fatalf("invalid layout JSON: %v\n%s", err, data)
	}
	return bounds
}

func TestLayoutJSON(t *testing.T) {
	tests := []struct {
		args []string
		want map[string][4]float64
	}{
		{
			args: []string{"layout", "256", "384"},
			want: map[string][4]float64{
				"top":    {0, 0, 256, 192},
				"bottom": {0, 192, 256, 384},
			},
		},
		{
			args: []string{"layout", "512", "768", "--swap-screens"},
			want: map[string][4]float64{
				"top":    {0, 384, 512, 768},
				"bottom": {0, 0, 512, 384},
			},
		},
		{
			args: []string{"layout", "384", "256", "--rotation", "90"},
			want: map[string][4]float64{
				"top":    {192, 0, 384, 256},
				"bottom": {0, 0, 192, 256},
			},
		},
	}

	for _, tt := range tests {
		cli := parse(t, tt.args...)
		var buf bytes.Buffer
		if err := layoutMain(cli.Layout, layout.Config{}, &buf); err != nil {
			t.Fatalf("%q: %v", tt.args, err)
		}
		if !jx.Valid(buf.Bytes()) {
			t.Fatalf("%q: invalid JSON:\n%s", tt.args, buf.Bytes())
		}
		if diff := cmp.Diff(tt.want, decodeBounds(t, buf.Bytes())); diff != "" {
			t.Errorf("%q: bounds mismatch (-want +got):\n%s", tt.args, diff)
		}
	}
}
