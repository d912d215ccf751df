package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"dsfront/emu"
	"dsfront/emu/log"
	"dsfront/hw/layout"
)

type mode byte

const (
	runMode     mode = iota // Run the emulator
	layoutMode              // Print a computed layout
	versionMode             // Show dsfront version
)

type (
	CLI struct {
		Run     Run       `cmd:"" help:"Run the emulator. (default command)" default:"withargs"`
		Layout  LayoutCmd `cmd:"" help:"Print the screen layout computed for a viewport, as JSON."`
		Version Version   `cmd:"" help:"Show dsfront version."`

		Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Run struct {
		Config  string      `name:"config" help:"${config_help}" type:"path" placeholder:"FILE"`
		Backend string      `name:"backend" help:"Render backend." enum:",gl,raster" default:"" placeholder:"gl|raster"`
		Monitor *int32      `name:"monitor" help:"Monitor index to use."`
		Shader  string      `name:"shader" help:"Fragment shader used by the gl backend." placeholder:"NAME"`
		Scale   *int        `name:"scale" help:"Initial window size, as a multiple of the minimum size."`
		NoAudio bool        `name:"no-audio" help:"Disable audio output."`
		Save    bool        `name:"save" help:"${save_help}"`
		Port    int         `name:"port" help:"Serve session commands over RPC on this port." hidden:"true"`
		Layout  layoutFlags `embed:""`
	}

	LayoutCmd struct {
		Width  int         `arg:"" help:"Viewport width."`
		Height int         `arg:"" help:"Viewport height."`
		Layout layoutFlags `embed:""`
	}

	Version struct{}
)

// layoutFlags override the layout options of the configuration file.
type layoutFlags struct {
	Mode           *layout.Mode   `name:"layout" help:"Screen arrangement: natural, vertical or horizontal." placeholder:"MODE"`
	Sizing         *layout.Sizing `name:"sizing" help:"Screen sizing: even, emphasize-top, emphasize-bottom or auto." placeholder:"SIZING"`
	Rotation       *int           `name:"rotation" help:"Clockwise rotation in degrees: 0, 90, 180 or 270."`
	Gap            *int           `name:"gap" help:"Gap between the screens, in native pixels."`
	IntegerScaling bool           `name:"integer-scaling" help:"Only scale screens by whole factors."`
	SwapScreens    bool           `name:"swap-screens" help:"Swap the top and bottom screens."`
	Filtering      bool           `name:"filtering" help:"Use bilinear filtering."`
}

func (lf *layoutFlags) apply(cfg *layout.Config) {
	if lf.Mode != nil {
		cfg.Mode = *lf.Mode
	}
	if lf.Sizing != nil {
		cfg.Sizing = *lf.Sizing
	}
	if lf.Rotation != nil {
		cfg.Rotation = layout.Rotation(*lf.Rotation)
	}
	if lf.Gap != nil {
		cfg.Gap = *lf.Gap
	}
	cfg.IntegerScaling = cfg.IntegerScaling || lf.IntegerScaling
	cfg.SwapScreens = cfg.SwapScreens || lf.SwapScreens
	cfg.Filtering = cfg.Filtering || lf.Filtering
}

// apply overrides cfg with the flags given on the command line.
func (r *Run) apply(cfg *emu.Config) error {
	if r.Backend != "" {
		cfg.Video.Backend = r.Backend
	}
	if r.Monitor != nil {
		cfg.Video.Monitor = *r.Monitor
	}
	if r.Shader != "" {
		cfg.Video.Shader = r.Shader
	}
	if r.Scale != nil {
		cfg.Video.WindowScale = *r.Scale
	}
	r.Layout.apply(&cfg.Layout)
	return cfg.Check()
}

// configPath returns the configuration file to load and save.
func (r *Run) configPath() string {
	if r.Config != "" {
		return r.Config
	}
	return emu.ConfigPath()
}

var vars = kong.Vars{
	"log_help":    "Enable logging for specified modules.",
	"config_help": "Configuration file. (default: config.toml in the user configuration directory)",
	"save_help":   "Save the configuration on exit, including command line overrides and hotkey changes.",
}

func newParser(cli *CLI) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("dsfront"),
		kong.Description("Dual-screen handheld emulator frontend."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
}

func parseArgs(args []string) CLI {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")
	cli.mode = commandMode(ctx.Command())
	return cli
}

func commandMode(cmd string) mode {
	switch {
	case strings.HasPrefix(cmd, "layout"):
		return layoutMode
	case cmd == "version":
		return versionMode
	}
	return runMode
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "run") || ctx.Command() == "" {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.

Hotkeys:
  Esc quit, F1 layout, F2 sizing, F3 rotate, F4 gap, F5 swap screens,
  F6 integer scaling, F7 filtering, F8 window size, F9 reset, F10 pause,
  F11 fullscreen, F12 stop/run session, Tab toggle frame limiter,
  Grave accent toggle on-screen notices.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
