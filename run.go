package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/veandco/go-sdl2/sdl"

	"dsfront/emu"
	"dsfront/emu/democore"
	"dsfront/emu/log"
	"dsfront/emu/rpc"
	"dsfront/hw"
)

const defaultSaveFile = "canvas.png"

// runMain runs an emulation session until the window is closed, and returns
// the process exit code.
func runMain(args Run) int {
	cfg, err := emu.LoadConfig(args.configPath())
	switch {
	case err == nil:
	case args.Config == "" && errors.Is(err, fs.ErrNotExist):
		cfg = emu.DefaultConfig()
	default:
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return 1
	}
	checkf(args.apply(&cfg), "invalid configuration")

	savePath := cfg.Emulation.SaveFile
	if savePath == "" {
		savePath = filepath.Join(emu.ConfigDir(), defaultSaveFile)
	}

	var exitcode int
	sdl.Main(func() {
		audio := hw.NewAudioDevice(!args.NoAudio)
		core := democore.New(savePath, audio, hw.AudioSampleRate)
		ctrl := emu.NewController(core, cfg.Emulation, audio)

		frontend, err := hw.NewFrontend(cfg, ctrl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create window: %v\n", err)
			exitcode = 1
			return
		}
		defer frontend.Close()

		if args.Port != 0 {
			server, err := rpc.NewServer(args.Port, ctrl)
			if err != nil {
				fmt.Fprintf(os.Stderr, "RPC error: %v\n", err)
				exitcode = 1
				return
			}
			defer server.Close()
		}

		if err := ctrl.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to start emulation: %v\n", err)
			exitcode = 1
			return
		}

		frontend.Run()

		if err := ctrl.Stop(); err != nil {
			log.ModSession.ErrorZ("emulation didn't stop cleanly").Error("err", err).End()
			exitcode = 1
		}

		if args.Save {
			if err := saveConfig(args, frontend.Config()); err != nil {
				log.ModEmu.ErrorZ("failed to save configuration").Error("err", err).End()
				exitcode = 1
			}
		}
	})
	return exitcode
}

func saveConfig(args Run, cfg emu.Config) error {
	if args.Config == "" {
		return emu.SaveConfig(cfg)
	}
	return emu.WriteConfig(args.Config, cfg)
}
