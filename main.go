package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"dsfront/emu"
)

func main() {
	cli := parseArgs(os.Args[1:])

	switch cli.mode {
	case versionMode:
		fmt.Println("dsfront", version())
	case layoutMode:
		cfg := emu.LoadConfigOrDefault()
		checkf(layoutMain(cli.Layout, cfg.Layout, os.Stdout), "failed to compute layout")
	case runMode:
		os.Exit(runMain(cli.Run))
	}
}

func version() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "(devel)"
	}
	return bi.Main.Version
}
