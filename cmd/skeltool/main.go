// skeltool is a CLI utility for inspecting rigs and rendering poses offline.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/midgard-skel/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	if err := logger.Init("warn", ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(os.Stdout, args)
	case "pose":
		err = cmdPose(os.Stdout, args)
	case "skin":
		err = cmdSkin(os.Stdout, args)
	case "snapshot", "snap":
		err = cmdSnapshot(os.Stdout, args)
	case "export":
		err = cmdExport(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stdout)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `skeltool - skeletal animation rig utility

Usage:
  skeltool <command> [options] [rig.yaml]

Without a rig file the built-in mannequin is used.

Commands:
  info                       Show bones, excluded helpers and clips
  pose  [-clip] [-t] [-mode] Print model-space bone positions
  skin  [-clip] [-t] [-mode] Print skinning matrices
  snapshot -o <file>         Render the pose to .png, .bmp or .webp
  export -o <file>           Rewrite the rig as normalized YAML

Common options:
  -config <file>  Config file for defaults (exclude prefix, colors, size)
  -clip <name>    Clip to sample (default: first clip)
  -t <time>       Normalized clip time in [0, 1)
  -mode <mode>    bind, inverse-bind, palette, interpolated, crossfade

Examples:
  skeltool info
  skeltool pose -clip walk -t 0.5
  skeltool snapshot -o walk.webp -clip walk -t 0.25 -ss 4
  skeltool export -o mannequin.yaml`)
}
