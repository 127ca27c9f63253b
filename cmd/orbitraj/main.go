// Command orbitraj converts, inspects, colors and plays volumes, one per frame of a
// trajectory, without a graphical host.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
)

const version = "0.3.0"

func main() {
	//.env files can set Multiwfnpath and ORBITRAJ_CONFIG for a project.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("orbitraj: can't load .env: %v", err)
	}
	flag.Usage = func() { printUsage(os.Stderr) }
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage(os.Stderr)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, flag.Arg(0), flag.Args()[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "orbitraj %s: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}
}

var errUsage = errors.New("wrong usage")

func run(ctx context.Context, command string, args []string, out io.Writer) error {
	switch command {
	case "convert":
		return handleConvert(ctx, args, out)
	case "colormap":
		return handleColorMap(args, out)
	case "info":
		return handleInfo(args, out)
	case "play":
		return handlePlay(ctx, args, out)
	case "com2xyz":
		return handleCom2XYZ(args, out)
	case "version":
		fmt.Fprintf(out, "orbitraj version %s\n", version)
		return nil
	case "help":
		printUsage(out)
		return nil
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("%w: unknown command %s", errUsage, command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `orbitraj - volumes for each frame of a trajectory

Usage: orbitraj <command> [options] [files]

Commands:
  convert    Convert wavefunction files into cube files with Multiwfn
  colormap   Build one color map for a set of cube files
  info       Print the header, statistics and histogram of a cube file
  play       Play a trajectory, showing one cube file per frame
  com2xyz    Convert Gaussian input files into XYZ files
  version    Show the orbitraj version
  help       Show this help message

Common Flags:
  -config <file>   TOML configuration file (default: $ORBITRAJ_CONFIG or orbitraj.toml)

A .env file in the current directory is loaded first. Set Multiwfnpath there
to use a Multiwfn that is not in the $PATH.

Examples:
  orbitraj convert frame*.wfn
  orbitraj colormap -palette red-white-blue -colorbar bar.png frame*.cub
  orbitraj info -json frame1.cub
  orbitraj play -traj traj.xyz frame*.wfn`)
}

// configFlag adds the -config flag to fs.
func configFlag(fs *flag.FlagSet) *string {
	def := os.Getenv("ORBITRAJ_CONFIG")
	if def == "" {
		def = "orbitraj.toml"
	}
	return fs.String("config", def, "TOML configuration file")
}
