// Command audioengine runs a JSON-described processing chain through the
// engine.
//
// Usage:
//
//	audioengine render [flags]   render to a WAV file
//	audioengine play [flags]     play through the default output device
//	audioengine params [flags]   list the chain's parameters
//
// Without -chain a 440 Hz sine at half gain is used.
//
// Examples:
//
//	audioengine render -chain chain.json -duration 2 -o out.wav
//	audioengine render -chain chain.json -input voice.mp3 -automation fade.json -o out.wav
//	audioengine play -chain chain.json -duration 5
//	audioengine params -chain chain.json
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, errUsage) {
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errUsage
	}

	switch args[0] {
	case "render":
		return runRender(ctx, args[1:], stdout, stderr)
	case "play":
		return runPlay(ctx, args[1:], stderr)
	case "params":
		return runParams(args[1:], stdout, stderr)
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)

		return errUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: audioengine <command> [flags]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  render   render the chain to a WAV file\n")
	fmt.Fprintf(w, "  play     play the chain on the default output device\n")
	fmt.Fprintf(w, "  params   list the chain's parameters\n\n")
	fmt.Fprintf(w, "Run 'audioengine <command> -h' for the command's flags.\n")
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
