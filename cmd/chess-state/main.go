// chess-state plays, checks and stores chess games built on the rules engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/chess-state-go/internal/config"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-state version %s\n", programVersion)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Set up logging and output files
	closers := []io.Closer{setupLogFile(cfg), setupOutputFile(cfg)}
	defer func() {
		for _, c := range closers {
			if c != nil {
				c.Close() //nolint:errcheck,gosec // G104: cleanup on exit
			}
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, args[0], args[1:]); err != nil {
		fmt.Fprintf(cfg.LogFile, "Error: %v\n", err)
		stop()
		exitWith(closers, 1)
	}
}

// exitWith closes the open files before exiting, since deferred calls do not
// run on os.Exit.
func exitWith(closers []io.Closer, code int) {
	for _, c := range closers {
		if c != nil {
			c.Close() //nolint:errcheck,gosec // G104: cleanup on exit
		}
	}
	os.Exit(code)
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) io.Closer {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.LogFile = file
		return file
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.LogFile = file
		return file
	}
	return nil
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) io.Closer {
	if *outputFile == "" {
		return nil
	}

	var file *os.File
	var err error

	if *appendOutput {
		file, err = os.OpenFile(*outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
	} else {
		file, err = os.Create(*outputFile)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.SetOutput(file)
	return file
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-state [options] command [arguments]\n\n")
	fmt.Fprintf(os.Stderr, "Plays, checks and stores chess games.\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  perft              Count move paths to -depth (with -divide per root move)\n")
	fmt.Fprintf(os.Stderr, "  play               Play -games random self-play games\n")
	fmt.Fprintf(os.Stderr, "  interactive        Play a game from moves read on stdin (go, undo, reset, board, moves, fen, quit)\n")
	fmt.Fprintf(os.Stderr, "  replay MOVE...     Replay moves such as e2e4 and report the position\n")
	fmt.Fprintf(os.Stderr, "  moves              List the legal moves of -fen\n")
	fmt.Fprintf(os.Stderr, "  list               Write the stored games passing the filter options\n")
	fmt.Fprintf(os.Stderr, "  show ID...         Write the stored games with these IDs\n")
	fmt.Fprintf(os.Stderr, "  validate [ID...]   Replay stored games and check their records\n")
	fmt.Fprintf(os.Stderr, "  delete ID...       Remove stored games\n")
	fmt.Fprintf(os.Stderr, "  stats              Show aggregate results of stored games\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
