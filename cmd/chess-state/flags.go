// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chess-state-go/internal/config"
)

var (
	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	lineLength   = flag.Int("w", 80, "Maximum line length (0 = no wrapping)")
	jsonOutput   = flag.Bool("J", false, "Output in JSON format")
	showBoard    = flag.Bool("board", false, "Print a diagram of the final position")
	showFEN      = flag.Bool("fenout", false, "Print the final position as FEN")
	noNumbers    = flag.Bool("nonumbers", false, "Don't output move numbers")
	noResults    = flag.Bool("noresults", false, "Don't output results")

	// Position
	startFEN = flag.String("fen", "", "Starting position (default: standard initial position)")

	// Self-play
	numGames        = flag.Int("games", 1, "Number of self-play games")
	maxPlies        = flag.Int("maxply", config.DefaultMaxPlies, "Stop self-play games after N plies (0 = no limit)")
	workers         = flag.Int("workers", 1, "Number of worker goroutines")
	seed            = flag.Uint64("seed", 1, "Seed for self-play move choice")
	repetitionLimit = flag.Int("repetition", config.DefaultRepetitionLimit, "Draw when a position occurs N times (0 = never)")

	// Perft
	perftDepth  = flag.Int("depth", 3, "Perft depth")
	perftDivide = flag.Bool("divide", false, "Print perft counts per root move")

	// Storage
	dbPath   = flag.String("db", "", "Game database directory")
	memoryDB = flag.Bool("memdb", false, "Keep the game database in memory")

	// Duplicate detection
	suppressDuplicates = flag.Bool("D", false, "Suppress duplicate self-play games")
	positionOnly       = flag.Bool("positiononly", false, "Treat games reaching the same final position as duplicates")
	duplicateCapacity  = flag.Int("duplicate-capacity", 0, "Maximum duplicate hash table entries (0 = unlimited)")

	// Filtering stored games
	resultFilter       = flag.String("result", "", "List only games with this result (1-0, 0-1, 1/2-1/2, *)")
	reasonFilter       = flag.String("reason", "", "List only games ended this way (e.g. checkmate)")
	minLength          = flag.Int("minlen", 0, "List only games of at least N plies")
	maxLength          = flag.Int("maxlen", 0, "List only games of at most N plies (0 = no limit)")
	materialMatch      = flag.String("z", "", "Material balance to match (e.g., 'QR:qrr')")
	materialMatchExact = flag.String("y", "", "Exact material balance to match")
	fenPattern         = flag.String("pattern", "", "Piece placement pattern to match (wildcards ? ! * A a _)")
	invertPattern      = flag.Bool("invert", false, "Also match the colour-reversed pattern")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	verbose   = flag.Bool("v", false, "Running commentary on stderr")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no summary)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applyOutputFlags(cfg)
	applyPlayFlags(cfg)
	applyPerftFlags(cfg)
	applyStoreFlags(cfg)
	applyDuplicateFlags(cfg)
	applyFilterFlags(cfg)

	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
}

// applyOutputFlags configures output settings.
func applyOutputFlags(cfg *config.Config) {
	cfg.Output.MaxLineLength = uint(max(*lineLength, 0))
	cfg.Output.JSONFormat = *jsonOutput
	cfg.Output.ShowBoard = *showBoard
	cfg.Output.OutputFEN = *showFEN
	cfg.Output.KeepMoveNumbers = !*noNumbers
	cfg.Output.KeepResults = !*noResults
}

// applyPlayFlags configures self-play settings.
func applyPlayFlags(cfg *config.Config) {
	cfg.Play.Games = *numGames
	cfg.Play.MaxPlies = *maxPlies
	cfg.Play.Workers = *workers
	cfg.Play.Seed = *seed
	cfg.Play.RepetitionLimit = *repetitionLimit
	cfg.Play.FEN = *startFEN
}

// applyPerftFlags configures perft settings.
func applyPerftFlags(cfg *config.Config) {
	cfg.Perft.Depth = *perftDepth
	cfg.Perft.Divide = *perftDivide
	cfg.Perft.FEN = *startFEN
}

// applyStoreFlags configures the game database.
func applyStoreFlags(cfg *config.Config) {
	cfg.Store.Path = *dbPath
	cfg.Store.InMemory = *memoryDB
}

// applyDuplicateFlags configures duplicate detection settings.
func applyDuplicateFlags(cfg *config.Config) {
	cfg.Duplicate.Suppress = *suppressDuplicates
	cfg.Duplicate.ExactMatch = !*positionOnly
	cfg.Duplicate.MaxCapacity = *duplicateCapacity
}

// applyFilterFlags configures which stored games are listed.
func applyFilterFlags(cfg *config.Config) {
	cfg.Filter.Result = *resultFilter
	cfg.Filter.Reason = *reasonFilter
	cfg.Filter.MinPlies = *minLength
	cfg.Filter.MaxPlies = *maxLength
	cfg.Filter.FENPattern = *fenPattern
	cfg.Filter.InvertPattern = *invertPattern

	if *materialMatchExact != "" {
		cfg.Filter.Material = *materialMatchExact
		cfg.Filter.ExactMaterial = true
	} else if *materialMatch != "" {
		cfg.Filter.Material = *materialMatch
	}
}
