package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/lgbarn/chess-state-go/internal/chess"
	"github.com/lgbarn/chess-state-go/internal/config"
	"github.com/lgbarn/chess-state-go/internal/errors"
	"github.com/lgbarn/chess-state-go/internal/output"
	"github.com/lgbarn/chess-state-go/internal/player"
	"github.com/lgbarn/chess-state-go/internal/session"
	"github.com/lgbarn/chess-state-go/internal/store"
)

// input is where the interactive command reads its lines from.
var input io.Reader = os.Stdin

// runInteractive drives one game from lines read from input. A line is a
// move such as e2e4 or one of: go (the computer moves), undo, reset, board,
// moves, fen, quit. Blank lines and lines starting with # are skipped.
func runInteractive(ctx context.Context, cfg *config.Config, st *store.Store) error {
	opts := []session.ManagerOption{session.WithRepetitionLimit(cfg.Play.RepetitionLimit)}
	if st != nil {
		opts = append(opts, session.WithRecorder(st))
	}
	if cfg.Duplicate.Suppress {
		opts = append(opts, session.WithDuplicateSuppression(cfg.Duplicate.ExactMatch, cfg.Duplicate.MaxCapacity))
	}
	manager := session.NewManager(opts...)

	var game *session.Game
	if cfg.Play.FEN == "" {
		game = manager.NewGame()
	} else {
		var err error
		if game, err = manager.NewGameFromFEN(cfg.Play.FEN); err != nil {
			return err
		}
	}
	computer := player.NewRandom(cfg.Play.Seed)

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		quit, err := interactiveLine(cfg, game, computer, line)
		if err != nil {
			return err
		}
		if quit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading moves")
	}

	if cfg.Verbosity > 0 {
		v := game.View()
		result := v.Result
		if v.Over() {
			result += " (" + v.Reason + ")"
		}
		fmt.Fprintf(cfg.LogFile, "%d ply(s) played, result %s.\n", v.Plies, result)
	}
	return ctx.Err()
}

// interactiveLine carries out one input line and reports whether the user
// asked to quit. Rejected moves are reported and the game goes on; other
// failures end the session.
func interactiveLine(cfg *config.Config, game *session.Game, computer player.Chooser, line string) (bool, error) {
	w := cfg.OutputFile
	switch line {
	case "quit":
		return true, nil
	case "board":
		output.WriteBoard(w, game.View().Board)
		return false, nil
	case "fen":
		fmt.Fprintln(w, game.View().FEN)
		return false, nil
	case "moves":
		legal := game.View().Legal
		sort.Strings(legal)
		fmt.Fprintln(w, strings.Join(legal, " "))
		return false, nil
	case "undo":
		if !game.Undo() {
			fmt.Fprintln(w, "Nothing to undo.")
		}
		return false, nil
	case "reset":
		return false, game.Reset()
	}

	var (
		move chess.Move
		err  error
	)
	if line == "go" {
		move, err = game.PlayAI(computer, nil)
	} else {
		move, err = game.SubmitText(line)
	}
	switch {
	case rejected(err):
		fmt.Fprintf(w, "%s rejected: %v\n", line, rejectReason(err))
		return false, nil
	case err != nil:
		return false, err
	}

	v := game.View()
	fmt.Fprintln(w, move)
	switch {
	case v.Over():
		fmt.Fprintf(w, "Result: %s (%s)\n", v.Result, v.Reason)
	case v.InCheck:
		fmt.Fprintln(w, "Check.")
	}
	return false, nil
}

func rejected(err error) bool {
	return errors.Is(err, errors.ErrIllegalMove) ||
		errors.Is(err, errors.ErrGameOver) ||
		errors.Is(err, errors.ErrInvalidSquare)
}

// rejectReason drops the game ID and ply from a rejection; the user knows
// which move they typed.
func rejectReason(err error) error {
	var gameErr *errors.GameError
	if errors.As(err, &gameErr) && gameErr.Err != nil {
		return gameErr.Err
	}
	return err
}
