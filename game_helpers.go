package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/torus-gol/model"
	"github.com/sheikhrachel/torus-gol/session"
	"github.com/sheikhrachel/torus-gol/store"
	"github.com/sheikhrachel/torus-gol/utils"
)

// defaultPattern is a glider near the top-left corner
var defaultPattern = []string{
	"..X.",
	"...X",
	".XXX",
}

// openStore builds the save/load backend selected by the config
func openStore(config utils.Config) (session.Store, func(), error) {
	switch config.Backend {
	case utils.BackendSQLite:
		st, err := store.OpenSQLite(config.SQLitePath, config.SnapshotName)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	default:
		return store.NewFileStore(config.SaveFile), func() {}, nil
	}
}

// initialBoard loads the starting pattern, or the default glider
func initialBoard(config utils.Config) (*model.Board, error) {
	var board *model.Board
	if config.PatternFile != "" {
		data, err := os.ReadFile(config.PatternFile)
		if err != nil {
			return nil, errors.Wrapf(err, "[initialBoard] failed to read pattern file: %+v", config.PatternFile)
		}
		board = model.ParsePattern(string(data))
	} else {
		board = model.FromPattern(defaultPattern)
	}

	// Add random life using configurable density
	if config.RandomDensity > 0 {
		board.Randomize(rand.New(rand.NewSource(time.Now().UnixNano())), config.RandomDensity)
	}
	return board, nil
}

// newSession wires the config into a paused session
func newSession(config utils.Config, board *model.Board, st session.Store) *session.Session {
	var pool *model.MutationPool
	if config.UseMemoryPool {
		pool = model.NewMutationPool()
	}
	return session.New(board, st,
		session.WithSpeed(config.InitialSpeed),
		session.WithParallel(config.UseParallel),
		session.WithMutationPool(pool),
		session.WithStrictLoad(config.StrictLoad),
	)
}

// frameFor collects what the renderer shows for the current session state
func frameFor(sess *session.Session, stats *utils.Stats, message string) model.Frame {
	frame := model.Frame{
		Board:      sess.Board().String(),
		Cursor:     sess.Cursor(),
		ShowCursor: !sess.IsRunning(),
		Status:     statusLines(sess, stats, message),
	}
	if sess.IsDisplayingHelp() {
		frame.Help = session.HelpLines()
	}
	return frame
}

// statusLines shows the current game status
func statusLines(sess *session.Session, stats *utils.Stats, message string) []string {
	status := "Paused"
	if sess.IsRunning() {
		status = "Running"
	}
	cursor := sess.Cursor()

	lines := []string{
		fmt.Sprintf("Gen: %d | Living: %d | Speed: x%g | Status: %s | Cursor: %d,%d | ? for help",
			sess.Generation(), sess.Board().CountLivingCells(), sess.Speed(), status, cursor.X, cursor.Y),
		fmt.Sprintf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs",
			stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds()),
	}
	if message != "" {
		lines = append(lines, message)
	}
	return lines
}

// actionMessage confirms a successful save or load
func actionMessage(action session.Action, config utils.Config) string {
	target := config.SaveFile
	if config.Backend == utils.BackendSQLite {
		target = fmt.Sprintf("%s#%s", config.SQLitePath, config.SnapshotName)
	}

	switch action.Kind {
	case session.ActionSaveToFile:
		return "Saved to " + target
	case session.ActionLoadFromFile:
		return "Loaded from " + target
	default:
		return ""
	}
}
