package main

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/sheikhrachel/torus-gol/model"
	"github.com/sheikhrachel/torus-gol/session"
	"github.com/sheikhrachel/torus-gol/utils"
)

const (
	configFile = "config.json"

	// raw mode delivers Ctrl+C as a byte instead of SIGINT
	keyCtrlC = 0x03
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("gol: ")

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(configFile)
	if err != nil {
		log.Printf("Using default configuration (%v)", err)
	}
	if err = play(config); err != nil {
		log.Fatal(err)
	}
}

// play opens the store, runs one session and closes the store before returning
func play(config utils.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	st, closeStore, err := openStore(config)
	if err != nil {
		return err
	}
	defer closeStore()

	board, err := initialBoard(config)
	if err != nil {
		return err
	}
	sess := newSession(config, board, st)

	// Handle termination gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := run(ctx, sess, config, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	log.Printf("Final stats: %d generations in %.1f seconds, %.1f avg population",
		stats.TotalGenerations, stats.Runtime().Seconds(), stats.AveragePopulation)
	return nil
}

// run drives the render-input-simulate loop on a raw terminal until Quit
func run(ctx context.Context, sess *session.Session, config utils.Config, in *os.File, out io.Writer) (*utils.Stats, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("[run] stdin is not a terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, errors.Wrap(err, "[run] failed to enter raw mode")
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	var (
		renderer = &model.TerminalRenderer{}
		stats    = utils.NewStats()
		keys     = readKeys(in)
		message  string
	)

	for {
		if err = renderer.Clear(out); err == nil {
			err = renderer.Display(out, frameFor(sess, stats, message))
		}
		if err != nil {
			return stats, errors.Wrap(err, "[run] failed to render")
		}

		action := session.Simple(session.ActionNone)
		select {
		case <-ctx.Done():
			return stats, nil
		case r, ok := <-keys:
			if !ok || r == keyCtrlC {
				return stats, nil
			}
			action = session.KeyToAction(r)
		default:
		}

		if action.IsQuit() {
			return stats, nil
		}
		if err = sess.HandleAction(ctx, action); err != nil {
			message = "Error: " + err.Error()
		} else if msg := actionMessage(action, config); msg != "" {
			message = msg
		}

		// run simulation step
		if sess.IsRunning() {
			frameStart := time.Now()
			sess.Step()
			stats.Update(sess.Generation(), sess.Board().CountLivingCells(), time.Since(frameStart)+sess.TickDelay(config.TickDelay))

			// slow it down
			if !sleepCtx(ctx, sess.TickDelay(config.TickDelay)) {
				return stats, nil
			}
		}

		if !sleepCtx(ctx, config.FramePause) {
			return stats, nil
		}
	}
}

// readKeys forwards runes from r until it fails
func readKeys(r io.Reader) <-chan rune {
	keys := make(chan rune, 16)
	go func() {
		defer close(keys)
		br := bufio.NewReader(r)
		for {
			c, _, err := br.ReadRune()
			if err != nil {
				return
			}
			keys <- c
		}
	}()
	return keys
}

// sleepCtx waits for d and reports false if ctx ended first
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
