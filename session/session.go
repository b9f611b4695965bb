package session

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/torus-gol/model"
)

// Store persists the serialized board. Save creates or overwrites the
// destination; Load returns its full contents.
type Store interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
}

// ErrNoStore is the cause of save and load failures on a session built without a Store
var ErrNoStore = errors.New("no store configured")

// Session is the interactive state around one board
type Session struct {
	board *model.Board
	store Store

	speed            float64
	isRunning        bool
	isDisplayingHelp bool
	cursor           model.Point
	generation       int

	parallel   bool
	strictLoad bool
	pool       *model.MutationPool
}

// Option configures a Session
type Option func(*Session)

// WithSpeed sets the initial speed multiplier
func WithSpeed(speed float64) Option {
	return func(s *Session) { s.speed = speed }
}

// WithParallel evaluates generations across CPUs
func WithParallel(parallel bool) Option {
	return func(s *Session) { s.parallel = parallel }
}

// WithMutationPool reuses mutation buffers between steps; nil disables pooling
func WithMutationPool(pool *model.MutationPool) Option {
	return func(s *Session) { s.pool = pool }
}

// WithStrictLoad rejects saved boards that are not exactly Size x Size
func WithStrictLoad(strict bool) Option {
	return func(s *Session) { s.strictLoad = strict }
}

// New creates a paused session over board with the cursor at (0, 0). A nil
// board starts empty; with a nil store every save and load is an IOFailure.
func New(board *model.Board, store Store, opts ...Option) *Session {
	if board == nil {
		board = model.NewBoard()
	}
	s := &Session{
		board: board,
		store: store,
		speed: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Board() *model.Board {
	return s.board
}

func (s *Session) Speed() float64 {
	return s.speed
}

func (s *Session) IsRunning() bool {
	return s.isRunning
}

func (s *Session) IsDisplayingHelp() bool {
	return s.isDisplayingHelp
}

func (s *Session) Cursor() model.Point {
	return s.cursor
}

func (s *Session) Generation() int {
	return s.generation
}

// TickDelay scales base by the speed multiplier. Delays too long for a
// time.Duration, including those from a speed that has halved down to zero,
// saturate at the maximum duration.
func (s *Session) TickDelay(base time.Duration) time.Duration {
	d := float64(base) / s.speed
	if math.IsNaN(d) || d >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	if d <= 0 {
		return 0
	}
	return time.Duration(d)
}

// HandleAction applies one action. Save and load failures are returned as
// *IOFailure; every other action always succeeds. Quit changes nothing, the
// caller is expected to stop.
func (s *Session) HandleAction(ctx context.Context, a Action) error {
	switch a.Kind {
	case ActionSpeedUp:
		s.speed *= 2
	case ActionSpeedDown:
		s.speed /= 2
	case ActionToggleRunning:
		s.isRunning = !s.isRunning
	case ActionToggleHelp:
		s.isDisplayingHelp = !s.isDisplayingHelp
		if s.isDisplayingHelp {
			s.isRunning = false
		}
	case ActionCursor:
		dx, dy := a.Direction.delta()
		s.cursor = model.Point{
			X: model.Wrap(s.cursor.X, dx),
			Y: model.Wrap(s.cursor.Y, dy),
		}
	case ActionToggleFieldActive:
		s.board.ApplyMutations(model.Toggle(s.cursor.X, s.cursor.Y))
	case ActionSaveToFile:
		return s.save(ctx)
	case ActionLoadFromFile:
		s.isRunning = false
		return s.load(ctx)
	}
	return nil
}

// Step advances the board by one generation
func (s *Session) Step() {
	if s.pool == nil {
		s.board.ApplyMutations(s.board.NextGenerationInto(nil, s.parallel)...)
	} else {
		buf := s.pool.Get()
		*buf = s.board.NextGenerationInto(*buf, s.parallel)
		s.board.ApplyMutations(*buf...)
		s.pool.Put(buf)
	}
	s.generation++
}

func (s *Session) save(ctx context.Context) error {
	if s.store == nil {
		return ioFailure("save", ErrNoStore)
	}
	if err := s.store.Save(ctx, []byte(s.board.String())); err != nil {
		return ioFailure("save", err)
	}
	return nil
}

func (s *Session) load(ctx context.Context) error {
	if s.store == nil {
		return ioFailure("load", ErrNoStore)
	}
	data, err := s.store.Load(ctx)
	if err != nil {
		return ioFailure("load", err)
	}

	var board *model.Board
	if s.strictLoad {
		if board, err = model.ParseStrict(string(data)); err != nil {
			return err
		}
	} else {
		board = model.ParsePattern(string(data))
	}
	s.board = board
	s.generation = 0
	return nil
}
