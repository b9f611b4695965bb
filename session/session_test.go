package session

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/torus-gol/model"
)

// memoryStore is an in-memory Store that can be told to fail
type memoryStore struct {
	data    []byte
	saved   bool
	failErr error
}

func (m *memoryStore) Save(_ context.Context, data []byte) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.data = append([]byte(nil), data...)
	m.saved = true
	return nil
}

func (m *memoryStore) Load(_ context.Context) ([]byte, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	if !m.saved {
		return nil, errors.New("nothing saved")
	}
	return m.data, nil
}

func handle(t *testing.T, s *Session, actions ...Action) {
	t.Helper()
	for _, a := range actions {
		if err := s.HandleAction(context.Background(), a); err != nil {
			t.Fatalf("HandleAction(%v) error = %v", a, err)
		}
	}
}

func TestSpeed(t *testing.T) {
	s := New(nil, &memoryStore{})
	handle(t, s, Simple(ActionSpeedUp), Simple(ActionSpeedUp))
	if s.Speed() != 4 {
		t.Fatalf("Speed() = %v, want 4", s.Speed())
	}
	handle(t, s, Simple(ActionSpeedDown), Simple(ActionSpeedDown), Simple(ActionSpeedDown))
	if s.Speed() != 0.5 {
		t.Fatalf("Speed() = %v, want 0.5", s.Speed())
	}
	if got := s.TickDelay(500 * time.Millisecond); got != time.Second {
		t.Fatalf("TickDelay() = %v, want 1s", got)
	}
}

func TestRunningAndHelp(t *testing.T) {
	s := New(nil, &memoryStore{})
	if s.IsRunning() {
		t.Fatal("new session is running")
	}

	handle(t, s, Simple(ActionToggleRunning))
	if !s.IsRunning() {
		t.Fatal("ToggleRunning did not start the session")
	}

	handle(t, s, Simple(ActionToggleHelp))
	if !s.IsDisplayingHelp() || s.IsRunning() {
		t.Fatalf("help = %v running = %v, want help shown and paused", s.IsDisplayingHelp(), s.IsRunning())
	}

	handle(t, s, Simple(ActionToggleRunning), Simple(ActionToggleHelp))
	if s.IsDisplayingHelp() || !s.IsRunning() {
		t.Fatalf("closing help changed running: help = %v running = %v", s.IsDisplayingHelp(), s.IsRunning())
	}
}

func TestCursorWraps(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
		want    model.Point
	}{
		{"up from origin", []Action{Cursor(Up)}, model.Point{X: model.Size - 1, Y: 0}},
		{"left from origin", []Action{Cursor(Left)}, model.Point{X: 0, Y: model.Size - 1}},
		{"down and right", []Action{Cursor(Down), Cursor(Right), Cursor(Right)}, model.Point{X: 1, Y: 2}},
		{"round trip", []Action{Cursor(Up), Cursor(Left), Cursor(Down), Cursor(Right)}, model.Point{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil, &memoryStore{})
			handle(t, s, tt.actions...)
			if got := s.Cursor(); got != tt.want {
				t.Fatalf("Cursor() = %+v, want %+v", got, tt.want)
			}
		})
	}

	t.Run("full lap", func(t *testing.T) {
		s := New(nil, &memoryStore{})
		for range model.Size {
			handle(t, s, Cursor(Right))
		}
		if got := s.Cursor(); got != (model.Point{}) {
			t.Fatalf("Cursor() after a lap = %+v", got)
		}
	})
}

func TestToggleFieldActive(t *testing.T) {
	s := New(nil, &memoryStore{})
	handle(t, s, Cursor(Down), Cursor(Right), Simple(ActionToggleFieldActive))
	if !s.Board().Get(1, 1) {
		t.Fatal("cell under cursor not toggled on")
	}
	handle(t, s, Simple(ActionToggleFieldActive))
	if s.Board().Get(1, 1) {
		t.Fatal("cell under cursor not toggled off")
	}
}

func TestNoneAndQuitChangeNothing(t *testing.T) {
	s := New(nil, &memoryStore{})
	before := s.Board().String()
	handle(t, s, Simple(ActionNone), Simple(ActionQuit))
	if s.Board().String() != before || s.Speed() != 1 || s.IsRunning() || s.Cursor() != (model.Point{}) {
		t.Fatal("None or Quit changed the session")
	}
	if !Simple(ActionQuit).IsQuit() || Simple(ActionNone).IsQuit() {
		t.Fatal("IsQuit misreports")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	board := model.NewBoard()
	board.AddGlider(10, 20)
	board.Set(model.Size-1, model.Size-1, true)
	want := board.String()

	st := &memoryStore{}
	s := New(board, st)
	handle(t, s, Simple(ActionSaveToFile))
	if string(st.data) != want {
		t.Fatal("saved data differs from the serialized board")
	}

	handle(t, s, Cursor(Up), Cursor(Left), Simple(ActionToggleFieldActive), Simple(ActionToggleRunning))
	handle(t, s, Simple(ActionLoadFromFile))

	if s.IsRunning() {
		t.Fatal("load did not pause the session")
	}
	if got := s.Board().String(); got != want {
		t.Fatal("loaded board differs from the saved one")
	}
}

func TestLoadIsPermissive(t *testing.T) {
	st := &memoryStore{data: []byte("..X\nX"), saved: true}
	s := New(nil, st)
	handle(t, s, Simple(ActionLoadFromFile))

	b := s.Board()
	if !b.Get(0, 2) || !b.Get(1, 0) || b.CountLivingCells() != 2 {
		t.Fatalf("permissive load produced %d living cells", b.CountLivingCells())
	}
}

func TestStrictLoadRejectsRaggedBoard(t *testing.T) {
	st := &memoryStore{data: []byte("..X\nX"), saved: true}
	board := model.NewBoard()
	board.Set(3, 3, true)
	s := New(board, st, WithStrictLoad(true))

	err := s.HandleAction(context.Background(), Simple(ActionLoadFromFile))
	if !errors.Is(err, model.ErrMalformedPattern) {
		t.Fatalf("HandleAction() error = %v, want ErrMalformedPattern", err)
	}
	if errors.Is(err, ErrIOFailure) {
		t.Fatal("malformed board reported as an I/O failure")
	}
	if !s.Board().Get(3, 3) {
		t.Fatal("failed strict load replaced the board")
	}

	st.data = []byte(model.NewBoard().String())
	handle(t, s, Simple(ActionLoadFromFile))
	if s.Board().CountLivingCells() != 0 {
		t.Fatal("strict load of a full board did not replace the board")
	}
}

func TestIOFailures(t *testing.T) {
	cause := errors.New("disk on fire")
	st := &memoryStore{failErr: cause}
	board := model.NewBoard()
	board.Set(2, 2, true)
	s := New(board, st)
	handle(t, s, Simple(ActionToggleRunning))

	for _, a := range []Action{Simple(ActionSaveToFile), Simple(ActionLoadFromFile)} {
		err := s.HandleAction(context.Background(), a)
		if !errors.Is(err, ErrIOFailure) {
			t.Fatalf("%v error = %v, want ErrIOFailure", a, err)
		}
		if !errors.Is(err, cause) {
			t.Fatalf("%v error = %v, lost the cause", a, err)
		}
		var ioErr *IOFailure
		if !errors.As(err, &ioErr) || !strings.Contains(ioErr.Error(), "i/o failed") {
			t.Fatalf("%v error is not an *IOFailure: %v", a, err)
		}
	}

	if s.IsRunning() {
		t.Fatal("failed load did not pause the session")
	}
	if !s.Board().Get(2, 2) {
		t.Fatal("failed load replaced the board")
	}
}

func TestStep(t *testing.T) {
	blinker := func() *model.Board {
		b := model.NewBoard()
		b.ApplyMutations(model.On(5, 4), model.On(5, 5), model.On(5, 6))
		return b
	}

	variants := map[string][]Option{
		"sequential": nil,
		"parallel":   {WithParallel(true)},
		"pooled":     {WithParallel(true), WithMutationPool(model.NewMutationPool())},
	}
	for name, opts := range variants {
		t.Run(name, func(t *testing.T) {
			s := New(blinker(), &memoryStore{}, opts...)
			s.Step()
			b := s.Board()
			if !b.Get(4, 5) || !b.Get(5, 5) || !b.Get(6, 5) || b.CountLivingCells() != 3 {
				t.Fatalf("blinker did not turn vertical:\n%s", b)
			}
			s.Step()
			if !s.Board().Equal(blinker()) {
				t.Fatal("blinker did not return")
			}
			if s.Generation() != 2 {
				t.Fatalf("Generation() = %d, want 2", s.Generation())
			}
		})
	}
}

func TestKeyToAction(t *testing.T) {
	tests := map[rune]Action{
		'>': Simple(ActionSpeedUp),
		'<': Simple(ActionSpeedDown),
		' ': Simple(ActionToggleRunning),
		'?': Simple(ActionToggleHelp),
		'x': Simple(ActionToggleFieldActive),
		'k': Cursor(Up),
		'j': Cursor(Down),
		'h': Cursor(Left),
		'l': Cursor(Right),
		's': Simple(ActionSaveToFile),
		'o': Simple(ActionLoadFromFile),
		'q': Simple(ActionQuit),
		'z': Simple(ActionNone),
		'X': Simple(ActionNone),
	}
	for key, want := range tests {
		if got := KeyToAction(key); got != want {
			t.Errorf("KeyToAction(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestTickDelaySaturates(t *testing.T) {
	const base = 500 * time.Millisecond

	s := New(nil, &memoryStore{})
	for range 40 {
		handle(t, s, Simple(ActionSpeedDown))
	}
	if got := s.TickDelay(base); got <= 0 {
		t.Fatalf("TickDelay() after 40 halvings = %v, want a positive delay", got)
	}

	for range 1100 {
		handle(t, s, Simple(ActionSpeedDown))
	}
	if s.Speed() != 0 {
		t.Fatalf("Speed() = %v, want it to underflow to 0", s.Speed())
	}
	if got := s.TickDelay(base); got != time.Duration(math.MaxInt64) {
		t.Fatalf("TickDelay() at speed 0 = %v, want the maximum duration", got)
	}

	fast := New(nil, &memoryStore{}, WithSpeed(math.Inf(1)))
	if got := fast.TickDelay(base); got != 0 {
		t.Fatalf("TickDelay() at infinite speed = %v, want 0", got)
	}
}

func TestMissingStoreIsIOFailure(t *testing.T) {
	s := New(nil, nil)
	for _, a := range []Action{Simple(ActionSaveToFile), Simple(ActionLoadFromFile)} {
		err := s.HandleAction(context.Background(), a)
		if !errors.Is(err, ErrIOFailure) || !errors.Is(err, ErrNoStore) {
			t.Fatalf("%v without a store error = %v, want ErrIOFailure caused by ErrNoStore", a, err)
		}
	}
}
