package model

import (
	"math/rand"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/torus-gol/rules"
)

const (
	// Size is the edge length of the square board
	Size = 64

	aliveChar = 'X'
	deadChar  = '.'
)

// ErrMalformedPattern is returned by ParseStrict for text that is not a full board
var ErrMalformedPattern = errors.New("malformed board pattern")

// neighborOffsets lists the eight (dx, dy) steps around a cell
var neighborOffsets = [8][2]int{
	{1, -1}, {1, 0}, {1, 1},
	{0, -1}, {0, 1},
	{-1, -1}, {-1, 0}, {-1, 1},
}

// Point is a cell coordinate: X is the row, Y the column
type Point struct {
	X, Y int
}

// Board is a Size x Size toroidal grid stored row-major
type Board struct {
	cells [Size * Size]bool
}

// NewBoard creates a board with every cell dead
func NewBoard() *Board {
	return &Board{}
}

// FromPattern builds a board from text rows. Row x, column y is alive iff the
// character is 'X'. Rows or columns beyond Size are ignored and missing ones
// stay dead: this is a permissive parse, nothing is validated.
func FromPattern(rows []string) *Board {
	b := NewBoard()
	for x := 0; x < Size && x < len(rows); x++ {
		y := 0
		for _, c := range rows[x] {
			if y >= Size {
				break
			}
			if c == aliveChar {
				b.cells[x*Size+y] = true
			}
			y++
		}
	}
	return b
}

// ParsePattern splits text into lines and parses it with FromPattern
func ParsePattern(text string) *Board {
	return FromPattern(strings.Split(text, "\n"))
}

// ParseStrict parses text that must hold exactly Size lines of Size '.' or 'X'
// characters. A single trailing newline is accepted.
func ParseStrict(text string) (*Board, error) {
	rows := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if len(rows) != Size {
		return nil, errors.Wrapf(ErrMalformedPattern, "expected %d rows, got %d", Size, len(rows))
	}
	for x, row := range rows {
		if len(row) != Size {
			return nil, errors.Wrapf(ErrMalformedPattern, "row %d: expected %d columns, got %d", x, Size, len(row))
		}
		for y := 0; y < len(row); y++ {
			if row[y] != aliveChar && row[y] != deadChar {
				return nil, errors.Wrapf(ErrMalformedPattern, "row %d column %d: unexpected %q", x, y, row[y])
			}
		}
	}
	return FromPattern(rows), nil
}

// Wrap moves coord by offset around the torus. offset must not exceed Size in magnitude.
func Wrap(coord, offset int) int {
	c := coord + offset
	if c < 0 {
		return c + Size
	}
	if c >= Size {
		return c - Size
	}
	return c
}

// normalize folds any coordinate into [0, Size)
func normalize(c int) int {
	c %= Size
	if c < 0 {
		c += Size
	}
	return c
}

// Get returns the state of a cell
func (b *Board) Get(x, y int) bool {
	return b.cells[normalize(x)*Size+normalize(y)]
}

// Set sets a cell to alive (true) or dead (false)
func (b *Board) Set(x, y int, alive bool) {
	b.cells[normalize(x)*Size+normalize(y)] = alive
}

// Clear kills every cell
func (b *Board) Clear() {
	b.cells = [Size * Size]bool{}
}

// Equal reports whether both boards hold the same cells
func (b *Board) Equal(other *Board) bool {
	return b.cells == other.cells
}

// ApplyMutations applies mutations in order; a later mutation of the same cell
// wins over an earlier one and Toggle flips the value current at that moment.
func (b *Board) ApplyMutations(mutations ...Mutation) {
	for _, m := range mutations {
		i := normalize(m.X)*Size + normalize(m.Y)
		switch m.Kind {
		case MutationOn:
			b.cells[i] = true
		case MutationOff:
			b.cells[i] = false
		case MutationToggle:
			b.cells[i] = !b.cells[i]
		}
	}
}

// CountNeighbors counts the living cells among the eight wrapped neighbors of (x, y)
func (b *Board) CountNeighbors(x, y int) int {
	count := 0
	for _, off := range neighborOffsets {
		if b.cells[Wrap(x, off[0])*Size+Wrap(y, off[1])] {
			count++
		}
	}
	return count
}

// NextGeneration returns the mutations that turn the current generation into the next one
func (b *Board) NextGeneration() []Mutation {
	return b.NextGenerationInto(nil, false)
}

// NextGenerationInto appends the next-generation mutations to dst in row-major
// order. With parallel set, row bands are evaluated concurrently; the result
// is the same as the sequential pass. The board is only read.
func (b *Board) NextGenerationInto(dst []Mutation, parallel bool) []Mutation {
	if !parallel {
		return b.evaluateRows(dst, 0, Size)
	}

	var (
		eg            errgroup.Group
		numWorkers    = min(runtime.NumCPU(), Size)
		rowsPerWorker = (Size + numWorkers - 1) / numWorkers // Ceiling division
		bands         = make([][]Mutation, numWorkers)
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, Size)
		)
		if startRow >= Size {
			break
		}

		eg.Go(func() error {
			bands[i] = b.evaluateRows(nil, startRow, endRow)
			return nil
		})
	}
	// workers never fail
	_ = eg.Wait()

	for _, band := range bands {
		dst = append(dst, band...)
	}
	return dst
}

func (b *Board) evaluateRows(dst []Mutation, startRow, endRow int) []Mutation {
	for x := startRow; x < endRow; x++ {
		for y := 0; y < Size; y++ {
			switch rules.Transition(b.cells[x*Size+y], b.CountNeighbors(x, y)) {
			case rules.Death:
				dst = append(dst, Off(x, y))
			case rules.Birth:
				dst = append(dst, On(x, y))
			}
		}
	}
	return dst
}

// CountLivingCells returns the total number of living cells
func (b *Board) CountLivingCells() (count int) {
	for _, alive := range b.cells {
		if alive {
			count++
		}
	}
	return
}

// String serializes the board: Size lines of Size characters, 'X' alive and
// '.' dead, each line terminated by a newline
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(Size * (Size + 1))
	for x := range Size {
		for y := range Size {
			if b.cells[x*Size+y] {
				sb.WriteByte(aliveChar)
			} else {
				sb.WriteByte(deadChar)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Randomize fills the board with random living cells
func (b *Board) Randomize(rng *rand.Rand, density float64) {
	for i := range b.cells {
		b.cells[i] = rng.Float64() < density
	}
}

// AddGlider adds a glider pattern with its top-left corner at (x, y), wrapping at the edges
func (b *Board) AddGlider(x, y int) {
	pattern := [3][3]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	}

	for dx, row := range pattern {
		for dy, cell := range row {
			b.Set(x+dx, y+dy, cell)
		}
	}
}
