package model

import "fmt"

// MutationKind selects what a Mutation does to its cell
type MutationKind uint8

const (
	// MutationOn sets the cell alive
	MutationOn MutationKind = iota + 1
	// MutationOff sets the cell dead
	MutationOff
	// MutationToggle flips the cell
	MutationToggle
)

func (k MutationKind) String() string {
	switch k {
	case MutationOn:
		return "On"
	case MutationOff:
		return "Off"
	case MutationToggle:
		return "Toggle"
	default:
		return fmt.Sprintf("MutationKind(%d)", uint8(k))
	}
}

// Mutation is one requested change to one cell
type Mutation struct {
	Kind MutationKind
	X, Y int
}

// On returns a mutation that sets (x, y) alive
func On(x, y int) Mutation { return Mutation{Kind: MutationOn, X: x, Y: y} }

// Off returns a mutation that sets (x, y) dead
func Off(x, y int) Mutation { return Mutation{Kind: MutationOff, X: x, Y: y} }

// Toggle returns a mutation that flips (x, y)
func Toggle(x, y int) Mutation { return Mutation{Kind: MutationToggle, X: x, Y: y} }

func (m Mutation) String() string {
	return fmt.Sprintf("%s(%d, %d)", m.Kind, m.X, m.Y)
}
