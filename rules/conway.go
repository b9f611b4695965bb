package rules

// Outcome describes what happens to a single cell between two generations
type Outcome int

const (
	// Unchanged means the cell keeps its current state
	Unchanged Outcome = iota
	// Birth means a dead cell comes alive
	Birth
	// Death means a living cell dies
	Death
)

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules: (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// Transition reports how a cell changes, so callers only emit work for cells that flip
func Transition(alive bool, neighbors int) Outcome {
	next := ApplyConwayRules(neighbors, alive)
	switch {
	case alive && !next:
		return Death
	case !alive && next:
		return Birth
	default:
		return Unchanged
	}
}
