package buffer

// Position is a cursor location: X is the logical column, Y the row.
type Position struct {
	X, Y int
}

