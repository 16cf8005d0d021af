package util

import "fmt"

// Cell is used as the return type for the testing framework.
type Cell struct {
	X, Y int
}

func (cell Cell) String() string {
	return fmt.Sprintf("(%d, %d)", cell.X, cell.Y)
}
