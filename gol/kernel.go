package gol

import (
	"fmt"

	"uk.ac.bris.cs/lifebench/device"
)

// countNeighbours returns the number of alive cells among the eight cells
// around index. index must be an interior cell: the border frame keeps the
// whole 3x3 block in range, so there is no bounds or wrap-around logic here.
func countNeighbours(cells []CellState, index, stride int) int {
	above := index - stride
	below := index + stride
	return int(cells[above-1]&1 + cells[above]&1 + cells[above+1]&1 +
		cells[index-1]&1 + cells[index+1]&1 +
		cells[below-1]&1 + cells[below]&1 + cells[below+1]&1)
}

// nextState applies B3/S23 to one cell. Border cells are copied unchanged.
func nextState(current []CellState, index, stride int) CellState {
	state := current[index]
	if state == Border {
		return Border
	}
	count := countNeighbours(current, index, stride)
	switch state {
	case Alive:
		if count == 2 || count == 3 {
			return Alive
		}
		return Dead
	case Dead:
		if count == 3 {
			return Alive
		}
		return Dead
	}
	panic(fmt.Sprintf("gol: invalid cell state %d at %d", state, index))
}

// stepKernel reads the current generation from args[0] and writes the next
// one into args[1]. Every index writes only its own output cell.
func stepKernel(stride int) device.Kernel {
	return func(index int, args [][]byte) {
		current := cellsOf(args[0])
		next := cellsOf(args[1])
		next[index] = nextState(current, index, stride)
	}
}
