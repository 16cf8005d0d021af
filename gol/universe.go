package gol

import (
	"fmt"
	"math/rand"

	"uk.ac.bris.cs/lifebench/util"
)

// MaxHostCells is the largest universe, border included, that can be built on the host.
const MaxHostCells = 1 << 30

// Universe is the full grid including a one cell thick border frame.
// Cells are stored row-major in a single slice with stride width+2.
type Universe struct {
	width  int // Interior edge length
	stride int
	cells  []CellState
}

// Allocate the padded grid and write the border frame
func layout(p Params) (*Universe, error) {
	if p.ImageWidth <= 0 {
		return nil, fmt.Errorf("%w: image width must be positive, got %d", ErrParams, p.ImageWidth)
	}
	stride := p.ImageWidth + 2
	if stride > MaxHostCells/stride {
		return nil, fmt.Errorf("%w: %dx%d universe exceeds %d cells", ErrHostAllocation, stride, stride, MaxHostCells)
	}
	universe := &Universe{
		width:  p.ImageWidth,
		stride: stride,
		cells:  make([]CellState, stride*stride),
	}
	last := (stride - 1) * stride
	for x := 0; x != stride; x++ {
		universe.cells[x] = Border
		universe.cells[last+x] = Border
	}
	for y := 1; y != stride-1; y++ {
		universe.cells[y*stride] = Border
		universe.cells[y*stride+stride-1] = Border
	}
	return universe, nil
}

// MakeEmptyUniverse returns a universe with its border frame and an all dead interior.
func MakeEmptyUniverse(p Params) (*Universe, error) {
	return layout(p)
}

// NewUniverse returns a universe whose interior cells are each set by an
// independent fair coin flip drawn from a source seeded with p.Seed.
func NewUniverse(p Params) (*Universe, error) {
	universe, err := layout(p)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(p.Seed))
	for y := 1; y != universe.stride-1; y++ {
		row := universe.cells[y*universe.stride : (y+1)*universe.stride]
		for x := 1; x != universe.stride-1; x++ {
			if rng.Intn(2) == 1 {
				row[x] = Alive
			} else {
				row[x] = Dead
			}
		}
	}
	return universe, nil
}

// Width returns the interior edge length.
func (universe *Universe) Width() int {
	return universe.width
}

// Stride returns the row length of the padded grid.
func (universe *Universe) Stride() int {
	return universe.stride
}

// Len returns the number of cells including the border.
func (universe *Universe) Len() int {
	return len(universe.cells)
}

// Index returns the flat index of an interior cell. (0, 0) is the top-left interior cell.
func (universe *Universe) Index(cell util.Cell) int {
	if cell.X < 0 || cell.Y < 0 || cell.X >= universe.width || cell.Y >= universe.width {
		panic(fmt.Sprintf("gol: cell %v outside %dx%d interior", cell, universe.width, universe.width))
	}
	return (cell.Y+1)*universe.stride + cell.X + 1
}

// IsBorder reports whether a flat index lies on the border frame.
func (universe *Universe) IsBorder(index int) bool {
	x, y := index%universe.stride, index/universe.stride
	return x == 0 || y == 0 || x == universe.stride-1 || y == universe.stride-1
}

// At returns the state of an interior cell.
func (universe *Universe) At(cell util.Cell) CellState {
	return universe.cells[universe.Index(cell)]
}

// AtIndex returns the state of any cell, border included.
func (universe *Universe) AtIndex(index int) CellState {
	return universe.cells[index]
}

// Set changes an interior cell. The border frame can not be written.
func (universe *Universe) Set(cell util.Cell, state CellState) {
	if state != Alive && state != Dead {
		panic(fmt.Sprintf("gol: interior cell can not be %v", state))
	}
	universe.cells[universe.Index(cell)] = state
}

// AliveCells returns the alive interior cells in row-major order.
func (universe *Universe) AliveCells() []util.Cell {
	cells := make([]util.Cell, 0, universe.AliveCount())
	for y := 0; y != universe.width; y++ {
		row := universe.cells[(y+1)*universe.stride:]
		for x := 0; x != universe.width; x++ {
			if row[x+1] == Alive {
				cells = append(cells, util.Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// AliveCount returns the number of alive cells.
func (universe *Universe) AliveCount() int {
	count := 0
	for _, state := range universe.cells {
		count += int(state & 1)
	}
	return count
}

// Clone returns a deep copy.
func (universe *Universe) Clone() *Universe {
	clone := *universe
	clone.cells = make([]CellState, len(universe.cells))
	copy(clone.cells, universe.cells)
	return &clone
}

// Equal reports whether both universes hold the same generation.
func (universe *Universe) Equal(other *Universe) bool {
	if universe.stride != other.stride {
		return false
	}
	for i := range universe.cells {
		if universe.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Bytes exposes the backing storage for transfers. Writing through it changes the universe.
func (universe *Universe) Bytes() []byte {
	return bytesOf(universe.cells)
}
