package gol

import "unsafe"

// CellState is stored as one byte per cell.
// Bit 0 is set for Alive only, so cell&1 counts live neighbours without branching.
type CellState uint8

const (
	Dead   CellState = 0
	Alive  CellState = 1
	Border CellState = 2
)

func (state CellState) String() string {
	switch state {
	case Dead:
		return "Dead"
	case Alive:
		return "Alive"
	case Border:
		return "Border"
	default:
		return "Invalid"
	}
}

// View device memory as cells without copying
func cellsOf(data []byte) []CellState {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*CellState)(unsafe.Pointer(&data[0])), len(data))
}

// View cells as bytes for transfers
func bytesOf(cells []CellState) []byte {
	if len(cells) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&cells[0])), len(cells))
}
