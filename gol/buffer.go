package gol

import (
	"fmt"

	"uk.ac.bris.cs/lifebench/device"
)

// gridBuffer exclusively owns one device allocation the size of a universe.
// Close releases it and is safe to defer on every exit path.
type gridBuffer struct {
	dev    *device.Device
	buffer *device.Buffer
}

func allocateGrid(dev *device.Device, universe *Universe) (*gridBuffer, error) {
	buffer, err := dev.Allocate(universe.Len())
	if err != nil {
		return nil, fmt.Errorf("allocate %dx%d generation: %w", universe.stride, universe.stride, err)
	}
	return &gridBuffer{dev: dev, buffer: buffer}, nil
}

// Copy the host universe to the device
func (grid *gridBuffer) stage(universe *Universe) error {
	return grid.dev.CopyIn(grid.buffer, universe.Bytes())
}

// Copy the device generation back into the host universe
func (grid *gridBuffer) fetch(universe *Universe) error {
	return grid.dev.CopyOut(universe.Bytes(), grid.buffer)
}

func (grid *gridBuffer) Close() {
	if grid.buffer != nil {
		grid.dev.Free(grid.buffer)
		grid.buffer = nil
	}
}
