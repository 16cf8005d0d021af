package gol

import (
	"fmt"
	"time"

	"uk.ac.bris.cs/lifebench/device"
)

// Replaced by tests
var (
	aliveReportPeriod = time.Second * 2
	diagnosticPause   = func() { time.Sleep(time.Second) } // Between generations in diagnostic mode
)

// Advance runs p.Turns generations of universe on dev. universe is the
// authoritative copy: it holds the final generation when Advance returns nil.
// Generation i+1 is not staged before generation i has been fully produced.
// Any device error aborts the loop; universe is then left undefined.
// events may be nil.
func Advance(p Params, dev *device.Device, universe *Universe, events chan<- Event) error {

	if err := p.Validate(); err != nil {
		return err
	}
	if universe.Width() != p.ImageWidth {
		return fmt.Errorf("%w: universe is %d wide, params say %d", ErrParams, universe.Width(), p.ImageWidth)
	}

	// Read from current, write to next
	current, err := allocateGrid(dev, universe)
	if err != nil {
		return err
	}
	defer current.Close()
	next, err := allocateGrid(dev, universe)
	if err != nil {
		return err
	}
	defer next.Close()

	kernel := stepKernel(universe.Stride())
	launch := p.launch()

	// In resident mode the host copy is only refreshed on demand
	synced := true
	sync := func() error {
		if synced {
			return nil
		}
		synced = true
		return current.fetch(universe)
	}
	if p.Resident {
		if err := current.stage(universe); err != nil {
			return err
		}
	}

	// Alive timer
	ticker := time.NewTicker(aliveReportPeriod)
	defer ticker.Stop()

	for turn := 0; turn != p.Turns; turn++ {
		if !p.Resident {
			if err := current.stage(universe); err != nil {
				return fmt.Errorf("turn %d: %w", turn, err)
			}
		}
		if err := dispatchStep(dev, kernel, launch, universe.Len(), current, next); err != nil {
			return fmt.Errorf("turn %d: %w", turn, err)
		}
		if p.Resident {
			// Swap current and next generation
			current, next = next, current
			synced = false
		} else {
			if err := next.fetch(universe); err != nil {
				return fmt.Errorf("turn %d: %w", turn, err)
			}
		}

		if events == nil {
			continue
		}
		events <- TurnComplete{turn + 1}
		select {
		case <-ticker.C:
			if err := sync(); err != nil {
				return fmt.Errorf("turn %d: %w", turn, err)
			}
			events <- AliveCellsCount{turn + 1, universe.AliveCount()}
		default:
		}
		if p.Diagnostic {
			if err := sync(); err != nil {
				return fmt.Errorf("turn %d: %w", turn, err)
			}
			events <- GenerationComplete{turn + 1, universe.Clone()}
			diagnosticPause()
		}
	}

	return sync()
}

// Run the kernel over every cell and wait for it to finish
func dispatchStep(dev *device.Device, kernel device.Kernel, launch device.LaunchConfig, n int, in, out *gridBuffer) error {
	if in.buffer == out.buffer {
		return ErrAliasedBuffers
	}
	if err := dev.Dispatch(kernel, launch, n, in.buffer, out.buffer); err != nil {
		return err
	}
	return dev.LastError()
}
