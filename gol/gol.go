package gol

import (
	"fmt"
	"log"
	"time"

	"uk.ac.bris.cs/lifebench/device"
)

// Benchmark defaults
const (
	DefaultTurns        = 1000
	DefaultThreads      = device.DefaultThreadsPerUnit
	DefaultUnits        = device.DefaultUnits
	DefaultImageWidth   = 1024
	DefaultSeed         = 1
	DefaultDeviceMemory = device.DefaultMemory
)

// Params provides the details of how to run the Game of Life.
// It is built once and passed by value; nothing changes it during a run.
type Params struct {
	Turns        int    // Number of generations to advance
	Threads      int    // Threads per unit
	Units        int    // Units per dispatch
	ImageWidth   int    // Interior edge length, the universe is (ImageWidth+2) square
	Seed         int64  // Seed of the interior coin flips
	DeviceMemory int    // Device capacity in bytes
	Resident     bool   // Keep both generations on the device and swap them between turns
	Diagnostic   bool   // Send every generation and pause a second between turns
	OutputDir    string // Write the final generation as PGM when set
}

// DefaultParams returns the parameters of the benchmark run.
func DefaultParams() Params {
	return Params{
		Turns:        DefaultTurns,
		Threads:      DefaultThreads,
		Units:        DefaultUnits,
		ImageWidth:   DefaultImageWidth,
		Seed:         DefaultSeed,
		DeviceMemory: DefaultDeviceMemory,
	}
}

// Validate reports whether p describes a run that can start.
func (p Params) Validate() error {
	switch {
	case p.Turns < 0:
		return fmt.Errorf("%w: turns must not be negative, got %d", ErrParams, p.Turns)
	case p.Threads <= 0:
		return fmt.Errorf("%w: threads must be positive, got %d", ErrParams, p.Threads)
	case p.Units <= 0:
		return fmt.Errorf("%w: units must be positive, got %d", ErrParams, p.Units)
	case p.ImageWidth <= 0:
		return fmt.Errorf("%w: image width must be positive, got %d", ErrParams, p.ImageWidth)
	case p.DeviceMemory <= 0:
		return fmt.Errorf("%w: device memory must be positive, got %d", ErrParams, p.DeviceMemory)
	}
	return nil
}

func (p Params) launch() device.LaunchConfig {
	return device.LaunchConfig{Threads: p.Threads, Units: p.Units}
}

func (p Params) deviceConfig() device.Config {
	return device.Config{
		Memory:         p.DeviceMemory,
		ThreadsPerUnit: p.Threads,
		Units:          p.Units,
	}
}

// Run builds the universe, advances it p.Turns times on a fresh device and
// reports progress on events. events is closed before Run returns.
func Run(p Params, events chan<- Event) error {

	defer close(events)

	if err := p.Validate(); err != nil {
		return err
	}
	log.Printf("Init: %dx%dx%d-%dx%d", p.ImageWidth, p.ImageWidth, p.Turns, p.Units, p.Threads)

	universe, err := NewUniverse(p)
	if err != nil {
		return err
	}

	dev, err := device.New(p.deviceConfig())
	if err != nil {
		return err
	}
	defer dev.Close()

	events <- StateChange{0, Executing}
	start := time.Now()
	if err := Advance(p, dev, universe, events); err != nil {
		return err
	}
	elapsed := time.Since(start)
	events <- FinalTurnComplete{p.Turns, universe.AliveCells(), elapsed}

	if p.OutputDir != "" {
		filename, err := writePgmImage(p.OutputDir, p.Turns, universe)
		if err != nil {
			return err
		}
		events <- ImageOutputComplete{p.Turns, filename}
	}

	events <- StateChange{p.Turns, Quitting}
	return nil
}
