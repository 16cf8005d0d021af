package device

import "fmt"

// Pool shape and memory defaults
const (
	DefaultThreadsPerUnit = 8
	DefaultUnits          = 4

	// Maximum threads per unit accepted by New
	MaxThreadsPerUnit = 1024

	DefaultMemory = 1 << 28 // 256MB
)

// Config describes the device created by New. The worker pool has
// ThreadsPerUnit*Units goroutines for the lifetime of the device.
type Config struct {
	Memory         int // Capacity in bytes shared by all buffers
	ThreadsPerUnit int
	Units          int
}

// LaunchConfig is the parallelism shape of a single dispatch.
type LaunchConfig struct {
	Threads int // Threads per unit
	Units   int // Units per dispatch
}

// Size returns the number of threads taking part in a dispatch.
func (launch LaunchConfig) Size() int {
	return launch.Threads * launch.Units
}

func (config Config) poolSize() int {
	return config.ThreadsPerUnit * config.Units
}

func (config Config) validate() error {
	if config.Memory <= 0 {
		return fmt.Errorf("%w: memory must be positive, got %d", ErrConfig, config.Memory)
	}
	if config.ThreadsPerUnit <= 0 || config.ThreadsPerUnit > MaxThreadsPerUnit {
		return fmt.Errorf("%w: threads per unit must be in [1, %d], got %d",
			ErrConfig, MaxThreadsPerUnit, config.ThreadsPerUnit)
	}
	if config.Units <= 0 {
		return fmt.Errorf("%w: units must be positive, got %d", ErrConfig, config.Units)
	}
	return nil
}

// Check launch shape against the pool started by New
func (launch LaunchConfig) validate(config Config) error {
	if launch.Threads <= 0 || launch.Units <= 0 {
		return fmt.Errorf("%w: invalid configuration argument %dx%d", ErrLaunch, launch.Units, launch.Threads)
	}
	if launch.Threads > config.ThreadsPerUnit || launch.Units > config.Units {
		return fmt.Errorf("%w: too many resources requested for launch: %dx%d on a %dx%d pool",
			ErrLaunch, launch.Units, launch.Threads, config.Units, config.ThreadsPerUnit)
	}
	return nil
}
