package device

import "fmt"

// Kernel computes the output for one index. args holds the contents of the
// buffers passed to Dispatch, in order.
type Kernel func(index int, args [][]byte)

// A single dispatch as seen by the workers
type task struct {
	kernel  Kernel
	n       int
	threads int
	args    [][]byte
}

// Run the grid-stride share of a worker, turning a panic into a fault
func (task *task) run(thread_index int) (fault error) {
	if thread_index >= task.threads {
		return nil // Not part of this launch
	}
	defer func() {
		if r := recover(); r != nil {
			fault = fmt.Errorf("thread %d: %v", thread_index, r)
		}
	}()
	for index := thread_index; index < task.n; index += task.threads {
		task.kernel(index, task.args)
	}
	return nil
}

// Dispatch runs kernel once for every index in [0, n) on launch.Size()
// threads of the pool and blocks until all of them have finished. Errors
// returned here mean nothing ran; faults raised while running are reported
// by LastError.
func (device *Device) Dispatch(kernel Kernel, launch LaunchConfig, n int, args ...*Buffer) error {
	if kernel == nil {
		return fmt.Errorf("%w: nil kernel", ErrLaunch)
	}
	if n < 0 {
		return fmt.Errorf("%w: negative index range %d", ErrLaunch, n)
	}
	if err := launch.validate(device.config); err != nil {
		return err
	}

	device.launch_mutex.Lock()
	defer device.launch_mutex.Unlock()

	views := make([][]byte, len(args))
	device.mutex.Lock()
	if device.closed {
		device.mutex.Unlock()
		return fmt.Errorf("%w: device closed", ErrLaunch)
	}
	for i, arg := range args {
		if err := device.checkBuffer(arg); err != nil {
			device.mutex.Unlock()
			return fmt.Errorf("%w: argument %d: %v", ErrLaunch, i, err)
		}
		views[i] = arg.data
	}
	device.mutex.Unlock()

	// Broadcast as critical section to prevent any routine not in waiting state before broadcast
	device.cond.L.Lock()
	device.task = &task{
		kernel:  kernel,
		n:       n,
		threads: launch.Size(),
		args:    views,
	}
	device.cond.Broadcast()
	device.cond.L.Unlock()

	// Get results of every worker
	var fault error
	for thread_index := 0; thread_index != device.config.poolSize(); thread_index++ {
		if err := <-device.result_chan; err != nil && fault == nil {
			fault = err
		}
	}

	if fault != nil {
		device.mutex.Lock()
		if device.fault == nil {
			device.fault = fault
		}
		device.mutex.Unlock()
	}
	return nil
}

func (device *Device) worker(thread_index int) {
	// Wait until New finishes initialisation
	device.cond.L.Lock()
	device.result_chan <- nil // notify device that this routine is ready
	device.cond.Wait()
	for *device.running {
		task := device.task
		device.cond.L.Unlock()

		fault := task.run(thread_index)

		// Send result while holding the lock so the next broadcast finds this routine waiting
		device.cond.L.Lock()
		device.result_chan <- fault
		device.cond.Wait()
	}
	device.cond.L.Unlock()
}
