// Package device is an in-process compute device: a byte-accounted memory
// manager and a fixed pool of worker goroutines that run kernels over an
// index range with a grid-stride loop.
//
// Every call blocks until it has completed. Faults raised by a kernel while
// it runs are not returned by Dispatch; they are kept until LastError.
package device

import (
	"errors"
	"fmt"
	"sync"
)

type Device struct {
	config Config

	mutex     sync.Mutex // Guards the fields below
	allocated int
	buffers   map[*Buffer]struct{}
	closed    bool
	fault     error // Asynchronous fault of the last dispatch

	// Worker pool (see dispatch.go)
	launch_mutex sync.Mutex // Serialises Dispatch and Close
	running      *bool      // Read-write protected by cond.L
	cond         *sync.Cond
	task         *task // Read-write protected by cond.L
	result_chan  chan error
}

// New creates a device and starts its worker pool.
func New(config Config) (*Device, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	device := &Device{
		config:      config,
		buffers:     make(map[*Buffer]struct{}),
		running:     new(bool),
		cond:        sync.NewCond(new(sync.Mutex)),
		result_chan: make(chan error),
	}
	*device.running = true
	for thread_index := 0; thread_index != config.poolSize(); thread_index++ {
		go device.worker(thread_index)
		<-device.result_chan // Make sure goroutine is ready
	}
	return device, nil
}

// Config returns the configuration the device was created with.
func (device *Device) Config() Config {
	return device.config
}

// Capacity returns the total memory of the device in bytes.
func (device *Device) Capacity() int {
	return device.config.Memory
}

// Allocated returns the bytes currently charged against the capacity.
func (device *Device) Allocated() int {
	device.mutex.Lock()
	defer device.mutex.Unlock()
	return device.allocated
}

// Allocate reserves size bytes of device memory.
func (device *Device) Allocate(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: invalid size %d", ErrAllocation, size)
	}
	reserved := alignedSize(size)

	device.mutex.Lock()
	defer device.mutex.Unlock()
	if device.closed {
		return nil, fmt.Errorf("%w: device closed", ErrAllocation)
	}
	if reserved > device.config.Memory-device.allocated {
		return nil, fmt.Errorf("%w: out of memory: %d bytes requested, %d of %d in use",
			ErrAllocation, reserved, device.allocated, device.config.Memory)
	}
	buffer := &Buffer{
		owner:    device,
		data:     alignedBytes(size),
		reserved: reserved,
	}
	device.allocated += reserved
	device.buffers[buffer] = struct{}{}
	return buffer, nil
}

// Free releases a buffer. Freeing a buffer twice, or after Close, does nothing.
func (device *Device) Free(buffer *Buffer) {
	if buffer == nil {
		return
	}
	device.mutex.Lock()
	defer device.mutex.Unlock()
	if _, ok := device.buffers[buffer]; !ok {
		return
	}
	delete(device.buffers, buffer)
	device.allocated -= buffer.reserved
	buffer.freed = true
	buffer.data = nil
}

// CopyIn copies host memory into a buffer. Sizes must match exactly.
func (device *Device) CopyIn(dst *Buffer, src []byte) error {
	device.mutex.Lock()
	defer device.mutex.Unlock()
	if err := device.checkBuffer(dst); err != nil {
		return fmt.Errorf("%w: copy in: %v", ErrTransfer, err)
	}
	if len(src) != len(dst.data) {
		return fmt.Errorf("%w: copy in: host %d bytes, device %d bytes", ErrTransfer, len(src), len(dst.data))
	}
	copy(dst.data, src)
	return nil
}

// CopyOut copies a buffer into host memory. Sizes must match exactly.
func (device *Device) CopyOut(dst []byte, src *Buffer) error {
	device.mutex.Lock()
	defer device.mutex.Unlock()
	if err := device.checkBuffer(src); err != nil {
		return fmt.Errorf("%w: copy out: %v", ErrTransfer, err)
	}
	if len(dst) != len(src.data) {
		return fmt.Errorf("%w: copy out: host %d bytes, device %d bytes", ErrTransfer, len(dst), len(src.data))
	}
	copy(dst, src.data)
	return nil
}

// LastError returns and clears the fault raised by a kernel during the last
// dispatch, if any.
func (device *Device) LastError() error {
	device.mutex.Lock()
	fault := device.fault
	device.fault = nil
	device.mutex.Unlock()
	if fault == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrLaunch, fault)
}

// Close stops the worker pool and releases all buffers still allocated.
func (device *Device) Close() {
	device.launch_mutex.Lock()
	defer device.launch_mutex.Unlock()

	device.mutex.Lock()
	if device.closed {
		device.mutex.Unlock()
		return
	}
	device.closed = true
	for buffer := range device.buffers {
		buffer.freed = true
		buffer.data = nil
	}
	device.buffers = make(map[*Buffer]struct{})
	device.allocated = 0
	device.mutex.Unlock()

	// Set flag variable to exit all worker routines
	device.cond.L.Lock()
	*device.running = false
	device.cond.Broadcast()
	device.cond.L.Unlock()
}

// Caller holds device.mutex
func (device *Device) checkBuffer(buffer *Buffer) error {
	switch {
	case buffer == nil:
		return errors.New("nil buffer")
	case buffer.owner != device:
		return errors.New("buffer belongs to another device")
	case buffer.freed:
		return errors.New("buffer already freed")
	}
	return nil
}
