package device

import "unsafe"

// CacheLineSize is the alignment of every buffer handed out by Allocate.
const CacheLineSize = 64

// Buffer is a handle to device memory. Its contents are only reachable
// through CopyIn, CopyOut and the kernel arguments of Dispatch.
type Buffer struct {
	owner    *Device
	data     []byte
	reserved int  // Bytes charged against the device capacity
	freed    bool // Guarded by owner.mutex
}

// Len returns the usable size of the buffer in bytes.
func (buffer *Buffer) Len() int {
	return len(buffer.data)
}

// Round size up to the nearest cache line multiple
func alignedSize(size int) int {
	return (size + CacheLineSize - 1) &^ (CacheLineSize - 1)
}

// Allocate a byte slice whose first element sits on a cache line boundary
func alignedBytes(size int) []byte {
	if size == 0 {
		return nil
	}
	buf := make([]byte, size+CacheLineSize-1)
	offset := 0
	if mod := int(uintptr(unsafe.Pointer(&buf[0])) % CacheLineSize); mod != 0 {
		offset = CacheLineSize - mod
	}
	return buf[offset : offset+size : offset+size]
}
