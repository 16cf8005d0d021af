package gol

import "errors"

var (
	ErrParams         = errors.New("gol: invalid params")
	ErrHostAllocation = errors.New("gol: host allocation failed")
	ErrAliasedBuffers = errors.New("gol: current and next generation share a buffer")
)
