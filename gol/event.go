package gol

import (
	"fmt"
	"time"

	"uk.ac.bris.cs/lifebench/util"
)

// Event represents any Game of Life event that needs to be communicated to the user.
type Event interface {
	// Stringer allows each event to be printed by the GUI
	fmt.Stringer
	// GetCompletedTurns should return the number of fully completed turns.
	// If the event happens in the middle of a turn this should be the previous turn.
	GetCompletedTurns() int
}

// State represents a change in the state of execution.
type State int

const (
	Executing State = iota
	Quitting
)

// StateChange is an Event notifying the user about the change of state of execution.
type StateChange struct {
	CompletedTurns int
	NewState       State
}

// TurnComplete is an Event notifying that a generation has been fully computed
// and copied back from the device.
type TurnComplete struct {
	CompletedTurns int
}

// AliveCellsCount is an Event notifying the number of alive interior cells.
// It is sent every 2 seconds.
type AliveCellsCount struct {
	CompletedTurns int
	CellsCount     int
}

// GenerationComplete is only sent in diagnostic mode. World is a private copy.
type GenerationComplete struct {
	CompletedTurns int
	World          *Universe
}

// ImageOutputComplete is an Event notifying that the final generation was written.
type ImageOutputComplete struct {
	CompletedTurns int
	Filename       string
}

// FinalTurnComplete is an Event sent once every turn has been advanced.
// Elapsed covers the generation loop only.
type FinalTurnComplete struct {
	CompletedTurns int
	Alive          []util.Cell
	Elapsed        time.Duration
}

func (state State) String() string {
	switch state {
	case Executing:
		return "Executing"
	case Quitting:
		return "Quitting"
	default:
		return "Incorrect State"
	}
}

func (event StateChange) String() string {
	return fmt.Sprintf("%v", event.NewState)
}

func (event StateChange) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event TurnComplete) String() string {
	return ""
}

func (event TurnComplete) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event AliveCellsCount) String() string {
	return fmt.Sprintf("Alive Cells %v", event.CellsCount)
}

func (event AliveCellsCount) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event GenerationComplete) String() string {
	return fmt.Sprintf("Generation %v", event.CompletedTurns)
}

func (event GenerationComplete) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event ImageOutputComplete) String() string {
	return fmt.Sprintf("File %v Output Done", event.Filename)
}

func (event ImageOutputComplete) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event FinalTurnComplete) String() string {
	return fmt.Sprintf("Elapsed: %.3f seconds", event.Elapsed.Seconds())
}

func (event FinalTurnComplete) GetCompletedTurns() int {
	return event.CompletedTurns
}
