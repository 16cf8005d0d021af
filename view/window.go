// Package view renders generations as text in a terminal. It is only used
// by the diagnostic mode; benchmark runs never open a window.
package view

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"uk.ac.bris.cs/lifebench/gol"
)

// Runes drawn for each cell state
const (
	AliveRune  = '█'
	DeadRune   = ' '
	BorderRune = '#'
)

var (
	aliveStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlack)
	deadStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlack)
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

type Window struct {
	screen tcell.Screen
}

// NewWindow initialises screen and clears it. A nil screen opens the terminal.
func NewWindow(screen tcell.Screen) (*Window, error) {
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("creating screen: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	screen.Clear()
	return &Window{screen: screen}, nil
}

// Draw renders the universe, border included, from the top-left corner of
// the screen followed by a status line. Whatever does not fit is clipped.
func (w *Window) Draw(turn int, universe *gol.Universe) {
	width, height := w.screen.Size()
	stride := universe.Stride()

	w.screen.Clear()
	for y := 0; y != stride && y < height-1; y++ {
		for x := 0; x != stride && x < width; x++ {
			r, style := DeadRune, deadStyle
			switch universe.AtIndex(y*stride + x) {
			case gol.Alive:
				r, style = AliveRune, aliveStyle
			case gol.Border:
				r, style = BorderRune, borderStyle
			}
			w.screen.SetContent(x, y, r, nil, style)
		}
	}

	status := fmt.Sprintf("Turn %d  Alive %d", turn, universe.AliveCount())
	row := stride
	if row > height-1 {
		row = height - 1
	}
	for i, r := range status {
		if i >= width {
			break
		}
		w.screen.SetContent(i, row, r, nil, statusStyle)
	}
	w.screen.Show()
}

// Destroy restores the terminal.
func (w *Window) Destroy() {
	w.screen.Fini()
}
