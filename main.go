package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"uk.ac.bris.cs/lifebench/gol"
	"uk.ac.bris.cs/lifebench/view"
)

// main is the function called when starting Game of Life with 'go run .'
func main() {
	render := flag.Bool(
		"render",
		false,
		"Render every generation in the terminal, pausing a second between generations.")

	resident := flag.Bool(
		"resident",
		false,
		"Keep both generations on the device instead of staging the universe every turn.")

	out := flag.String(
		"out",
		"",
		"Directory to write the final generation to as a pgm image.")

	flag.Parse()

	p := gol.DefaultParams()
	p.Diagnostic = *render
	p.Resident = *resident
	p.OutputDir = *out

	var window *view.Window
	if *render {
		var err error
		window, err = view.NewWindow(nil)
		if err != nil {
			log.Fatalf("gameoflife: %v", err)
		}
		log.SetOutput(io.Discard) // Log lines would corrupt the screen
	}

	events := make(chan gol.Event, 1000)
	done := make(chan error, 1)
	go func() { done <- gol.Run(p, events) }()

	var final *gol.FinalTurnComplete
	for event := range events {
		switch e := event.(type) {
		case gol.GenerationComplete:
			if window != nil {
				window.Draw(e.CompletedTurns, e.World)
			}
		case gol.FinalTurnComplete:
			final = &e
		}
	}
	if window != nil {
		window.Destroy()
		log.SetOutput(os.Stderr)
	}

	if err := <-done; err != nil {
		log.Fatalf("gameoflife: %v", err)
	}
	fmt.Println(final)
}
