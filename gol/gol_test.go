package gol

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"uk.ac.bris.cs/lifebench/util"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard) // Disable log
	os.Exit(m.Run())
}

// Drain all events of a run
func runAll(t *testing.T, p Params) ([]Event, error) {
	t.Helper()
	events := make(chan Event)
	done := make(chan error, 1)
	go func() { done <- Run(p, events) }()
	var received []Event
	for event := range events {
		received = append(received, event)
	}
	return received, <-done
}

func TestRunEventSequence(t *testing.T) {
	p := testParams(16, 5)
	received, err := runAll(t, p)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if first, ok := received[0].(StateChange); !ok || first.NewState != Executing {
		t.Errorf("first event %#v, want StateChange Executing", received[0])
	}
	last := received[len(received)-1]
	if state, ok := last.(StateChange); !ok || state.NewState != Quitting || state.CompletedTurns != p.Turns {
		t.Errorf("last event %#v, want StateChange Quitting at turn %d", last, p.Turns)
	}

	var final *FinalTurnComplete
	for _, event := range received {
		if e, ok := event.(FinalTurnComplete); ok {
			final = &e
		}
	}
	if final == nil {
		t.Fatal("no FinalTurnComplete event")
	}

	// Same seed on the host gives the same final generation
	universe, _ := NewUniverse(p)
	for turn := 0; turn != p.Turns; turn++ {
		universe = hostStep(universe)
	}
	assertAlive(t, universe, final.Alive...)
	if final.Elapsed < 0 {
		t.Errorf("Elapsed = %v", final.Elapsed)
	}
}

func TestRunInvalidParams(t *testing.T) {
	p := testParams(16, 5)
	p.Threads = 0
	received, err := runAll(t, p)
	if !errors.Is(err, ErrParams) {
		t.Errorf("Run = %v, want ErrParams", err)
	}
	if len(received) != 0 {
		t.Errorf("%d events sent before failing", len(received))
	}
}

func TestRunDeviceTooSmall(t *testing.T) {
	p := testParams(64, 5)
	p.DeviceMemory = 1024
	if _, err := runAll(t, p); err == nil {
		t.Fatal("Run succeeded without enough device memory")
	}
}

func TestRunWritesFinalGeneration(t *testing.T) {
	p := testParams(12, 4)
	p.OutputDir = t.TempDir()
	received, err := runAll(t, p)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var final FinalTurnComplete
	var output *ImageOutputComplete
	for _, event := range received {
		switch e := event.(type) {
		case FinalTurnComplete:
			final = e
		case ImageOutputComplete:
			output = &e
		}
	}
	if output == nil || output.Filename != "12x12x4" {
		t.Fatalf("ImageOutputComplete = %#v", output)
	}

	universe, err := ReadUniverse(filepath.Join(p.OutputDir, output.Filename+".pgm"))
	if err != nil {
		t.Fatalf("ReadUniverse: %v", err)
	}
	if universe.Width() != 12 {
		t.Errorf("Width() = %d, want 12", universe.Width())
	}
	assertAlive(t, universe, final.Alive...)
}

func TestReadUniverseErrors(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"magic":        "P2\n3 3\n255\n",
		"header":       "P5\n3",
		"not square":   "P5\n3 4\n255\n",
		"maxval":       "P5\n3 3\n1\n",
		"short":        "P5\n3 3\n255\n\x80\x80",
		"pixel":        "P5\n3 3\n255\n\x80\x80\x80\x80\x07\x80\x80\x80\x80",
		"alive border": "P5\n3 3\n255\n\xff\x80\x80\x80\x00\x80\x80\x80\x80",
	} {
		path := filepath.Join(dir, name+".pgm")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadUniverse(path); err == nil {
			t.Errorf("%s: ReadUniverse succeeded", name)
		}
	}
}

func TestPgmRoundTrip(t *testing.T) {
	universe := universeWith(t, 5, util.Cell{X: 0, Y: 0}, util.Cell{X: 4, Y: 4}, util.Cell{X: 2, Y: 3})
	dir := t.TempDir()
	filename, err := writePgmImage(dir, 9, universe)
	if err != nil {
		t.Fatal(err)
	}
	read, err := ReadUniverse(filepath.Join(dir, filename+".pgm"))
	if err != nil {
		t.Fatal(err)
	}
	if !read.Equal(universe) {
		t.Error("universe changed through pgm round trip")
	}
}
