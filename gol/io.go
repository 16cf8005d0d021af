package gol

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

// Grey levels of the PGM output
const (
	pgmDead   = 0
	pgmBorder = 128
	pgmAlive  = 255
)

// writePgmImage writes the whole universe, border included, to dir as a P5
// pgm file and returns the file name without extension.
func writePgmImage(dir string, turn int, universe *Universe) (string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%dx%dx%d", universe.width, universe.width, turn)
	file, err := os.Create(filepath.Join(dir, filename+".pgm"))
	if err != nil {
		return "", err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	_, _ = writer.WriteString("P5\n")
	_, _ = writer.WriteString(strconv.Itoa(universe.stride))
	_, _ = writer.WriteString(" ")
	_, _ = writer.WriteString(strconv.Itoa(universe.stride))
	_, _ = writer.WriteString("\n")
	_, _ = writer.WriteString(strconv.Itoa(255))
	_, _ = writer.WriteString("\n")

	for _, state := range universe.cells {
		var pixel byte
		switch state {
		case Alive:
			pixel = pgmAlive
		case Border:
			pixel = pgmBorder
		default:
			pixel = pgmDead
		}
		_ = writer.WriteByte(pixel)
	}
	if err := writer.Flush(); err != nil {
		return "", err
	}
	if err := file.Sync(); err != nil {
		return "", err
	}

	log.Printf("File %s output done!", filename)
	return filename, nil
}

// ReadUniverse loads a universe written by Run from a pgm file.
func ReadUniverse(path string) (*Universe, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Header is four whitespace separated fields followed by a single whitespace byte
	fields := make([]string, 0, 4)
	offset := 0
	for len(fields) != 4 {
		for offset < len(data) && isPgmSpace(data[offset]) {
			offset++
		}
		start := offset
		for offset < len(data) && !isPgmSpace(data[offset]) {
			offset++
		}
		if start == offset {
			return nil, fmt.Errorf("%s: truncated pgm header", path)
		}
		fields = append(fields, string(data[start:offset]))
	}
	offset++
	if fields[0] != "P5" {
		return nil, fmt.Errorf("%s: not a pgm file", path)
	}
	width, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%s: bad width: %w", path, err)
	}
	height, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("%s: bad height: %w", path, err)
	}
	if width != height || width < 3 {
		return nil, fmt.Errorf("%s: %dx%d is not a padded square universe", path, width, height)
	}
	if fields[3] != "255" {
		return nil, fmt.Errorf("%s: incorrect maxval/bit depth", path)
	}
	if offset > len(data) {
		offset = len(data)
	}
	pixels := data[offset:]
	if len(pixels) != width*height {
		return nil, fmt.Errorf("%s: %d pixels, want %d", path, len(pixels), width*height)
	}

	universe, err := layout(Params{ImageWidth: width - 2})
	if err != nil {
		return nil, err
	}
	for index, pixel := range pixels {
		border := universe.IsBorder(index)
		switch {
		case border && pixel == pgmBorder:
		case !border && pixel == pgmAlive:
			universe.cells[index] = Alive
		case !border && pixel == pgmDead:
		default:
			return nil, fmt.Errorf("%s: unexpected pixel %d at %d", path, pixel, index)
		}
	}
	return universe, nil
}

func isPgmSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
