package path

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Read parses a waypoint file: one "x, y, speed" row per line. Blank lines and
// lines starting with '#' are skipped, and a non-numeric first row is taken
// as a header. Columns past the third are ignored.
func Read(r io.Reader) (Path, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var rows [][3]float64
	header := false
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Path{}, err
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < 3 {
			return Path{}, fmt.Errorf("line %d: expected x, y, speed; got %d fields", line, len(rec))
		}

		var row [3]float64
		var parseErr error
		for i := range row {
			row[i], parseErr = strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if parseErr != nil {
				break
			}
		}
		if parseErr != nil {
			if len(rows) == 0 && !header {
				header = true
				continue
			}
			return Path{}, fmt.Errorf("line %d: %w", line, parseErr)
		}
		rows = append(rows, row)
	}

	return FromRows(rows)
}

// LoadFile reads a waypoint file from disk.
func LoadFile(name string) (Path, error) {
	f, err := os.Open(name)
	if err != nil {
		return Path{}, err
	}
	defer f.Close()

	p, err := Read(f)
	if err != nil {
		return Path{}, fmt.Errorf("waypoints %s: %w", name, err)
	}
	return p, nil
}
