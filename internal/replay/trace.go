package replay

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/waypointctl/internal/vehicle"
)

// TraceColumns are the header names a trace file must carry, in any order.
var TraceColumns = []string{"timestamp", "frame", "x", "y", "yaw", "speed"}

// ReadTrace parses a recorded trace: a CSV header naming TraceColumns (extra
// columns are ignored) followed by one row per control cycle.
func ReadTrace(r io.Reader) ([]vehicle.State, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyTrace
		}
		return nil, err
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	idx := make([]int, len(TraceColumns))
	for i, name := range TraceColumns {
		j, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("trace header missing column %q", name)
		}
		idx[i] = j
	}

	var states []vehicle.State
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		var vals [6]float64
		for i, j := range idx {
			if j >= len(rec) {
				return nil, fmt.Errorf("line %d: missing %s", line, TraceColumns[i])
			}
			vals[i], err = strconv.ParseFloat(strings.TrimSpace(rec[j]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, TraceColumns[i], err)
			}
		}

		frame := int(vals[1])
		if float64(frame) != vals[1] {
			return nil, fmt.Errorf("line %d: frame %v is not an integer", line, vals[1])
		}
		s := vehicle.State{
			Timestamp: vals[0],
			Frame:     frame,
			X:         vals[2],
			Y:         vals[3],
			Yaw:       vals[4],
			Speed:     vals[5],
		}
		states = append(states, s)
	}

	if len(states) == 0 {
		return nil, ErrEmptyTrace
	}
	return states, nil
}

func LoadTrace(name string) ([]vehicle.State, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	states, err := ReadTrace(f)
	if err != nil {
		return nil, fmt.Errorf("trace %s: %w", name, err)
	}
	return states, nil
}

// WriteCommands writes one CSV row per cycle: frame, timestamp, throttle,
// brake, steer.
func WriteCommands(w io.Writer, result *Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"frame", "timestamp", "throttle", "brake", "steer"}); err != nil {
		return err
	}
	for i, cmd := range result.Commands {
		s := result.States[i]
		row := []string{
			strconv.Itoa(s.Frame),
			strconv.FormatFloat(s.Timestamp, 'f', 6, 64),
			strconv.FormatFloat(cmd.Throttle, 'f', 6, 64),
			strconv.FormatFloat(cmd.Brake, 'f', 6, 64),
			strconv.FormatFloat(cmd.Steer, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
