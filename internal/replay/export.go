package replay

import (
	"encoding/json"
	"io"

	"github.com/san-kum/waypointctl/internal/vehicle"
)

type ExportData struct {
	Cycles   int                `json:"cycles"`
	Failed   int                `json:"failed"`
	States   []vehicle.State    `json:"states"`
	Commands []vehicle.Command  `json:"commands"`
	Errors   []string           `json:"errors,omitempty"`
	Metrics  map[string]float64 `json:"metrics"`
}

// WriteJSON writes the result as one indented JSON document.
func WriteJSON(w io.Writer, r *Result) error {
	data := ExportData{
		Cycles:   r.Cycles,
		Failed:   len(r.Errors),
		States:   r.States,
		Commands: r.Commands,
		Metrics:  r.Metrics,
	}
	for _, err := range r.Errors {
		data.Errors = append(data.Errors, err.Error())
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
