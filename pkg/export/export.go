package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kilianp07/partminder/core/interval"
	"github.com/kilianp07/partminder/core/model"
	"github.com/kilianp07/partminder/core/partstore"
)

// Formats lists the accepted values for Write.
var Formats = []string{"text", "csv", "json"}

// Write renders parts in the named format.
func Write(w io.Writer, format string, parts []model.Part) error {
	switch format {
	case "", "text":
		return WriteText(w, parts)
	case "csv":
		return WriteCSV(w, parts)
	case "json":
		return WriteJSON(w, parts)
	default:
		return fmt.Errorf("unknown format %q (want one of %v)", format, Formats)
	}
}

// WriteText writes the human readable listing shown by the interactive menu.
func WriteText(w io.Writer, parts []model.Part) error {
	if _, err := fmt.Fprint(w, "\nCurrently, the available data entries are the following:\n\n"); err != nil {
		return err
	}
	for _, p := range parts {
		if _, err := fmt.Fprintf(w, "%s: Last changed on %s. Must be changed every %d months, or every %d kilometers.\n\n",
			p.Name, interval.Format(p.LastChanged), p.IntervalMonths, p.IntervalKm); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV writes parts in the store's CSV layout, header included.
func WriteCSV(w io.Writer, parts []model.Part) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(partstore.Header); err != nil {
		return err
	}
	for _, p := range parts {
		if err := cw.Write(partstore.EncodeRow(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonPart struct {
	Name           string `json:"name"`
	LastChanged    string `json:"last_changed_date"`
	IntervalMonths int    `json:"date_interval_months"`
	LastMileage    int    `json:"last_changed_mileage"`
	IntervalKm     int    `json:"mileage_interval"`
}

// WriteJSON writes parts as a JSON array with dates as YYYY-MM-DD.
func WriteJSON(w io.Writer, parts []model.Part) error {
	out := make([]jsonPart, 0, len(parts))
	for _, p := range parts {
		out = append(out, jsonPart{
			Name:           p.Name,
			LastChanged:    interval.Format(p.LastChanged),
			IntervalMonths: p.IntervalMonths,
			LastMileage:    p.LastMileage,
			IntervalKm:     p.IntervalKm,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
