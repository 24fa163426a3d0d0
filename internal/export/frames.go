// Package export writes frame tables and rendered screens to files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/castplay/internal/cast"
	"github.com/san-kum/castplay/internal/timeline"
)

// Format names an output format for WriteTable.
type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
	Cast Format = "cast"
)

func Formats() []Format { return []Format{JSON, CSV, Cast} }

type ExportData struct {
	Title         string           `json:"title,omitempty"`
	Cols          int              `json:"cols"`
	Rows          int              `json:"rows"`
	Duration      float64          `json:"duration"`
	IdleTimeLimit *float64         `json:"idle_time_limit"`
	Events        int              `json:"events"`
	Frames        []timeline.Frame `json:"frames"`
}

// WriteTable writes t in the given format. header supplies the title and
// environment for formats that carry them.
func WriteTable(w io.Writer, format Format, t *timeline.Table, header cast.Header) error {
	switch format {
	case JSON:
		return WriteJSON(w, t, header.Title)
	case CSV:
		return WriteCSV(w, t.Frames)
	case Cast:
		return WriteCast(w, t, header)
	default:
		return fmt.Errorf("export: unknown format %q (available: %v)", format, Formats())
	}
}

func WriteJSON(w io.Writer, t *timeline.Table, title string) error {
	data := ExportData{
		Title:    title,
		Cols:     t.Cols,
		Rows:     t.Rows,
		Duration: t.Duration,
		Events:   t.Events,
		Frames:   t.Frames,
	}
	if t.Limited() {
		limit := t.IdleTimeLimit
		data.IdleTimeLimit = &limit
	}
	if data.Frames == nil {
		data.Frames = []timeline.Frame{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteCSV writes one row per frame: index, time, delay since the previous
// frame, byte length and data.
func WriteCSV(w io.Writer, frames []timeline.Frame) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"index", "time", "delay", "bytes", "data"}); err != nil {
		return err
	}

	prev := 0.0
	for i, f := range frames {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(f.Time, 'f', 6, 64),
			strconv.FormatFloat(f.Time-prev, 'f', 6, 64),
			strconv.Itoa(len(f.Data)),
			f.Data,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
		prev = f.Time
	}

	cw.Flush()
	return cw.Error()
}

// WriteCast writes t as an asciicast v2 recording. Times are the batched
// and compressed ones, so the output plays back exactly like t and needs no
// idle limit of its own.
func WriteCast(w io.Writer, t *timeline.Table, header cast.Header) error {
	h := cast.Header{
		Version:   2,
		Width:     t.Cols,
		Height:    t.Rows,
		Timestamp: header.Timestamp,
		Title:     header.Title,
		Env:       header.Env,
	}
	line, err := json.Marshal(h)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
		return err
	}

	for _, f := range t.Frames {
		data, err := json.Marshal(f.Data)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "[%s, %q, %s]\n", strconv.FormatFloat(f.Time, 'f', 6, 64), cast.KindOutput, data); err != nil {
			return err
		}
	}
	return nil
}
