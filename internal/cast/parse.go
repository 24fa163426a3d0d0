package cast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"strings"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Parse decodes an asciicast recording. Header fields and the event layout
// are validated up front; individual v2 event lines are decoded lazily by
// [Recording.Events].
func Parse(data []byte) (*Recording, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &FormatError{Err: ErrEmpty}
	}

	first, rest := splitFirstLine(data)
	if isV2Header(first) {
		return parseV2(first, rest)
	}
	return parseV1(data)
}

func splitFirstLine(data []byte) ([]byte, []byte) {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return data[:i], data[i+1:]
	}
	return data, nil
}

// isV2Header reports whether line is a JSON object with "version": 2.
func isV2Header(line []byte) bool {
	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(line), &probe); err != nil {
		return false
	}
	return probe.Version == 2
}

func parseV2(headerLine, body []byte) (*Recording, error) {
	var h Header
	if err := json.Unmarshal(bytes.TrimSpace(headerLine), &h); err != nil {
		return nil, &FormatError{Version: 2, Line: 1, Err: err}
	}

	rec := &Recording{Header: h}
	lineNo := 1
	for _, line := range strings.Split(string(body), "\n") {
		lineNo++
		line = strings.TrimRight(line, "\r")
		if !strings.HasPrefix(line, "[") {
			continue
		}
		rec.lines = append(rec.lines, line)
		rec.lineNos = append(rec.lineNos, lineNo)
	}
	return rec, nil
}

type v1Frame struct {
	Delay float64
	Data  string
}

func (f *v1Frame) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEvent, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: want [delay, data], got %d fields", ErrBadEvent, len(pair))
	}
	if err := json.Unmarshal(pair[0], &f.Delay); err != nil {
		return fmt.Errorf("%w: delay: %v", ErrBadEvent, err)
	}
	if err := json.Unmarshal(pair[1], &f.Data); err != nil {
		return fmt.Errorf("%w: data: %v", ErrBadEvent, err)
	}
	return nil
}

type v1Document struct {
	Width  int               `json:"width"`
	Height int               `json:"height"`
	Title  string            `json:"title"`
	Env    map[string]string `json:"env"`
	Stdout []v1Frame         `json:"stdout"`
}

func parseV1(data []byte) (*Recording, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &FormatError{Err: fmt.Errorf("%w: %v", ErrNoSchema, err)}
	}
	if _, ok := fields["stdout"]; !ok {
		return nil, &FormatError{Err: fmt.Errorf("%w: missing v2 header and v1 stdout", ErrNoSchema)}
	}
	if raw, ok := fields["version"]; ok {
		var v int
		if err := json.Unmarshal(raw, &v); err != nil || v != 1 {
			return nil, &FormatError{Err: fmt.Errorf("%w: unsupported version %s", ErrNoSchema, raw)}
		}
	}

	var doc v1Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &FormatError{Version: 1, Err: err}
	}

	return &Recording{
		Header: Header{
			Version: 1,
			Width:   doc.Width,
			Height:  doc.Height,
			Title:   doc.Title,
			Env:     doc.Env,
		},
		stdout: doc.Stdout,
	}, nil
}

// Events returns the recording's output events in order. Input, marker and
// resize events are skipped. Iteration stops after the first error, which
// is always a *FormatError.
func (r *Recording) Events() iter.Seq2[Event, error] {
	if r.Header.Version == 2 {
		return r.v2Events
	}
	return r.v1Events
}

func (r *Recording) v1Events(yield func(Event, error) bool) {
	t := 0.0
	for _, f := range r.stdout {
		t += f.Delay
		if !yield(Event{Time: t, Data: f.Data}, nil) {
			return
		}
	}
}

func (r *Recording) v2Events(yield func(Event, error) bool) {
	for i, line := range r.lines {
		ev, kind, err := decodeV2Event(line)
		if err != nil {
			yield(Event{}, &FormatError{Version: 2, Line: r.lineNos[i], Err: err})
			return
		}
		if kind != KindOutput {
			continue
		}
		if !yield(ev, nil) {
			return
		}
	}
}

func decodeV2Event(line string) (Event, Kind, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		return Event{}, "", fmt.Errorf("%w: %v", ErrBadEvent, err)
	}
	if len(fields) < 3 {
		return Event{}, "", fmt.Errorf("%w: want [time, kind, data], got %d fields", ErrBadEvent, len(fields))
	}

	var ev Event
	var kind Kind
	if err := json.Unmarshal(fields[0], &ev.Time); err != nil {
		return Event{}, "", fmt.Errorf("%w: time: %v", ErrBadEvent, err)
	}
	if err := json.Unmarshal(fields[1], &kind); err != nil {
		return Event{}, "", fmt.Errorf("%w: kind: %v", ErrBadEvent, err)
	}
	if kind != KindOutput {
		return ev, kind, nil
	}
	if err := json.Unmarshal(fields[2], &ev.Data); err != nil {
		return Event{}, "", fmt.Errorf("%w: data: %v", ErrBadEvent, err)
	}
	return ev, kind, nil
}
