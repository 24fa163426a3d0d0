package timeline

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrStartAt indicates an unparseable start position.
var ErrStartAt = errors.New("timeline: invalid start position")

// StartAt is a playback start position, either in seconds of original
// recording time or as a percentage of the compressed duration.
type StartAt struct {
	Value   float64
	Percent bool
}

// ParseStartAt accepts "", "12.5" (seconds), "1:30" or "1:02:03"
// (clock notation) and "25%".
func ParseStartAt(s string) (StartAt, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return StartAt{}, nil
	}

	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || !finite(v) || v < 0 || v > 100 {
			return StartAt{}, fmt.Errorf("%w: %q", ErrStartAt, s)
		}
		return StartAt{Value: v, Percent: true}, nil
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) > 3 {
			return StartAt{}, fmt.Errorf("%w: %q", ErrStartAt, s)
		}
		total := 0.0
		for _, part := range parts {
			v, err := strconv.ParseFloat(part, 64)
			if err != nil || !finite(v) || v < 0 {
				return StartAt{}, fmt.Errorf("%w: %q", ErrStartAt, s)
			}
			total = total*60 + v
		}
		return StartAt{Value: total}, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(v) || v < 0 {
		return StartAt{}, fmt.Errorf("%w: %q", ErrStartAt, s)
	}
	return StartAt{Value: v}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (s StartAt) String() string {
	if s.Percent {
		return strconv.FormatFloat(s.Value, 'f', -1, 64) + "%"
	}
	return strconv.FormatFloat(s.Value, 'f', -1, 64)
}
