package cast

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty indicates the input contained no data.
	ErrEmpty = errors.New("cast: empty recording")

	// ErrNoSchema indicates the input matched neither the v1 nor the v2 layout.
	ErrNoSchema = errors.New("cast: not an asciicast v1 or v2 recording")

	// ErrBadEvent indicates an event entry with the wrong shape or types.
	ErrBadEvent = errors.New("cast: malformed event")
)

// FormatError reports input that could not be decoded as an asciicast.
// Version is 0 when no format could be committed to. Line is the 1-based
// line of a malformed v2 event, or 0.
type FormatError struct {
	Version int
	Line    int
	Err     error
}

func (e *FormatError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("asciicast v%d, line %d: %v", e.Version, e.Line, e.Err)
	case e.Version > 0:
		return fmt.Sprintf("asciicast v%d: %v", e.Version, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
