package player

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded indicates an operation that needs the frame table was
	// called before Init or Start.
	ErrNotLoaded = errors.New("player: recording not loaded")

	// ErrReleased indicates a call on a driver that was stopped.
	ErrReleased = errors.New("player: driver stopped")

	// ErrInvalidTarget indicates an unparseable seek target.
	ErrInvalidTarget = errors.New("player: invalid seek target")
)

// LoadError wraps a fetch, parse or build failure with the source location.
type LoadError struct {
	URL     string
	Wrapped error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("player: loading %s: %v", e.URL, e.Wrapped)
}

func (e *LoadError) Unwrap() error {
	return e.Wrapped
}
