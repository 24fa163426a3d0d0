package cast

// Kind identifies the type of a v2 event line.
type Kind string

const (
	// KindOutput is data written to the terminal.
	KindOutput Kind = "o"
	// KindInput is data read from the keyboard.
	KindInput Kind = "i"
	// KindMarker is a named bookmark.
	KindMarker Kind = "m"
	// KindResize carries a new "COLSxROWS" size.
	KindResize Kind = "r"
)

// Header holds the recording metadata common to both formats.
type Header struct {
	Version       int               `json:"version"`
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	Timestamp     int64             `json:"timestamp,omitempty"`
	IdleTimeLimit *float64          `json:"idle_time_limit,omitempty"`
	Title         string            `json:"title,omitempty"`
	Env           map[string]string `json:"env,omitempty"`
}

// Event is one chunk of terminal output at an absolute time in seconds.
type Event struct {
	Time float64
	Data string
}

// Recording is a parsed asciicast whose events are decoded on demand.
type Recording struct {
	Header Header

	// v2: raw event lines following the header, with their 1-based line numbers.
	lines   []string
	lineNos []int

	// v1: already decoded [delay, data] pairs.
	stdout []v1Frame
}

// Cols returns the terminal width.
func (r *Recording) Cols() int { return r.Header.Width }

// Rows returns the terminal height.
func (r *Recording) Rows() int { return r.Header.Height }

// Version returns the asciicast format version (1 or 2).
func (r *Recording) Version() int { return r.Header.Version }
