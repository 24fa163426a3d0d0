// Package fetch retrieves raw recording bytes from a URL or a local path.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultTimeout bounds a single HTTP fetch when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Options are per-request fetch settings.
type Options struct {
	Headers map[string]string
	Timeout time.Duration
}

// Fetcher loads the bytes behind a recording location.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts Options) ([]byte, error)
}

// TransportError reports a location that could not be read. Status is the
// HTTP status code, or 0 when no response was received.
type TransportError struct {
	URL     string
	Status  int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %s", e.URL, e.Status, e.Message)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTP fetches over http and https.
type HTTP struct {
	Client    *http.Client
	UserAgent string
}

func (h *HTTP) Fetch(ctx context.Context, url string, opts Options) ([]byte, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Message: fmt.Sprintf("creating request: %v", err), Err: err}
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	if req.Header.Get("User-Agent") == "" {
		ua := h.UserAgent
		if ua == "" {
			ua = "castplay"
		}
		req.Header.Set("User-Agent", ua)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Message: fmt.Sprintf("performing request: %v", err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{URL: url, Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Status: resp.StatusCode, Message: fmt.Sprintf("reading response body: %v", err), Err: err}
	}
	return data, nil
}

// File reads local paths. A "file://" prefix is accepted.
type File struct{}

func (File) Fetch(ctx context.Context, url string, _ Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := strings.TrimPrefix(url, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &TransportError{URL: url, Message: err.Error(), Err: err}
	}
	return data, nil
}

// Auto dispatches http and https URLs to HTTP and everything else to File.
type Auto struct {
	HTTP HTTP
	File File
}

// New returns a fetcher for both remote and local locations.
func New() *Auto {
	return &Auto{}
}

func (a *Auto) Fetch(ctx context.Context, url string, opts Options) ([]byte, error) {
	if IsRemote(url) {
		return a.HTTP.Fetch(ctx, url, opts)
	}
	return a.File.Fetch(ctx, url, opts)
}

// IsRemote reports whether url uses an http scheme.
func IsRemote(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

// Bytes is a Fetcher that always returns the same data, for recordings that
// are already in memory.
type Bytes []byte

func (b Bytes) Fetch(context.Context, string, Options) ([]byte, error) {
	return b, nil
}
