// Package storage keeps a local library of imported recordings. Each
// recording lives in its own directory holding the original file and a
// JSON metadata document.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/san-kum/castplay/internal/cast"
	"github.com/san-kum/castplay/internal/timeline"
)

const (
	metadataFile  = "metadata.json"
	recordingFile = "recording.cast"

	// minPrefix is the shortest ID prefix Resolve accepts.
	minPrefix = 4
)

var (
	ErrNotFound  = errors.New("storage: recording not found")
	ErrAmbiguous = errors.New("storage: reference matches more than one recording")
	ErrExists    = errors.New("storage: name already in use")
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Metadata struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Source   string    `json:"source"`
	Imported time.Time `json:"imported"`
	Version  int       `json:"version"`
	Title    string    `json:"title,omitempty"`
	Cols     int       `json:"cols"`
	Rows     int       `json:"rows"`
	Events   int       `json:"events"`
	Frames   int       `json:"frames"`
	Duration float64   `json:"duration"`
	Size     int       `json:"size"`
}

// Import validates data as a recording and adds it to the library under
// name. The whole event stream is decoded, so a malformed file is rejected
// here rather than at playback.
func (s *Store) Import(name, source string, data []byte) (*Metadata, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("storage: empty name")
	}

	existing, err := s.List()
	if err != nil {
		return nil, err
	}
	if lo.ContainsBy(existing, func(m Metadata) bool { return m.Name == name }) {
		return nil, fmt.Errorf("%w: %q", ErrExists, name)
	}

	rec, err := cast.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", source, err)
	}
	table, err := timeline.Build(rec, timeline.Options{})
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", source, err)
	}

	meta := Metadata{
		ID:       uuid.NewString(),
		Name:     name,
		Source:   source,
		Imported: time.Now().UTC(),
		Version:  rec.Version(),
		Title:    rec.Header.Title,
		Cols:     table.Cols,
		Rows:     table.Rows,
		Events:   table.Events,
		Frames:   table.Len(),
		Duration: table.Duration,
		Size:     len(data),
	}

	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, recordingFile), data, 0644); err != nil {
		return nil, err
	}

	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// List returns every recording in import order. Directories without
// readable metadata are skipped.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	recs := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		recs = append(recs, *meta)
	}

	slices.SortFunc(recs, func(a, b Metadata) int {
		return a.Imported.Compare(b.Imported)
	})
	return recs, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("reading metadata %s: %w", id, err)
	}
	return &meta, nil
}

// Path returns the location of the stored recording file.
func (s *Store) Path(id string) string {
	return filepath.Join(s.baseDir, id, recordingFile)
}

// Resolve finds a recording by exact ID, exact name, or unique ID prefix.
func (s *Store) Resolve(ref string) (*Metadata, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrNotFound)
	}

	recs, err := s.List()
	if err != nil {
		return nil, err
	}

	if m, ok := lo.Find(recs, func(m Metadata) bool { return m.ID == ref || m.Name == ref }); ok {
		return &m, nil
	}

	if len(ref) >= minPrefix {
		matches := lo.Filter(recs, func(m Metadata, _ int) bool { return strings.HasPrefix(m.ID, ref) })
		switch len(matches) {
		case 0:
		case 1:
			return &matches[0], nil
		default:
			return nil, fmt.Errorf("%w: %q", ErrAmbiguous, ref)
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
}

// Remove deletes a recording by reference.
func (s *Store) Remove(ref string) (*Metadata, error) {
	meta, err := s.Resolve(ref)
	if err != nil {
		return nil, err
	}
	if err := os.RemoveAll(filepath.Join(s.baseDir, meta.ID)); err != nil {
		return nil, err
	}
	return meta, nil
}
