package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/spiralsim/internal/spiral"
)

var ErrNotFound = errors.New("storage: traversal not found")

// Store keeps generated traversals on disk, one directory per traversal.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type TraversalMetadata struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	DelayMS   int       `json:"delay_ms"`
	Steps     int       `json:"steps"`
	Last      string    `json:"last"`
}

// Save writes metadata.json and path.csv for tl and returns the new id.
func (s *Store) Save(rows, cols int, delay time.Duration, tl spiral.Timeline) (string, error) {
	ts := s.now()
	id := fmt.Sprintf("spiral_%dx%d_%d", rows, cols, ts.UnixNano())
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	meta := TraversalMetadata{
		ID:        id,
		Timestamp: ts,
		Rows:      rows,
		Cols:      cols,
		DelayMS:   int(delay / time.Millisecond),
		Steps:     tl.Len(),
	}
	if tl.Len() > 0 {
		meta.Last = tl[tl.Len()-1].String()
	}

	if err := writeJSON(filepath.Join(dir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writePath(filepath.Join(dir, "path.csv"), tl, spiral.NewGrid(rows, cols)); err != nil {
		return "", err
	}
	return id, nil
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func writePath(path string, tl spiral.Timeline, grid *spiral.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"step", "row", "col", "value"}); err != nil {
		return err
	}
	for i, c := range tl {
		row := []string{
			strconv.Itoa(i),
			strconv.Itoa(c.Row),
			strconv.Itoa(c.Col),
			strconv.Itoa(grid.Value(c.Row, c.Col)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns saved traversals, oldest first. Unreadable entries are skipped.
func (s *Store) List() ([]TraversalMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []TraversalMetadata{}, nil
		}
		return nil, err
	}

	out := make([]TraversalMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		out = append(out, *meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (s *Store) Load(id string) (*TraversalMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta TraversalMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", id, err)
	}
	return &meta, nil
}

// LoadPath reads back the visiting order saved under id.
func (s *Store) LoadPath(id string) (spiral.Timeline, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, "path.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s path: %w", id, err)
	}
	if len(records) < 2 {
		return spiral.Timeline{}, nil
	}

	tl := make(spiral.Timeline, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) < 3 {
			return nil, fmt.Errorf("%s path line %d: expected 3+ fields, got %d", id, i+2, len(rec))
		}
		r, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("%s path line %d: %w", id, i+2, err)
		}
		c, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("%s path line %d: %w", id, i+2, err)
		}
		tl = append(tl, spiral.Coord{Row: r, Col: c})
	}
	return tl, nil
}
