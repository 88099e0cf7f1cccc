package images

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"sse-journal/model"
)

// Loader turns a source path into a decoded image.
type Loader interface {
	Load(path string) (*Image, error)
}

// Source is one entry of the table.
type Source struct {
	Refcount uint
	FilePath string
	Image    *Image
}

// Table shares decoded images between pages. Entries are keyed by an opaque
// handle and deduplicated by source path.
type Table struct {
	loader  Loader
	logger  *log.Logger
	entries map[model.Handle]*Source
	byPath  map[string]model.Handle
	next    model.Handle
}

func NewTable(loader Loader, logger *log.Logger) *Table {
	if logger == nil {
		logger = log.Default()
	}
	return &Table{
		loader:  loader,
		logger:  logger,
		entries: make(map[model.Handle]*Source),
		byPath:  make(map[string]model.Handle),
	}
}

func normalize(path string) string {
	if isRemote(path) {
		return path
	}
	return filepath.Clean(path)
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Obtain returns a handle for path, loading the image only if no entry with
// the same path exists. Every successful call adds one reference.
func (t *Table) Obtain(path string) (model.Handle, error) {
	key := normalize(path)
	if h, ok := t.byPath[key]; ok {
		t.entries[h].Refcount++
		return h, nil
	}

	img, err := t.loader.Load(path)
	if err != nil {
		t.logger.Printf("Unable to load image %s: %v", path, err)
		return 0, fmt.Errorf("%w: %s: %v", model.ErrImageLoad, path, err)
	}

	t.next++
	h := t.next
	t.entries[h] = &Source{Refcount: 1, FilePath: key, Image: img}
	t.byPath[key] = h
	return h, nil
}

// Release drops one reference. It reports false for unknown handles or
// entries that are already unreferenced.
func (t *Table) Release(h model.Handle) bool {
	s, ok := t.entries[h]
	if !ok || s.Refcount == 0 {
		return false
	}
	s.Refcount--
	return true
}

func (t *Table) Path(h model.Handle) (string, bool) {
	s, ok := t.entries[h]
	if !ok {
		return "", false
	}
	return s.FilePath, true
}

func (t *Table) Image(h model.Handle) (*Image, bool) {
	s, ok := t.entries[h]
	if !ok {
		return nil, false
	}
	return s.Image, true
}

func (t *Table) Refcount(h model.Handle) uint {
	if s, ok := t.entries[h]; ok {
		return s.Refcount
	}
	return 0
}

// Sweep removes every unreferenced entry and returns how many were dropped.
func (t *Table) Sweep() int {
	n := 0
	for h, s := range t.entries {
		if s.Refcount > 0 {
			continue
		}
		delete(t.entries, h)
		delete(t.byPath, s.FilePath)
		n++
	}
	if n > 0 {
		t.logger.Printf("Released %d unused image(s).", n)
	}
	return n
}

func (t *Table) Len() int {
	return len(t.entries)
}
