package legacy

import (
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"sse-journal/book"
	"sse-journal/model"
)

// maxEntries bounds NumberOfEntries so a corrupt count cannot allocate
// millions of blank pages.
const maxEntries = 1 << 16

// ImportFISS reads a FISS notes file into a new book with at least floor pages.
func ImportFISS(path string, floor int, logger *log.Logger) (*model.Book, error) {
	if logger == nil {
		logger = log.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		logger.Printf("Unable to open %s for reading.", path)
		return nil, fmt.Errorf("%w: %v", model.ErrIO, err)
	}
	defer f.Close()

	b, err := DecodeFISS(f, floor, logger)
	if err != nil {
		logger.Printf("Unable to import %s: %v", path, err)
		return nil, err
	}
	return b, nil
}

// DecodeFISS converts a FISS document. Missing date or entry nodes leave the
// matching title or content empty.
func DecodeFISS(r io.Reader, floor int, logger *log.Logger) (*model.Book, error) {
	if logger == nil {
		logger = log.Default()
	}

	// A byte order mark is stripped and UTF-16 is converted to UTF-8. Input
	// without one is left for the declared encoding to handle.
	decoder := xml.NewDecoder(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	decoder.CharsetReader = charsetReader

	var doc model.FISSDocument
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrParse, err)
	}
	if doc.Data == nil {
		return nil, fmt.Errorf("%w: missing fiss/Data", model.ErrParse)
	}
	if doc.Data.NumberOfEntries == nil {
		return nil, fmt.Errorf("%w: missing NumberOfEntries", model.ErrParse)
	}
	n, err := strconv.Atoi(strings.TrimSpace(*doc.Data.NumberOfEntries))
	if err != nil || n < 0 || n > maxEntries {
		return nil, fmt.Errorf("%w: bad NumberOfEntries %q", model.ErrParse, *doc.Data.NumberOfEntries)
	}

	b := &model.Book{Version: model.Current, Pages: make([]*model.Page, n)}
	for i := range b.Pages {
		b.Pages[i] = &model.Page{}
	}

	seen := 0
	for _, node := range doc.Data.Nodes {
		name := node.XMLName.Local
		var field func(p *model.Page, v string)
		var suffix string
		switch {
		case strings.HasPrefix(name, "date"):
			suffix = name[len("date"):]
			field = func(p *model.Page, v string) { p.Title = v }
		case strings.HasPrefix(name, "entry"):
			suffix = name[len("entry"):]
			field = func(p *model.Page, v string) { p.Content = v }
		default:
			continue
		}
		i, err := strconv.Atoi(suffix)
		if err != nil || i < 1 || i > n {
			logger.Printf("Ignoring FISS node %s.", name)
			continue
		}
		field(b.Pages[i-1], node.Value)
		seen++
	}
	if seen < 2*n {
		logger.Printf("FISS file declares %d entries but only %d of %d nodes are present.", n, seen, 2*n)
	}

	book.Repair(b, floor, logger)
	b.Current = 0
	return b, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	switch label {
	case "utf-8", "utf8", "utf-16", "utf-16le", "utf-16be":
		return input, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
