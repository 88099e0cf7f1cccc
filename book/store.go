package book

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/tidwall/gjson"

	"sse-journal/model"
)

// ImageTable resolves image sources to handles and back.
type ImageTable interface {
	Obtain(path string) (model.Handle, error)
	Path(h model.Handle) (string, bool)
}

// Store reads and writes book files.
type Store struct {
	Version  model.Version
	MinPages int
	Images   ImageTable
	logger   *log.Logger
}

func NewStore(images ImageTable, minPages int, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	if minPages < MinFloor {
		minPages = MinFloor
	}
	return &Store{
		Version:  model.Current,
		MinPages: minPages,
		Images:   images,
		logger:   logger,
	}
}

type versionDoc struct {
	Major     int    `json:"major"`
	Minor     int    `json:"minor"`
	Patch     int    `json:"patch"`
	Timestamp string `json:"timestamp"`
}

type imageDoc struct {
	File       string     `json:"file"`
	Background bool       `json:"background"`
	Tint       string     `json:"tint"`
	UV         [4]float32 `json:"uv"`
	XY         [4]float32 `json:"xy"`
}

type pageDoc struct {
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Image   *imageDoc `json:"image,omitempty"`
}

// pageList is written as an object keyed by the decimal page index, in
// reading order.
type pageList []pageDoc

func (l pageList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(i)))
		buf.WriteByte(':')
		b, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type bookDoc struct {
	Version versionDoc `json:"version"`
	Size    int        `json:"size"`
	Current int        `json:"current"`
	Pages   pageList   `json:"pages"`
}

// Save writes b to path. The file is only touched once the document has
// been produced.
func (s *Store) Save(path string, b *model.Book) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", model.ErrSerialization, r)
			s.logger.Printf("Unable to save book: %v", err)
		}
	}()

	doc := bookDoc{
		Version: versionDoc{
			Major:     s.Version.Major,
			Minor:     s.Version.Minor,
			Patch:     s.Version.Patch,
			Timestamp: s.Version.Timestamp,
		},
		Size:    len(b.Pages),
		Current: b.Current,
		Pages:   make(pageList, 0, len(b.Pages)),
	}
	for i, p := range b.Pages {
		pd := pageDoc{Title: p.Title, Content: p.Content}
		if p.Image != nil {
			if file := s.imageFile(p.Image); file != "" {
				pd.Image = &imageDoc{
					File:       file,
					Background: p.Image.Background,
					Tint:       model.HexColor(p.Image.Tint),
					UV:         p.Image.UV,
					XY:         p.Image.XY,
				}
			} else {
				s.logger.Printf("Page %d references an unknown image, dropping it.", i)
			}
		}
		doc.Pages = append(doc.Pages, pd)
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		s.logger.Printf("Unable to save book: %v", err)
		return fmt.Errorf("%w: %v", model.ErrSerialization, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		s.logger.Printf("Unable to open %s for writing.", path)
		return fmt.Errorf("%w: %v", model.ErrIO, err)
	}
	return nil
}

func (s *Store) imageFile(ref *model.ImageRef) string {
	if s.Images != nil && ref.Handle != 0 {
		if p, ok := s.Images.Path(ref.Handle); ok {
			return p
		}
	}
	return ref.File
}

// Load reads a book from path. Pages are ordered by their numeric key, gaps
// collapse, the page floor is restored and an out of range current page is
// reset to the first one. Images are obtained from the table; a page whose
// image fails to load keeps its text and loses the image.
func (s *Store) Load(path string) (b *model.Book, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("%w: %v", model.ErrParse, r)
			s.logger.Printf("Unable to load book: %v", err)
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Printf("Unable to open %s for reading.", path)
		return nil, fmt.Errorf("%w: %v", model.ErrIO, err)
	}

	b, err = s.decode(data)
	if err != nil {
		s.logger.Printf("Unable to load book: %v", err)
		return nil, err
	}

	Repair(b, s.MinPages, s.logger)
	s.resolveImages(b)
	return b, nil
}

func (s *Store) decode(data []byte) (*model.Book, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not a JSON document", model.ErrParse)
	}
	root := gjson.ParseBytes(data)

	version, err := decodeVersion(root.Get("version"))
	if err != nil {
		return nil, err
	}
	if !s.Version.Compatible(version.Major) {
		return nil, fmt.Errorf("%w: book major version %d, expected %d",
			model.ErrVersionMismatch, version.Major, s.Version.Major)
	}

	pages := root.Get("pages")
	if !pages.IsObject() {
		return nil, fmt.Errorf("%w: missing pages", model.ErrParse)
	}

	// Keys may be sparse or out of order. Duplicates keep the last entry.
	byIndex := make(map[int]*model.Page)
	var perr error
	pages.ForEach(func(key, value gjson.Result) bool {
		ndx, err := strconv.ParseUint(key.String(), 10, 31)
		if err != nil {
			perr = fmt.Errorf("%w: bad page index %q", model.ErrParse, key.String())
			return false
		}
		if !value.IsObject() {
			perr = fmt.Errorf("%w: page %s is not an object", model.ErrParse, key.String())
			return false
		}
		p, err := decodePage(value)
		if err != nil {
			perr = fmt.Errorf("%w: page %s: %v", model.ErrParse, key.String(), err)
			return false
		}
		byIndex[int(ndx)] = p
		return true
	})
	if perr != nil {
		return nil, perr
	}

	keys := make([]int, 0, len(byIndex))
	for k := range byIndex {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	b := &model.Book{Version: version, Pages: make([]*model.Page, 0, len(keys))}
	for _, k := range keys {
		b.Pages = append(b.Pages, byIndex[k])
	}

	current := root.Get("current")
	if current.Exists() {
		// Range checking happens in Repair, once the floor is restored.
		c := current.Int()
		if c > math.MaxInt32 {
			c = -1
		}
		b.Current = int(c)
	}
	return b, nil
}

func decodeVersion(v gjson.Result) (model.Version, error) {
	if !v.IsObject() {
		return model.Version{}, fmt.Errorf("%w: missing version", model.ErrParse)
	}
	major := v.Get("major")
	if major.Type != gjson.Number {
		return model.Version{}, fmt.Errorf("%w: missing major version", model.ErrParse)
	}
	return model.Version{
		Major:     int(major.Int()),
		Minor:     int(v.Get("minor").Int()),
		Patch:     int(v.Get("patch").Int()),
		Timestamp: v.Get("timestamp").String(),
	}, nil
}

func decodePage(v gjson.Result) (*model.Page, error) {
	p := &model.Page{
		Title:   v.Get("title").String(),
		Content: v.Get("content").String(),
	}
	img := v.Get("image")
	if !img.Exists() {
		return p, nil
	}
	if !img.IsObject() {
		return nil, fmt.Errorf("image is not an object")
	}
	ref := &model.ImageRef{
		File:       img.Get("file").String(),
		Background: img.Get("background").Bool(),
		Tint:       0xffffffff,
	}
	if tint := img.Get("tint"); tint.Exists() {
		var err error
		if tint.Type == gjson.Number {
			ref.Tint = uint32(tint.Uint())
		} else if ref.Tint, err = model.ParseColor(tint.String()); err != nil {
			return nil, err
		}
	}
	if err := decodeQuad(img.Get("uv"), &ref.UV); err != nil {
		return nil, fmt.Errorf("uv: %v", err)
	}
	if err := decodeQuad(img.Get("xy"), &ref.XY); err != nil {
		return nil, fmt.Errorf("xy: %v", err)
	}
	p.Image = ref
	return p, nil
}

func decodeQuad(v gjson.Result, dst *[4]float32) error {
	if !v.Exists() {
		return nil
	}
	arr := v.Array()
	if !v.IsArray() || len(arr) != 4 {
		return fmt.Errorf("expected 4 numbers")
	}
	for i, n := range arr {
		dst[i] = float32(n.Float())
	}
	return nil
}

func (s *Store) resolveImages(b *model.Book) {
	if s.Images == nil {
		return
	}
	for i, p := range b.Pages {
		if p.Image == nil {
			continue
		}
		if p.Image.File == "" {
			p.Image = nil
			continue
		}
		h, err := s.Images.Obtain(p.Image.File)
		if err != nil {
			s.logger.Printf("Page %d: %v", i, err)
			p.Image = nil
			continue
		}
		p.Image.Handle = h
	}
}
