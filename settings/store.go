package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"unicode"

	"github.com/tidwall/gjson"

	"sse-journal/model"
)

// Default returns the settings used on first run.
func Default() *model.Settings {
	return &model.Settings{
		Fonts: map[model.FontRole]*model.FontConfig{
			model.FontText:    {Scale: 1, Color: 0xff202020, Size: 30, Glyphs: "default"},
			model.FontChapter: {Scale: 1, Color: 0xff101010, Size: 42, Glyphs: "default"},
			model.FontButton:  {Scale: 1, Color: 0xff303030, Size: 36, Glyphs: "default"},
			model.FontSystem:  {Scale: 1, Color: 0xffffffff, Size: 18, Glyphs: "default"},
		},
		Background: "Data/interface/sse-journal/book.dds",
		Titlebar:   true,
	}
}

type Store struct {
	Path    string
	Version model.Version
	logger  *log.Logger
}

func NewStore(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{Path: path, Version: model.Current, logger: logger}
}

type versionDoc struct {
	Major     int    `json:"major"`
	Minor     int    `json:"minor"`
	Patch     int    `json:"patch"`
	Timestamp string `json:"timestamp"`
}

type fontDoc struct {
	Scale  float32 `json:"scale"`
	Color  string  `json:"color"`
	Size   float32 `json:"size"`
	File   string  `json:"file"`
	Glyphs string  `json:"glyphs"`
	Ranges []rune  `json:"ranges"`
}

type backgroundDoc struct {
	File string `json:"file"`
}

type settingsDoc struct {
	Version    versionDoc    `json:"version"`
	Text       *fontDoc      `json:"text font,omitempty"`
	Chapter    *fontDoc      `json:"chapter font,omitempty"`
	Button     *fontDoc      `json:"button font,omitempty"`
	System     *fontDoc      `json:"system font,omitempty"`
	Background backgroundDoc `json:"background"`
	Titlebar   bool          `json:"titlebar"`
}

func roleKey(role model.FontRole) string {
	return string(role) + " font"
}

func toFontDoc(c *model.FontConfig) *fontDoc {
	if c == nil {
		return nil
	}
	ranges := c.Ranges
	if ranges == nil {
		ranges = []rune{}
	}
	return &fontDoc{
		Scale:  c.Scale,
		Color:  model.HexColor(c.Color),
		Size:   c.Size,
		File:   c.File,
		Glyphs: c.Glyphs,
		Ranges: ranges,
	}
}

func (s *Store) Save(st *model.Settings) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", model.ErrSerialization, r)
			s.logger.Printf("Unable to save settings file: %v", err)
		}
	}()

	doc := settingsDoc{
		Version: versionDoc{
			Major:     s.Version.Major,
			Minor:     s.Version.Minor,
			Patch:     s.Version.Patch,
			Timestamp: s.Version.Timestamp,
		},
		Text:       toFontDoc(st.Fonts[model.FontText]),
		Chapter:    toFontDoc(st.Fonts[model.FontChapter]),
		Button:     toFontDoc(st.Fonts[model.FontButton]),
		System:     toFontDoc(st.Fonts[model.FontSystem]),
		Background: backgroundDoc{File: st.Background},
		Titlebar:   st.Titlebar,
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		s.logger.Printf("Unable to save settings file: %v", err)
		return fmt.Errorf("%w: %v", model.ErrSerialization, err)
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		s.logger.Printf("Unable to open %s for writing.", s.Path)
		return fmt.Errorf("%w: %v", model.ErrIO, err)
	}
	return nil
}

// Load reads the settings file. Keys missing from the file keep their
// defaults; a missing file yields the defaults without error.
func (s *Store) Load() (st *model.Settings, err error) {
	defer func() {
		if r := recover(); r != nil {
			st, err = nil, fmt.Errorf("%w: %v", model.ErrParse, r)
			s.logger.Printf("Unable to load settings file: %v", err)
		}
	}()

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Printf("No settings file at %s, using defaults.", s.Path)
		return Default(), nil
	}
	if err != nil {
		s.logger.Printf("Unable to open %s for reading.", s.Path)
		return nil, fmt.Errorf("%w: %v", model.ErrIO, err)
	}

	st, err = s.decode(data)
	if err != nil {
		s.logger.Printf("Unable to load settings file: %v", err)
		return nil, err
	}
	return st, nil
}

func (s *Store) decode(data []byte) (*model.Settings, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not a JSON document", model.ErrParse)
	}
	root := gjson.ParseBytes(data)

	major := root.Get("version.major")
	if major.Type != gjson.Number {
		return nil, fmt.Errorf("%w: missing major version", model.ErrParse)
	}
	if !s.Version.Compatible(int(major.Int())) {
		return nil, fmt.Errorf("%w: settings major version %d, expected %d",
			model.ErrVersionMismatch, major.Int(), s.Version.Major)
	}

	st := Default()
	for _, role := range model.FontRoles {
		v := root.Get(roleKey(role))
		if !v.Exists() {
			continue
		}
		if !v.IsObject() {
			return nil, fmt.Errorf("%w: %s is not an object", model.ErrParse, roleKey(role))
		}
		if err := decodeFont(v, st.Fonts[role]); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", model.ErrParse, roleKey(role), err)
		}
	}
	if bg := root.Get("background.file"); bg.Exists() {
		st.Background = bg.String()
	}
	if tb := root.Get("titlebar"); tb.Exists() {
		st.Titlebar = tb.Bool()
	}
	return st, nil
}

func decodeFont(v gjson.Result, c *model.FontConfig) error {
	if scale := v.Get("scale"); scale.Exists() {
		c.Scale = float32(scale.Float())
	}
	if color := v.Get("color"); color.Exists() {
		if color.Type == gjson.Number {
			c.Color = uint32(color.Uint())
		} else {
			col, err := model.ParseColor(color.String())
			if err != nil {
				return err
			}
			c.Color = col
		}
	}
	if size := v.Get("size"); size.Exists() {
		c.Size = float32(size.Float())
	}
	if file := v.Get("file"); file.Exists() {
		c.File = file.String()
	}
	if glyphs := v.Get("glyphs"); glyphs.Exists() {
		c.Glyphs = glyphs.String()
	}
	if ranges := v.Get("ranges"); ranges.Exists() {
		arr := ranges.Array()
		if !ranges.IsArray() || len(arr)%2 != 0 {
			return fmt.Errorf("ranges must be an even list of code points")
		}
		c.Ranges = make([]rune, 0, len(arr))
		for i := 0; i < len(arr); i += 2 {
			from, to := arr[i].Int(), arr[i+1].Int()
			if from <= 0 || to < from || to > unicode.MaxRune {
				return fmt.Errorf("bad range %#x-%#x", from, to)
			}
			c.Ranges = append(c.Ranges, rune(from), rune(to))
		}
	}
	return nil
}
