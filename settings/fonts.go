package settings

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"sse-journal/model"
)

// Font is a constructed font for one role. Scale and Color can change at any
// time; the face is fixed once built.
type Font struct {
	Role   model.FontRole
	Scale  float32
	Color  uint32
	Size   float32
	File   string
	Glyphs string
	Ranges []rune
	Face   font.Face
}

type FontSet struct {
	fonts map[model.FontRole]*Font
}

func NewFontSet() *FontSet {
	return &FontSet{fonts: make(map[model.FontRole]*Font)}
}

func (s *FontSet) Get(role model.FontRole) *Font {
	return s.fonts[role]
}

func (s *FontSet) Close() {
	for role, f := range s.fonts {
		if f.Face != nil {
			f.Face.Close()
		}
		delete(s.fonts, role)
	}
}

// FontLoader builds a face from a font configuration.
type FontLoader interface {
	LoadFont(c *model.FontConfig) (font.Face, error)
}

// Apply pushes st onto set. Existing fonts only take the new scale and
// color; fonts not built yet are constructed with the full configuration.
func Apply(st *model.Settings, set *FontSet, loader FontLoader, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	var errs []error
	for _, role := range model.FontRoles {
		c := st.Fonts[role]
		if c == nil {
			continue
		}
		if f := set.fonts[role]; f != nil {
			f.Scale = c.Scale
			f.Color = c.Color
			if c.Size != f.Size || c.File != f.File || c.Glyphs != f.Glyphs {
				logger.Printf("The %s font size or glyphs change after restart.", role)
			}
			continue
		}
		face, err := loader.LoadFont(c)
		if err != nil {
			logger.Printf("Unable to build the %s font: %v", role, err)
			errs = append(errs, fmt.Errorf("%s font: %w", role, err))
			continue
		}
		set.fonts[role] = &Font{
			Role:   role,
			Scale:  c.Scale,
			Color:  c.Color,
			Size:   c.Size,
			File:   c.File,
			Glyphs: c.Glyphs,
			Ranges: append([]rune(nil), c.Ranges...),
			Face:   face,
		}
	}
	return errors.Join(errs...)
}

// glyphSets are the named base ranges a font can be built with.
var glyphSets = map[string][]rune{
	"default":    {0x0020, 0x00ff},
	"cyrillic":   {0x0020, 0x00ff, 0x0400, 0x052f, 0x2de0, 0x2dff, 0xa640, 0xa69f},
	"greek":      {0x0020, 0x00ff, 0x0370, 0x03ff},
	"thai":       {0x0020, 0x00ff, 0x2010, 0x205e, 0x0e00, 0x0e7f},
	"vietnamese": {0x0020, 0x00ff, 0x0102, 0x0103, 0x0110, 0x0111, 0x0128, 0x0129, 0x0168, 0x0169, 0x01a0, 0x01a1, 0x01af, 0x01b0, 0x1ea0, 0x1ef9},
}

// GlyphRanges returns the code point ranges a font is built with: the named
// set followed by the custom ranges.
func GlyphRanges(c *model.FontConfig) ([]rune, error) {
	name := c.Glyphs
	if name == "" {
		name = "default"
	}
	base, ok := glyphSets[name]
	if !ok {
		return nil, fmt.Errorf("unknown glyph set %q", c.Glyphs)
	}
	out := append([]rune(nil), base...)
	return append(out, c.Ranges...), nil
}

// OpenTypeLoader builds faces with x/image. An empty file name selects the
// bundled Go Regular font.
type OpenTypeLoader struct {
	Dir    string
	DPI    float64
	logger *log.Logger
}

func NewOpenTypeLoader(dir string, logger *log.Logger) *OpenTypeLoader {
	if logger == nil {
		logger = log.Default()
	}
	return &OpenTypeLoader{Dir: dir, DPI: 72, logger: logger}
}

func (l *OpenTypeLoader) LoadFont(c *model.FontConfig) (font.Face, error) {
	if c.Size <= 0 {
		return nil, fmt.Errorf("invalid font size %v", c.Size)
	}
	ranges, err := GlyphRanges(c)
	if err != nil {
		return nil, err
	}

	data := goregular.TTF
	if c.File != "" {
		path := c.File
		if !filepath.IsAbs(path) && l.Dir != "" {
			path = filepath.Join(l.Dir, path)
		}
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font: %w", err)
		}
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	if missing := missingGlyphs(parsed, ranges); missing > 0 {
		l.logger.Printf("Font %q lacks %d glyph(s) of the requested ranges.", c.File, missing)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(c.Size),
		DPI:     l.DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

func missingGlyphs(f *opentype.Font, ranges []rune) int {
	var buf sfnt.Buffer
	missing := 0
	for i := 0; i+1 < len(ranges); i += 2 {
		from, to := max(ranges[i], 0), min(ranges[i+1], unicode.MaxRune)
		for r := from; r <= to; r++ {
			idx, err := f.GlyphIndex(&buf, r)
			if err != nil || idx == 0 {
				missing++
			}
			if r == to {
				break
			}
		}
	}
	return missing
}
