package model

import (
	"fmt"
	"strconv"
	"strings"
)

type FontRole string

const (
	FontButton  FontRole = "button"
	FontChapter FontRole = "chapter"
	FontText    FontRole = "text"
	FontSystem  FontRole = "system"
)

// FontRoles lists the font slots in the order they are written to disk.
var FontRoles = []FontRole{FontText, FontChapter, FontButton, FontSystem}

type FontConfig struct {
	Scale float32
	Color uint32

	// Construction parameters. They only matter when the font does not exist yet.
	Size   float32
	File   string
	Glyphs string
	Ranges []rune
}

type Settings struct {
	Fonts      map[FontRole]*FontConfig
	Background string
	Titlebar   bool
}

// HexColor renders a 32-bit color as a 0x prefixed hex string.
func HexColor(c uint32) string {
	return fmt.Sprintf("0x%08x", c)
}

// ParseColor accepts 0x prefixed hex, # prefixed hex and plain decimal values.
func ParseColor(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		s = "0x" + s[1:]
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}
