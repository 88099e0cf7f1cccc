package legacy

import (
	"bytes"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"

	"sse-journal/model"
)

var quiet = log.New(io.Discard, "", 0)

func TestDecodeFISS(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<fiss>
  <Data>
    <NumberOfEntries>3</NumberOfEntries>
    <date1>Morndas</date1>
    <entry1>Arrived in Whiterun.</entry1>
    <date2>Tirdas</date2>
    <date3>Middas</date3>
    <entry3>Dragon at the watchtower.</entry3>
  </Data>
</fiss>`
	b, err := DecodeFISS(strings.NewReader(src), 2, quiet)
	if err != nil {
		t.Fatalf("DecodeFISS: %v", err)
	}
	if len(b.Pages) != 3 || b.Current != 0 {
		t.Fatalf("got %d pages, current %d", len(b.Pages), b.Current)
	}
	if b.Pages[0].Title != "Morndas" || b.Pages[0].Content != "Arrived in Whiterun." {
		t.Errorf("page 0 = %+v", b.Pages[0])
	}
	if b.Pages[1].Title != "Tirdas" || b.Pages[1].Content != "" {
		t.Errorf("page 1 = %+v", b.Pages[1])
	}
	if b.Pages[2].Content != "Dragon at the watchtower." {
		t.Errorf("page 2 = %+v", b.Pages[2])
	}
	if b.Version != model.Current {
		t.Errorf("version = %v", b.Version)
	}
}

func TestDecodeFISS_PadsToFloor(t *testing.T) {
	src := `<fiss><Data><NumberOfEntries>1</NumberOfEntries><date1>a</date1><entry1>b</entry1></Data></fiss>`
	b, err := DecodeFISS(strings.NewReader(src), 3, quiet)
	if err != nil {
		t.Fatalf("DecodeFISS: %v", err)
	}
	if len(b.Pages) != 3 || b.Pages[0].Title != "a" || b.Pages[2].Title != "" {
		t.Fatalf("unexpected pages: %d", len(b.Pages))
	}
}

func TestDecodeFISS_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"not xml", "hello"},
		{"wrong root", `<notes><Data><NumberOfEntries>1</NumberOfEntries></Data></notes>`},
		{"no data", `<fiss></fiss>`},
		{"no count", `<fiss><Data><date1>a</date1></Data></fiss>`},
		{"bad count", `<fiss><Data><NumberOfEntries>three</NumberOfEntries></Data></fiss>`},
		{"negative count", `<fiss><Data><NumberOfEntries>-1</NumberOfEntries></Data></fiss>`},
		{"huge count", `<fiss><Data><NumberOfEntries>99999999</NumberOfEntries></Data></fiss>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeFISS(strings.NewReader(tt.src), 3, quiet); !errors.Is(err, model.ErrParse) {
				t.Fatalf("err = %v, want ErrParse", err)
			}
		})
	}
}

func TestDecodeFISS_Charset(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="windows-1252"?><fiss><Data><NumberOfEntries>1</NumberOfEntries><date1>caf`)
	buf.WriteByte(0xe9)
	buf.WriteString(`</date1></Data></fiss>`)

	b, err := DecodeFISS(&buf, 2, quiet)
	if err != nil {
		t.Fatalf("DecodeFISS: %v", err)
	}
	if b.Pages[0].Title != "café" {
		t.Fatalf("title = %q", b.Pages[0].Title)
	}
}

func TestDecodeFISS_UTF16(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-16"?><fiss><Data><NumberOfEntries>1</NumberOfEntries><entry1>Ελσγουέυρ</entry1></Data></fiss>`
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(src)
	if err != nil {
		t.Fatal(err)
	}
	b, err := DecodeFISS(strings.NewReader(encoded), 2, quiet)
	if err != nil {
		t.Fatalf("DecodeFISS: %v", err)
	}
	if b.Pages[0].Content != "Ελσγουέυρ" {
		t.Fatalf("content = %q", b.Pages[0].Content)
	}
}

func TestImportFISS(t *testing.T) {
	if _, err := ImportFISS(filepath.Join(t.TempDir(), "missing.xml"), 3, quiet); !errors.Is(err, model.ErrIO) {
		t.Fatalf("err = %v, want ErrIO", err)
	}

	path := filepath.Join(t.TempDir(), "notes.xml")
	os.WriteFile(path, []byte(`<fiss><Data><NumberOfEntries>0</NumberOfEntries></Data></fiss>`), 0644)
	b, err := ImportFISS(path, 3, quiet)
	if err != nil {
		t.Fatalf("ImportFISS: %v", err)
	}
	if len(b.Pages) != 3 {
		t.Fatalf("got %d pages", len(b.Pages))
	}
}
