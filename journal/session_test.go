package journal

import (
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"sse-journal/images"
	"sse-journal/model"
	"sse-journal/variables"
)

type countingLoader struct {
	loads int
}

func (l *countingLoader) Load(path string) (*images.Image, error) {
	if strings.Contains(path, "broken") {
		return nil, os.ErrNotExist
	}
	l.loads++
	return &images.Image{Format: "png", Width: 1, Height: 1, Data: image.NewRGBA(image.Rect(0, 0, 1, 1))}, nil
}

type stubFonts struct {
	built int
}

func (f *stubFonts) LoadFont(c *model.FontConfig) (font.Face, error) {
	f.built++
	return basicfont.Face7x13, nil
}

func newSession(t *testing.T) (*Session, *countingLoader, string) {
	t.Helper()
	dir := t.TempDir()
	loader := &countingLoader{}
	s := New(Options{
		LogPath:       filepath.Join(dir, "sse-journal.log"),
		SettingsPath:  filepath.Join(dir, "settings.json"),
		VariablesPath: filepath.Join(dir, "variables.json"),
		Logger:        log.New(io.Discard, "", 0),
		ImageLoader:   loader,
		FontLoader:    &stubFonts{},
		Clock:         variables.StaticClock(1.5),
		Now:           func() time.Time { return time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC) },
	})
	return s, loader, dir
}

func TestNewSession(t *testing.T) {
	s, _, _ := newSession(t)
	if len(s.Book.Pages) != 3 || s.Book.Current != 0 {
		t.Fatalf("new book has %d pages, current %d", len(s.Book.Pages), s.Book.Current)
	}
	if s.Failure() != "" {
		t.Fatalf("unexpected failure %q", s.Failure())
	}
}

func TestSaveLoadBook(t *testing.T) {
	s, loader, dir := newSession(t)
	path := filepath.Join(dir, "book.json")

	s.Book.Pages[0].Title = "Morndas"
	s.Book.Pages[1].Content = "Arrived in Whiterun."
	img := filepath.Join(dir, "map.png")
	if !s.SetImage(1, img, true) {
		t.Fatalf("SetImage: %s", s.Failure())
	}
	if !s.SaveBook(path) {
		t.Fatalf("SaveBook: %s", s.Failure())
	}

	s.NewBook()
	if s.Images.Len() != 0 {
		t.Fatalf("new book must sweep the image table, %d entries left", s.Images.Len())
	}

	if !s.LoadBook(path) {
		t.Fatalf("LoadBook: %s", s.Failure())
	}
	if s.Book.Pages[0].Title != "Morndas" || s.Book.Pages[1].Content != "Arrived in Whiterun." {
		t.Fatalf("unexpected pages %+v %+v", s.Book.Pages[0], s.Book.Pages[1])
	}
	ref := s.Book.Pages[1].Image
	if ref == nil || !ref.Background || s.Images.Refcount(ref.Handle) != 1 {
		t.Fatalf("image not restored: %+v", ref)
	}
	if loader.loads != 2 {
		t.Fatalf("expected 2 loads, got %d", loader.loads)
	}

	// Loading again must release the previous book's reference.
	if !s.LoadBook(path) {
		t.Fatalf("LoadBook: %s", s.Failure())
	}
	if s.Images.Len() != 1 || s.Images.Refcount(s.Book.Pages[1].Image.Handle) != 1 {
		t.Fatalf("expected one shared image, got %d entries", s.Images.Len())
	}
}

func TestLoadBookFailureKeepsState(t *testing.T) {
	s, _, dir := newSession(t)
	s.Book.Pages[0].Title = "keep me"

	path := filepath.Join(dir, "old.json")
	os.WriteFile(path, []byte(`{"version":{"major":0},"size":0,"current":0,"pages":{}}`), 0644)
	if s.LoadBook(path) {
		t.Fatal("expected failure")
	}
	if s.Book.Pages[0].Title != "keep me" {
		t.Fatal("failed load modified the open book")
	}
	if !strings.Contains(s.Failure(), "sse-journal.log") {
		t.Fatalf("failure must name the log file: %q", s.Failure())
	}
	s.DismissFailure()
	if s.Failure() != "" {
		t.Fatal("failure not dismissed")
	}
}

func TestImportLegacy(t *testing.T) {
	s, _, dir := newSession(t)
	path := filepath.Join(dir, "fiss.xml")
	os.WriteFile(path, []byte(`<fiss><Data><NumberOfEntries>4</NumberOfEntries><date1>a</date1><entry4>d</entry4></Data></fiss>`), 0644)
	if !s.ImportLegacy(path) {
		t.Fatalf("ImportLegacy: %s", s.Failure())
	}
	if len(s.Book.Pages) != 4 || s.Book.Pages[0].Title != "a" || s.Book.Pages[3].Content != "d" {
		t.Fatalf("unexpected import: %d pages", len(s.Book.Pages))
	}
	if s.ImportLegacy(filepath.Join(dir, "missing.xml")) {
		t.Fatal("expected failure")
	}
}

func TestPageEdits(t *testing.T) {
	s, _, _ := newSession(t)
	if !s.InsertPage(3) || len(s.Book.Pages) != 4 {
		t.Fatalf("InsertPage: %s", s.Failure())
	}
	if !s.AppendVariable(0, variables.GameTimeID) {
		t.Fatalf("AppendVariable: %s", s.Failure())
	}
	if got := s.Book.Pages[0].Content; !strings.Contains(got, "Morndas, day 17 of Last Seed, 4E201") {
		t.Fatalf("content = %q", got)
	}
	if s.AppendVariable(0, 999) {
		t.Fatal("unknown variable must fail")
	}
	s.DismissFailure()

	if !s.SetImage(2, "a.png", false) {
		t.Fatalf("SetImage: %s", s.Failure())
	}
	if !s.DeletePage(2) {
		t.Fatalf("DeletePage: %s", s.Failure())
	}
	if s.Images.Sweep() != 1 {
		t.Fatal("deleted page must release its image")
	}
	if s.DeletePage(10) || s.InsertPage(-1) || s.SetPage(5) {
		t.Fatal("out of range edits must fail")
	}
	if s.SetImage(0, "broken.png", false) {
		t.Fatal("broken image must fail")
	}
	if s.Book.Pages[0].Image != nil {
		t.Fatal("failed image must leave the page untouched")
	}
}

func TestSettingsAndVariables(t *testing.T) {
	s, _, _ := newSession(t)
	if !s.LoadSettings() {
		t.Fatalf("LoadSettings: %s", s.Failure())
	}
	if s.Fonts.Get(model.FontText) == nil {
		t.Fatal("fonts not built on first load")
	}

	s.Settings.Fonts[model.FontText].Scale = 1.5
	s.Settings.Titlebar = false
	if !s.SaveSettings() {
		t.Fatalf("SaveSettings: %s", s.Failure())
	}
	if !s.LoadSettings() {
		t.Fatalf("LoadSettings: %s", s.Failure())
	}
	if s.Fonts.Get(model.FontText).Scale != 1.5 || s.Settings.Titlebar {
		t.Fatal("settings not applied")
	}

	if _, err := s.Variables.Add(variables.LocalTimeID, "Year", "%Y"); err != nil {
		t.Fatal(err)
	}
	if !s.SaveVariables() {
		t.Fatalf("SaveVariables: %s", s.Failure())
	}
	if !s.LoadVariables() {
		t.Fatalf("LoadVariables: %s", s.Failure())
	}
}

func TestExportText(t *testing.T) {
	s, _, dir := newSession(t)
	path := filepath.Join(dir, "journal.txt")
	if !s.ExportText(path) {
		t.Fatalf("ExportText: %s", s.Failure())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "SSE-Journal ") {
		t.Fatalf("unexpected export %q", data)
	}
	if s.ExportText(filepath.Join(dir, "missing", "journal.txt")) {
		t.Fatal("expected failure")
	}
}
