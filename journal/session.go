// Package journal holds the state of one journal session: the open book, the
// shared image table, settings, fonts and variables.
package journal

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"sse-journal/book"
	"sse-journal/export"
	"sse-journal/images"
	"sse-journal/legacy"
	"sse-journal/model"
	"sse-journal/settings"
	"sse-journal/variables"
)

type Options struct {
	MinPages      int
	LogPath       string
	SettingsPath  string
	VariablesPath string
	Logger        *log.Logger

	// Optional collaborators. Nil selects the file/http image loader, the
	// opentype font loader and a game clock that never has a reading.
	ImageLoader images.Loader
	FontLoader  settings.FontLoader
	Clock       variables.GameClock
	Now         func() time.Time
}

// Session is the single owner of journal state. Every operation reports
// success as a boolean; failures are logged and leave a message for the user
// until DismissFailure is called.
type Session struct {
	Book      *model.Book
	Images    *images.Table
	Settings  *model.Settings
	Fonts     *settings.FontSet
	Variables *variables.Set

	floor      int
	logPath    string
	logger     *log.Logger
	now        func() time.Time
	fontLoader settings.FontLoader

	books         *book.Store
	settingsStore *settings.Store
	variableStore *variables.Store

	failure string
}

func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.MinPages < book.MinFloor {
		opts.MinPages = book.DefaultFloor
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	loader := opts.ImageLoader
	if loader == nil {
		loader = images.NewLoader()
	}
	fontLoader := opts.FontLoader
	if fontLoader == nil {
		fontLoader = settings.NewOpenTypeLoader(filepath.Dir(opts.SettingsPath), logger)
	}

	table := images.NewTable(loader, logger)
	return &Session{
		Book:          book.New(opts.MinPages),
		Images:        table,
		Settings:      settings.Default(),
		Fonts:         settings.NewFontSet(),
		Variables:     variables.NewSet(opts.Clock, opts.Now),
		floor:         opts.MinPages,
		logPath:       opts.LogPath,
		logger:        logger,
		now:           opts.Now,
		fontLoader:    fontLoader,
		books:         book.NewStore(table, opts.MinPages, logger),
		settingsStore: settings.NewStore(opts.SettingsPath, logger),
		variableStore: variables.NewStore(opts.VariablesPath, logger),
	}
}

func (s *Session) fail(action string, err error) bool {
	s.logger.Printf("%s failed: %v", action, err)
	where := s.logPath
	if where == "" {
		where = "the log file"
	}
	s.failure = fmt.Sprintf("%s failed. See %s for details.", action, where)
	return false
}

// Failure returns the pending failure message, empty when there is none.
func (s *Session) Failure() string {
	return s.failure
}

func (s *Session) DismissFailure() {
	s.failure = ""
}

func (s *Session) replaceBook(b *model.Book) {
	book.ReleaseImages(s.Book, s.Images)
	s.Book = b
	s.Images.Sweep()
}

// NewBook drops the open book for an empty one.
func (s *Session) NewBook() {
	s.replaceBook(book.New(s.floor))
}

func (s *Session) SaveBook(path string) bool {
	if err := s.books.Save(path, s.Book); err != nil {
		return s.fail("Saving the book", err)
	}
	s.Images.Sweep()
	return true
}

// LoadBook replaces the open book with the one at path. On failure the open
// book is left untouched.
func (s *Session) LoadBook(path string) bool {
	b, err := s.books.Load(path)
	if err != nil {
		return s.fail("Loading the book", err)
	}
	s.replaceBook(b)
	return true
}

// ImportLegacy replaces the open book with the notes of a FISS file.
func (s *Session) ImportLegacy(path string) bool {
	b, err := legacy.ImportFISS(path, s.floor, s.logger)
	if err != nil {
		return s.fail("Importing the notes", err)
	}
	s.replaceBook(b)
	return true
}

func (s *Session) ExportText(path string) bool {
	if err := export.TextFile(path, s.Book, s.now()); err != nil {
		return s.fail("Exporting the book", err)
	}
	return true
}

func (s *Session) SaveSettings() bool {
	if err := s.settingsStore.Save(s.Settings); err != nil {
		return s.fail("Saving the settings", err)
	}
	return true
}

// LoadSettings reads the settings file and applies it to the fonts. Fonts
// that already exist only take the new scale and color.
func (s *Session) LoadSettings() bool {
	st, err := s.settingsStore.Load()
	if err != nil {
		return s.fail("Loading the settings", err)
	}
	s.Settings = st
	if err := settings.Apply(st, s.Fonts, s.fontLoader, s.logger); err != nil {
		return s.fail("Building the fonts", err)
	}
	return true
}

func (s *Session) SaveVariables() bool {
	if err := s.variableStore.Save(s.Variables); err != nil {
		return s.fail("Saving the variables", err)
	}
	return true
}

func (s *Session) LoadVariables() bool {
	if err := s.variableStore.Load(s.Variables); err != nil {
		return s.fail("Loading the variables", err)
	}
	return true
}

func (s *Session) InsertPage(at int) bool {
	if err := book.InsertPage(s.Book, at); err != nil {
		return s.fail("Inserting a page", err)
	}
	return true
}

func (s *Session) DeletePage(at int) bool {
	if err := book.DeletePage(s.Book, at, s.floor, s.Images); err != nil {
		return s.fail("Deleting a page", err)
	}
	return true
}

func (s *Session) SetPage(at int) bool {
	if err := book.SetCurrent(s.Book, at); err != nil {
		return s.fail("Turning the page", err)
	}
	return true
}

// AppendVariable renders the variable id and appends the result to the
// content of page at.
func (s *Session) AppendVariable(at, id int) bool {
	text, err := s.Variables.Render(id)
	if err != nil {
		return s.fail("Inserting a variable", err)
	}
	if err := book.AppendText(s.Book, at, text); err != nil {
		return s.fail("Inserting a variable", err)
	}
	return true
}

// SetImage puts the image at path on page at, replacing any previous one.
// An empty path removes the image.
func (s *Session) SetImage(at int, path string, background bool) bool {
	if at < 0 || at >= len(s.Book.Pages) {
		return s.fail("Setting the image", fmt.Errorf("%w: %d", book.ErrPageRange, at))
	}
	p := s.Book.Pages[at]
	var ref *model.ImageRef
	if path != "" {
		h, err := s.Images.Obtain(path)
		if err != nil {
			return s.fail("Setting the image", err)
		}
		ref = &model.ImageRef{
			Background: background,
			Tint:       0xffffffff,
			UV:         [4]float32{0, 0, 1, 1},
			XY:         [4]float32{0, 0, 1, 1},
			Handle:     h,
			File:       path,
		}
	}
	if p.Image != nil && p.Image.Handle != 0 {
		s.Images.Release(p.Image.Handle)
	}
	p.Image = ref
	return true
}

// Close releases the fonts.
func (s *Session) Close() {
	s.Fonts.Close()
}
