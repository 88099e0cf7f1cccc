package book

import (
	"errors"
	"fmt"

	"sse-journal/model"
)

var ErrPageRange = errors.New("page index out of range")

// Releaser gives an image reference back to the table.
type Releaser interface {
	Release(h model.Handle) bool
}

// InsertPage inserts a blank page before index at. at == len(pages) appends.
func InsertPage(b *model.Book, at int) error {
	if at < 0 || at > len(b.Pages) {
		return fmt.Errorf("%w: %d not in [0,%d]", ErrPageRange, at, len(b.Pages))
	}
	b.Pages = append(b.Pages, nil)
	copy(b.Pages[at+1:], b.Pages[at:])
	b.Pages[at] = &model.Page{}
	if b.Current > at {
		b.Current++
	}
	return nil
}

// DeletePage removes the page at index at, releases its image and pads the
// book back to floor.
func DeletePage(b *model.Book, at, floor int, images Releaser) error {
	if at < 0 || at >= len(b.Pages) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrPageRange, at, len(b.Pages))
	}
	if p := b.Pages[at]; p.Image != nil && images != nil && p.Image.Handle != 0 {
		images.Release(p.Image.Handle)
	}
	b.Pages = append(b.Pages[:at], b.Pages[at+1:]...)
	if b.Current > at {
		b.Current--
	}
	if b.Current >= len(b.Pages) {
		b.Current = len(b.Pages) - 1
	}
	Repair(b, floor, nil)
	return nil
}

// AppendText appends text to the content of page at.
func AppendText(b *model.Book, at int, text string) error {
	if at < 0 || at >= len(b.Pages) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrPageRange, at, len(b.Pages))
	}
	b.Pages[at].Content += text
	return nil
}

func SetCurrent(b *model.Book, at int) error {
	if at < 0 || at >= len(b.Pages) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrPageRange, at, len(b.Pages))
	}
	b.Current = at
	return nil
}

// ReleaseImages drops every image reference held by the pages of b.
func ReleaseImages(b *model.Book, images Releaser) {
	for _, p := range b.Pages {
		if p.Image != nil && p.Image.Handle != 0 {
			images.Release(p.Image.Handle)
		}
	}
}
