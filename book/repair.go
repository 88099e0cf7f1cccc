package book

import (
	"log"

	"sse-journal/model"
)

// MinFloor is the smallest page floor a book may be configured with: the two
// pages of the open spread.
const MinFloor = 2

// DefaultFloor keeps the page after the spread valid as well.
const DefaultFloor = 3

// New returns an empty book with floor blank pages.
func New(floor int) *model.Book {
	b := &model.Book{Version: model.Current}
	Repair(b, floor, nil)
	return b
}

// Repair pads b with blank pages up to floor and resets an out of range
// current page to the first one. It reports how many pages were added.
func Repair(b *model.Book, floor int, logger *log.Logger) int {
	if floor < MinFloor {
		floor = MinFloor
	}
	added := 0
	for len(b.Pages) < floor {
		b.Pages = append(b.Pages, &model.Page{})
		added++
	}
	if added > 0 && logger != nil {
		logger.Printf("Less than %d pages. Inserted %d empty one(s).", floor, added)
	}
	if b.Current < 0 || b.Current >= len(b.Pages) {
		if logger != nil {
			logger.Printf("Current page %d seems off. Setting it to the first one.", b.Current)
		}
		b.Current = 0
	}
	return added
}
