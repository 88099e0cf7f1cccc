package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"sse-journal/model"
	"sse-journal/variables"
)

// Text writes the book as plain text: a version header, the export date and
// every page as its number, title and content.
func Text(w io.Writer, b *model.Book, now time.Time) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "SSE-Journal %d.%d.%d (%s)\n", model.Current.Major, model.Current.Minor, model.Current.Patch, model.Current.Timestamp)
	fmt.Fprintf(bw, "%d pages exported on %s\n\n", len(b.Pages), variables.Format("%c", now, nil))
	for i, p := range b.Pages {
		fmt.Fprintf(bw, "Page #%d\n%s\n%s\n\n", i, p.Title, p.Content)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}

func TextFile(path string, b *model.Book, now time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrIO, err)
	}
	defer f.Close()
	if err := Text(f, b, now); err != nil {
		return fmt.Errorf("%w: %v", model.ErrIO, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrIO, err)
	}
	return nil
}
