package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"sse-journal/model"
	"sse-journal/template"
)

type PDFOptions struct {
	Title string
	// ExecPath selects the Chrome binary; empty uses chromedp's lookup.
	ExecPath string
	Timeout  time.Duration
	Logger   *log.Logger
}

// PDF prints the book through headless Chrome, one journal page per sheet.
func PDF(ctx context.Context, w io.Writer, b *model.Book, src ImageSource, opts PDFOptions) error {
	if opts.Title == "" {
		opts.Title = "Journal"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	var views []template.PageView
	for i, p := range b.Pages {
		imageSrc := ""
		data, ok, err := encodePNG(src, p.Image)
		if err != nil {
			return fmt.Errorf("failed to render page %d: %w", i, err)
		}
		if ok {
			imageSrc = "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
		}
		views = append(views, pageView(i, p, imageSrc))
	}

	var doc bytes.Buffer
	err := template.Document(opts.Title, template.InlineStyle(template.StyleCSS), template.Pages(views)).Render(ctx, &doc)
	if err != nil {
		return fmt.Errorf("failed to render book: %w", err)
	}

	// The .xhtml extension makes Chrome parse the document as XML.
	tempFile, err := os.CreateTemp("", "sse-journal-*.xhtml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())
	if _, err := tempFile.Write(doc.Bytes()); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	tempFile.Close()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("no-sandbox", true),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()
	runCtx, cancel := context.WithTimeout(browserCtx, opts.Timeout)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+filepath.ToSlash(tempFile.Name())),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		opts.Logger.Printf("Unable to print %s: %v", opts.Title, err)
		return fmt.Errorf("chromedp execution failed: %w", err)
	}

	if _, err := w.Write(pdf); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func PDFFile(ctx context.Context, filePath string, b *model.Book, src ImageSource, opts PDFOptions) error {
	var buf bytes.Buffer
	if err := PDF(ctx, &buf, b, src, opts); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("%w: %v", model.ErrIO, err)
	}
	return nil
}
