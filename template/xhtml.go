package template

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// PageView is the render input of one journal page.
type PageView struct {
	Number     int
	Title      string
	Content    string
	ImageSrc   string
	Background bool
	// Opacity of the image in [0,1], taken from the tint alpha.
	Opacity float64
}

// NavEntry links one page from the table of contents.
type NavEntry struct {
	Title string
	Href  string
}

type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(parts ...string) {
	for _, s := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

// Document wraps body in an XHTML document usable both as an epub content
// document and as a standalone page for printing.
func Document(title string, head, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<?xml version="1.0" encoding="UTF-8"?>`, "\n",
			`<!DOCTYPE html>`, "\n",
			`<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">`, "\n",
			`<head>`, "\n", `<meta charset="UTF-8"/>`, "\n", `<title>`)
		w.text(title)
		w.raw(`</title>`, "\n")
		if w.err != nil {
			return w.err
		}
		if head != nil {
			if err := head.Render(ctx, out); err != nil {
				return err
			}
		}
		w.raw(`</head>`, "\n", `<body>`, "\n")
		if w.err != nil {
			return w.err
		}
		if err := body.Render(ctx, out); err != nil {
			return err
		}
		w.raw(`</body>`, "\n", `</html>`, "\n")
		return w.err
	})
}

func StylesheetLink(href string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<link rel="stylesheet" type="text/css" href="`)
		w.text(href)
		w.raw(`"/>`, "\n")
		return w.err
	})
}

func InlineStyle(css string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<style type="text/css">`, css, `</style>`, "\n")
		return w.err
	})
}

// Page renders one journal page. Every line of the content becomes a
// paragraph; empty lines are kept as spacing.
func Page(p PageView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(fmt.Sprintf(`<section class="page" id="page-%d">`, p.Number), "\n")
		if p.ImageSrc != "" {
			class := "illustration"
			if p.Background {
				class = "background"
			}
			w.raw(`<img class="`, class, `" src="`)
			w.text(p.ImageSrc)
			w.raw(`" alt=""`)
			if p.Opacity < 1 {
				w.raw(fmt.Sprintf(` style="opacity:%.2f"`, p.Opacity))
			}
			w.raw(`/>`, "\n")
		}
		if p.Title != "" {
			w.raw(`<h1>`)
			w.text(p.Title)
			w.raw(`</h1>`, "\n")
		}
		if p.Content != "" {
			for _, line := range strings.Split(p.Content, "\n") {
				if strings.TrimSpace(line) == "" {
					w.raw(`<p class="blank"/>`, "\n")
					continue
				}
				w.raw(`<p>`)
				w.text(line)
				w.raw(`</p>`, "\n")
			}
		}
		w.raw(`</section>`, "\n")
		return w.err
	})
}

func Pages(pages []PageView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		for _, p := range pages {
			if err := Page(p).Render(ctx, out); err != nil {
				return err
			}
		}
		return nil
	})
}

// Nav is the EPUB 3 navigation document body.
func Nav(heading string, entries []NavEntry) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<nav epub:type="toc" id="toc">`, "\n", `<h1>`)
		w.text(heading)
		w.raw(`</h1>`, "\n", `<ol>`, "\n")
		for _, e := range entries {
			w.raw(`<li><a href="`)
			w.text(e.Href)
			w.raw(`">`)
			w.text(e.Title)
			w.raw(`</a></li>`, "\n")
		}
		w.raw(`</ol>`, "\n", `</nav>`, "\n")
		return w.err
	})
}
