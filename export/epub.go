package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/google/uuid"

	"sse-journal/model"
	"sse-journal/template"
)

type EpubOptions struct {
	Title    string
	Author   string
	Language string
	// Modified defaults to the current time.
	Modified time.Time
}

type epubPage struct {
	id    string
	link  string
	title string
	xhtml []byte
}

// Epub packs every page of b as one content document. Page images are
// re-encoded as png.
func Epub(w io.Writer, b *model.Book, src ImageSource, opts EpubOptions) error {
	if opts.Title == "" {
		opts.Title = "Journal"
	}
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.Modified.IsZero() {
		opts.Modified = time.Now()
	}
	ctx := context.Background()

	manifest := &model.Manifest{}
	var pages []epubPage
	images := make(map[string][]byte)

	for i, p := range b.Pages {
		id := fmt.Sprintf("page-%03d", i)
		imageSrc := ""
		data, ok, err := encodePNG(src, p.Image)
		if err != nil {
			return fmt.Errorf("failed to pack page %d: %w", i, err)
		}
		if ok {
			imageSrc = fmt.Sprintf("../Images/%s.png", id)
			images[path.Join("OEBPS/Text", imageSrc)] = data
		}

		var buf bytes.Buffer
		doc := template.Document(pageTitle(i, p),
			template.StylesheetLink("../../style.css"),
			template.Page(pageView(i, p, imageSrc)))
		if err := doc.Render(ctx, &buf); err != nil {
			return fmt.Errorf("failed to render page %d: %w", i, err)
		}
		pages = append(pages, epubPage{
			id:    id + ".xhtml",
			link:  fmt.Sprintf("OEBPS/Text/%s.xhtml", id),
			title: pageTitle(i, p),
			xhtml: buf.Bytes(),
		})
	}

	manifest.Items = append(manifest.Items, model.ManifestItem{
		ID:         "nav.xhtml",
		Link:       "OEBPS/Text/nav.xhtml",
		Media:      "application/xhtml+xml",
		Properties: "nav",
	})
	spine := &model.Spine{Toc: "ncx"}
	navMap := &model.NavMap{}
	var entries []template.NavEntry
	for i, p := range pages {
		manifest.Items = append(manifest.Items, model.ManifestItem{
			ID:    p.id,
			Link:  p.link,
			Media: "application/xhtml+xml",
		})
		spine.Items = append(spine.Items, model.SpineItem{IDref: p.id})
		entries = append(entries, template.NavEntry{Title: p.title, Href: path.Base(p.link)})
		navMap.Points = append(navMap.Points, &model.NavPoint{
			ID:        fmt.Sprintf("nav-%03d", i),
			PlayOrder: i + 1,
			Label:     p.title,
			Content:   model.NavPointContent{Src: p.link},
		})

		referenced, err := referencedImages(p.xhtml, path.Dir(p.link))
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", p.link, err)
		}
		for _, link := range referenced {
			if _, ok := images[link]; !ok {
				return fmt.Errorf("%s references missing image %s", p.link, link)
			}
			manifest.Items = append(manifest.Items, model.ManifestItem{
				ID:    path.Base(link),
				Link:  link,
				Media: "image/png",
			})
		}
	}
	manifest.Items = append(manifest.Items,
		model.ManifestItem{ID: "ncx", Link: "toc.ncx", Media: "application/x-dtbncx+xml"},
		model.ManifestItem{ID: "style", Link: "style.css", Media: "text/css"},
	)

	u := uuid.New()
	identifier := fmt.Sprintf("urn:uuid:%s", u.String())
	metadata := &model.PackageMetadata{
		Titles:      []model.DCTitle{{Value: opts.Title}},
		Identifiers: []model.DCIdentifier{{Value: identifier, ID: "book-id"}},
		Languages:   []model.DCLanguage{{Value: opts.Language}},
		Metas: []model.PackageMeta{
			{Property: "dcterms:modified", Value: opts.Modified.UTC().Format("2006-01-02T15:04:05Z")},
		},
	}
	if opts.Author != "" {
		metadata.Creators = []model.DCCreator{{Value: opts.Author}}
	}

	zipWriter := zip.NewWriter(w)
	// mimetype must be the first entry and stored uncompressed.
	if err := addStringToZip(zipWriter, "mimetype", "application/epub+zip", zip.Store); err != nil {
		return err
	}
	if err := addComponentToZip(ctx, zipWriter, "META-INF/container.xml", template.ContainerXML()); err != nil {
		return err
	}
	if err := addComponentToZip(ctx, zipWriter, "content.opf", template.ContentOPF("book-id", metadata, manifest, spine)); err != nil {
		return err
	}
	if err := addComponentToZip(ctx, zipWriter, "toc.ncx", template.TocNCX(identifier, opts.Title, navMap)); err != nil {
		return err
	}
	nav := template.Document(opts.Title, template.StylesheetLink("../../style.css"), template.Nav(opts.Title, entries))
	if err := addComponentToZip(ctx, zipWriter, "OEBPS/Text/nav.xhtml", nav); err != nil {
		return err
	}
	for _, p := range pages {
		if err := addBytesToZip(zipWriter, p.link, p.xhtml, zip.Deflate); err != nil {
			return err
		}
	}
	for _, item := range manifest.Items {
		if data, ok := images[item.Link]; ok {
			if err := addBytesToZip(zipWriter, item.Link, data, zip.Deflate); err != nil {
				return err
			}
		}
	}
	if err := addStringToZip(zipWriter, "style.css", template.StyleCSS, zip.Deflate); err != nil {
		return err
	}
	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("failed to pack epub: %w", err)
	}
	return nil
}

func EpubFile(filePath string, b *model.Book, src ImageSource, opts EpubOptions) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrIO, err)
	}
	defer f.Close()
	if err := Epub(f, b, src, opts); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrIO, err)
	}
	return nil
}

// referencedImages lists the package paths of the images a rendered content
// document points at.
func referencedImages(xhtml []byte, dir string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(xhtml))
	if err != nil {
		return nil, err
	}
	var links []string
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		links = append(links, path.Join(dir, src))
	})
	return links, nil
}

func addStringToZip(zipWriter *zip.Writer, relPath, content string, method uint16) error {
	return addBytesToZip(zipWriter, relPath, []byte(content), method)
}

func addBytesToZip(zipWriter *zip.Writer, relPath string, content []byte, method uint16) error {
	header := &zip.FileHeader{
		Name:   relPath,
		Method: method,
	}
	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", relPath, err)
	}
	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("failed to write %s: %w", relPath, err)
	}
	return nil
}

func addComponentToZip(ctx context.Context, zipWriter *zip.Writer, relPath string, c templ.Component) error {
	writer, err := zipWriter.CreateHeader(&zip.FileHeader{Name: relPath, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", relPath, err)
	}
	if err := c.Render(ctx, writer); err != nil {
		return fmt.Errorf("failed to render %s: %w", relPath, err)
	}
	return nil
}
