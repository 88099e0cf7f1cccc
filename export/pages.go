package export

import (
	"bytes"
	"fmt"
	"image/png"

	"sse-journal/images"
	"sse-journal/model"
	"sse-journal/template"
)

// ImageSource returns the decoded image behind a handle.
type ImageSource interface {
	Image(h model.Handle) (*images.Image, bool)
}

// encodePNG re-encodes a page image. Epub readers are only required to
// support gif, jpeg, png and svg, while pages may reference webp, bmp or
// tiff sources.
func encodePNG(src ImageSource, ref *model.ImageRef) ([]byte, bool, error) {
	if ref == nil || ref.Handle == 0 || src == nil {
		return nil, false, nil
	}
	img, ok := src.Image(ref.Handle)
	if !ok || img == nil || img.Data == nil {
		return nil, false, nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.Data); err != nil {
		return nil, false, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), true, nil
}

func pageView(i int, p *model.Page, imageSrc string) template.PageView {
	v := template.PageView{
		Number:  i + 1,
		Title:   p.Title,
		Content: p.Content,
		Opacity: 1,
	}
	if imageSrc != "" && p.Image != nil {
		v.ImageSrc = imageSrc
		v.Background = p.Image.Background
		v.Opacity = float64(p.Image.Tint>>24) / 255
	}
	return v
}

func pageTitle(i int, p *model.Page) string {
	if p.Title != "" {
		return p.Title
	}
	return fmt.Sprintf("Page %d", i+1)
}
