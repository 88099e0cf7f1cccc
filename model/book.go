package model

// Handle is an opaque reference into the image table. Zero means "no image".
type Handle uint64

// ImageRef places an image on a page. The page does not own the image
// resource, it only holds a handle into the shared image table.
type ImageRef struct {
	Background bool
	Tint       uint32
	UV         [4]float32
	XY         [4]float32
	Handle     Handle

	// File is the source the handle was resolved from.
	File string
}

type Page struct {
	Title   string
	Content string
	Image   *ImageRef
}

type Version struct {
	Major     int
	Minor     int
	Patch     int
	Timestamp string
}

type Book struct {
	Version Version
	Current int
	Pages   []*Page
}

// Clone returns a deep copy of the page.
func (p *Page) Clone() *Page {
	c := &Page{Title: p.Title, Content: p.Content}
	if p.Image != nil {
		img := *p.Image
		c.Image = &img
	}
	return c
}
