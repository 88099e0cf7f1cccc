package template

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"sse-journal/model"
)

func ContainerXML() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<?xml version="1.0" encoding="UTF-8"?>`, "\n",
			`<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">`, "\n",
			`<rootfiles>`, "\n",
			`<rootfile full-path="content.opf" media-type="application/oebps-package+xml"/>`, "\n",
			`</rootfiles>`, "\n",
			`</container>`, "\n")
		return w.err
	})
}

// ContentOPF renders the package document. uniqueID names the identifier
// element in metadata.
func ContentOPF(uniqueID string, metadata *model.PackageMetadata, manifest *model.Manifest, spine *model.Spine) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		metadataXML, err := metadata.Marshal()
		if err != nil {
			return err
		}
		manifestXML, err := manifest.Marshal()
		if err != nil {
			return err
		}
		spineXML, err := spine.Marshal()
		if err != nil {
			return err
		}
		w := &writer{w: out}
		w.raw(`<?xml version="1.0" encoding="UTF-8"?>`, "\n",
			`<package version="3.0" xmlns="http://www.idpf.org/2007/opf" unique-identifier="`)
		w.text(uniqueID)
		w.raw(`">`, "\n")
		// encoding/xml cannot emit prefixed namespace declarations, so the
		// dc prefix is declared on the opening tag by hand.
		w.raw(`<metadata xmlns:dc="http://purl.org/dc/elements/1.1/"`, metadataXML[len(`<metadata`):], "\n")
		w.raw(manifestXML, "\n", spineXML, "\n", `</package>`, "\n")
		return w.err
	})
}

// TocNCX renders the EPUB 2 table of contents.
func TocNCX(uid, title string, navMap *model.NavMap) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		navMapXML, err := navMap.Marshal()
		if err != nil {
			return err
		}
		w := &writer{w: out}
		w.raw(`<?xml version="1.0" encoding="UTF-8"?>`, "\n",
			`<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">`, "\n",
			`<head><meta name="dtb:uid" content="`)
		w.text(uid)
		w.raw(`"/></head>`, "\n", `<docTitle><text>`)
		w.text(title)
		w.raw(`</text></docTitle>`, "\n", navMapXML, "\n", `</ncx>`, "\n")
		return w.err
	})
}
