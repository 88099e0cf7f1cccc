package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"sse-journal/utils"
)

// Image is a decoded picture ready to be handed to the renderer.
type Image struct {
	Format string
	Width  int
	Height int
	Data   image.Image
}

// FileLoader decodes local files and fetches http(s) sources.
type FileLoader struct {
	restyClient *utils.RestyClient
}

func NewLoader() *FileLoader {
	return &FileLoader{restyClient: utils.NewRestyClient(3)}
}

func (l *FileLoader) Load(path string) (*Image, error) {
	var data []byte
	var err error
	if isRemote(path) {
		data, err = l.fetch(path)
	} else {
		data, err = os.ReadFile(filepath.Clean(path))
	}
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func (l *FileLoader) fetch(url string) ([]byte, error) {
	resp, err := l.restyClient.R().Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("failed to get image: %v", resp.Status())
	}
	return resp.Body(), nil
}

func Decode(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	return &Image{Format: format, Width: b.Dx(), Height: b.Dy(), Data: img}, nil
}
