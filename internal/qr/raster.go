package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// Raster is one rendered QR image. Data holds encoded PNG bytes that can be
// embedded as-is; Image holds a raw raster that must be encoded first.
type Raster struct {
	Data  []byte
	Image image.Image
}

// Empty reports whether the raster carries no image at all.
func (r *Raster) Empty() bool {
	return r == nil || (len(r.Data) == 0 && r.Image == nil)
}

// Embeddable reports whether Data can be handed to an image placement call.
func (r *Raster) Embeddable() bool {
	return r != nil && len(r.Data) > 0
}

// Decoded returns the raster as an image, decoding Data when needed.
func (r *Raster) Decoded() (image.Image, error) {
	if r.Image != nil {
		return r.Image, nil
	}
	if len(r.Data) == 0 {
		return nil, fmt.Errorf("empty raster")
	}
	return png.Decode(bytes.NewReader(r.Data))
}

// EncodePNG encodes img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// encodeJPEG composites img onto an opaque background and encodes it as JPEG.
func encodeJPEG(w io.Writer, img image.Image, bg color.RGBA) error {
	opaque := color.RGBA{bg.R, bg.G, bg.B, 255}
	if bg.A == 0 {
		opaque = color.RGBA{255, 255, 255, 255}
	}
	b := img.Bounds()
	out := imaging.Overlay(imaging.New(b.Dx(), b.Dy(), opaque), img, image.Point{}, 1)
	if err := imaging.Encode(w, out, imaging.JPEG, imaging.JPEGQuality(92)); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return nil
}

// scaleExact scales img to exactly size×size using nearest neighbor, which
// keeps module edges sharp.
func scaleExact(img image.Image, size int) image.Image {
	b := img.Bounds()
	if size <= 0 || b.Empty() || (b.Dx() == size && b.Dy() == size) {
		return img
	}
	return imaging.Resize(img, size, size, imaging.NearestNeighbor)
}
