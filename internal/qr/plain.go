package qr

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	plainqr "github.com/skip2/go-qrcode"
)

// PlainRenderer renders square modules with skip2/go-qrcode. Dot and corner
// styles are ignored. It returns raw images, so exports go through the
// conversion step.
type PlainRenderer struct{}

// NeedsDecode implements Renderer.
func (r *PlainRenderer) NeedsDecode() bool { return true }

// Render implements Renderer.
func (r *PlainRenderer) Render(cfg Config, size int) (*Raster, error) {
	q, err := plainqr.New(payload(cfg.Payload), plainqr.High)
	if err != nil {
		return nil, fmt.Errorf("create qr code: %w", err)
	}
	q.ForegroundColor = cfg.Foreground
	q.BackgroundColor = cfg.Background

	var img image.Image = q.Image(size)
	if cfg.Logo != "" {
		// Bitmap includes the quiet zone.
		n := len(q.Bitmap())
		matrix := img.Bounds().Dx() * (n - 2*quietZone) / n
		logo, err := LoadLogo(cfg.Logo, matrix/logoRatio, cfg.Background)
		if err != nil {
			return nil, err
		}
		img = imaging.OverlayCenter(img, logo, 1)
	}
	return &Raster{Image: img}, nil
}
