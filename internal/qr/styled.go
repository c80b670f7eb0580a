package qr

import (
	"bytes"
	"fmt"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

// StyledRenderer renders with yeqown/go-qrcode, honoring dot and corner
// styles, colors and the center logo. Output is PNG bytes.
type StyledRenderer struct{}

// NeedsDecode implements Renderer.
func (r *StyledRenderer) NeedsDecode() bool { return false }

// Render implements Renderer.
func (r *StyledRenderer) Render(cfg Config, size int) (*Raster, error) {
	qrc, err := qrcode.NewWith(payload(cfg.Payload), qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart))
	if err != nil {
		return nil, fmt.Errorf("create qr code: %w", err)
	}

	dimension := qrc.Dimension()
	if dimension <= 0 {
		return nil, fmt.Errorf("invalid QR matrix dimension")
	}
	moduleSize := blockWidth(size, dimension)

	opts := []standard.ImageOption{
		standard.WithQRWidth(uint8(moduleSize)),
		standard.WithBorderWidth(quietZone * moduleSize),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithFgColor(cfg.Foreground),
		standard.WithCustomShape(newShape(cfg.Dots, cfg.Corners)),
	}
	if cfg.Background.A == 0 {
		opts = append(opts, standard.WithBgTransparent())
	} else {
		opts = append(opts, standard.WithBgColor(cfg.Background))
	}

	if cfg.Logo != "" {
		side, err := logoSide(dimension, moduleSize)
		if err != nil {
			return nil, err
		}
		logo, err := LoadLogo(cfg.Logo, side, cfg.Background)
		if err != nil {
			return nil, err
		}
		opts = append(opts, standard.WithLogoImage(logo))
	}

	buf := &bufferCloser{}
	writer := standard.NewWithWriter(buf, opts...)
	if err := qrc.Save(writer); err != nil {
		return nil, fmt.Errorf("generate qr image: %w", err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("generated QR image is empty")
	}

	raster := &Raster{Data: buf.Bytes()}
	img, err := raster.Decoded()
	if err != nil {
		return nil, fmt.Errorf("decode qr image: %w", err)
	}
	if b := img.Bounds(); b.Dx() == size && b.Dy() == size {
		return raster, nil
	}
	data, err := EncodePNG(scaleExact(img, size))
	if err != nil {
		return nil, err
	}
	return &Raster{Data: data}, nil
}

// blockWidth picks the module size in pixels so that the matrix plus its
// quiet zone fits size, clamped to what the writer accepts.
func blockWidth(size, dimension int) int {
	w := size / (dimension + 2*quietZone)
	if w < 1 {
		return 1
	}
	if w > 255 {
		return 255
	}
	return w
}

// bufferCloser lets the QR writer stream into memory.
type bufferCloser struct {
	bytes.Buffer
}

func (b *bufferCloser) Close() error { return nil }
