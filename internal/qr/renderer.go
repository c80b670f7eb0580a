package qr

import (
	"errors"
	"fmt"
)

// Renderer turns a Config into a QR raster of roughly size×size pixels.
type Renderer interface {
	Render(cfg Config, size int) (*Raster, error)
	// NeedsDecode reports whether rasters from this renderer are raw images
	// that need a conversion step before they can be embedded.
	NeedsDecode() bool
}

// Renderer kinds accepted by NewRenderer.
const (
	KindStyled = "styled"
	KindPlain  = "plain"
)

// NewRenderer returns the renderer registered under kind.
func NewRenderer(kind string) (Renderer, error) {
	switch kind {
	case KindStyled, "":
		return &StyledRenderer{}, nil
	case KindPlain:
		return &PlainRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown renderer %q", kind)
	}
}

// payload returns the string handed to the encoder; encoders reject empty input.
func payload(s string) string {
	if s == "" {
		return " "
	}
	return s
}

// quietZone is the border around the matrix, in modules.
const quietZone = 4

// logoRatio bounds the logo side to 1/logoRatio of the matrix width.
const logoRatio = 6

// minLogoSide is the smallest logo square LoadLogo produces, in pixels.
const minLogoSide = 8

// maxLogoFraction is the styled writer's limit: a logo wider than
// 1/maxLogoFraction of the image is silently dropped by it.
const maxLogoFraction = 5

// MaxPayloadBytes is the longest payload both renderers can encode: the
// byte-mode capacity of a version 40 symbol at level H.
const MaxPayloadBytes = 1273

var (
	// ErrPayloadTooLong means the text does not fit in any QR version.
	ErrPayloadTooLong = fmt.Errorf("payload longer than %d bytes", MaxPayloadBytes)
	// ErrLogoTooSmall means the image is too small to carry the logo.
	ErrLogoTooSmall = errors.New("image too small for a logo")
)

// CheckPayload reports whether s can be encoded by every renderer.
func CheckPayload(s string) error {
	if len(s) > MaxPayloadBytes {
		return ErrPayloadTooLong
	}
	return nil
}

// logoSide returns the logo square for a matrix of dimension modules drawn
// moduleSize pixels wide, inside the quiet zone.
func logoSide(dimension, moduleSize int) (int, error) {
	side := max(dimension*moduleSize/logoRatio, minLogoSide)
	width := (dimension + 2*quietZone) * moduleSize
	if side*maxLogoFraction > width {
		return 0, fmt.Errorf("%w: %dpx logo on a %dpx code", ErrLogoTooSmall, side, width)
	}
	return side, nil
}
