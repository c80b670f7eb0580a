// Package layout computes where QR codes and captions go on a printed page.
// All values are in document units (millimeters by default).
package layout

import (
	"errors"
	"fmt"
	"math"
)

// Kind is the layout variant.
type Kind int

const (
	Grid Kind = iota
	Large
)

func (k Kind) String() string {
	if k == Large {
		return "large"
	}
	return "grid"
}

// Spec describes one page layout. Rows and Cols only apply to Grid.
type Spec struct {
	Kind       Kind
	PageWidth  float64
	PageHeight float64
	Margin     float64
	Rows       int
	Cols       int
}

// Rect is an axis-aligned rectangle; X, Y is the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Caption is a text anchored at X (horizontal center) and Y (baseline).
type Caption struct {
	Text string
	X, Y float64
}

// Captions are the texts printed above and below every QR code.
type Captions struct {
	Top    string
	Bottom string
}

// Placement is everything drawn for one QR code.
type Placement struct {
	Border   *Rect // cell outline, nil in Large mode
	Image    Rect
	Top      Caption
	Bottom   Caption
	FontSize float64
}

const (
	gridQRRatio      = 0.7
	gridTopOffset    = 2.0
	gridBottomOffset = 4.0
	gridFontSize     = 8.0

	largeTopOffset    = 5.0
	largeBottomOffset = 10.0
	largeFontSize     = 12.0
)

var ErrInvalidSpec = errors.New("invalid layout spec")

// Compute returns the placements for spec, one per QR code, in row-major order.
func Compute(spec Spec, captions Captions) ([]Placement, error) {
	if spec.PageWidth <= 0 || spec.PageHeight <= 0 {
		return nil, fmt.Errorf("%w: page size %.2fx%.2f", ErrInvalidSpec, spec.PageWidth, spec.PageHeight)
	}
	if spec.Margin < 0 {
		return nil, fmt.Errorf("%w: negative margin", ErrInvalidSpec)
	}

	switch spec.Kind {
	case Grid:
		return grid(spec, captions)
	case Large:
		return large(spec, captions)
	default:
		return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidSpec, spec.Kind)
	}
}

func grid(spec Spec, captions Captions) ([]Placement, error) {
	if spec.Rows < 1 || spec.Cols < 1 {
		return nil, fmt.Errorf("%w: grid needs at least 1x1 cells, got %dx%d", ErrInvalidSpec, spec.Rows, spec.Cols)
	}
	printW := spec.PageWidth - 2*spec.Margin
	printH := spec.PageHeight - 2*spec.Margin
	if printW <= 0 || printH <= 0 {
		return nil, fmt.Errorf("%w: margin %.2f leaves no printable area", ErrInvalidSpec, spec.Margin)
	}

	cellW := printW / float64(spec.Cols)
	cellH := printH / float64(spec.Rows)
	size := math.Min(cellW, cellH) * gridQRRatio

	placements := make([]Placement, 0, spec.Rows*spec.Cols)
	for i := 0; i < spec.Rows; i++ {
		for j := 0; j < spec.Cols; j++ {
			x := spec.Margin + float64(j)*cellW
			y := spec.Margin + float64(i)*cellH
			centerX := x + cellW/2
			centerY := y + cellH/2

			placements = append(placements, Placement{
				Border:   &Rect{X: x, Y: y, W: cellW, H: cellH},
				Image:    Rect{X: centerX - size/2, Y: centerY - size/2, W: size, H: size},
				Top:      Caption{Text: captions.Top, X: centerX, Y: centerY - size/2 - gridTopOffset},
				Bottom:   Caption{Text: captions.Bottom, X: centerX, Y: centerY + size/2 + gridBottomOffset},
				FontSize: gridFontSize,
			})
		}
	}
	return placements, nil
}

func large(spec Spec, captions Captions) ([]Placement, error) {
	size := math.Min(spec.PageWidth, spec.PageHeight) - 2*spec.Margin
	if size <= 0 {
		return nil, fmt.Errorf("%w: margin %.2f leaves no room for the code", ErrInvalidSpec, spec.Margin)
	}
	x := (spec.PageWidth - size) / 2
	y := (spec.PageHeight - size) / 2

	return []Placement{{
		Image:    Rect{X: x, Y: y, W: size, H: size},
		Top:      Caption{Text: captions.Top, X: spec.PageWidth / 2, Y: y - largeTopOffset},
		Bottom:   Caption{Text: captions.Bottom, X: spec.PageWidth / 2, Y: y + size + largeBottomOffset},
		FontSize: largeFontSize,
	}}, nil
}
