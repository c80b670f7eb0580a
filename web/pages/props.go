// Package pages renders full HTML pages.
package pages

import (
	"fmt"

	"github.com/cristianadrielbraun/qrsheet/web/components"
)

// HomeProps is the state the editor page is rendered with.
type HomeProps struct {
	URL           string
	TopCaption    string
	BottomCaption string
	Dots          string
	Corners       string
	DotOptions    []components.Option
	CornerOptions []components.Option
	BuiltinLogo   bool
	Foreground    string
	Background    string
	Revision      uint64
	GridRows      int
	GridCols      int
}

func (p HomeProps) previewSrc() string {
	return fmt.Sprintf("/api/qr?rev=%d", p.Revision)
}

func (p HomeProps) gridLabel() string {
	return fmt.Sprintf("Export grid (%d×%d)", p.GridRows, p.GridCols)
}
