package qr

import "image/color"

// DotStyle selects how data modules are drawn.
type DotStyle string

const (
	DotsSquare       DotStyle = "square"
	DotsDots         DotStyle = "dots"
	DotsRounded      DotStyle = "rounded"
	DotsExtraRounded DotStyle = "extra-rounded"
	DotsChain        DotStyle = "chain"
	DotsHStripe      DotStyle = "hstripe"
	DotsVStripe      DotStyle = "vstripe"
)

// CornerStyle selects how the three finder patterns are drawn.
type CornerStyle string

const (
	CornersSquare       CornerStyle = "square"
	CornersDot          CornerStyle = "dot"
	CornersExtraRounded CornerStyle = "extra-rounded"
)

var dotStyles = []DotStyle{DotsSquare, DotsDots, DotsRounded, DotsExtraRounded, DotsChain, DotsHStripe, DotsVStripe}

var cornerStyles = []CornerStyle{CornersSquare, CornersDot, CornersExtraRounded}

// DotStyles lists the supported dot styles in display order.
func DotStyles() []DotStyle { return append([]DotStyle(nil), dotStyles...) }

// CornerStyles lists the supported corner styles in display order.
func CornerStyles() []CornerStyle { return append([]CornerStyle(nil), cornerStyles...) }

// Valid reports whether d is a known dot style.
func (d DotStyle) Valid() bool {
	for _, s := range dotStyles {
		if s == d {
			return true
		}
	}
	return false
}

// Valid reports whether c is a known corner style.
func (c CornerStyle) Valid() bool {
	for _, s := range cornerStyles {
		if s == c {
			return true
		}
	}
	return false
}

// Config is the full input of one render. Two equal configs produce the
// same image, so Config is kept comparable.
type Config struct {
	Payload    string
	Logo       string // data URI, empty for no logo
	Dots       DotStyle
	Corners    CornerStyle
	Foreground color.RGBA
	Background color.RGBA
}

var (
	DefaultForeground = color.RGBA{0, 0, 0, 255}
	DefaultBackground = color.RGBA{255, 255, 255, 255}
)
