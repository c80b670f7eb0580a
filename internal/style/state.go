// Package style holds the per-session QR style selections and decides which
// logo is active.
package style

import (
	"image/color"

	"github.com/cristianadrielbraun/qrsheet/internal/qr"
)

// LogoMode is the active logo source.
type LogoMode int

const (
	LogoNone LogoMode = iota
	LogoBuiltIn
	LogoCustom
)

func (m LogoMode) String() string {
	switch m {
	case LogoBuiltIn:
		return "builtin"
	case LogoCustom:
		return "custom"
	default:
		return "none"
	}
}

// State is the set of user selections behind one preview.
//
// Invariant: CustomLogo is non-empty exactly when LogoMode is LogoCustom.
type State struct {
	URL           string
	TopCaption    string
	BottomCaption string
	Dots          qr.DotStyle
	Corners       qr.CornerStyle
	LogoMode      LogoMode
	CustomLogo    string // data URI
	Foreground    color.RGBA
	Background    color.RGBA
}

// BuiltInLogo reports whether the "use built-in logo" toggle is on.
func (s State) BuiltInLogo() bool {
	return s.LogoMode == LogoBuiltIn
}

// SetBuiltInLogo turns the built-in logo on or off. Turning it on drops any
// custom logo.
func (s *State) SetBuiltInLogo(enabled bool) {
	if enabled {
		s.LogoMode = LogoBuiltIn
		s.CustomLogo = ""
		return
	}
	if s.LogoMode == LogoBuiltIn {
		s.LogoMode = LogoNone
	}
}

// SetCustomLogo activates an uploaded logo and clears the built-in toggle.
// An empty data URI behaves like ClearCustomLogo.
func (s *State) SetCustomLogo(dataURI string) {
	if dataURI == "" {
		s.ClearCustomLogo()
		return
	}
	s.LogoMode = LogoCustom
	s.CustomLogo = dataURI
}

// ClearCustomLogo drops the uploaded logo. The built-in logo stays active if
// it was the current source.
func (s *State) ClearCustomLogo() {
	s.CustomLogo = ""
	if s.LogoMode == LogoCustom {
		s.LogoMode = LogoNone
	}
}

// ResolveLogo returns the data URI of the active logo, or "" for none.
func ResolveLogo(s State) string {
	switch s.LogoMode {
	case LogoCustom:
		return s.CustomLogo
	case LogoBuiltIn:
		return qr.BuiltinLogo
	default:
		return ""
	}
}

// DefaultState is the state of a fresh page: built-in logo on, rounded dots.
func DefaultState() State {
	return State{
		URL:        "https://example.com",
		TopCaption: "Scan me",
		Dots:       qr.DotsRounded,
		Corners:    qr.CornersExtraRounded,
		LogoMode:   LogoBuiltIn,
		Foreground: qr.DefaultForeground,
		Background: qr.DefaultBackground,
	}
}
