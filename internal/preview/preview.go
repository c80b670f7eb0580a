// Package preview pushes style selections into a QR canvas.
package preview

import (
	"strings"

	"github.com/cristianadrielbraun/qrsheet/internal/qr"
	"github.com/cristianadrielbraun/qrsheet/internal/style"
)

// PlaceholderPayload is encoded when the URL field is empty.
const PlaceholderPayload = " "

// Result is what the page needs after an update: caption text to set
// directly and the canvas revision to refresh the image with.
type Result struct {
	TopCaption    string
	BottomCaption string
	Revision      uint64
	Config        qr.Config
}

// BuildConfig maps a style state to the canvas configuration.
func BuildConfig(s style.State) qr.Config {
	payload := strings.TrimSpace(s.URL)
	if payload == "" {
		payload = PlaceholderPayload
	}
	return qr.Config{
		Payload:    payload,
		Logo:       style.ResolveLogo(s),
		Dots:       s.Dots,
		Corners:    s.Corners,
		Foreground: s.Foreground,
		Background: s.Background,
	}
}

// Update pushes s into canvas. Captions are passed through untouched; they
// never trigger a QR re-render.
func Update(canvas *qr.Canvas, s style.State) Result {
	cfg := BuildConfig(s)
	return Result{
		TopCaption:    s.TopCaption,
		BottomCaption: s.BottomCaption,
		Revision:      canvas.Update(cfg),
		Config:        cfg,
	}
}
