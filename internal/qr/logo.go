package qr

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/builtin_logo.svg
var builtinLogoSVG []byte

// BuiltinLogo is the data URI of the logo offered by the "use built-in logo" toggle.
var BuiltinLogo = DataURI("image/svg+xml", builtinLogoSVG)

// ErrUnsupportedLogo is returned for uploads that are not PNG, JPEG, GIF or SVG.
var ErrUnsupportedLogo = errors.New("unsupported logo image type")

var logoTypes = []string{"image/png", "image/jpeg", "image/gif", "image/svg+xml"}

// Logos are padded by this fraction of their box on every side.
const logoMarginRatio = 0.1

// DataURI encodes data as a base64 data URI of the given MIME type.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// SniffDataURI detects the image type of an uploaded file and returns it as a
// data URI.
func SniffDataURI(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	for _, t := range logoTypes {
		if mt.Is(t) {
			return DataURI(t, data), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedLogo, mt.String())
}

func parseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("logo is not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URI")
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return mime, []byte(payload), nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI: %w", err)
	}
	return mime, data, nil
}

// LoadLogo decodes a logo data URI and returns it fitted into a side×side
// square filled with bg, keeping a small margin around the artwork.
func LoadLogo(uri string, side int, bg color.Color) (image.Image, error) {
	if side < minLogoSide {
		side = minLogoSide
	}
	mime, data, err := parseDataURI(uri)
	if err != nil {
		return nil, err
	}

	inner := side - 2*int(float64(side)*logoMarginRatio)

	var img image.Image
	if mime == "image/svg+xml" {
		img, err = rasterizeSVG(data, inner)
	} else {
		img, err = imaging.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}

	fitted := imaging.Fit(img, inner, inner, imaging.Lanczos)
	return imaging.PasteCenter(imaging.New(side, side, bg), fitted), nil
}

// rasterizeSVG draws an SVG icon into a square of the given side, keeping
// the icon's aspect ratio.
func rasterizeSVG(data []byte, side int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	w, h := float64(side), float64(side)
	if vw, vh := icon.ViewBox.W, icon.ViewBox.H; vw > 0 && vh > 0 {
		if vw > vh {
			h = w * vh / vw
		} else {
			w = h * vw / vh
		}
	}
	iw, ih := max(1, int(w)), max(1, int(h))
	icon.SetTarget(0, 0, float64(iw), float64(ih))

	rgba := image.NewRGBA(image.Rect(0, 0, iw, ih))
	scanner := rasterx.NewScannerGV(iw, ih, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(iw, ih, scanner), 1)
	return rgba, nil
}
