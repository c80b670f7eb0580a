package qr

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor parses "#rrggbb", "#rgb" or "transparent", returning def for
// anything it does not understand.
func ParseColor(param string, def color.RGBA) color.RGBA {
	if param == "" {
		return def
	}

	if strings.ToLower(param) == "transparent" {
		return color.RGBA{0, 0, 0, 0}
	}

	param = strings.TrimPrefix(param, "#")
	if len(param) == 3 {
		param = string([]byte{param[0], param[0], param[1], param[1], param[2], param[2]})
	}
	if len(param) != 6 {
		return def
	}

	r, err1 := strconv.ParseUint(param[0:2], 16, 8)
	g, err2 := strconv.ParseUint(param[2:4], 16, 8)
	b, err3 := strconv.ParseUint(param[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return def
	}

	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
}

// HexColor formats c the way ParseColor reads it back.
func HexColor(c color.RGBA) string {
	if c.A == 0 {
		return "transparent"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
