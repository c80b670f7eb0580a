package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrsheet/internal/qr"
	"github.com/cristianadrielbraun/qrsheet/web/components"
	"github.com/cristianadrielbraun/qrsheet/web/pages"
)

var dotLabels = map[qr.DotStyle]string{
	qr.DotsSquare:       "Square",
	qr.DotsDots:         "Dots",
	qr.DotsRounded:      "Rounded",
	qr.DotsExtraRounded: "Extra rounded",
	qr.DotsChain:        "Chain",
	qr.DotsHStripe:      "Horizontal stripes",
	qr.DotsVStripe:      "Vertical stripes",
}

var cornerLabels = map[qr.CornerStyle]string{
	qr.CornersSquare:       "Square",
	qr.CornersDot:          "Dot",
	qr.CornersExtraRounded: "Extra rounded",
}

// HomePage renders the editor with the session's current selections.
func (h *Handler) HomePage(c *gin.Context) {
	sess := currentSession(c)
	st := sess.State()

	dots := make([]components.Option, 0, len(dotLabels))
	for _, d := range qr.DotStyles() {
		dots = append(dots, components.Option{Value: string(d), Label: dotLabels[d]})
	}
	corners := make([]components.Option, 0, len(cornerLabels))
	for _, cs := range qr.CornerStyles() {
		corners = append(corners, components.Option{Value: string(cs), Label: cornerLabels[cs]})
	}

	bg := qr.HexColor(st.Background)
	if bg == "transparent" {
		bg = "#ffffff"
	}

	props := pages.HomeProps{
		URL:           st.URL,
		TopCaption:    st.TopCaption,
		BottomCaption: st.BottomCaption,
		Dots:          string(st.Dots),
		Corners:       string(st.Corners),
		DotOptions:    dots,
		CornerOptions: corners,
		BuiltinLogo:   st.BuiltInLogo(),
		Foreground:    qr.HexColor(st.Foreground),
		Background:    bg,
		Revision:      sess.Canvas().Revision(),
		GridRows:      h.cfg.Grid.Rows,
		GridCols:      h.cfg.Grid.Cols,
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := pages.HomePage(props).Render(c.Request.Context(), c.Writer); err != nil {
		c.String(http.StatusInternalServerError, err.Error())
	}
}
