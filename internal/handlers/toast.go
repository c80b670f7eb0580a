package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrsheet/internal/export"
	toast "github.com/cristianadrielbraun/qrsheet/web/components/ui/toast"
)

func toastVariant(variant string) toast.Variant {
	switch variant {
	case "error", "destructive":
		return toast.VariantError
	case "warning":
		return toast.VariantWarning
	case "info":
		return toast.VariantInfo
	default:
		return toast.VariantSuccess
	}
}

// GenericToast returns a Toast component rendered as HTML for HTMX swaps.
func (h *Handler) GenericToast(c *gin.Context) {
	h.renderToast(c, http.StatusOK, toast.Props{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Variant:     toastVariant(c.PostForm("variant")),
		Dismissible: c.PostForm("dismissible") == "on",
	})
}

// renderNotice shows an export notice as an error toast.
func (h *Handler) renderNotice(c *gin.Context, status int, n export.Notice) {
	h.renderToast(c, status, toast.Props{
		Title:       n.Title,
		Description: n.Message,
		Variant:     toast.VariantError,
		Duration:    5000,
		Dismissible: true,
	})
}

func (h *Handler) renderToast(c *gin.Context, status int, props toast.Props) {
	props.Position = toast.PositionBottomRight
	props.Icon = true
	if props.Duration == 0 {
		props.Duration = 2000
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := toast.Toast(props).Render(c.Request.Context(), c.Writer); err != nil {
		h.logger.WithError(err).Error("Failed to render toast")
	}
}
