package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// QRCodeHandler renders the session's current QR code. The preview image
// polls it with a revision parameter; size=download returns the export-size
// raster as an attachment.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	// Parse format parameter (default to PNG)
	format := strings.ToLower(c.DefaultQuery("format", "png"))
	if format == "jpeg" {
		format = "jpg"
	}
	if format != "png" && format != "jpg" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be png or jpg"})
		return
	}

	canvas := currentSession(c).Canvas()
	size := canvas.PreviewSize()
	download := false
	switch c.DefaultQuery("size", "preview") {
	case "preview":
	case "download":
		size = canvas.ExportSize()
		download = true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be preview or download"})
		return
	}

	var buf bytes.Buffer
	if err := canvas.RenderTo(&buf, format, size); err != nil {
		h.logger.WithError(err).Error("Failed to render QR code")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create QR code"})
		return
	}

	contentType := "image/png"
	if format == "jpg" {
		contentType = "image/jpeg"
	}
	// Every edit changes the image; the revision query busts caches.
	c.Header("Cache-Control", "no-store")
	if download {
		c.Header("Content-Disposition", `attachment; filename="qr-code.`+format+`"`)
	}
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
