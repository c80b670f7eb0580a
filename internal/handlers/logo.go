package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrsheet/internal/qr"
)

// multipart headers on top of the file itself
const uploadOverhead = 64 << 10

// UploadLogo reads the "logo" file into a data URI and makes it the active
// logo. An empty selection clears the custom logo. When another logo action
// starts while this upload is being read, the upload is dropped.
func (h *Handler) UploadLogo(c *gin.Context) {
	sess := currentSession(c)
	ticket := sess.BeginLogoRead()

	maxBytes := h.cfg.Upload.MaxBytes
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+uploadOverhead)

	dataURI, err := readLogo(c, maxBytes)
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge), errors.Is(err, errLogoTooLarge):
			status = http.StatusRequestEntityTooLarge
		case errors.Is(err, qr.ErrUnsupportedLogo):
			status = http.StatusUnsupportedMediaType
		}
		h.logger.WithError(err).WithField("session", sess.ID).Warn("Rejected logo upload")
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if _, applied := sess.CompleteLogoRead(ticket, dataURI); !applied {
		h.logger.WithField("session", sess.ID).Debug("Logo upload superseded")
		resp := refresh(sess)
		resp.Applied = false
		c.JSON(http.StatusOK, resp)
		return
	}
	c.JSON(http.StatusOK, refresh(sess))
}

var errLogoTooLarge = errors.New("logo file too large")

// readLogo returns the uploaded logo as a data URI, or "" when no file was
// selected.
func readLogo(c *gin.Context, maxBytes int64) (string, error) {
	fh, err := c.FormFile("logo")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if fh.Size == 0 {
		return "", nil
	}
	if fh.Size > maxBytes {
		return "", fmt.Errorf("%w: %d bytes", errLogoTooLarge, fh.Size)
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return "", errLogoTooLarge
	}
	return qr.SniffDataURI(data)
}

type builtinForm struct {
	Enabled bool `form:"enabled"`
}

// ToggleBuiltinLogo switches the built-in logo on or off.
func (h *Handler) ToggleBuiltinLogo(c *gin.Context) {
	var form builtinForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess := currentSession(c)
	sess.SetBuiltInLogo(form.Enabled)
	c.JSON(http.StatusOK, refresh(sess))
}
