package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrsheet/internal/export"
)

type exportQuery struct {
	Variant string `form:"variant" binding:"required,oneof=grid large"`
	Rows    int    `form:"rows" binding:"omitempty,min=1,max=10"`
	Cols    int    `form:"cols" binding:"omitempty,min=1,max=10"`
}

// httpPresenter streams the finished PDF inline so the browser opens it in
// a new tab.
type httpPresenter struct {
	c        *gin.Context
	filename string
}

func (p httpPresenter) Present(_ context.Context, doc export.Document) error {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	p.c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, p.filename))
	p.c.Header("Cache-Control", "no-store")
	p.c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	return nil
}

// noticeCollector keeps the notices raised during one request.
type noticeCollector struct {
	notices []export.Notice
}

func (n *noticeCollector) Notify(notice export.Notice) {
	n.notices = append(n.notices, notice)
}

func (n *noticeCollector) last() (export.Notice, bool) {
	if len(n.notices) == 0 {
		return export.Notice{}, false
	}
	return n.notices[len(n.notices)-1], true
}

// ExportPDF builds the grid or large PDF from the session's current preview.
func (h *Handler) ExportPDF(c *gin.Context) {
	var q exportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	variant, err := export.ParseVariant(q.Variant)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := currentSession(c)
	st := sess.State()
	notices := &noticeCollector{}

	err = h.exports.Export(c.Request.Context(), export.Request{
		Key:           sess.ID,
		Variant:       variant,
		TopCaption:    st.TopCaption,
		BottomCaption: st.BottomCaption,
		Rows:          q.Rows,
		Cols:          q.Cols,
		Source:        sess.Canvas(),
		Presenter:     httpPresenter{c: c, filename: "qr-" + string(variant) + ".pdf"},
		Notifier:      notices,
	})
	if err == nil {
		return
	}

	status := http.StatusInternalServerError
	if errors.Is(err, export.ErrExportInProgress) {
		status = http.StatusConflict
	}
	notice, _ := notices.last()
	if isHTMX(c) {
		h.renderNotice(c, status, notice)
		return
	}
	c.JSON(status, gin.H{"error": notice.Message, "title": notice.Title})
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}
