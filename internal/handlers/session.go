package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrsheet/internal/preview"
	"github.com/cristianadrielbraun/qrsheet/internal/style"
)

const (
	sessionCookie = "qrsheet_session"
	sessionCtxKey = "session"
)

// Session attaches the caller's editing session to the request, starting a
// new one when the cookie is missing or expired.
func (h *Handler) Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(sessionCookie)
		sess, created := h.sessions.GetOrCreate(id)
		if created {
			// Fresh canvases start blank; show the default style right away.
			preview.Update(sess.Canvas(), sess.State())
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, sess.ID, int(h.cfg.Session.TTL.Seconds()), "/", "", false, true)
		c.Set(sessionCtxKey, sess)
		c.Next()
	}
}

func currentSession(c *gin.Context) *style.Session {
	return c.MustGet(sessionCtxKey).(*style.Session)
}
