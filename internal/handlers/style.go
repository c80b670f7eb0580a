package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrsheet/internal/preview"
	"github.com/cristianadrielbraun/qrsheet/internal/qr"
	"github.com/cristianadrielbraun/qrsheet/internal/style"
)

// styleForm carries the inputs that changed. Absent fields keep their value.
type styleForm struct {
	URL           *string `form:"url" binding:"omitempty"`
	TopCaption    *string `form:"top_caption" binding:"omitempty,max=200"`
	BottomCaption *string `form:"bottom_caption" binding:"omitempty,max=200"`
	Dots          *string `form:"dots" binding:"omitempty,oneof=square dots rounded extra-rounded chain hstripe vstripe"`
	Corners       *string `form:"corners" binding:"omitempty,oneof=square dot extra-rounded"`
	Foreground    *string `form:"fg" binding:"omitempty,len=4|len=7,hexcolor"`
	Background    *string `form:"bg" binding:"omitempty,len=4|len=7|eq=transparent,hexcolor|eq=transparent"`
}

func (f styleForm) apply(st *style.State) {
	if f.URL != nil {
		st.URL = *f.URL
	}
	if f.TopCaption != nil {
		st.TopCaption = *f.TopCaption
	}
	if f.BottomCaption != nil {
		st.BottomCaption = *f.BottomCaption
	}
	if f.Dots != nil {
		st.Dots = qr.DotStyle(*f.Dots)
	}
	if f.Corners != nil {
		st.Corners = qr.CornerStyle(*f.Corners)
	}
	if f.Foreground != nil {
		st.Foreground = qr.ParseColor(*f.Foreground, st.Foreground)
	}
	if f.Background != nil {
		st.Background = qr.ParseColor(*f.Background, st.Background)
	}
}

// previewResponse tells the page what to refresh after a change.
type previewResponse struct {
	TopCaption    string `json:"top_caption"`
	BottomCaption string `json:"bottom_caption"`
	Revision      uint64 `json:"revision"`
	LogoMode      string `json:"logo_mode"`
	BuiltinLogo   bool   `json:"builtin_logo"`
	Applied       bool   `json:"applied"`
}

func newPreviewResponse(st style.State, res preview.Result) previewResponse {
	return previewResponse{
		TopCaption:    res.TopCaption,
		BottomCaption: res.BottomCaption,
		Revision:      res.Revision,
		LogoMode:      st.LogoMode.String(),
		BuiltinLogo:   st.BuiltInLogo(),
		Applied:       true,
	}
}

// UpdateStyle applies changed inputs and refreshes the preview.
func (h *Handler) UpdateStyle(c *gin.Context) {
	var form styleForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if form.URL != nil {
		if err := qr.CheckPayload(*form.URL); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	sess := currentSession(c)
	sess.Update(form.apply)
	c.JSON(http.StatusOK, refresh(sess))
}

// refresh pushes the session's latest state into its canvas.
func refresh(sess *style.Session) previewResponse {
	var resp previewResponse
	sess.Sync(func(st style.State) {
		resp = newPreviewResponse(st, preview.Update(sess.Canvas(), st))
	})
	return resp
}
