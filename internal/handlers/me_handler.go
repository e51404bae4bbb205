package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/httpresp"
	"github.com/ldagroup/timetracking/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// GetMe returns the authenticated admin.
func (h *MeHandler) GetMe(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		httperr.Unauthorized(c, "unauthorized", "Authentication required.")
		return
	}

	httpresp.OK(c, gin.H{"user": p})
}
