package handler

import (
	"net/http"

	"github.com/BloggingApp/feed-service/internal/access"
	"github.com/gin-gonic/gin"
)

func (h *Handler) profileFollow(c *gin.Context) {
	user := h.getCachedUserFromRequest(c)
	if !h.applyDecision(c, access.ChangeFollow(user, nextParam(c))) {
		return
	}

	username := c.Param("username")
	if err := h.services.Follow.Follow(c.Request.Context(), user, username); err != nil {
		h.respondError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/profile/"+username)
}

func (h *Handler) profileUnfollow(c *gin.Context) {
	user := h.getCachedUserFromRequest(c)
	if !h.applyDecision(c, access.ChangeFollow(user, nextParam(c))) {
		return
	}

	username := c.Param("username")
	if err := h.services.Follow.Unfollow(c.Request.Context(), user, username); err != nil {
		h.respondError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/profile/"+username)
}
