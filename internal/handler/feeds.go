package handler

import (
	"net/http"

	"github.com/BloggingApp/feed-service/internal/access"
	"github.com/gin-gonic/gin"
)

func (h *Handler) index(c *gin.Context) {
	feed, err := h.services.Feed.Global(c.Request.Context(), pageParam(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

func (h *Handler) groupFeed(c *gin.Context) {
	feed, err := h.services.Feed.Group(c.Request.Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

func (h *Handler) profileFeed(c *gin.Context) {
	requester := h.getCachedUserFromRequest(c)

	feed, err := h.services.Feed.Profile(c.Request.Context(), c.Param("username"), requester, pageParam(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

func (h *Handler) followingFeed(c *gin.Context) {
	user := h.getCachedUserFromRequest(c)
	if !h.applyDecision(c, access.ViewFollowing(user, nextParam(c))) {
		return
	}

	feed, err := h.services.Feed.Following(c.Request.Context(), user.ID, pageParam(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}
