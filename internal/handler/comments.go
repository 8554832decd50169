package handler

import (
	"fmt"
	"net/http"

	"github.com/BloggingApp/feed-service/internal/access"
	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) commentsCreate(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	user := h.getCachedUserFromRequest(c)
	if !h.applyDecision(c, access.CreateContent(user, nextParam(c))) {
		return
	}

	var input dto.CreateCommentRequest
	if !bindForm(c, &input) {
		return
	}

	if _, err := h.services.Comment.Create(c.Request.Context(), user.ID, postID, input); err != nil {
		h.respondError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/posts/%d", postID))
}
