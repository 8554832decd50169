package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/BloggingApp/feed-service/internal/access"
	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/BloggingApp/feed-service/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) postsGetByID(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	post, err := h.services.Post.FindByID(c.Request.Context(), postID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	comments, err := h.services.Comment.FindPostComments(c.Request.Context(), postID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PostDetail{
		Post: post,
		Comments: comments,
	})
}

func (h *Handler) postsCreateForm(c *gin.Context) {
	user := h.getCachedUserFromRequest(c)
	if !h.applyDecision(c, access.CreateContent(user, nextParam(c))) {
		return
	}

	groups, err := h.services.Post.GroupChoices(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PostForm{Groups: groups})
}

func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getCachedUserFromRequest(c)
	if !h.applyDecision(c, access.CreateContent(user, nextParam(c))) {
		return
	}

	var input dto.CreatePostRequest
	if !bindForm(c, &input) {
		return
	}

	if _, err := h.services.Post.Create(c.Request.Context(), user.ID, input); err != nil {
		if err == service.ErrGroupNotFound {
			c.JSON(http.StatusOK, dto.NewFormErrorResponse(map[string]string{"group_id": "unknown group"}))
			return
		}

		h.respondError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/profile/"+user.Username)
}

func (h *Handler) postsEditForm(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	post, err := h.services.Post.FindByID(c.Request.Context(), postID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	user := h.getCachedUserFromRequest(c)
	if !h.applyDecision(c, access.EditPost(user, &post.Post, nextParam(c))) {
		return
	}

	groups, err := h.services.Post.GroupChoices(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PostForm{
		Post: &post.Post,
		Groups: groups,
	})
}

func (h *Handler) postsEdit(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	post, err := h.services.Post.FindByID(c.Request.Context(), postID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	user := h.getCachedUserFromRequest(c)
	if !h.applyDecision(c, access.EditPost(user, &post.Post, nextParam(c))) {
		return
	}

	var input dto.EditPostRequest
	if !bindForm(c, &input) {
		return
	}

	if _, err := h.services.Post.Edit(c.Request.Context(), user.ID, postID, input); err != nil {
		if err == service.ErrGroupNotFound {
			c.JSON(http.StatusOK, dto.NewFormErrorResponse(map[string]string{"group_id": "unknown group"}))
			return
		}

		h.respondError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/posts/%d", postID))
}

func postIDParam(c *gin.Context) (int64, bool) {
	postIDString := strings.TrimSpace(c.Param("postID"))
	postID, err := strconv.ParseInt(postIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return 0, false
	}

	return postID, true
}
