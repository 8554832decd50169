package dto

type CreateCommentRequest struct {
	Text string `json:"text" form:"text" binding:"required,min=1"`
}
