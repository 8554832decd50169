package dto

type CreatePostRequest struct {
	Text     string  `json:"text" form:"text" binding:"required,min=1"`
	GroupID  *int64  `json:"group_id" form:"group_id"`
	ImageURL *string `json:"image_url" form:"image_url" binding:"omitempty,url"`
}

type EditPostRequest struct {
	Text     string  `json:"text" form:"text" binding:"required,min=1"`
	GroupID  *int64  `json:"group_id" form:"group_id"`
	ImageURL *string `json:"image_url" form:"image_url" binding:"omitempty,url"`
}
