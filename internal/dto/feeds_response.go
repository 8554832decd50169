package dto

import (
	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/pagination"
)

type GroupFeed struct {
	Group model.Group                     `json:"group"`
	Page  *pagination.Page[*model.FullPost] `json:"page"`
}

type ProfileFeed struct {
	Author    model.CachedUser                  `json:"author"`
	Following bool                              `json:"following"`
	Page      *pagination.Page[*model.FullPost] `json:"page"`
}

type PostDetail struct {
	Post     *model.FullPost      `json:"post"`
	Comments []*model.FullComment `json:"comments"`
}

// PostForm is the blank/prefilled create-or-edit form: current values
// plus the group choices for the selector.
type PostForm struct {
	Post   *model.Post    `json:"post,omitempty"`
	Groups []*model.Group `json:"groups"`
}
