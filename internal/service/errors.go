package service

import "errors"

var (
	ErrInternal      = errors.New("internal server error")
	ErrPostNotFound  = errors.New("post not found")
	ErrGroupNotFound = errors.New("group not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrSelfFollow    = errors.New("cannot subscribe to yourself")
	ErrNotPostAuthor = errors.New("only the author can edit a post")
)
