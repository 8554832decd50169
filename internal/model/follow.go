package model

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed subscription edge: UserID follows AuthorID.
// The (user_id, author_id) pair is unique at the store layer.
type Follow struct {
	UserID    uuid.UUID `json:"user_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}
