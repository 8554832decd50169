package model

type Group struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// GroupRef is the short form attached to feed posts.
type GroupRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

func (g Group) Ref() *GroupRef {
	return &GroupRef{
		ID: g.ID,
		Title: g.Title,
		Slug: g.Slug,
	}
}
