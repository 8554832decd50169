package access

import (
	"testing"

	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/google/uuid"
)

func TestCreateContent(t *testing.T) {
	t.Run("anonymous is sent to login with next", func(t *testing.T) {
		d := CreateContent(nil, "/create")
		if d.Verdict != RedirectLogin {
			t.Fatalf("expected RedirectLogin, got %v", d.Verdict)
		}
		if d.Location != "/auth/login?next=%2Fcreate" {
			t.Fatalf("unexpected location: %s", d.Location)
		}
	})

	t.Run("any authenticated user may create", func(t *testing.T) {
		d := CreateContent(&model.CachedUser{ID: uuid.New()}, "/create")
		if d.Verdict != Allow {
			t.Fatalf("expected Allow, got %v", d.Verdict)
		}
	})
}

func TestEditPost(t *testing.T) {
	owner := &model.CachedUser{ID: uuid.New()}
	other := &model.CachedUser{ID: uuid.New()}
	post := &model.Post{ID: 7, AuthorID: owner.ID}

	t.Run("anonymous is sent to login", func(t *testing.T) {
		d := EditPost(nil, post, "/posts/7/edit")
		if d.Verdict != RedirectLogin {
			t.Fatalf("expected RedirectLogin, got %v", d.Verdict)
		}
	})

	t.Run("non-owner is sent to the detail view", func(t *testing.T) {
		d := EditPost(other, post, "/posts/7/edit")
		if d.Verdict != RedirectForbidden {
			t.Fatalf("expected RedirectForbidden, got %v", d.Verdict)
		}
		if d.Location != "/posts/7" {
			t.Fatalf("unexpected location: %s", d.Location)
		}
	})

	t.Run("owner may edit", func(t *testing.T) {
		d := EditPost(owner, post, "/posts/7/edit")
		if d.Verdict != Allow {
			t.Fatalf("expected Allow, got %v", d.Verdict)
		}
	})
}

func TestFollowGates(t *testing.T) {
	user := &model.CachedUser{ID: uuid.New()}

	t.Run("following feed requires authentication", func(t *testing.T) {
		if d := ViewFollowing(nil, "/follow"); d.Verdict != RedirectLogin {
			t.Fatalf("expected RedirectLogin, got %v", d.Verdict)
		}
		if d := ViewFollowing(user, "/follow"); d.Verdict != Allow {
			t.Fatalf("expected Allow, got %v", d.Verdict)
		}
	})

	t.Run("subscribe and unsubscribe require authentication", func(t *testing.T) {
		if d := ChangeFollow(nil, "/profile/a/follow"); d.Verdict != RedirectLogin {
			t.Fatalf("expected RedirectLogin, got %v", d.Verdict)
		}
		if d := ChangeFollow(user, "/profile/a/follow"); d.Verdict != Allow {
			t.Fatalf("expected Allow, got %v", d.Verdict)
		}
	})
}
