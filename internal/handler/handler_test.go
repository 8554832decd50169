package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/BloggingApp/feed-service/internal/handler"
	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository/repotest"
	"github.com/BloggingApp/feed-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) (*gin.Engine, *repotest.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("ACCESS_SECRET", testSecret)
	viper.Set("client.origin", "http://localhost:3000")

	db := repotest.NewDB()
	services := service.New(zap.NewNop(), repotest.NewRepository(db, repotest.NewCache()), nil)

	return handler.New(services).InitRoutes(), db
}

func signToken(t *testing.T, user model.CachedUser) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": user.ID.String(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	return token
}

func doRequest(r *gin.Engine, method string, target string, form url.Values, token string) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIndex(t *testing.T) {
	r, db := newTestRouter(t)
	author := db.SeedUser("author")
	db.SeedPost(author.ID, nil, "older")
	newest := db.SeedPost(author.ID, nil, "newest")

	w := doRequest(r, http.MethodGet, "/", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var page struct {
		Items []struct {
			Post model.Post `json:"post"`
		} `json:"items"`
		Number int `json:"number"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].Post.ID != newest.ID {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestAnonymousRedirects(t *testing.T) {
	cases := []struct {
		method   string
		target   string
		location string
	}{
		{http.MethodGet, "/follow", "/auth/login?next=%2Ffollow"},
		{http.MethodGet, "/create", "/auth/login?next=%2Fcreate"},
		{http.MethodPost, "/create", "/auth/login?next=%2Fcreate"},
		{http.MethodPost, "/profile/author/follow", "/auth/login?next=%2Fprofile%2Fauthor%2Ffollow"},
		{http.MethodPost, "/profile/author/unfollow", "/auth/login?next=%2Fprofile%2Fauthor%2Funfollow"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			r, db := newTestRouter(t)
			db.SeedUser("author")

			w := doRequest(r, tc.method, tc.target, nil, "")
			if w.Code != http.StatusSeeOther {
				t.Fatalf("expected 303, got %d", w.Code)
			}
			if got := w.Header().Get("Location"); got != tc.location {
				t.Fatalf("expected redirect to %q, got %q", tc.location, got)
			}
		})
	}
}

func TestGroupFeedNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/group/no-such-group", nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "page not found") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/no/such/route", nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestPostsCreate(t *testing.T) {
	t.Run("redirects to the author's profile", func(t *testing.T) {
		r, db := newTestRouter(t)
		user := db.SeedUser("writer")

		w := doRequest(r, http.MethodPost, "/create", url.Values{"text": {"my first post"}}, signToken(t, user))
		if w.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d: %s", w.Code, w.Body.String())
		}
		if got := w.Header().Get("Location"); got != "/profile/writer" {
			t.Fatalf("expected redirect to /profile/writer, got %q", got)
		}
		if len(db.Posts) != 1 || db.Posts[0].Text != "my first post" {
			t.Fatalf("post not stored: %+v", db.Posts)
		}
	})

	t.Run("empty text re-renders the form", func(t *testing.T) {
		r, db := newTestRouter(t)
		user := db.SeedUser("writer")

		w := doRequest(r, http.MethodPost, "/create", url.Values{"text": {""}}, signToken(t, user))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var resp struct {
			Ok     bool              `json:"ok"`
			Errors map[string]string `json:"errors"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if resp.Ok {
			t.Fatal("expected ok=false")
		}
		if _, ok := resp.Errors["text"]; !ok {
			t.Fatalf("expected a field error for text, got: %v", resp.Errors)
		}
		if len(db.Posts) != 0 {
			t.Fatal("invalid submission must not create a post")
		}
	})

	t.Run("unknown group re-renders the form", func(t *testing.T) {
		r, db := newTestRouter(t)
		user := db.SeedUser("writer")

		w := doRequest(r, http.MethodPost, "/create", url.Values{
			"text": {"hello"},
			"group_id": {"42"},
		}, signToken(t, user))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var resp struct {
			Errors map[string]string `json:"errors"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if _, ok := resp.Errors["group_id"]; !ok {
			t.Fatalf("expected a field error for group_id, got: %v", resp.Errors)
		}
	})
}

func TestPostsEdit(t *testing.T) {
	t.Run("author edit redirects to the post", func(t *testing.T) {
		r, db := newTestRouter(t)
		author := db.SeedUser("author")
		post := db.SeedPost(author.ID, nil, "before")
		target := "/posts/" + strconv.FormatInt(post.ID, 10)

		w := doRequest(r, http.MethodPost, target+"/edit", url.Values{"text": {"after"}}, signToken(t, author))
		if w.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d: %s", w.Code, w.Body.String())
		}
		if got := w.Header().Get("Location"); got != target {
			t.Fatalf("expected redirect to %q, got %q", target, got)
		}
		if db.Posts[0].Text != "after" {
			t.Fatalf("post not updated: %q", db.Posts[0].Text)
		}
	})

	t.Run("non-author is sent back to the post unchanged", func(t *testing.T) {
		r, db := newTestRouter(t)
		author := db.SeedUser("author")
		intruder := db.SeedUser("intruder")
		post := db.SeedPost(author.ID, nil, "original")
		target := "/posts/" + strconv.FormatInt(post.ID, 10)

		w := doRequest(r, http.MethodPost, target+"/edit", url.Values{"text": {"hijacked"}}, signToken(t, intruder))
		if w.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d", w.Code)
		}
		if got := w.Header().Get("Location"); got != target {
			t.Fatalf("expected redirect to %q, got %q", target, got)
		}
		if db.Posts[0].Text != "original" {
			t.Fatalf("text changed to %q", db.Posts[0].Text)
		}
	})

	t.Run("anonymous is sent to login", func(t *testing.T) {
		r, db := newTestRouter(t)
		author := db.SeedUser("author")
		post := db.SeedPost(author.ID, nil, "original")
		target := "/posts/" + strconv.FormatInt(post.ID, 10) + "/edit"

		w := doRequest(r, http.MethodPost, target, url.Values{"text": {"hijacked"}}, "")
		if w.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d", w.Code)
		}
		if got := w.Header().Get("Location"); !strings.HasPrefix(got, "/auth/login?next=") {
			t.Fatalf("expected login redirect, got %q", got)
		}
	})

	t.Run("garbage post id is a bad request", func(t *testing.T) {
		r, db := newTestRouter(t)
		user := db.SeedUser("user")

		w := doRequest(r, http.MethodPost, "/posts/abc/edit", url.Values{"text": {"x"}}, signToken(t, user))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestPostDetail(t *testing.T) {
	r, db := newTestRouter(t)
	author := db.SeedUser("author")
	commenter := db.SeedUser("commenter")
	post := db.SeedPost(author.ID, nil, "hello")
	target := "/posts/" + strconv.FormatInt(post.ID, 10)

	w := doRequest(r, http.MethodPost, target+"/comment", url.Values{"text": {"nice"}}, signToken(t, commenter))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != target {
		t.Fatalf("expected redirect to %q, got %q", target, got)
	}

	w = doRequest(r, http.MethodGet, target, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var detail struct {
		Post struct {
			Post model.Post `json:"post"`
		} `json:"post"`
		Comments []struct {
			Comment model.Comment `json:"comment"`
		} `json:"comments"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if detail.Post.Post.ID != post.ID {
		t.Fatalf("unexpected post: %+v", detail.Post)
	}
	if len(detail.Comments) != 1 || detail.Comments[0].Comment.Text != "nice" {
		t.Fatalf("unexpected comments: %+v", detail.Comments)
	}
}

func TestProfileFollowFlow(t *testing.T) {
	r, db := newTestRouter(t)
	author := db.SeedUser("author")
	reader := db.SeedUser("reader")
	db.SeedPost(author.ID, nil, "hello")
	token := signToken(t, reader)

	w := doRequest(r, http.MethodPost, "/profile/author/follow", nil, token)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != "/profile/author" {
		t.Fatalf("expected redirect to /profile/author, got %q", got)
	}
	if len(db.Follows) != 1 {
		t.Fatalf("expected one follow edge, got %d", len(db.Follows))
	}

	// resubmit: still exactly one edge
	w = doRequest(r, http.MethodPost, "/profile/author/follow", nil, token)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 on resubmit, got %d", w.Code)
	}
	if len(db.Follows) != 1 {
		t.Fatalf("expected one follow edge after resubmit, got %d", len(db.Follows))
	}

	var profile struct {
		Following bool `json:"following"`
	}
	w = doRequest(r, http.MethodGet, "/profile/author", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !profile.Following {
		t.Fatal("expected following=true for a subscriber")
	}

	w = doRequest(r, http.MethodPost, "/profile/author/unfollow", nil, token)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if len(db.Follows) != 0 {
		t.Fatalf("expected no follow edges, got %d", len(db.Follows))
	}

	w = doRequest(r, http.MethodGet, "/profile/author", nil, token)
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if profile.Following {
		t.Fatal("expected following=false after unfollow")
	}
}

func TestSelfFollow(t *testing.T) {
	r, db := newTestRouter(t)
	user := db.SeedUser("narcissus")

	w := doRequest(r, http.MethodPost, "/profile/narcissus/follow", nil, signToken(t, user))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(db.Follows) != 0 {
		t.Fatal("self-follow must not create an edge")
	}
}

func TestFollowingFeedAuthenticated(t *testing.T) {
	r, db := newTestRouter(t)
	author := db.SeedUser("author")
	reader := db.SeedUser("reader")
	db.SeedPost(author.ID, nil, "hello")
	token := signToken(t, reader)

	if w := doRequest(r, http.MethodPost, "/profile/author/follow", nil, token); w.Code != http.StatusSeeOther {
		t.Fatalf("follow: expected 303, got %d", w.Code)
	}

	w := doRequest(r, http.MethodGet, "/follow", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var page struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(page.Items))
	}
}
