// Package access gates mutating and auth-only actions. Handlers invoke
// a policy check at the top and apply the returned decision uniformly:
// anonymous callers are sent to the login page with a "next" parameter,
// authenticated non-owners are sent back to the resource's detail view.
package access

import (
	"fmt"
	"net/url"

	"github.com/BloggingApp/feed-service/internal/model"
)

const LoginPath = "/auth/login"

type Verdict int

const (
	Allow Verdict = iota
	RedirectLogin
	RedirectForbidden
)

type Decision struct {
	Verdict  Verdict
	Location string
}

func allow() Decision {
	return Decision{Verdict: Allow}
}

func redirectLogin(next string) Decision {
	return Decision{
		Verdict: RedirectLogin,
		Location: LoginURL(next),
	}
}

func LoginURL(next string) string {
	return LoginPath + "?next=" + url.QueryEscape(next)
}

// CreateContent covers creating posts and comments: any authenticated
// user may do it.
func CreateContent(user *model.CachedUser, next string) Decision {
	if user == nil {
		return redirectLogin(next)
	}
	return allow()
}

// EditPost allows only the post's author; other authenticated users are
// redirected to the post's read-only detail view.
func EditPost(user *model.CachedUser, post *model.Post, next string) Decision {
	if user == nil {
		return redirectLogin(next)
	}
	if user.ID != post.AuthorID {
		return Decision{
			Verdict: RedirectForbidden,
			Location: fmt.Sprintf("/posts/%d", post.ID),
		}
	}
	return allow()
}

// ViewFollowing gates the following feed, which is undefined for an
// anonymous caller.
func ViewFollowing(user *model.CachedUser, next string) Decision {
	if user == nil {
		return redirectLogin(next)
	}
	return allow()
}

// ChangeFollow covers both subscribe and unsubscribe.
func ChangeFollow(user *model.CachedUser, next string) Decision {
	if user == nil {
		return redirectLogin(next)
	}
	return allow()
}
