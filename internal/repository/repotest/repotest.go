// Package repotest provides in-memory implementations of the repository
// interfaces for tests: a seedable store standing in for PostgreSQL and
// a TTL cache with a manual clock standing in for Redis.
package repotest

import (
	"context"
	"sort"
	"time"

	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository"
	"github.com/BloggingApp/feed-service/internal/repository/postgres"
	"github.com/BloggingApp/feed-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DB struct {
	Users    []model.CachedUser
	Groups   []model.Group
	Posts    []model.Post
	Comments []model.Comment
	Follows  []model.Follow

	nextGroupID   int64
	nextPostID    int64
	nextCommentID int64
	clock         time.Time
}

func NewDB() *DB {
	return &DB{
		clock: time.Date(2023, 5, 15, 22, 27, 0, 0, time.UTC),
	}
}

// tick advances the stored clock so consecutive writes get strictly
// increasing creation times.
func (d *DB) tick() time.Time {
	d.clock = d.clock.Add(time.Second)
	return d.clock
}

func (d *DB) SeedUser(username string) model.CachedUser {
	user := model.CachedUser{
		ID: uuid.New(),
		Username: username,
		DisplayName: username,
	}
	d.Users = append(d.Users, user)
	return user
}

func (d *DB) SeedGroup(title string, slug string) model.Group {
	d.nextGroupID++
	group := model.Group{
		ID: d.nextGroupID,
		Title: title,
		Slug: slug,
	}
	d.Groups = append(d.Groups, group)
	return group
}

func (d *DB) SeedPost(authorID uuid.UUID, groupID *int64, text string) model.Post {
	d.nextPostID++
	now := d.tick()
	post := model.Post{
		ID: d.nextPostID,
		AuthorID: authorID,
		GroupID: groupID,
		Text: text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	d.Posts = append(d.Posts, post)
	return post
}

func (d *DB) userByID(id uuid.UUID) (model.CachedUser, bool) {
	for _, u := range d.Users {
		if u.ID == id {
			return u, true
		}
	}
	return model.CachedUser{}, false
}

func (d *DB) groupByID(id int64) (model.Group, bool) {
	for _, g := range d.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return model.Group{}, false
}

func (d *DB) fullPost(post model.Post) *model.FullPost {
	author, _ := d.userByID(post.AuthorID)
	full := &model.FullPost{
		Post: post,
		Author: model.UserAuthor{Username: author.Username},
	}
	if post.GroupID != nil {
		if group, ok := d.groupByID(*post.GroupID); ok {
			full.Group = group.Ref()
		}
	}
	return full
}

// fullPosts returns matching posts newest-first.
func (d *DB) fullPosts(match func(model.Post) bool) []*model.FullPost {
	posts := []*model.FullPost{}
	for _, p := range d.Posts {
		if match(p) {
			posts = append(posts, d.fullPost(p))
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].Post.CreatedAt.Equal(posts[j].Post.CreatedAt) {
			return posts[i].Post.CreatedAt.After(posts[j].Post.CreatedAt)
		}
		return posts[i].Post.ID > posts[j].Post.ID
	})
	return posts
}

func pageOf(posts []*model.FullPost, limit int, offset int) []*model.FullPost {
	if offset >= len(posts) {
		return []*model.FullPost{}
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end]
}

// NewRepository wires the in-memory store and cache into the repository
// aggregate consumed by services.
func NewRepository(db *DB, cache *Cache) *repository.Repository {
	return &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			Post: &postRepo{db},
			Comment: &commentRepo{db},
			Group: &groupRepo{db},
			Follow: &followRepo{db},
			UserCache: &userRepo{db},
		},
		Redis: &redisrepo.RedisRepository{Default: cache},
	}
}

type postRepo struct {
	db *DB
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	created := r.db.SeedPost(post.AuthorID, post.GroupID, post.Text)
	created.ImageURL = post.ImageURL
	r.db.Posts[len(r.db.Posts)-1] = created
	return &created, nil
}

func (r *postRepo) Update(ctx context.Context, post model.Post) (*model.Post, error) {
	post.UpdatedAt = r.db.tick()
	for i, p := range r.db.Posts {
		if p.ID == post.ID {
			r.db.Posts[i] = post
			return &post, nil
		}
	}
	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	for _, p := range r.db.Posts {
		if p.ID == id {
			return r.db.fullPost(p), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *postRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(r.db.Posts)), nil
}

func (r *postRepo) FindAll(ctx context.Context, limit int, offset int) ([]*model.FullPost, error) {
	return pageOf(r.db.fullPosts(func(model.Post) bool { return true }), limit, offset), nil
}

func (r *postRepo) CountByGroup(ctx context.Context, groupID int64) (int64, error) {
	return int64(len(r.db.fullPosts(func(p model.Post) bool { return p.GroupID != nil && *p.GroupID == groupID }))), nil
}

func (r *postRepo) FindByGroup(ctx context.Context, groupID int64, limit int, offset int) ([]*model.FullPost, error) {
	return pageOf(r.db.fullPosts(func(p model.Post) bool { return p.GroupID != nil && *p.GroupID == groupID }), limit, offset), nil
}

func (r *postRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	return int64(len(r.db.fullPosts(func(p model.Post) bool { return p.AuthorID == authorID }))), nil
}

func (r *postRepo) FindByAuthor(ctx context.Context, authorID uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	return pageOf(r.db.fullPosts(func(p model.Post) bool { return p.AuthorID == authorID }), limit, offset), nil
}

func (r *postRepo) CountByAuthors(ctx context.Context, authorIDs []uuid.UUID) (int64, error) {
	return int64(len(r.db.fullPosts(matchAuthors(authorIDs)))), nil
}

func (r *postRepo) FindByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	return pageOf(r.db.fullPosts(matchAuthors(authorIDs)), limit, offset), nil
}

func matchAuthors(authorIDs []uuid.UUID) func(model.Post) bool {
	return func(p model.Post) bool {
		for _, id := range authorIDs {
			if p.AuthorID == id {
				return true
			}
		}
		return false
	}
}

type commentRepo struct {
	db *DB
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	r.db.nextCommentID++
	comment.ID = r.db.nextCommentID
	comment.CreatedAt = r.db.tick()
	r.db.Comments = append(r.db.Comments, comment)
	return &comment, nil
}

func (r *commentRepo) FindPostComments(ctx context.Context, postID int64) ([]*model.FullComment, error) {
	comments := []*model.FullComment{}
	for _, c := range r.db.Comments {
		if c.PostID == postID {
			author, _ := r.db.userByID(c.AuthorID)
			comments = append(comments, &model.FullComment{
				Comment: c,
				Author: model.UserAuthor{Username: author.Username},
			})
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].Comment.ID > comments[j].Comment.ID
	})
	return comments, nil
}

type groupRepo struct {
	db *DB
}

func (r *groupRepo) Create(ctx context.Context, group model.Group) (*model.Group, error) {
	created := r.db.SeedGroup(group.Title, group.Slug)
	created.Description = group.Description
	r.db.Groups[len(r.db.Groups)-1] = created
	return &created, nil
}

func (r *groupRepo) FindAll(ctx context.Context) ([]*model.Group, error) {
	groups := []*model.Group{}
	for i := range r.db.Groups {
		groups = append(groups, &r.db.Groups[i])
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Title < groups[j].Title })
	return groups, nil
}

func (r *groupRepo) FindByID(ctx context.Context, id int64) (*model.Group, error) {
	if group, ok := r.db.groupByID(id); ok {
		return &group, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *groupRepo) FindBySlug(ctx context.Context, slug string) (*model.Group, error) {
	for _, g := range r.db.Groups {
		if g.Slug == slug {
			group := g
			return &group, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type followRepo struct {
	db *DB
}

func (r *followRepo) Create(ctx context.Context, follow model.Follow) error {
	for _, f := range r.db.Follows {
		if f.UserID == follow.UserID && f.AuthorID == follow.AuthorID {
			return &pgconn.PgError{
				Code: pgerrcode.UniqueViolation,
				Message: `duplicate key value violates unique constraint "unique_following"`,
			}
		}
	}
	follow.CreatedAt = r.db.tick()
	r.db.Follows = append(r.db.Follows, follow)
	return nil
}

func (r *followRepo) Delete(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) error {
	follows := r.db.Follows[:0]
	for _, f := range r.db.Follows {
		if !(f.UserID == userID && f.AuthorID == authorID) {
			follows = append(follows, f)
		}
	}
	r.db.Follows = follows
	return nil
}

func (r *followRepo) Find(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (*model.Follow, error) {
	for _, f := range r.db.Follows {
		if f.UserID == userID && f.AuthorID == authorID {
			follow := f
			return &follow, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *followRepo) Exists(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (bool, error) {
	_, err := r.Find(ctx, userID, authorID)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (r *followRepo) FindAuthors(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	authors := []uuid.UUID{}
	for _, f := range r.db.Follows {
		if f.UserID == userID {
			authors = append(authors, f.AuthorID)
		}
	}
	return authors, nil
}

type userRepo struct {
	db *DB
}

func (r *userRepo) Create(ctx context.Context, cachedUser model.CachedUser) error {
	if _, ok := r.db.userByID(cachedUser.ID); ok {
		return nil
	}
	r.db.Users = append(r.db.Users, cachedUser)
	return nil
}

func (r *userRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	for i, u := range r.db.Users {
		if u.ID != id {
			continue
		}
		if username, ok := updates["username"].(string); ok {
			u.Username = username
		}
		if displayName, ok := updates["display_name"].(string); ok {
			u.DisplayName = displayName
		}
		if avatarURL, ok := updates["avatar_url"].(string); ok {
			u.AvatarURL = avatarURL
		}
		r.db.Users[i] = u
		return nil
	}
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error) {
	if user, ok := r.db.userByID(id); ok {
		return &user, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.CachedUser, error) {
	for _, u := range r.db.Users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}
