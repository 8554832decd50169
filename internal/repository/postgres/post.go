package postgres

import (
	"context"
	"time"

	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// feedSelect is the single shape every feed query is built from: post
// row + author + optional group, newest-first.
const feedSelect = `SELECT
	p.id, p.author_id, p.group_id, p.text, p.image_url, p.created_at, p.updated_at,
	u.username, u.display_name, u.avatar_url,
	g.id, g.title, g.slug
	FROM posts p
	JOIN cached_users u ON p.author_id = u.id
	LEFT JOIN "groups" g ON p.group_id = g.id`

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO posts(author_id, group_id, text, image_url, created_at, updated_at) VALUES($1, $2, $3, $4, $5, $6) RETURNING id",
		post.AuthorID,
		post.GroupID,
		post.Text,
		post.ImageURL,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) Update(ctx context.Context, post model.Post) (*model.Post, error) {
	post.UpdatedAt = time.Now()
	if _, err := r.db.Exec(
		ctx,
		"UPDATE posts SET text = $1, group_id = $2, image_url = $3, updated_at = $4 WHERE id = $5",
		post.Text,
		post.GroupID,
		post.ImageURL,
		post.UpdatedAt,
		post.ID,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	rows, err := r.db.Query(ctx, feedSelect+" WHERE p.id = $1", id)
	if err != nil {
		return nil, err
	}

	posts, err := scanFullPosts(rows)
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return nil, pgx.ErrNoRows
	}

	return posts[0], nil
}

func (r *postRepo) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts").Scan(&count)
	return count, err
}

func (r *postRepo) FindAll(ctx context.Context, limit int, offset int) ([]*model.FullPost, error) {
	rows, err := r.db.Query(
		ctx,
		feedSelect+" ORDER BY p.created_at DESC, p.id DESC LIMIT $1 OFFSET $2",
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}

	return scanFullPosts(rows)
}

func (r *postRepo) CountByGroup(ctx context.Context, groupID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts WHERE group_id = $1", groupID).Scan(&count)
	return count, err
}

func (r *postRepo) FindByGroup(ctx context.Context, groupID int64, limit int, offset int) ([]*model.FullPost, error) {
	rows, err := r.db.Query(
		ctx,
		feedSelect+" WHERE p.group_id = $1 ORDER BY p.created_at DESC, p.id DESC LIMIT $2 OFFSET $3",
		groupID,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}

	return scanFullPosts(rows)
}

func (r *postRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts WHERE author_id = $1", authorID).Scan(&count)
	return count, err
}

func (r *postRepo) FindByAuthor(ctx context.Context, authorID uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	rows, err := r.db.Query(
		ctx,
		feedSelect+" WHERE p.author_id = $1 ORDER BY p.created_at DESC, p.id DESC LIMIT $2 OFFSET $3",
		authorID,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}

	return scanFullPosts(rows)
}

func (r *postRepo) CountByAuthors(ctx context.Context, authorIDs []uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts WHERE author_id = ANY($1)", authorIDs).Scan(&count)
	return count, err
}

func (r *postRepo) FindByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	rows, err := r.db.Query(
		ctx,
		feedSelect+" WHERE p.author_id = ANY($1) ORDER BY p.created_at DESC, p.id DESC LIMIT $2 OFFSET $3",
		authorIDs,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}

	return scanFullPosts(rows)
}

func scanFullPosts(rows pgx.Rows) ([]*model.FullPost, error) {
	defer rows.Close()

	posts := []*model.FullPost{}
	for rows.Next() {
		var (
			post       model.Post
			author     model.UserAuthor
			groupID    *int64
			groupTitle *string
			groupSlug  *string
		)
		if err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.GroupID,
			&post.Text,
			&post.ImageURL,
			&post.CreatedAt,
			&post.UpdatedAt,
			&author.Username,
			&author.DisplayName,
			&author.AvatarURL,
			&groupID,
			&groupTitle,
			&groupSlug,
		); err != nil {
			return nil, err
		}

		full := &model.FullPost{
			Post: post,
			Author: author,
		}
		if groupID != nil {
			full.Group = &model.GroupRef{
				ID: *groupID,
				Title: *groupTitle,
				Slug: *groupSlug,
			}
		}

		posts = append(posts, full)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}
