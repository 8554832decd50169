package postgres

import (
	"context"
	"time"

	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type followRepo struct {
	db *pgxpool.Pool
}

func newFollowRepo(db *pgxpool.Pool) Follow {
	return &followRepo{
		db: db,
	}
}

// Create inserts the edge as-is. The unique (user_id, author_id)
// constraint is the only duplicate guard; callers decide what a
// unique-violation means.
func (r *followRepo) Create(ctx context.Context, follow model.Follow) error {
	follow.CreatedAt = time.Now()
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO follows(user_id, author_id, created_at) VALUES($1, $2, $3)",
		follow.UserID,
		follow.AuthorID,
		follow.CreatedAt,
	)
	return err
}

func (r *followRepo) Delete(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM follows WHERE user_id = $1 AND author_id = $2", userID, authorID)
	return err
}

func (r *followRepo) Find(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (*model.Follow, error) {
	var follow model.Follow
	if err := r.db.QueryRow(
		ctx,
		"SELECT f.user_id, f.author_id, f.created_at FROM follows f WHERE f.user_id = $1 AND f.author_id = $2",
		userID,
		authorID,
	).Scan(
		&follow.UserID,
		&follow.AuthorID,
		&follow.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &follow, nil
}

func (r *followRepo) Exists(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)",
		userID,
		authorID,
	).Scan(&exists)
	return exists, err
}

func (r *followRepo) FindAuthors(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, "SELECT f.author_id FROM follows f WHERE f.user_id = $1", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authors := []uuid.UUID{}
	for rows.Next() {
		var authorID uuid.UUID
		if err := rows.Scan(&authorID); err != nil {
			return nil, err
		}

		authors = append(authors, authorID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return authors, nil
}
