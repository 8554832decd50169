package postgres

import (
	"context"

	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	Update(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
	CountAll(ctx context.Context) (int64, error)
	FindAll(ctx context.Context, limit int, offset int) ([]*model.FullPost, error)
	CountByGroup(ctx context.Context, groupID int64) (int64, error)
	FindByGroup(ctx context.Context, groupID int64, limit int, offset int) ([]*model.FullPost, error)
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
	FindByAuthor(ctx context.Context, authorID uuid.UUID, limit int, offset int) ([]*model.FullPost, error)
	CountByAuthors(ctx context.Context, authorIDs []uuid.UUID) (int64, error)
	FindByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit int, offset int) ([]*model.FullPost, error)
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID int64) ([]*model.FullComment, error)
}

type Group interface {
	Create(ctx context.Context, group model.Group) (*model.Group, error)
	FindAll(ctx context.Context) ([]*model.Group, error)
	FindByID(ctx context.Context, id int64) (*model.Group, error)
	FindBySlug(ctx context.Context, slug string) (*model.Group, error)
}

type Follow interface {
	Create(ctx context.Context, follow model.Follow) error
	Delete(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) error
	Find(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (*model.Follow, error)
	Exists(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (bool, error)
	FindAuthors(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type UserCache interface {
	Create(ctx context.Context, cachedUser model.CachedUser) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error)
	FindByUsername(ctx context.Context, username string) (*model.CachedUser, error)
}

type PostgresRepository struct {
	Post
	Comment
	Group
	Follow
	UserCache
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Post: newPostRepo(db),
		Comment: newCommentRepo(db),
		Group: newGroupRepo(db),
		Follow: newFollowRepo(db),
		UserCache: newUserCacheRepo(db),
	}
}
