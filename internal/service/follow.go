package service

import (
	"context"
	"errors"

	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type followService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newFollowService(logger *zap.Logger, repo *repository.Repository) Follow {
	return &followService{
		logger: logger,
		repo: repo,
	}
}

// Follow subscribes user to the author's posts. Subscribing twice is a
// no-op success: a unique-violation from a concurrent or repeated
// insert converges to the existing edge. Self-follow is rejected.
func (s *followService) Follow(ctx context.Context, user *model.CachedUser, authorUsername string) error {
	author, err := s.resolveAuthor(ctx, authorUsername)
	if err != nil {
		return err
	}

	if user.ID == author.ID {
		return ErrSelfFollow
	}

	follow := model.Follow{
		UserID: user.ID,
		AuthorID: author.ID,
	}
	if err := s.repo.Postgres.Follow.Create(ctx, follow); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil
		}

		s.logger.Sugar().Errorf("failed to create follow(%s -> %s): %s", user.ID.String(), author.ID.String(), err.Error())
		return ErrInternal
	}

	return nil
}

// Unfollow removes the edge if present; removing an absent edge is a
// no-op success.
func (s *followService) Unfollow(ctx context.Context, user *model.CachedUser, authorUsername string) error {
	author, err := s.resolveAuthor(ctx, authorUsername)
	if err != nil {
		return err
	}

	if err := s.repo.Postgres.Follow.Delete(ctx, user.ID, author.ID); err != nil {
		s.logger.Sugar().Errorf("failed to delete follow(%s -> %s): %s", user.ID.String(), author.ID.String(), err.Error())
		return ErrInternal
	}

	return nil
}

func (s *followService) IsFollowing(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (bool, error) {
	exists, err := s.repo.Postgres.Follow.Exists(ctx, userID, authorID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check follow(%s -> %s): %s", userID.String(), authorID.String(), err.Error())
		return false, ErrInternal
	}

	return exists, nil
}

func (s *followService) resolveAuthor(ctx context.Context, username string) (*model.CachedUser, error) {
	author, err := s.repo.Postgres.UserCache.FindByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s) from postgres: %s", username, err.Error())
		return nil, ErrInternal
	}

	return author, nil
}
