package service

import (
	"context"
	"time"

	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository"
	"github.com/BloggingApp/feed-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type postService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newPostService(logger *zap.Logger, repo *repository.Repository) Post {
	return &postService{
		logger: logger,
		repo: repo,
	}
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest) (*model.Post, error) {
	if input.GroupID != nil {
		if err := s.checkGroup(ctx, *input.GroupID); err != nil {
			return nil, err
		}
	}

	post := model.Post{
		AuthorID: authorID,
		GroupID: input.GroupID,
		Text: input.Text,
		ImageURL: input.ImageURL,
	}

	createdPost, err := s.repo.Postgres.Post.Create(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	// index pages are not invalidated here: the new post surfaces on
	// the global feed once the cache TTL expires
	return createdPost, nil
}

func (s *postService) Edit(ctx context.Context, editorID uuid.UUID, postID int64, input dto.EditPostRequest) (*model.Post, error) {
	existing, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", postID, err.Error())
		return nil, ErrInternal
	}

	if existing.Post.AuthorID != editorID {
		return nil, ErrNotPostAuthor
	}

	if input.GroupID != nil {
		if err := s.checkGroup(ctx, *input.GroupID); err != nil {
			return nil, err
		}
	}

	post := existing.Post
	post.Text = input.Text
	post.GroupID = input.GroupID
	post.ImageURL = input.ImageURL

	updatedPost, err := s.repo.Postgres.Post.Update(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to update post(%d): %s", postID, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.Del(ctx, redisrepo.PostKey(postID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d) from redis: %s", postID, err.Error())
	}

	return updatedPost, nil
}

func (s *postService) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	cachedPost, err := redisrepo.Get[model.FullPost](s.repo.Redis.Default, ctx, redisrepo.PostKey(id))
	if err == nil && cachedPost != nil {
		return cachedPost, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get post(%d) from redis: %s", id, err.Error())
		return nil, ErrInternal
	}

	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PostKey(id), post, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%d) in redis: %s", id, err.Error())
	}

	return post, nil
}

// GroupChoices lists the groups offered by the post form's selector.
func (s *postService) GroupChoices(ctx context.Context) ([]*model.Group, error) {
	groups, err := s.repo.Postgres.Group.FindAll(ctx)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find groups from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	return groups, nil
}

func (s *postService) checkGroup(ctx context.Context, groupID int64) error {
	if _, err := s.repo.Postgres.Group.FindByID(ctx, groupID); err != nil {
		if err == pgx.ErrNoRows {
			return ErrGroupNotFound
		}

		s.logger.Sugar().Errorf("failed to find group(%d) from postgres: %s", groupID, err.Error())
		return ErrInternal
	}

	return nil
}
