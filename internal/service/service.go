package service

import (
	"context"

	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/pagination"
	"github.com/BloggingApp/feed-service/internal/rabbitmq"
	"github.com/BloggingApp/feed-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Feed interface {
	Global(ctx context.Context, page int) (*pagination.Page[*model.FullPost], error)
	Group(ctx context.Context, slug string, page int) (*dto.GroupFeed, error)
	Profile(ctx context.Context, username string, requester *model.CachedUser, page int) (*dto.ProfileFeed, error)
	Following(ctx context.Context, userID uuid.UUID, page int) (*pagination.Page[*model.FullPost], error)
	ClearIndexCache(ctx context.Context) error
}

type Post interface {
	Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest) (*model.Post, error)
	Edit(ctx context.Context, editorID uuid.UUID, postID int64, input dto.EditPostRequest) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
	GroupChoices(ctx context.Context) ([]*model.Group, error)
}

type Comment interface {
	Create(ctx context.Context, authorID uuid.UUID, postID int64, input dto.CreateCommentRequest) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID int64) ([]*model.FullComment, error)
}

type Follow interface {
	Follow(ctx context.Context, user *model.CachedUser, authorUsername string) error
	Unfollow(ctx context.Context, user *model.CachedUser, authorUsername string) error
	IsFollowing(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (bool, error)
}

type UserCache interface {
	CreateOrGet(ctx context.Context, id uuid.UUID, accessToken string) (*model.CachedUser, error)
	Create(ctx context.Context, cachedUser model.CachedUser) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error)
	StartConsume(ctx context.Context)
}

type Service struct {
	Feed
	Post
	Comment
	Follow
	UserCache
}

func New(logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.MQConn) *Service {
	return &Service{
		Feed: newFeedService(logger, repo),
		Post: newPostService(logger, repo),
		Comment: newCommentService(logger, repo),
		Follow: newFollowService(logger, repo),
		UserCache: newUserCacheService(logger, repo, mq),
	}
}

func (s *Service) StartConsumeAll(ctx context.Context) {
	go s.UserCache.StartConsume(ctx)
}
