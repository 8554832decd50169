package service

import (
	"context"
	"time"

	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/pagination"
	"github.com/BloggingApp/feed-service/internal/repository"
	"github.com/BloggingApp/feed-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// indexCacheTTL bounds how stale the global feed may be after a write.
// Writes do not invalidate index pages; only expiry and ClearIndexCache do.
const indexCacheTTL = 20 * time.Second

type feedService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	pageSize int
}

func newFeedService(logger *zap.Logger, repo *repository.Repository) Feed {
	pageSize := viper.GetInt("feed.page_size")
	if pageSize < 1 {
		pageSize = pagination.DefaultPageSize
	}

	return &feedService{
		logger: logger,
		repo: repo,
		pageSize: pageSize,
	}
}

// postQuery parameterizes the composer: every feed is the same
// count-then-fetch over one newest-first post collection, so ordering
// and pagination semantics cannot drift between feed types.
type postQuery struct {
	count func(ctx context.Context) (int64, error)
	fetch func(ctx context.Context, limit int, offset int) ([]*model.FullPost, error)
}

func (s *feedService) compose(ctx context.Context, q postQuery, page int) (*pagination.Page[*model.FullPost], error) {
	total, err := q.count(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count feed posts: %s", err.Error())
		return nil, ErrInternal
	}

	w := pagination.WindowFor(total, s.pageSize, page)

	posts, err := q.fetch(ctx, w.Limit, w.Offset)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to fetch feed posts: %s", err.Error())
		return nil, ErrInternal
	}

	return pagination.NewPage(posts, w), nil
}

func (s *feedService) Global(ctx context.Context, page int) (*pagination.Page[*model.FullPost], error) {
	cached, err := redisrepo.Get[pagination.Page[*model.FullPost]](s.repo.Redis.Default, ctx, redisrepo.IndexPageKey(page))
	if err == nil && cached != nil {
		return cached, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get index page(%d) from redis: %s", page, err.Error())
		return nil, ErrInternal
	}

	result, err := s.compose(ctx, postQuery{
		count: s.repo.Postgres.Post.CountAll,
		fetch: s.repo.Postgres.Post.FindAll,
	}, page)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.IndexPageKey(page), result, indexCacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set index page(%d) in redis: %s", page, err.Error())
	}

	return result, nil
}

func (s *feedService) Group(ctx context.Context, slug string, page int) (*dto.GroupFeed, error) {
	group, err := s.repo.Postgres.Group.FindBySlug(ctx, slug)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrGroupNotFound
		}

		s.logger.Sugar().Errorf("failed to find group(%s) from postgres: %s", slug, err.Error())
		return nil, ErrInternal
	}

	result, err := s.compose(ctx, postQuery{
		count: func(ctx context.Context) (int64, error) {
			return s.repo.Postgres.Post.CountByGroup(ctx, group.ID)
		},
		fetch: func(ctx context.Context, limit int, offset int) ([]*model.FullPost, error) {
			return s.repo.Postgres.Post.FindByGroup(ctx, group.ID, limit, offset)
		},
	}, page)
	if err != nil {
		return nil, err
	}

	return &dto.GroupFeed{
		Group: *group,
		Page: result,
	}, nil
}

func (s *feedService) Profile(ctx context.Context, username string, requester *model.CachedUser, page int) (*dto.ProfileFeed, error) {
	author, err := s.repo.Postgres.UserCache.FindByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s) from postgres: %s", username, err.Error())
		return nil, ErrInternal
	}

	// false for anonymous requesters and for the author themselves
	following := false
	if requester != nil && requester.ID != author.ID {
		following, err = s.repo.Postgres.Follow.Exists(ctx, requester.ID, author.ID)
		if err != nil {
			s.logger.Sugar().Errorf("failed to check follow(%s -> %s): %s", requester.ID.String(), author.ID.String(), err.Error())
			return nil, ErrInternal
		}
	}

	result, err := s.compose(ctx, postQuery{
		count: func(ctx context.Context) (int64, error) {
			return s.repo.Postgres.Post.CountByAuthor(ctx, author.ID)
		},
		fetch: func(ctx context.Context, limit int, offset int) ([]*model.FullPost, error) {
			return s.repo.Postgres.Post.FindByAuthor(ctx, author.ID, limit, offset)
		},
	}, page)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileFeed{
		Author: *author,
		Following: following,
		Page: result,
	}, nil
}

func (s *feedService) Following(ctx context.Context, userID uuid.UUID, page int) (*pagination.Page[*model.FullPost], error) {
	authors, err := s.repo.Postgres.Follow.FindAuthors(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find followed authors of user(%s): %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return s.compose(ctx, postQuery{
		count: func(ctx context.Context) (int64, error) {
			return s.repo.Postgres.Post.CountByAuthors(ctx, authors)
		},
		fetch: func(ctx context.Context, limit int, offset int) ([]*model.FullPost, error) {
			return s.repo.Postgres.Post.FindByAuthors(ctx, authors, limit, offset)
		},
	}, page)
}

func (s *feedService) ClearIndexCache(ctx context.Context) error {
	keys, err := s.repo.Redis.Default.Keys(ctx, redisrepo.INDEX_PAGE_KEY_PREFIX+":*").Result()
	if err != nil {
		s.logger.Sugar().Errorf("failed to list index page keys: %s", err.Error())
		return ErrInternal
	}
	if len(keys) == 0 {
		return nil
	}

	if err := s.repo.Redis.Default.Del(ctx, keys...).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete index page keys: %s", err.Error())
		return ErrInternal
	}

	return nil
}
