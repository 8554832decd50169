package service_test

import (
	"context"
	"testing"

	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/BloggingApp/feed-service/internal/service"
)

func TestCommentCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("attaches a comment to an existing post", func(t *testing.T) {
		services, db, _ := newTestService(t)
		author := db.SeedUser("author")
		commenter := db.SeedUser("commenter")
		post := db.SeedPost(author.ID, nil, "hello")

		comment, err := services.Comment.Create(ctx, commenter.ID, post.ID, dto.CreateCommentRequest{Text: "nice one"})
		if err != nil {
			t.Fatalf("create comment: %v", err)
		}
		if comment.PostID != post.ID || comment.AuthorID != commenter.ID {
			t.Fatalf("unexpected comment: %+v", comment)
		}
	})

	t.Run("missing post signals not found", func(t *testing.T) {
		services, db, _ := newTestService(t)
		commenter := db.SeedUser("commenter")

		_, err := services.Comment.Create(ctx, commenter.ID, 42, dto.CreateCommentRequest{Text: "into the void"})
		if err != service.ErrPostNotFound {
			t.Fatalf("expected ErrPostNotFound, got: %v", err)
		}
	})
}

func TestFindPostComments(t *testing.T) {
	ctx := context.Background()

	services, db, _ := newTestService(t)
	author := db.SeedUser("author")
	commenter := db.SeedUser("commenter")
	post := db.SeedPost(author.ID, nil, "hello")
	other := db.SeedPost(author.ID, nil, "other")

	first, err := services.Comment.Create(ctx, commenter.ID, post.ID, dto.CreateCommentRequest{Text: "first"})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	second, err := services.Comment.Create(ctx, commenter.ID, post.ID, dto.CreateCommentRequest{Text: "second"})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if _, err := services.Comment.Create(ctx, commenter.ID, other.ID, dto.CreateCommentRequest{Text: "elsewhere"}); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	comments, err := services.Comment.FindPostComments(ctx, post.ID)
	if err != nil {
		t.Fatalf("find comments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0].Comment.ID != second.ID || comments[1].Comment.ID != first.ID {
		t.Fatal("expected newest comment first")
	}
}
