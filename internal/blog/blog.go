// Package blog serves the read-only editorial posts.
package blog

import (
	"context"
	"fmt"

	pkgerrors "github.com/craftcollective/craft-market/pkg/errors"
	"github.com/craftcollective/craft-market/pkg/store"
)

// Post is an editorial entry. PublishedAt is kept as written by the editors.
type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt"`
	PublishedAt string `json:"publishedAt"`
	Body        string `json:"body"`
}

type Service interface {
	List(ctx context.Context) ([]Post, error)
	Get(ctx context.Context, id string) (*Post, error)
}

type service struct {
	posts *store.Collection[Post]
}

func NewService(s *store.Store) (Service, error) {
	if s == nil {
		return nil, fmt.Errorf("store required")
	}
	return &service{posts: store.NewCollection[Post](s, store.Blog)}, nil
}

func (s *service) List(ctx context.Context) ([]Post, error) {
	posts, err := s.posts.Load(ctx)
	if err != nil {
		return nil, pkgerrors.Internal(err, "load posts")
	}
	return posts, nil
}

func (s *service) Get(ctx context.Context, id string) (*Post, error) {
	post, ok, err := s.posts.Find(ctx, func(p Post) bool { return p.ID == id })
	if err != nil {
		return nil, pkgerrors.Internal(err, "load post")
	}
	if !ok {
		return nil, pkgerrors.NotFound("Post not found")
	}
	return &post, nil
}
