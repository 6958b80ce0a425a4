// Package feed loads posts and comments once a session is ready. It only
// reads; creating or editing posts is outside the client core.
package feed

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/photoshare/internal/client/client"
	"github.com/dmitrijs2005/photoshare/internal/client/models"
)

// Store caches the most recently fetched posts and comments.
type Store struct {
	mu       sync.RWMutex
	posts    []models.Post
	comments []models.Comment
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) SetPosts(p []models.Post) {
	cp := slices.Clone(p)
	s.mu.Lock()
	s.posts = cp
	s.mu.Unlock()
}

func (s *Store) SetComments(c []models.Comment) {
	cp := slices.Clone(c)
	s.mu.Lock()
	s.comments = cp
	s.mu.Unlock()
}

func (s *Store) Posts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.posts)
}

func (s *Store) Comments() []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.comments)
}

// CommentsFor returns the cached comments of one post.
func (s *Store) CommentsFor(postID int64) []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Comment
	for _, c := range s.comments {
		if c.Post == postID {
			out = append(out, c)
		}
	}
	return out
}

// Clear drops everything cached, e.g. on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	s.posts, s.comments = nil, nil
	s.mu.Unlock()
}

// Reader fetches feed data through the API and records it in a Store.
type Reader struct {
	api   client.FeedClient
	store *Store
}

func NewReader(api client.FeedClient, store *Store) *Reader {
	return &Reader{api: api, store: store}
}

func (r *Reader) Store() *Store { return r.store }

// Reset forgets everything fetched so far.
func (r *Reader) Reset() { r.store.Clear() }

func (r *Reader) FetchAllPosts(ctx context.Context) error {
	posts, err := r.api.FetchAllPosts(ctx)
	if err != nil {
		return fmt.Errorf("feed: %w", err)
	}
	r.store.SetPosts(posts)
	return nil
}

func (r *Reader) FetchAllComments(ctx context.Context) error {
	comments, err := r.api.FetchAllComments(ctx)
	if err != nil {
		return fmt.Errorf("feed: %w", err)
	}
	r.store.SetComments(comments)
	return nil
}
