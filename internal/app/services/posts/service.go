// Package posts implements the post feed with its embedded likes and
// comments.
package posts

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/devlink-network/devlink/internal/app/domain/post"
	"github.com/devlink-network/devlink/internal/app/storage"
	"github.com/devlink-network/devlink/internal/errors"
	"github.com/devlink-network/devlink/pkg/logger"
)

// Service manages posts, likes, and comments.
type Service struct {
	posts    storage.PostStore
	accounts storage.AccountStore
	log      *logger.Logger
}

// New constructs a post service. The account store supplies author display
// fields at creation time.
func New(posts storage.PostStore, accounts storage.AccountStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("posts")
	}
	return &Service{posts: posts, accounts: accounts, log: log}
}

// Create publishes a post under the caller's identity. Author name and avatar
// are copied from the account at this moment and never refreshed.
func (s *Service) Create(ctx context.Context, accountID, text string) (*post.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.Validation("text is required")
	}

	acct, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &post.Post{
		ID:           uuid.NewString(),
		AccountID:    accountID,
		Text:         text,
		AuthorName:   acct.Name,
		AuthorAvatar: acct.Avatar,
		Likes:        []post.Like{},
		Comments:     []post.Comment{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}

	s.log.WithContext(ctx).WithField("post_id", p.ID).Info("post created")
	return p, nil
}

// List returns all posts newest first.
func (s *Service) List(ctx context.Context) ([]*post.Post, error) {
	return s.posts.List(ctx)
}

// Get returns a single post.
func (s *Service) Get(ctx context.Context, id string) (*post.Post, error) {
	return s.posts.Get(ctx, id)
}

// Delete removes a post. Only the author may delete it; anyone else gets a
// forbidden error even though they could read the post.
func (s *Service) Delete(ctx context.Context, accountID, postID string) error {
	p, err := s.posts.Get(ctx, postID)
	if err != nil {
		return err
	}
	if p.AccountID != accountID {
		return errors.Forbidden("post belongs to another account")
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}

	s.log.WithContext(ctx).WithField("post_id", postID).Info("post deleted")
	return nil
}

// Like records the caller's approval. Liking a post twice is a conflict, so
// each account appears at most once in the like set.
func (s *Service) Like(ctx context.Context, accountID, postID string) (*post.Post, error) {
	p, err := s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	for _, l := range p.Likes {
		if l.AccountID == accountID {
			return nil, errors.Conflict("post already liked")
		}
	}

	p.Likes = append([]post.Like{{AccountID: accountID}}, p.Likes...)
	p.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Unlike removes the caller's like. Unliking a post the caller never liked is
// a conflict, mirroring Like.
func (s *Service) Unlike(ctx context.Context, accountID, postID string) (*post.Post, error) {
	p, err := s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	kept := p.Likes[:0]
	for _, l := range p.Likes {
		if l.AccountID != accountID {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(p.Likes) {
		return nil, errors.Conflict("post has not yet been liked")
	}
	p.Likes = kept
	p.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddComment prepends a comment under the caller's identity, so comments read
// newest first. Author fields are denormalized at comment time.
func (s *Service) AddComment(ctx context.Context, accountID, postID, text string) (*post.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.Validation("text is required")
	}

	acct, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	p, err := s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := post.Comment{
		ID:           uuid.NewString(),
		AccountID:    accountID,
		Text:         text,
		AuthorName:   acct.Name,
		AuthorAvatar: acct.Avatar,
		CreatedAt:    time.Now().UTC(),
	}
	p.Comments = append([]post.Comment{comment}, p.Comments...)
	p.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveComment deletes the comment with the given id. The comment must exist
// and must belong to the caller; the comment id, not the author id, selects
// which comment is removed.
func (s *Service) RemoveComment(ctx context.Context, accountID, postID, commentID string) (*post.Post, error) {
	p, err := s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, c := range p.Comments {
		if c.ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errors.NotFound("comment %q not found", commentID)
	}
	if p.Comments[idx].AccountID != accountID {
		return nil, errors.Forbidden("comment belongs to another account")
	}

	p.Comments = append(p.Comments[:idx], p.Comments[idx+1:]...)
	p.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
