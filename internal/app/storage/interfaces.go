// Package storage defines the persistence interfaces consumed by the
// services. Implementations live in the memory and postgres subpackages.
package storage

import (
	"context"

	"github.com/devlink-network/devlink/internal/app/domain/account"
	"github.com/devlink-network/devlink/internal/app/domain/post"
	"github.com/devlink-network/devlink/internal/app/domain/profile"
)

// AccountStore persists registered accounts. Email is a unique secondary key.
type AccountStore interface {
	Create(ctx context.Context, a *account.Account) error
	Get(ctx context.Context, id string) (*account.Account, error)
	GetByEmail(ctx context.Context, email string) (*account.Account, error)
	Update(ctx context.Context, a *account.Account) error
	Delete(ctx context.Context, id string) error
}

// ProfileStore persists profiles, at most one per account. Nested experience
// and education collections are stored as part of the profile document.
type ProfileStore interface {
	Create(ctx context.Context, p *profile.Profile) error
	Update(ctx context.Context, p *profile.Profile) error
	GetByAccount(ctx context.Context, accountID string) (*profile.Profile, error)
	List(ctx context.Context) ([]*profile.Profile, error)
	DeleteByAccount(ctx context.Context, accountID string) error
}

// PostStore persists posts with their embedded likes and comments.
type PostStore interface {
	Create(ctx context.Context, p *post.Post) error
	Update(ctx context.Context, p *post.Post) error
	Get(ctx context.Context, id string) (*post.Post, error)
	List(ctx context.Context) ([]*post.Post, error)
	Delete(ctx context.Context, id string) error
	DeleteByAuthor(ctx context.Context, accountID string) error
}
