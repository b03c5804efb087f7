package memory

import (
	"context"
	"testing"
	"time"

	"github.com/devlink-network/devlink/internal/app/domain/account"
	"github.com/devlink-network/devlink/internal/app/domain/post"
	"github.com/devlink-network/devlink/internal/errors"
)

func TestAccountEmailIndex(t *testing.T) {
	store := NewAccountStore()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := store.Create(ctx, &account.Account{ID: "a1", Name: "Alice", Email: "Alice@Example.com", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Lookups are case-insensitive on email.
	got, err := store.GetByEmail(ctx, "alice@example.COM")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != "a1" {
		t.Fatalf("expected a1, got %q", got.ID)
	}

	err = store.Create(ctx, &account.Account{ID: "a2", Name: "Mallory", Email: "ALICE@example.com", CreatedAt: now, UpdatedAt: now})
	if !errors.IsCode(err, errors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// Deleting frees the address for reuse.
	if err := store.Delete(ctx, "a1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Create(ctx, &account.Account{ID: "a3", Name: "Eve", Email: "alice@example.com", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("create after delete: %v", err)
	}
}

func TestPostCloneIsolation(t *testing.T) {
	store := NewPostStore()
	ctx := context.Background()
	now := time.Now().UTC()

	p := &post.Post{ID: "p1", AccountID: "a1", Text: "hello", Likes: []post.Like{{AccountID: "a2"}}, CreatedAt: now, UpdatedAt: now}
	if err := store.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Mutating a returned copy must not leak into the store.
	got, err := store.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Text = "tampered"
	got.Likes[0].AccountID = "intruder"

	fresh, err := store.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fresh.Text != "hello" || fresh.Likes[0].AccountID != "a2" {
		t.Fatalf("store state leaked: %+v", fresh)
	}
}

func TestPostDeleteByAuthor(t *testing.T) {
	store := NewPostStore()
	ctx := context.Background()
	now := time.Now().UTC()

	for _, p := range []*post.Post{
		{ID: "p1", AccountID: "a1", CreatedAt: now, UpdatedAt: now},
		{ID: "p2", AccountID: "a1", CreatedAt: now.Add(time.Second), UpdatedAt: now},
		{ID: "p3", AccountID: "a2", CreatedAt: now, UpdatedAt: now},
	} {
		if err := store.Create(ctx, p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if err := store.DeleteByAuthor(ctx, "a1"); err != nil {
		t.Fatalf("delete by author: %v", err)
	}
	// Removing posts for an author with none left is a no-op.
	if err := store.DeleteByAuthor(ctx, "a1"); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}

	remaining, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != "p3" {
		t.Fatalf("expected only p3, got %d posts", len(remaining))
	}
}
