package accounts

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/devlink-network/devlink/internal/app/domain/post"
	"github.com/devlink-network/devlink/internal/app/domain/profile"
	"github.com/devlink-network/devlink/internal/app/storage/memory"
	"github.com/devlink-network/devlink/internal/auth"
	"github.com/devlink-network/devlink/internal/errors"
)

func newTestService() (*Service, *memory.AccountStore, *memory.ProfileStore, *memory.PostStore) {
	accounts := memory.NewAccountStore()
	profiles := memory.NewProfileStore()
	posts := memory.NewPostStore()
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour, "devlink")
	return New(accounts, profiles, posts, tokens, nil), accounts, profiles, posts
}

func TestRegister(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	acct, token, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "Alice@Example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if acct.PasswordHash == "hunter22" {
		t.Fatal("password stored in plaintext")
	}
	if !strings.HasPrefix(acct.Avatar, "https://www.gravatar.com/avatar/") {
		t.Fatalf("unexpected avatar %q", acct.Avatar)
	}
	if !strings.Contains(acct.Avatar, "s=200") || !strings.Contains(acct.Avatar, "d=mm") {
		t.Fatalf("avatar missing options: %q", acct.Avatar)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	cases := []RegisterInput{
		{Name: "", Email: "a@b.c", Password: "hunter22"},
		{Name: "Alice", Email: "", Password: "hunter22"},
		{Name: "Alice", Email: "a@b.c", Password: "short"},
	}
	for _, in := range cases {
		if _, _, err := svc.Register(ctx, in); !errors.IsCode(err, errors.CodeValidation) {
			t.Fatalf("input %+v: expected validation error, got %v", in, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Same address with different casing still collides.
	_, _, err := svc.Register(ctx, RegisterInput{Name: "Mallory", Email: "ALICE@example.com", Password: "hunter22"})
	if !errors.IsCode(err, errors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	acct, token, err := svc.Authenticate(ctx, "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if token == "" || acct.ID != registered.ID {
		t.Fatalf("unexpected result: token=%q id=%q", token, acct.ID)
	}
}

func TestAuthenticateUniformRejection(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, unknownErr := svc.Authenticate(ctx, "nobody@example.com", "hunter22")
	_, _, wrongErr := svc.Authenticate(ctx, "alice@example.com", "wrong-password")

	for _, err := range []error{unknownErr, wrongErr} {
		if !errors.IsCode(err, errors.CodeUnauthorized) {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	}

	// Unknown email and wrong password must be indistinguishable to callers.
	if errors.GetServiceError(unknownErr).Message != errors.GetServiceError(wrongErr).Message {
		t.Fatal("expected identical messages for unknown email and wrong password")
	}
}

func TestDeleteCascade(t *testing.T) {
	svc, _, profiles, posts := newTestService()
	ctx := context.Background()

	acct, _, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	other, _, err := svc.Register(ctx, RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	now := time.Now().UTC()
	if err := profiles.Create(ctx, &profile.Profile{ID: "p1", AccountID: acct.ID, Status: "dev", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	for _, p := range []*post.Post{
		{ID: "post1", AccountID: acct.ID, Text: "one", CreatedAt: now, UpdatedAt: now},
		{ID: "post2", AccountID: acct.ID, Text: "two", CreatedAt: now.Add(time.Second), UpdatedAt: now},
		{ID: "post3", AccountID: other.ID, Text: "bob's", CreatedAt: now, UpdatedAt: now},
	} {
		if err := posts.Create(ctx, p); err != nil {
			t.Fatalf("create post: %v", err)
		}
	}

	if err := svc.Delete(ctx, acct.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.Get(ctx, acct.ID); !errors.IsCode(err, errors.CodeNotFound) {
		t.Fatalf("expected account gone, got %v", err)
	}
	if _, err := profiles.GetByAccount(ctx, acct.ID); !errors.IsCode(err, errors.CodeNotFound) {
		t.Fatalf("expected profile gone, got %v", err)
	}

	remaining, err := posts.List(ctx)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != "post3" {
		t.Fatalf("expected only bob's post to survive, got %d posts", len(remaining))
	}
}

func TestDeleteWithoutProfile(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	acct, _, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// No profile was ever created; the cascade must not fail on that.
	if err := svc.Delete(ctx, acct.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestDeleteUnknownAccount(t *testing.T) {
	svc, _, _, _ := newTestService()

	if err := svc.Delete(context.Background(), "missing"); !errors.IsCode(err, errors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
