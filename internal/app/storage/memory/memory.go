// Package memory provides in-memory implementations of the storage
// interfaces, suitable for tests and single-process development runs.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/devlink-network/devlink/internal/app/domain/account"
	"github.com/devlink-network/devlink/internal/app/domain/post"
	"github.com/devlink-network/devlink/internal/app/domain/profile"
	"github.com/devlink-network/devlink/internal/app/storage"
	"github.com/devlink-network/devlink/internal/errors"
)

// AccountStore keeps accounts in maps guarded by a mutex.
type AccountStore struct {
	mu      sync.RWMutex
	byID    map[string]*account.Account
	byEmail map[string]string
}

var _ storage.AccountStore = (*AccountStore)(nil)

func NewAccountStore() *AccountStore {
	return &AccountStore{
		byID:    make(map[string]*account.Account),
		byEmail: make(map[string]string),
	}
}

func (s *AccountStore) Create(ctx context.Context, a *account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(a.Email)
	if _, ok := s.byEmail[key]; ok {
		return errors.Conflict("account with this email already exists")
	}
	if _, ok := s.byID[a.ID]; ok {
		return errors.Conflict("account %q already exists", a.ID)
	}
	s.byID[a.ID] = cloneAccount(a)
	s.byEmail[key] = a.ID
	return nil
}

func (s *AccountStore) Get(ctx context.Context, id string) (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byID[id]
	if !ok {
		return nil, errors.NotFound("account %q not found", id)
	}
	return cloneAccount(a), nil
}

func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[emailKey(email)]
	if !ok {
		return nil, errors.NotFound("account not found")
	}
	return cloneAccount(s.byID[id]), nil
}

func (s *AccountStore) Update(ctx context.Context, a *account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[a.ID]
	if !ok {
		return errors.NotFound("account %q not found", a.ID)
	}
	if emailKey(existing.Email) != emailKey(a.Email) {
		key := emailKey(a.Email)
		if _, taken := s.byEmail[key]; taken {
			return errors.Conflict("account with this email already exists")
		}
		delete(s.byEmail, emailKey(existing.Email))
		s.byEmail[key] = a.ID
	}
	s.byID[a.ID] = cloneAccount(a)
	return nil
}

func (s *AccountStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return errors.NotFound("account %q not found", id)
	}
	delete(s.byEmail, emailKey(a.Email))
	delete(s.byID, id)
	return nil
}

// ProfileStore keeps profiles keyed by owning account id.
type ProfileStore struct {
	mu        sync.RWMutex
	byAccount map[string]*profile.Profile
}

var _ storage.ProfileStore = (*ProfileStore)(nil)

func NewProfileStore() *ProfileStore {
	return &ProfileStore{byAccount: make(map[string]*profile.Profile)}
}

func (s *ProfileStore) Create(ctx context.Context, p *profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byAccount[p.AccountID]; ok {
		return errors.Conflict("profile for account %q already exists", p.AccountID)
	}
	s.byAccount[p.AccountID] = cloneProfile(p)
	return nil
}

func (s *ProfileStore) Update(ctx context.Context, p *profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byAccount[p.AccountID]; !ok {
		return errors.NotFound("profile for account %q not found", p.AccountID)
	}
	s.byAccount[p.AccountID] = cloneProfile(p)
	return nil
}

func (s *ProfileStore) GetByAccount(ctx context.Context, accountID string) (*profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byAccount[accountID]
	if !ok {
		return nil, errors.NotFound("profile for account %q not found", accountID)
	}
	return cloneProfile(p), nil
}

func (s *ProfileStore) List(ctx context.Context) ([]*profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*profile.Profile, 0, len(s.byAccount))
	for _, p := range s.byAccount {
		out = append(out, cloneProfile(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *ProfileStore) DeleteByAccount(ctx context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byAccount[accountID]; !ok {
		return errors.NotFound("profile for account %q not found", accountID)
	}
	delete(s.byAccount, accountID)
	return nil
}

// PostStore keeps posts keyed by id.
type PostStore struct {
	mu   sync.RWMutex
	byID map[string]*post.Post
}

var _ storage.PostStore = (*PostStore)(nil)

func NewPostStore() *PostStore {
	return &PostStore{byID: make(map[string]*post.Post)}
}

func (s *PostStore) Create(ctx context.Context, p *post.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[p.ID]; ok {
		return errors.Conflict("post %q already exists", p.ID)
	}
	s.byID[p.ID] = clonePost(p)
	return nil
}

func (s *PostStore) Update(ctx context.Context, p *post.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[p.ID]; !ok {
		return errors.NotFound("post %q not found", p.ID)
	}
	s.byID[p.ID] = clonePost(p)
	return nil
}

func (s *PostStore) Get(ctx context.Context, id string) (*post.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return nil, errors.NotFound("post %q not found", id)
	}
	return clonePost(p), nil
}

// List returns all posts newest first.
func (s *PostStore) List(ctx context.Context) ([]*post.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*post.Post, 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *PostStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return errors.NotFound("post %q not found", id)
	}
	delete(s.byID, id)
	return nil
}

func (s *PostStore) DeleteByAuthor(ctx context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range s.byID {
		if p.AccountID == accountID {
			delete(s.byID, id)
		}
	}
	return nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func cloneAccount(a *account.Account) *account.Account {
	cp := *a
	return &cp
}

func cloneProfile(p *profile.Profile) *profile.Profile {
	cp := *p
	cp.Skills = append([]string(nil), p.Skills...)
	cp.Experience = append([]profile.ExperienceEntry(nil), p.Experience...)
	cp.Education = append([]profile.EducationEntry(nil), p.Education...)
	return &cp
}

func clonePost(p *post.Post) *post.Post {
	cp := *p
	cp.Likes = append([]post.Like(nil), p.Likes...)
	cp.Comments = append([]post.Comment(nil), p.Comments...)
	return &cp
}
