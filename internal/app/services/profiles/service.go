// Package profiles implements the professional profile document and its
// nested experience and education histories.
package profiles

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/devlink-network/devlink/internal/app/domain/profile"
	"github.com/devlink-network/devlink/internal/app/storage"
	"github.com/devlink-network/devlink/internal/errors"
	"github.com/devlink-network/devlink/pkg/logger"
)

// Service manages profiles. One profile per account.
type Service struct {
	profiles storage.ProfileStore
	accounts storage.AccountStore
	log      *logger.Logger
}

// New constructs a profile service. The account store joins owner display
// fields into public listings.
func New(profiles storage.ProfileStore, accounts storage.AccountStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("profiles")
	}
	return &Service{profiles: profiles, accounts: accounts, log: log}
}

// UpsertInput carries the profile fields settable through the upsert. Nested
// histories are managed through their own operations and are never touched
// here.
type UpsertInput struct {
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	Skills         []string
	GithubUsername string
	Social         profile.Social
}

// Upsert creates the caller's profile or replaces its scalar fields. Existing
// experience and education entries survive the replacement, as does the
// original creation time.
func (s *Service) Upsert(ctx context.Context, accountID string, in UpsertInput) (*profile.Profile, error) {
	in.Status = strings.TrimSpace(in.Status)
	if in.Status == "" {
		return nil, errors.Validation("status is required")
	}

	skills := normalizeSkills(in.Skills)
	if len(skills) == 0 {
		return nil, errors.Validation("skills is required")
	}

	now := time.Now().UTC()
	p := &profile.Profile{
		AccountID:      accountID,
		Company:        strings.TrimSpace(in.Company),
		Website:        strings.TrimSpace(in.Website),
		Location:       strings.TrimSpace(in.Location),
		Bio:            strings.TrimSpace(in.Bio),
		Status:         in.Status,
		Skills:         skills,
		GithubUsername: strings.TrimSpace(in.GithubUsername),
		Social:         in.Social,
		UpdatedAt:      now,
	}

	existing, err := s.profiles.GetByAccount(ctx, accountID)
	switch {
	case err == nil:
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		p.Experience = existing.Experience
		p.Education = existing.Education
		if err := s.profiles.Update(ctx, p); err != nil {
			return nil, err
		}
	case errors.IsCode(err, errors.CodeNotFound):
		p.ID = uuid.NewString()
		p.CreatedAt = now
		p.Experience = []profile.ExperienceEntry{}
		p.Education = []profile.EducationEntry{}
		if err := s.profiles.Create(ctx, p); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	s.log.WithContext(ctx).WithField("account_id", accountID).Info("profile upserted")
	return p, nil
}

// GetByAccount returns one account's profile.
func (s *Service) GetByAccount(ctx context.Context, accountID string) (*profile.Profile, error) {
	return s.profiles.GetByAccount(ctx, accountID)
}

// List returns all profiles joined with owner name and avatar. Profiles whose
// account has vanished mid-listing are skipped rather than failing the whole
// call.
func (s *Service) List(ctx context.Context) ([]*profile.View, error) {
	all, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*profile.View, 0, len(all))
	for _, p := range all {
		acct, err := s.accounts.Get(ctx, p.AccountID)
		if err != nil {
			if errors.IsCode(err, errors.CodeNotFound) {
				continue
			}
			return nil, err
		}
		views = append(views, &profile.View{
			Profile:       *p,
			AccountName:   acct.Name,
			AccountAvatar: acct.Avatar,
		})
	}
	return views, nil
}

// GetView returns one account's profile joined with owner display fields.
func (s *Service) GetView(ctx context.Context, accountID string) (*profile.View, error) {
	p, err := s.profiles.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	acct, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &profile.View{Profile: *p, AccountName: acct.Name, AccountAvatar: acct.Avatar}, nil
}

// ExperienceInput carries the fields of one work-history entry.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        string
	To          string
	Current     bool
	Description string
}

// AddExperience prepends a work-history entry to the caller's profile, so the
// history reads most-recent-first.
func (s *Service) AddExperience(ctx context.Context, accountID string, in ExperienceInput) (*profile.Profile, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	in.From = strings.TrimSpace(in.From)

	if in.Title == "" {
		return nil, errors.Validation("title is required")
	}
	if in.Company == "" {
		return nil, errors.Validation("company is required")
	}
	if in.From == "" {
		return nil, errors.Validation("from date is required")
	}

	p, err := s.profiles.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entry := profile.ExperienceEntry{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    strings.TrimSpace(in.Location),
		From:        in.From,
		To:          strings.TrimSpace(in.To),
		Current:     in.Current,
		Description: strings.TrimSpace(in.Description),
	}
	p.Experience = append([]profile.ExperienceEntry{entry}, p.Experience...)
	p.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveExperience deletes the entry with the given id from the caller's
// profile. An unknown entry id leaves the profile unchanged and succeeds;
// removal is idempotent.
func (s *Service) RemoveExperience(ctx context.Context, accountID, entryID string) (*profile.Profile, error) {
	p, err := s.profiles.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	kept := p.Experience[:0]
	for _, e := range p.Experience {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(p.Experience) {
		return p, nil
	}
	p.Experience = kept
	p.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// EducationInput carries the fields of one education entry.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Current      bool
	Description  string
}

// AddEducation prepends an education entry to the caller's profile.
func (s *Service) AddEducation(ctx context.Context, accountID string, in EducationInput) (*profile.Profile, error) {
	in.School = strings.TrimSpace(in.School)
	in.Degree = strings.TrimSpace(in.Degree)
	in.FieldOfStudy = strings.TrimSpace(in.FieldOfStudy)
	in.From = strings.TrimSpace(in.From)

	if in.School == "" {
		return nil, errors.Validation("school is required")
	}
	if in.Degree == "" {
		return nil, errors.Validation("degree is required")
	}
	if in.FieldOfStudy == "" {
		return nil, errors.Validation("field of study is required")
	}
	if in.From == "" {
		return nil, errors.Validation("from date is required")
	}

	p, err := s.profiles.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entry := profile.EducationEntry{
		ID:           uuid.NewString(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           strings.TrimSpace(in.To),
		Current:      in.Current,
		Description:  strings.TrimSpace(in.Description),
	}
	p.Education = append([]profile.EducationEntry{entry}, p.Education...)
	p.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveEducation deletes the entry with the given id; like experience
// removal it is idempotent.
func (s *Service) RemoveEducation(ctx context.Context, accountID, entryID string) (*profile.Profile, error) {
	p, err := s.profiles.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	kept := p.Education[:0]
	for _, e := range p.Education {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(p.Education) {
		return p, nil
	}
	p.Education = kept
	p.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, sk := range skills {
		if sk = strings.TrimSpace(sk); sk != "" {
			out = append(out, sk)
		}
	}
	return out
}
