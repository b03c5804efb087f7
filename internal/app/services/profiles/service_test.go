package profiles

import (
	"context"
	"testing"
	"time"

	"github.com/devlink-network/devlink/internal/app/domain/account"
	"github.com/devlink-network/devlink/internal/app/storage/memory"
	"github.com/devlink-network/devlink/internal/errors"
)

func newTestService(t *testing.T) (*Service, *memory.AccountStore) {
	t.Helper()
	accounts := memory.NewAccountStore()
	svc := New(memory.NewProfileStore(), accounts, nil)

	now := time.Now().UTC()
	for _, a := range []*account.Account{
		{ID: "acct-1", Name: "Alice", Email: "alice@example.com", Avatar: "https://example.com/a.png", CreatedAt: now, UpdatedAt: now},
		{ID: "acct-2", Name: "Bob", Email: "bob@example.com", Avatar: "https://example.com/b.png", CreatedAt: now, UpdatedAt: now},
	} {
		if err := accounts.Create(context.Background(), a); err != nil {
			t.Fatalf("seed account: %v", err)
		}
	}
	return svc, accounts
}

func TestUpsertCreatesThenReplaces(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Upsert(ctx, "acct-1", UpsertInput{Status: "Developer", Skills: []string{"Go", " SQL "}})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated profile id")
	}
	if len(created.Skills) != 2 || created.Skills[1] != "SQL" {
		t.Fatalf("expected trimmed skills, got %v", created.Skills)
	}

	// Accumulate an experience entry, then replace the scalars.
	if _, err := svc.AddExperience(ctx, "acct-1", ExperienceInput{Title: "Engineer", Company: "Acme", From: "2020-01-01"}); err != nil {
		t.Fatalf("add experience: %v", err)
	}

	replaced, err := svc.Upsert(ctx, "acct-1", UpsertInput{Status: "Senior Developer", Skills: []string{"Go"}, Company: "Initech"})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if replaced.ID != created.ID {
		t.Fatalf("expected stable profile id, got %q then %q", created.ID, replaced.ID)
	}
	if !replaced.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("expected creation time to survive the upsert")
	}
	if replaced.Status != "Senior Developer" || replaced.Company != "Initech" {
		t.Fatalf("scalars not replaced: %+v", replaced)
	}
	if len(replaced.Experience) != 1 {
		t.Fatalf("expected experience to survive the upsert, got %d entries", len(replaced.Experience))
	}
}

func TestUpsertValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, "acct-1", UpsertInput{Skills: []string{"Go"}}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for missing status, got %v", err)
	}
	if _, err := svc.Upsert(ctx, "acct-1", UpsertInput{Status: "dev", Skills: []string{"  ", ""}}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for empty skills, got %v", err)
	}
}

func TestExperienceOrderAndRemoval(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, "acct-1", UpsertInput{Status: "dev", Skills: []string{"Go"}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if _, err := svc.AddExperience(ctx, "acct-1", ExperienceInput{Title: "First", Company: "A", From: "2018"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	p, err := svc.AddExperience(ctx, "acct-1", ExperienceInput{Title: "Second", Company: "B", From: "2020"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Newest entry sits at the head.
	if p.Experience[0].Title != "Second" || p.Experience[1].Title != "First" {
		t.Fatalf("unexpected order: %v, %v", p.Experience[0].Title, p.Experience[1].Title)
	}

	p, err = svc.RemoveExperience(ctx, "acct-1", p.Experience[1].ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(p.Experience) != 1 || p.Experience[0].Title != "Second" {
		t.Fatalf("unexpected entries after removal: %+v", p.Experience)
	}

	// Removing an unknown entry id succeeds and changes nothing.
	p, err = svc.RemoveExperience(ctx, "acct-1", "no-such-entry")
	if err != nil {
		t.Fatalf("idempotent remove: %v", err)
	}
	if len(p.Experience) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(p.Experience))
	}
}

func TestExperienceValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, "acct-1", UpsertInput{Status: "dev", Skills: []string{"Go"}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	cases := []ExperienceInput{
		{Company: "A", From: "2020"},
		{Title: "T", From: "2020"},
		{Title: "T", Company: "A"},
	}
	for _, in := range cases {
		if _, err := svc.AddExperience(ctx, "acct-1", in); !errors.IsCode(err, errors.CodeValidation) {
			t.Fatalf("input %+v: expected validation error, got %v", in, err)
		}
	}

	if _, err := svc.AddExperience(ctx, "acct-2", ExperienceInput{Title: "T", Company: "A", From: "2020"}); !errors.IsCode(err, errors.CodeNotFound) {
		t.Fatalf("expected not found for account without profile, got %v", err)
	}
}

func TestEducationLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, "acct-1", UpsertInput{Status: "dev", Skills: []string{"Go"}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if _, err := svc.AddEducation(ctx, "acct-1", EducationInput{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2014"}); err != nil {
		t.Fatalf("add education: %v", err)
	}
	p, err := svc.AddEducation(ctx, "acct-1", EducationInput{School: "CMU", Degree: "MSc", FieldOfStudy: "CS", From: "2018"})
	if err != nil {
		t.Fatalf("add education: %v", err)
	}
	if p.Education[0].School != "CMU" {
		t.Fatalf("expected newest entry first, got %q", p.Education[0].School)
	}

	if _, err := svc.AddEducation(ctx, "acct-1", EducationInput{School: "X", Degree: "Y", From: "2020"}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for missing field of study, got %v", err)
	}

	p, err = svc.RemoveEducation(ctx, "acct-1", p.Education[0].ID)
	if err != nil {
		t.Fatalf("remove education: %v", err)
	}
	if len(p.Education) != 1 || p.Education[0].School != "MIT" {
		t.Fatalf("unexpected entries after removal: %+v", p.Education)
	}
}

func TestListJoinsAccounts(t *testing.T) {
	svc, accounts := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, "acct-1", UpsertInput{Status: "dev", Skills: []string{"Go"}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := svc.Upsert(ctx, "acct-2", UpsertInput{Status: "designer", Skills: []string{"Figma"}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	views, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	for _, v := range views {
		if v.AccountName == "" || v.AccountAvatar == "" {
			t.Fatalf("expected joined account fields, got %+v", v)
		}
	}

	// A profile whose account disappeared is skipped, not fatal.
	if err := accounts.Delete(ctx, "acct-2"); err != nil {
		t.Fatalf("delete account: %v", err)
	}
	views, err = svc.List(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(views) != 1 || views[0].AccountName != "Alice" {
		t.Fatalf("expected only alice's view, got %d", len(views))
	}
}

func TestGetViewUnknownAccount(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.GetView(context.Background(), "missing"); !errors.IsCode(err, errors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
