// Package postgres implements the storage interfaces backed by PostgreSQL.
// Nested collections (skills, social links, experience, education, likes,
// comments) are stored as JSONB columns on the owning row so each aggregate
// loads and saves as one document.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"github.com/lib/pq"

	"github.com/devlink-network/devlink/internal/app/domain/account"
	"github.com/devlink-network/devlink/internal/app/domain/post"
	"github.com/devlink-network/devlink/internal/app/domain/profile"
	"github.com/devlink-network/devlink/internal/app/storage"
	"github.com/devlink-network/devlink/internal/errors"
)

const uniqueViolation = "23505"

// --- AccountStore -----------------------------------------------------------

type AccountStore struct {
	db *sql.DB
}

var _ storage.AccountStore = (*AccountStore)(nil)

func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) Create(ctx context.Context, a *account.Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO devlink_accounts (id, name, email, password_hash, avatar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.Name, a.Email, a.PasswordHash, a.Avatar, a.CreatedAt, a.UpdatedAt)
	if isUniqueViolation(err) {
		return errors.Conflict("account with this email already exists")
	}
	return err
}

func (s *AccountStore) Get(ctx context.Context, id string) (*account.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, avatar, created_at, updated_at
		FROM devlink_accounts
		WHERE id = $1
	`, id)
	return scanAccount(row, "account %q not found", id)
}

func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, avatar, created_at, updated_at
		FROM devlink_accounts
		WHERE lower(email) = lower($1)
	`, email)
	return scanAccount(row, "account not found")
}

func (s *AccountStore) Update(ctx context.Context, a *account.Account) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE devlink_accounts
		SET name = $2, email = $3, password_hash = $4, avatar = $5, updated_at = $6
		WHERE id = $1
	`, a.ID, a.Name, a.Email, a.PasswordHash, a.Avatar, a.UpdatedAt)
	if isUniqueViolation(err) {
		return errors.Conflict("account with this email already exists")
	}
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.NotFound("account %q not found", a.ID)
	}
	return nil
}

func (s *AccountStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM devlink_accounts WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.NotFound("account %q not found", id)
	}
	return nil
}

func scanAccount(row *sql.Row, notFoundFormat string, args ...interface{}) (*account.Account, error) {
	var a account.Account
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Avatar, &a.CreatedAt, &a.UpdatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound(notFoundFormat, args...)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// --- ProfileStore -----------------------------------------------------------

type ProfileStore struct {
	db *sql.DB
}

var _ storage.ProfileStore = (*ProfileStore)(nil)

func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

const profileColumns = `id, account_id, company, website, location, bio, status, skills, github_username, social, experience, education, created_at, updated_at`

func (s *ProfileStore) Create(ctx context.Context, p *profile.Profile) error {
	skills, social, experience, education, err := marshalProfileDocs(p)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO devlink_profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, p.ID, p.AccountID, p.Company, p.Website, p.Location, p.Bio, p.Status,
		skills, p.GithubUsername, social, experience, education, p.CreatedAt, p.UpdatedAt)
	if isUniqueViolation(err) {
		return errors.Conflict("profile for account %q already exists", p.AccountID)
	}
	return err
}

func (s *ProfileStore) Update(ctx context.Context, p *profile.Profile) error {
	skills, social, experience, education, err := marshalProfileDocs(p)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE devlink_profiles
		SET company = $2, website = $3, location = $4, bio = $5, status = $6,
		    skills = $7, github_username = $8, social = $9, experience = $10,
		    education = $11, updated_at = $12
		WHERE account_id = $1
	`, p.AccountID, p.Company, p.Website, p.Location, p.Bio, p.Status,
		skills, p.GithubUsername, social, experience, education, p.UpdatedAt)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.NotFound("profile for account %q not found", p.AccountID)
	}
	return nil
}

func (s *ProfileStore) GetByAccount(ctx context.Context, accountID string) (*profile.Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM devlink_profiles
		WHERE account_id = $1
	`, accountID)

	p, err := scanProfile(row.Scan)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("profile for account %q not found", accountID)
	}
	return p, err
}

func (s *ProfileStore) List(ctx context.Context) ([]*profile.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+profileColumns+`
		FROM devlink_profiles
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*profile.Profile
	for rows.Next() {
		p, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (s *ProfileStore) DeleteByAccount(ctx context.Context, accountID string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM devlink_profiles WHERE account_id = $1
	`, accountID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.NotFound("profile for account %q not found", accountID)
	}
	return nil
}

func marshalProfileDocs(p *profile.Profile) (skills, social, experience, education []byte, err error) {
	if skills, err = json.Marshal(p.Skills); err != nil {
		return
	}
	if social, err = json.Marshal(p.Social); err != nil {
		return
	}
	if experience, err = json.Marshal(p.Experience); err != nil {
		return
	}
	education, err = json.Marshal(p.Education)
	return
}

func scanProfile(scan func(...interface{}) error) (*profile.Profile, error) {
	var (
		p             profile.Profile
		skillsRaw     []byte
		socialRaw     []byte
		experienceRaw []byte
		educationRaw  []byte
	)
	err := scan(&p.ID, &p.AccountID, &p.Company, &p.Website, &p.Location, &p.Bio,
		&p.Status, &skillsRaw, &p.GithubUsername, &socialRaw, &experienceRaw,
		&educationRaw, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(skillsRaw) > 0 {
		_ = json.Unmarshal(skillsRaw, &p.Skills)
	}
	if len(socialRaw) > 0 {
		_ = json.Unmarshal(socialRaw, &p.Social)
	}
	if len(experienceRaw) > 0 {
		_ = json.Unmarshal(experienceRaw, &p.Experience)
	}
	if len(educationRaw) > 0 {
		_ = json.Unmarshal(educationRaw, &p.Education)
	}
	return &p, nil
}

// --- PostStore --------------------------------------------------------------

type PostStore struct {
	db *sql.DB
}

var _ storage.PostStore = (*PostStore)(nil)

func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, account_id, body, author_name, author_avatar, likes, comments, created_at, updated_at`

func (s *PostStore) Create(ctx context.Context, p *post.Post) error {
	likes, comments, err := marshalPostDocs(p)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO devlink_posts (`+postColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.AccountID, p.Text, p.AuthorName, p.AuthorAvatar, likes, comments, p.CreatedAt, p.UpdatedAt)
	return err
}

func (s *PostStore) Update(ctx context.Context, p *post.Post) error {
	likes, comments, err := marshalPostDocs(p)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE devlink_posts
		SET body = $2, likes = $3, comments = $4, updated_at = $5
		WHERE id = $1
	`, p.ID, p.Text, likes, comments, p.UpdatedAt)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.NotFound("post %q not found", p.ID)
	}
	return nil
}

func (s *PostStore) Get(ctx context.Context, id string) (*post.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM devlink_posts
		WHERE id = $1
	`, id)

	p, err := scanPost(row.Scan)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("post %q not found", id)
	}
	return p, err
}

// List returns all posts newest first.
func (s *PostStore) List(ctx context.Context) ([]*post.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+postColumns+`
		FROM devlink_posts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*post.Post
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (s *PostStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM devlink_posts WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.NotFound("post %q not found", id)
	}
	return nil
}

func (s *PostStore) DeleteByAuthor(ctx context.Context, accountID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM devlink_posts WHERE account_id = $1
	`, accountID)
	return err
}

func marshalPostDocs(p *post.Post) (likes, comments []byte, err error) {
	if likes, err = json.Marshal(p.Likes); err != nil {
		return
	}
	comments, err = json.Marshal(p.Comments)
	return
}

func scanPost(scan func(...interface{}) error) (*post.Post, error) {
	var (
		p           post.Post
		likesRaw    []byte
		commentsRaw []byte
	)
	err := scan(&p.ID, &p.AccountID, &p.Text, &p.AuthorName, &p.AuthorAvatar,
		&likesRaw, &commentsRaw, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(likesRaw) > 0 {
		_ = json.Unmarshal(likesRaw, &p.Likes)
	}
	if len(commentsRaw) > 0 {
		_ = json.Unmarshal(commentsRaw, &p.Comments)
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
