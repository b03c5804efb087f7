package app

import (
	"github.com/devlink-network/devlink/internal/app/services/accounts"
	"github.com/devlink-network/devlink/internal/app/services/github"
	"github.com/devlink-network/devlink/internal/app/services/posts"
	"github.com/devlink-network/devlink/internal/app/services/profiles"
	"github.com/devlink-network/devlink/internal/app/storage"
	"github.com/devlink-network/devlink/internal/app/storage/memory"
	"github.com/devlink-network/devlink/internal/auth"
	"github.com/devlink-network/devlink/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Accounts storage.AccountStore
	Profiles storage.ProfileStore
	Posts    storage.PostStore
}

// Options carries the external collaborators the application needs beyond
// storage.
type Options struct {
	Tokens      *auth.TokenService
	GithubToken string
}

// Application ties the domain services together.
type Application struct {
	log *logger.Logger

	Tokens   *auth.TokenService
	Accounts *accounts.Service
	Profiles *profiles.Service
	Posts    *posts.Service
	Github   *github.Client
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, opts Options, log *logger.Logger) *Application {
	if log == nil {
		log = logger.NewDefault("app")
	}

	if stores.Accounts == nil {
		stores.Accounts = memory.NewAccountStore()
	}
	if stores.Profiles == nil {
		stores.Profiles = memory.NewProfileStore()
	}
	if stores.Posts == nil {
		stores.Posts = memory.NewPostStore()
	}

	tokens := opts.Tokens
	if tokens == nil {
		tokens = auth.NewTokenService([]byte("dev-only-secret"), 0, "")
	}

	return &Application{
		log:      log,
		Tokens:   tokens,
		Accounts: accounts.New(stores.Accounts, stores.Profiles, stores.Posts, tokens, log),
		Profiles: profiles.New(stores.Profiles, stores.Accounts, log),
		Posts:    posts.New(stores.Posts, stores.Accounts, log),
		Github:   github.New(opts.GithubToken, log),
	}
}
