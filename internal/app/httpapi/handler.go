// Package httpapi exposes the application services over REST.
package httpapi

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	app "github.com/devlink-network/devlink/internal/app"
	"github.com/devlink-network/devlink/internal/app/domain/profile"
	"github.com/devlink-network/devlink/internal/app/services/accounts"
	"github.com/devlink-network/devlink/internal/app/services/profiles"
	"github.com/devlink-network/devlink/internal/errors"
	"github.com/devlink-network/devlink/internal/httputil"
	"github.com/devlink-network/devlink/internal/middleware"
)

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app *app.Application
}

// NewHandler returns a router exposing the REST API. Routes that act on the
// caller's own data sit behind the identity gate; reads of public resources
// do not.
func NewHandler(application *app.Application) *mux.Router {
	h := &handler{app: application}
	authMW := middleware.NewAuthMiddleware(application.Tokens, nil)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Accounts and sessions.
	api.HandleFunc("/users", h.register).Methods(http.MethodPost)
	api.HandleFunc("/auth", h.login).Methods(http.MethodPost)
	api.Handle("/auth", authMW.RequireFunc(h.currentAccount)).Methods(http.MethodGet)

	// Profiles.
	api.Handle("/profile/me", authMW.RequireFunc(h.myProfile)).Methods(http.MethodGet)
	api.Handle("/profile", authMW.RequireFunc(h.upsertProfile)).Methods(http.MethodPost)
	api.Handle("/profile", authMW.RequireFunc(h.deleteAccount)).Methods(http.MethodDelete)
	api.HandleFunc("/profile", h.listProfiles).Methods(http.MethodGet)
	api.HandleFunc("/profile/user/{account_id}", h.profileByAccount).Methods(http.MethodGet)
	api.HandleFunc("/profile/github/{username}", h.githubRepos).Methods(http.MethodGet)

	api.Handle("/profile/experience", authMW.RequireFunc(h.addExperience)).Methods(http.MethodPut)
	api.Handle("/profile/experience/{entry_id}", authMW.RequireFunc(h.removeExperience)).Methods(http.MethodDelete)
	api.Handle("/profile/education", authMW.RequireFunc(h.addEducation)).Methods(http.MethodPut)
	api.Handle("/profile/education/{entry_id}", authMW.RequireFunc(h.removeEducation)).Methods(http.MethodDelete)

	// Posts.
	api.Handle("/posts", authMW.RequireFunc(h.createPost)).Methods(http.MethodPost)
	api.HandleFunc("/posts", h.listPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", h.getPost).Methods(http.MethodGet)
	api.Handle("/posts/{id}", authMW.RequireFunc(h.deletePost)).Methods(http.MethodDelete)
	api.Handle("/posts/like/{id}", authMW.RequireFunc(h.likePost)).Methods(http.MethodPut)
	api.Handle("/posts/unlike/{id}", authMW.RequireFunc(h.unlikePost)).Methods(http.MethodPut)
	api.Handle("/posts/comment/{id}", authMW.RequireFunc(h.addComment)).Methods(http.MethodPost)
	api.Handle("/posts/comment/{id}/{comment_id}", authMW.RequireFunc(h.removeComment)).Methods(http.MethodDelete)

	r.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)
	return r
}

// --- accounts ---------------------------------------------------------------

type credentialsResponse struct {
	Token string `json:"token"`
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, errors.Validation("invalid request body"))
		return
	}

	_, token, err := h.app.Accounts.Register(r.Context(), accounts.RegisterInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, credentialsResponse{Token: token})
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, errors.Validation("invalid request body"))
		return
	}

	_, token, err := h.app.Accounts.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, credentialsResponse{Token: token})
}

func (h *handler) currentAccount(w http.ResponseWriter, r *http.Request) {
	acct, err := h.app.Accounts.Get(r.Context(), middleware.GetAccountID(r.Context()))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, acct)
}

func (h *handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Accounts.Delete(r.Context(), middleware.GetAccountID(r.Context())); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
}

// --- profiles ---------------------------------------------------------------

type profilePayload struct {
	Company        string         `json:"company"`
	Website        string         `json:"website"`
	Location       string         `json:"location"`
	Bio            string         `json:"bio"`
	Status         string         `json:"status"`
	Skills         string         `json:"skills"`
	GithubUsername string         `json:"github_username"`
	Social         profile.Social `json:"social"`
}

func (h *handler) upsertProfile(w http.ResponseWriter, r *http.Request) {
	var payload profilePayload
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, errors.Validation("invalid request body"))
		return
	}

	p, err := h.app.Profiles.Upsert(r.Context(), middleware.GetAccountID(r.Context()), profiles.UpsertInput{
		Company:        payload.Company,
		Website:        payload.Website,
		Location:       payload.Location,
		Bio:            payload.Bio,
		Status:         payload.Status,
		Skills:         strings.Split(payload.Skills, ","),
		GithubUsername: payload.GithubUsername,
		Social:         payload.Social,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *handler) myProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.app.Profiles.GetByAccount(r.Context(), middleware.GetAccountID(r.Context()))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *handler) listProfiles(w http.ResponseWriter, r *http.Request) {
	views, err := h.app.Profiles.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, views)
}

func (h *handler) profileByAccount(w http.ResponseWriter, r *http.Request) {
	view, err := h.app.Profiles.GetView(r.Context(), mux.Vars(r)["account_id"])
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (h *handler) githubRepos(w http.ResponseWriter, r *http.Request) {
	repos, err := h.app.Github.ListRepos(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, repos)
}

func (h *handler) addExperience(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title       string `json:"title"`
		Company     string `json:"company"`
		Location    string `json:"location"`
		From        string `json:"from"`
		To          string `json:"to"`
		Current     bool   `json:"current"`
		Description string `json:"description"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, errors.Validation("invalid request body"))
		return
	}

	p, err := h.app.Profiles.AddExperience(r.Context(), middleware.GetAccountID(r.Context()), profiles.ExperienceInput{
		Title:       payload.Title,
		Company:     payload.Company,
		Location:    payload.Location,
		From:        payload.From,
		To:          payload.To,
		Current:     payload.Current,
		Description: payload.Description,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *handler) removeExperience(w http.ResponseWriter, r *http.Request) {
	p, err := h.app.Profiles.RemoveExperience(r.Context(), middleware.GetAccountID(r.Context()), mux.Vars(r)["entry_id"])
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *handler) addEducation(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		School       string `json:"school"`
		Degree       string `json:"degree"`
		FieldOfStudy string `json:"field_of_study"`
		From         string `json:"from"`
		To           string `json:"to"`
		Current      bool   `json:"current"`
		Description  string `json:"description"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, errors.Validation("invalid request body"))
		return
	}

	p, err := h.app.Profiles.AddEducation(r.Context(), middleware.GetAccountID(r.Context()), profiles.EducationInput{
		School:       payload.School,
		Degree:       payload.Degree,
		FieldOfStudy: payload.FieldOfStudy,
		From:         payload.From,
		To:           payload.To,
		Current:      payload.Current,
		Description:  payload.Description,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *handler) removeEducation(w http.ResponseWriter, r *http.Request) {
	p, err := h.app.Profiles.RemoveEducation(r.Context(), middleware.GetAccountID(r.Context()), mux.Vars(r)["entry_id"])
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// --- posts ------------------------------------------------------------------

func (h *handler) createPost(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, errors.Validation("invalid request body"))
		return
	}

	p, err := h.app.Posts.Create(r.Context(), middleware.GetAccountID(r.Context()), payload.Text)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p)
}

func (h *handler) listPosts(w http.ResponseWriter, r *http.Request) {
	all, err := h.app.Posts.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, all)
}

func (h *handler) getPost(w http.ResponseWriter, r *http.Request) {
	p, err := h.app.Posts.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *handler) deletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Posts.Delete(r.Context(), middleware.GetAccountID(r.Context()), mux.Vars(r)["id"]); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "post removed"})
}

func (h *handler) likePost(w http.ResponseWriter, r *http.Request) {
	p, err := h.app.Posts.Like(r.Context(), middleware.GetAccountID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.Likes)
}

func (h *handler) unlikePost(w http.ResponseWriter, r *http.Request) {
	p, err := h.app.Posts.Unlike(r.Context(), middleware.GetAccountID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.Likes)
}

func (h *handler) addComment(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, errors.Validation("invalid request body"))
		return
	}

	p, err := h.app.Posts.AddComment(r.Context(), middleware.GetAccountID(r.Context()), mux.Vars(r)["id"], payload.Text)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p.Comments)
}

func (h *handler) removeComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	p, err := h.app.Posts.RemoveComment(r.Context(), middleware.GetAccountID(r.Context()), vars["id"], vars["comment_id"])
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.Comments)
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
