// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/devlink-network/devlink/internal/auth"
	"github.com/devlink-network/devlink/internal/errors"
	"github.com/devlink-network/devlink/internal/httputil"
	"github.com/devlink-network/devlink/internal/logging"
	"github.com/devlink-network/devlink/pkg/logger"
)

// AuthMiddleware is the identity gate for protected routes. It extracts the
// bearer token, verifies it, and binds the resolved account id to the request
// context; on failure it rejects before the downstream handler runs.
type AuthMiddleware struct {
	tokens *auth.TokenService
	logger *logger.Logger
}

// NewAuthMiddleware creates the middleware around a token service.
func NewAuthMiddleware(tokens *auth.TokenService, log *logger.Logger) *AuthMiddleware {
	if log == nil {
		log = logger.NewDefault("auth")
	}
	return &AuthMiddleware{tokens: tokens, logger: log}
}

// Require wraps a handler so that only authenticated requests reach it.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.respondError(w, r, errors.Unauthorized("missing Authorization header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			m.respondError(w, r, errors.Unauthorized("invalid Authorization header format"))
			return
		}

		accountID, err := m.tokens.Verify(parts[1])
		if err != nil {
			m.logger.WithContext(r.Context()).WithError(err).Warn("token verification failed")
			m.respondError(w, r, err)
			return
		}

		ctx := logging.WithAccountID(r.Context(), accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireFunc is Require for plain handler functions.
func (m *AuthMiddleware) RequireFunc(next http.HandlerFunc) http.Handler {
	return m.Require(next)
}

func (m *AuthMiddleware) respondError(w http.ResponseWriter, r *http.Request, err error) {
	se := errors.GetServiceError(err)
	if se == nil {
		se = errors.Unauthorized("authentication failed")
	}
	httputil.WriteErrorResponse(w, se.HTTPStatus, string(se.Code), se.Message, se.Details)

	m.logger.WithContext(r.Context()).WithFields(map[string]interface{}{
		"path":   r.URL.Path,
		"method": r.Method,
		"status": se.HTTPStatus,
	}).Warn("authentication failed")
}

// GetAccountID extracts the acting account id from the request context.
func GetAccountID(ctx context.Context) string {
	return logging.GetAccountID(ctx)
}
