package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/devlink-network/devlink/internal/auth"
)

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour, "devlink")
	valid, err := tokens.Issue("acct-1")
	require.NoError(t, err)

	expired, err := auth.NewTokenService([]byte("test-secret"), -time.Minute, "devlink").Issue("acct-1")
	require.NoError(t, err)

	forged, err := auth.NewTokenService([]byte("other-secret"), time.Hour, "devlink").Issue("acct-1")
	require.NoError(t, err)

	mw := NewAuthMiddleware(tokens, nil)

	var gotAccountID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccountID = GetAccountID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantID     string
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantID: "acct-1"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-token", wantStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "forged token", header: "Bearer " + forged, wantStatus: http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotAccountID = ""
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			mw.Require(next).ServeHTTP(rec, req)

			require.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusOK {
				require.Equal(t, tc.wantID, gotAccountID)
			} else {
				require.Empty(t, gotAccountID)
				require.Contains(t, rec.Header().Get("Content-Type"), "application/json")
			}
		})
	}
}
