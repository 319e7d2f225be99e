package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutils "github.com/tharindraj/ctrl-alt-rock-voting/api/controllers/testing"
	"github.com/tharindraj/ctrl-alt-rock-voting/api/models"
	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

func TestLogin(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	hash, err := HashPassword("rockon")
	require.NoError(t, err)
	require.NoError(t, env.admins.Create(ctx, &storage.Admin{ID: "a1", Username: "root", PasswordHash: hash}))
	require.NoError(t, env.judges.Create(ctx, &storage.Judge{ID: "j1", Name: "Ozzy", Username: "ozzy", PasswordHash: hash}))
	require.NoError(t, env.audience.Create(ctx, &storage.AudienceMember{ID: "m1", FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", LoginCode: "AB12CD"}))

	t.Run("Happy path - admin login", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/auth/admin/login", models.LoginRequest{Username: "root", Password: "rockon"}, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.LoginResponse
		require.NoError(t, testutils.Decode(w, &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, models.RoleAdmin, resp.User.Role)
		assert.NotContains(t, w.Body.String(), "password")

		identity, err := env.tokens.Parse(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "a1", identity.ID)
	})

	t.Run("Happy path - judge login", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/auth/judge/login", models.LoginRequest{Username: "ozzy", Password: "rockon"}, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.LoginResponse
		require.NoError(t, testutils.Decode(w, &resp))
		assert.Equal(t, models.RoleJudge, resp.User.Role)
		assert.Equal(t, "Ozzy", resp.User.Name)
	})

	t.Run("Happy path - audience login is case insensitive", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/auth/audience/login", models.AudienceLoginRequest{LoginCode: "ab12cd"}, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.LoginResponse
		require.NoError(t, testutils.Decode(w, &resp))
		assert.Equal(t, "m1", resp.User.ID)
		assert.Equal(t, models.RoleAudience, resp.User.Role)
	})

	t.Run("Unhappy path - wrong password", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/auth/judge/login", models.LoginRequest{Username: "ozzy", Password: "nope"}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Unhappy path - judge cannot use admin login", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/auth/admin/login", models.LoginRequest{Username: "ozzy", Password: "rockon"}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Unhappy path - missing fields", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/auth/admin/login", models.LoginRequest{Username: "root"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unhappy path - malformed login code", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/auth/audience/login", models.AudienceLoginRequest{LoginCode: "AB-12"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unhappy path - unknown login code", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/auth/audience/login", models.AudienceLoginRequest{LoginCode: "ZZZZZZ"}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRoleGuards(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("missing token", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/judge/my-scores", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/judge/my-scores", nil, testutils.Bearer("not-a-jwt"))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/judge/my-scores", nil, env.tokenFor(t, "m1", models.RoleAudience))
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = env.do(http.MethodGet, "/api/admin/settings", nil, env.tokenFor(t, "j1", models.RoleJudge))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("wrong admin token", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/admin/settings", nil, map[string]string{"x-admin-token": "guess"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin token and admin jwt both pass", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/admin/settings", nil, adminHeaders()).Code)
		assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/admin/settings", nil, env.tokenFor(t, "a1", models.RoleAdmin)).Code)
	})

	t.Run("ops endpoints are open", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/healthz", nil, nil).Code)
		w := env.do(http.MethodGet, "/metrics", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "voting_http_requests_total")
	})

	t.Run("unknown route", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/nowhere", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "PAGE_NOT_FOUND")
	})
}
