package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutils "github.com/tharindraj/ctrl-alt-rock-voting/api/controllers/testing"
	"github.com/tharindraj/ctrl-alt-rock-voting/api/models"
)

func TestJudgeAccounts(t *testing.T) {
	env := setupTestEnv(t)
	var created models.JudgeResponse

	t.Run("Happy path - create judge", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/admin/judges", models.JudgeCreateRequest{Name: "Ozzy", Username: "ozzy", Password: "rockon"}, adminHeaders())
		require.Equal(t, http.StatusCreated, w.Code)
		require.NoError(t, testutils.Decode(w, &created))
		assert.NotEmpty(t, created.ID)
		assert.NotContains(t, w.Body.String(), "rockon")
	})

	t.Run("Happy path - new judge can log in", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/auth/judge/login", models.LoginRequest{Username: "ozzy", Password: "rockon"}, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unhappy path - duplicate username", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/admin/judges", models.JudgeCreateRequest{Name: "Other", Username: "ozzy", Password: "secret1"}, adminHeaders())
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "already taken")
	})

	t.Run("Unhappy path - short password", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/admin/judges", models.JudgeCreateRequest{Name: "Short", Username: "short", Password: "abc"}, adminHeaders())
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Happy path - update keeps own username", func(t *testing.T) {
		w := env.do(http.MethodPut, "/api/admin/judges/"+created.ID, models.JudgeUpdateRequest{Name: "Ozzy O", Username: "ozzy"}, adminHeaders())
		require.Equal(t, http.StatusOK, w.Code)
		var judge models.JudgeResponse
		require.NoError(t, testutils.Decode(w, &judge))
		assert.Equal(t, "Ozzy O", judge.Name)
	})

	t.Run("Happy path - reset password", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/admin/judges/"+created.ID+"/reset-password", models.ResetPasswordRequest{Password: "newpass"}, adminHeaders())
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodPost, "/api/auth/judge/login", models.LoginRequest{Username: "ozzy", Password: "rockon"}, nil).Code)
		assert.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/auth/judge/login", models.LoginRequest{Username: "ozzy", Password: "newpass"}, nil).Code)
	})

	t.Run("Unhappy path - unknown judge", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, env.do(http.MethodPut, "/api/admin/judges/zz", models.JudgeUpdateRequest{Name: "X", Username: "x"}, adminHeaders()).Code)
		assert.Equal(t, http.StatusNotFound, env.do(http.MethodPost, "/api/admin/judges/zz/reset-password", models.ResetPasswordRequest{Password: "123456"}, adminHeaders()).Code)
	})

	t.Run("List and delete", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/admin/judges", nil, adminHeaders())
		require.Equal(t, http.StatusOK, w.Code)
		var judges []models.JudgeResponse
		require.NoError(t, testutils.Decode(w, &judges))
		assert.Len(t, judges, 1)

		assert.Equal(t, http.StatusOK, env.do(http.MethodDelete, "/api/admin/judges/"+created.ID, nil, adminHeaders()).Code)
		assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, "/api/admin/judges/"+created.ID, nil, adminHeaders()).Code)
	})
}

func TestAudienceRegistration(t *testing.T) {
	env := setupTestEnv(t)
	var created models.AudienceResponse

	t.Run("Happy path - register returns a login code", func(t *testing.T) {
		req := models.AudienceCreateRequest{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com"}
		w := env.do(http.MethodPost, "/api/admin/audience", req, adminHeaders())
		require.Equal(t, http.StatusCreated, w.Code)
		require.NoError(t, testutils.Decode(w, &created))

		assert.Len(t, created.LoginCode, models.LoginCodeLength)
		for _, r := range created.LoginCode {
			assert.Contains(t, models.LoginCodeAlphabet, string(r))
		}
	})

	t.Run("Happy path - code logs in", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/auth/audience/login", models.AudienceLoginRequest{LoginCode: created.LoginCode}, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unhappy path - email already registered in another case", func(t *testing.T) {
		req := models.AudienceCreateRequest{FirstName: "Ann", LastName: "Again", Email: "ANN@example.com"}
		w := env.do(http.MethodPost, "/api/admin/audience", req, adminHeaders())
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unhappy path - invalid email", func(t *testing.T) {
		req := models.AudienceCreateRequest{FirstName: "Bob", LastName: "B", Email: "not-an-email"}
		w := env.do(http.MethodPost, "/api/admin/audience", req, adminHeaders())
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("List hides login codes", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/admin/audience", nil, adminHeaders())
		require.Equal(t, http.StatusOK, w.Code)
		var members []models.AudienceResponse
		require.NoError(t, testutils.Decode(w, &members))
		require.Len(t, members, 1)
		assert.Empty(t, members[0].LoginCode)
	})

	t.Run("Update and delete", func(t *testing.T) {
		req := models.AudienceUpdateRequest{FirstName: "Ann", LastName: "Lee-Smith", Email: "ann@example.com"}
		w := env.do(http.MethodPut, "/api/admin/audience/"+created.ID, req, adminHeaders())
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, http.StatusNotFound, env.do(http.MethodPut, "/api/admin/audience/zz", req, adminHeaders()).Code)
		assert.Equal(t, http.StatusOK, env.do(http.MethodDelete, "/api/admin/audience/"+created.ID, nil, adminHeaders()).Code)
	})
}
