package models

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginCodeValidator(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterValidators(v))

	valid := []string{"AB12CD", "ab12cd", " XYZ789 ", "000000"}
	for _, code := range valid {
		assert.NoError(t, v.Var(code, "logincode"), code)
	}

	invalid := []string{"", "AB12C", "AB12CDE", "AB-12C", "ÄB12CD"}
	for _, code := range invalid {
		assert.Error(t, v.Var(code, "logincode"), code)
	}
}

func TestRequestTags(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterValidators(v))

	assert.NoError(t, v.Struct(CriterionRequest{Name: "Music", Weight: 60, MaxScore: 10}))
	assert.Error(t, v.Struct(CriterionRequest{Name: "Music", Weight: 0, MaxScore: 10}))
	assert.Error(t, v.Struct(CriterionRequest{Name: "Music", Weight: 101, MaxScore: 10}))
	assert.Error(t, v.Struct(CriterionRequest{Name: "Music", Weight: 50}))

	assert.NoError(t, v.Struct(SubmitScoreRequest{CriteriaScores: map[string]float64{"music": 0}}))
	assert.Error(t, v.Struct(SubmitScoreRequest{CriteriaScores: map[string]float64{"music": -1}}))
	assert.Error(t, v.Struct(SubmitScoreRequest{}))

	assert.NoError(t, v.Struct(JudgeCreateRequest{Name: "Ozzy", Username: "ozzy1", Password: "123456"}))
	assert.Error(t, v.Struct(JudgeCreateRequest{Name: "Ozzy", Username: "ozzy o", Password: "123456"}))

	assert.Error(t, v.Struct(AudienceLoginRequest{LoginCode: "nope"}))
	assert.NoError(t, v.Struct(AudienceLoginRequest{LoginCode: "q1w2e3"}))
}
