package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by the request models.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("logincode", validateLoginCode); err != nil {
		return fmt.Errorf("failed to register logincode validator: %w", err)
	}
	return nil
}

// validateLoginCode accepts codes in any case, surrounded by whitespace.
func validateLoginCode(fl validator.FieldLevel) bool {
	code := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	if len(code) != LoginCodeLength {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(LoginCodeAlphabet, r) {
			return false
		}
	}
	return true
}
