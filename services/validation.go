// ABOUTME: Input validation for requests arriving at the BFF
// ABOUTME: Struct validation via go-playground/validator plus log sanitization

package services

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/edududs/PoliticSystem/models"
)

// validate is safe for concurrent use and caches struct metadata
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateLogin checks that both credentials are present. Whitespace-only
// values count as present, matching the login form's min-length rule.
func ValidateLogin(req *models.LoginRequest) error {
	if err := validate.Struct(req); err != nil {
		return NewMissingCredentials(err)
	}
	return nil
}

// SanitizeForLog removes control characters from strings to prevent log injection
// when including user input in log attributes
func SanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}
