package authenticating

import (
	"crypto/rand"
	"math/big"

	"github.com/vfg2006/dealer-crm-api/pkg/apiErrors"
)

const (
	MinPasswordLength       = 6
	generatedPasswordLength = 12

	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars  = "0123456789"
	specialChars = "!@#$%^&*()-_=+[]{}|;:,.<>?"
	allChars     = lowerChars + upperChars + numberChars + specialChars
)

// ValidatePasswordStrength only enforces the minimum length.
func ValidatePasswordStrength(password string) error {
	if len(password) < MinPasswordLength {
		return NewAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, "password must be at least 6 characters long")
	}
	return nil
}

// generateStrongPassword builds a password with at least one lowercase,
// uppercase, digit and special character, shuffled.
func generateStrongPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	password := make([]byte, length)

	for i, charset := range []string{lowerChars, upperChars, numberChars, specialChars} {
		c, err := getRandomChar(charset)
		if err != nil {
			return "", err
		}
		password[i] = c
	}

	for i := 4; i < length; i++ {
		c, err := getRandomChar(allChars)
		if err != nil {
			return "", err
		}
		password[i] = c
	}

	for i := range password {
		j, err := randomInt(int64(len(password)))
		if err != nil {
			return "", err
		}
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

func getRandomChar(charset string) (byte, error) {
	n, err := randomInt(int64(len(charset)))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}

// randomInt returns a uniform value in [0, max).
func randomInt(max int64) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}
