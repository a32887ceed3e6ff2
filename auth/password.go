package auth

import (
	"errors"
	"regexp"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{7,20}$`)

// HashPassword hashes pw with bcrypt at the given cost.
func HashPassword(pw string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether pw matches hash.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// passwordStrength requires 8+ characters mixing lower, upper, digit and symbol.
func passwordStrength(pw string) error {
	if len(pw) < 8 {
		return errors.New("must be at least 8 characters")
	}
	var lower, upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	if !lower || !upper || !digit || !symbol {
		return errors.New("must contain upper and lower case letters, a digit and a symbol")
	}
	return nil
}

// ValidPhone reports whether phone matches the accepted pattern.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
