package validate

import (
	"strings"
	"unicode"

	"github.com/ShiraazMoollatjie/goluhn"
)

// CleanCardNumber strips the spaces and dashes people type into card fields.
func CleanCardNumber(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, s)
}

func IsLuhn(s string) bool {
	err := goluhn.Validate(CleanCardNumber(s))
	return err == nil
}

// Last4 returns the trailing four digits of a card or account number.
func Last4(s string) string {
	digits := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 4 {
		return string(digits)
	}
	return string(digits[len(digits)-4:])
}

// MaskAccount keeps only the last four digits, e.g. "****7890".
func MaskAccount(s string) string {
	last := Last4(s)
	if last == "" {
		return ""
	}
	return "****" + last
}
