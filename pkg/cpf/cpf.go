// Package cpf validates Brazilian CPF identifiers (Cadastro de Pessoas
// Fisicas), the 11-digit national taxpayer registry number.
package cpf

import "regexp"

const cpfLength = 11

var (
	nonDigits    = regexp.MustCompile(`[^\d]+`)
	elevenDigits = regexp.MustCompile(`^\d{11}$`)
)

// IsValid reports whether raw is a valid CPF. Separator characters such as
// dots and dashes are stripped before checking, so "111.444.777-35" and
// "11144477735" are equivalent inputs.
func IsValid(raw string) bool {
	if raw == "" {
		return false
	}

	clean := Sanitize(raw)
	if len(clean) != cpfLength {
		return false
	}
	// All-repeated digits pass the checksum but are known-invalid.
	if allRepeated(clean) {
		return false
	}

	if checkDigit(clean, 9) != int(clean[9]-'0') {
		return false
	}
	return checkDigit(clean, 10) == int(clean[10]-'0')
}

// IsValidFormat reports whether raw is exactly 11 numeric digits. It does not
// verify check digits; token issuance accepts any well-formed identifier.
func IsValidFormat(raw string) bool {
	return elevenDigits.MatchString(raw)
}

// Sanitize removes every non-digit character from raw.
func Sanitize(raw string) string {
	return nonDigits.ReplaceAllString(raw, "")
}

func allRepeated(clean string) bool {
	for i := 1; i < len(clean); i++ {
		if clean[i] != clean[0] {
			return false
		}
	}
	return true
}

// checkDigit computes the verification digit over the first digitsToUse
// digits using weights digitsToUse+1 down to 2, mod 11, clamped to 0 when
// the raw result is 10 or more.
func checkDigit(clean string, digitsToUse int) int {
	sum := 0
	for i := 0; i < digitsToUse; i++ {
		sum += int(clean[i]-'0') * (digitsToUse + 1 - i)
	}

	digit := 11 - sum%11
	if digit >= 10 {
		return 0
	}
	return digit
}
