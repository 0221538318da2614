package pattern

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/billflow/billflow/internal/model"
)

// Ensure validators implement the model interface.
var (
	_ model.Validator = (*AccountNumberValidator)(nil)
	_ model.Validator = (*PersonNameValidator)(nil)
	_ model.Validator = (*DateValidator)(nil)
)

var allDigitsRe = regexp.MustCompile(`^\d+$`)

// tollFreePrefixes are common phone prefixes that show up as long digit runs
// in statement text and are never account numbers.
var tollFreePrefixes = []string{"800", "833", "844", "855", "866", "877", "888"}

// AccountNumberValidator rejects long digit strings that are really dates or
// phone numbers. Candidates containing letters pass through untouched.
type AccountNumberValidator struct{}

// Validate reports whether the candidate is plausibly an account number.
func (AccountNumberValidator) Validate(candidate string) bool {
	if !allDigitsRe.MatchString(candidate) {
		return true
	}

	switch len(candidate) {
	case 6:
		// MMDDYY
		if looksLikeMonthDay(candidate[0:2], candidate[2:4]) {
			return false
		}
	case 8:
		// YYYYMMDD or MMDDYYYY
		if looksLikeYear(candidate[0:4]) && looksLikeMonthDay(candidate[4:6], candidate[6:8]) {
			return false
		}
		if looksLikeMonthDay(candidate[0:2], candidate[2:4]) && looksLikeYear(candidate[4:8]) {
			return false
		}
	case 10, 11:
		digits := candidate
		if len(digits) == 11 && digits[0] == '1' {
			digits = digits[1:]
		}
		for _, prefix := range tollFreePrefixes {
			if strings.HasPrefix(digits, prefix) {
				return false
			}
		}
	}

	return true
}

func looksLikeYear(s string) bool {
	y, err := strconv.Atoi(s)
	return err == nil && y >= 1900 && y <= 2100
}

func looksLikeMonthDay(m, d string) bool {
	month, err := strconv.Atoi(m)
	if err != nil {
		return false
	}
	day, err := strconv.Atoi(d)
	if err != nil {
		return false
	}
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

// nameStopwords are common statement words that match name-shaped patterns
// but are never customer names.
var nameStopwords = map[string]bool{
	"the": true, "and": true, "for": true, "from": true, "with": true,
	"account": true, "amount": true, "total": true, "balance": true,
	"statement": true, "payment": true, "due": true, "date": true,
	"page": true, "bill": true, "invoice": true, "number": true,
}

// PersonNameValidator filters out name-shaped matches that are statement
// boilerplate rather than people.
type PersonNameValidator struct{}

// Validate reports whether the candidate is plausibly a person's name.
func (PersonNameValidator) Validate(candidate string) bool {
	trimmed := strings.TrimSpace(candidate)
	if len(trimmed) < 2 {
		return false
	}
	if allDigitsRe.MatchString(trimmed) {
		return false
	}

	hasLetter := false
	punctuation := 0
	for _, r := range trimmed {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r) || unicode.IsSpace(r):
		case r == '.' || r == '\'' || r == '-' || r == '&' || r == ',':
		default:
			punctuation++
		}
	}
	if !hasLetter || punctuation > 2 {
		return false
	}

	for _, word := range strings.Fields(trimmed) {
		if nameStopwords[strings.ToLower(word)] {
			return false
		}
	}

	return true
}

// DateValidator checks that slash or dash delimited date tokens have
// in-range month, day, and year components.
type DateValidator struct{}

// Validate reports whether the candidate parses as a month/day/year date.
func (DateValidator) Validate(candidate string) bool {
	sep := "/"
	if !strings.Contains(candidate, sep) {
		sep = "-"
	}
	parts := strings.Split(strings.TrimSpace(candidate), sep)
	if len(parts) != 3 {
		return false
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil || day < 1 || day > 31 {
		return false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return false
	}
	if len(parts[2]) == 2 {
		return true
	}
	return year >= 1900 && year <= 2100
}
