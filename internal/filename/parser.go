// Package filename recovers a best-guess account number and customer name
// from statement filenames that follow no guaranteed delimiter convention.
package filename

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/billflow/billflow/internal/model"
)

var (
	// embeddedAccountRe finds an account-number shape anywhere in the name:
	// 2-6 uppercase letters followed by 2-8 alphanumerics.
	embeddedAccountRe = regexp.MustCompile(`[A-Z]{2,6}[A-Za-z0-9]{2,8}`)

	// strictAccountRe matches a whole segment with the account-number shape.
	strictAccountRe = regexp.MustCompile(`^[A-Z]{2,6}[A-Za-z0-9]{2,8}$`)

	// numericDateRe matches M/D/Y, Y/M/D, or partial M/D fragments in slash
	// or dash delimited form.
	numericDateRe = regexp.MustCompile(`\b\d{1,4}[/-]\d{1,2}(?:[/-]\d{1,4})?\b`)

	// monthYearRe matches written month fragments like "May 2025" that ride
	// along in statement filenames.
	monthYearRe = regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s*\d{2,4}\b`)

	multiSpaceRe = regexp.MustCompile(`\s+`)
)

// Parse decomposes a filename into an account number and customer name
// using an ordered fallback chain of strategies. It is total: every branch
// yields non-empty fields, substituting "Unknown" when nothing fits, so
// downstream reconciliation never sees a partial result.
func Parse(name string) model.FilenameParseResult {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.TrimSpace(base)

	if account := embeddedAccountRe.FindString(base); account != "" {
		remainder := strings.Replace(base, account, " ", 1)
		return result(account, cleanNameFragment(remainder))
	}

	if strings.Contains(base, "_") {
		return parseDelimited(strings.Split(base, "_"), true)
	}
	if strings.Contains(base, " ") {
		return parseDelimited(strings.Fields(base), false)
	}
	if strings.Contains(base, "-") {
		return parseDelimited(strings.Split(base, "-"), false)
	}

	// No recognized delimiter: the whole name is the best account guess.
	return result(base, "")
}

// parseDelimited applies the split-and-scan strategy shared by the
// underscore, space, and dash branches. The underscore form trusts segment
// positions; the others scan for an account-shaped segment and rebuild the
// name from everything else, dropping bare date segments.
func parseDelimited(segments []string, positional bool) model.FilenameParseResult {
	cleaned := segments[:0]
	for _, seg := range segments {
		if seg = strings.TrimSpace(seg); seg != "" {
			cleaned = append(cleaned, seg)
		}
	}
	if len(cleaned) == 0 {
		return result("", "")
	}
	if len(cleaned) == 1 {
		return result(cleaned[0], "")
	}

	if positional {
		if strictAccountRe.MatchString(cleaned[0]) {
			return result(cleaned[0], cleanNameFragment(cleaned[1]))
		}
		return result(cleaned[1], cleanNameFragment(cleaned[0]))
	}

	for i, seg := range cleaned {
		if !strictAccountRe.MatchString(seg) {
			continue
		}
		var rest []string
		for j, other := range cleaned {
			if j == i || isBareDate(other) {
				continue
			}
			rest = append(rest, other)
		}
		return result(seg, cleanNameFragment(strings.Join(rest, " ")))
	}

	return result(cleaned[0], cleanNameFragment(cleaned[1]))
}

// cleanNameFragment collapses separators and strips residual date-like
// substrings from a candidate customer name.
func cleanNameFragment(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	s = numericDateRe.ReplaceAllString(s, " ")
	s = monthYearRe.ReplaceAllString(s, " ")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.Trim(s, " -_.")
}

// isBareDate reports whether a lone segment looks like a date fragment.
func isBareDate(seg string) bool {
	return numericDateRe.FindString(seg) == seg || monthYearRe.FindString(seg) == seg
}

// result substitutes the Unknown sentinel for any empty field.
func result(account, name string) model.FilenameParseResult {
	account = strings.TrimSpace(account)
	if account == "" {
		account = model.UnknownField
	}
	if name == "" {
		name = model.UnknownField
	}
	return model.FilenameParseResult{AccountNumber: account, CustomerName: name}
}
