package pattern

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/billflow/billflow/internal/common"
	"github.com/billflow/billflow/internal/model"
)

// Synthesize derives a best-effort regular expression generalizing a small
// set of example strings. The typed paths for account and name values are
// statistically informed; everything else falls back to a template built
// from the first example only, which does not generalize beyond
// superficially similar strings. Callers are responsible for validating
// the output against their own samples (see TestPattern).
func Synthesize(examples []string, vt model.ValueType) (string, error) {
	if len(examples) == 0 {
		return "", common.ErrNoExamples
	}

	switch vt {
	case model.ValueAccount:
		return synthesizeAccount(examples), nil
	case model.ValueName:
		return synthesizeName(examples), nil
	default:
		return synthesizeTemplate(examples[0]), nil
	}
}

// synthesizeAccount derives letter-run and digit-run length ranges from the
// maximum observed runs, with a tolerance of one on each side (floor 1).
func synthesizeAccount(examples []string) string {
	hasLetters := false
	hasDigits := false
	maxLetterRun := 0
	maxDigitRun := 0
	minLen, maxLen := -1, 0

	for _, ex := range examples {
		if run := longestRun(ex, unicode.IsLetter); run > 0 {
			hasLetters = true
			if run > maxLetterRun {
				maxLetterRun = run
			}
		}
		if run := longestRun(ex, unicode.IsDigit); run > 0 {
			hasDigits = true
			if run > maxDigitRun {
				maxDigitRun = run
			}
		}
		if minLen < 0 || len(ex) < minLen {
			minLen = len(ex)
		}
		if len(ex) > maxLen {
			maxLen = len(ex)
		}
	}

	switch {
	case hasLetters && hasDigits:
		letterLo := maxInt(1, maxLetterRun-1)
		digitLo := maxInt(1, maxDigitRun-1)
		return fmt.Sprintf(`[A-Z]{%d,%d}\d{%d,%d}`, letterLo, maxLetterRun+1, digitLo, maxDigitRun+1)
	case hasDigits:
		return fmt.Sprintf(`\d{%d,%d}`, minLen, maxLen)
	default:
		return `[A-Za-z0-9]+`
	}
}

// synthesizeName picks one of three fixed name shapes based on the examples.
func synthesizeName(examples []string) string {
	maxWords := 0
	for _, ex := range examples {
		if strings.Contains(ex, "&") {
			return `[A-Z][a-z]+ & [A-Z][a-z]+ [A-Z][a-z]+`
		}
		if words := len(strings.Fields(ex)); words > maxWords {
			maxWords = words
		}
	}
	if maxWords >= 3 {
		return `[A-Z][a-z]+(?: [A-Z][a-z]+){1,2}`
	}
	return `[A-Z][a-z]+ [A-Z][a-z]+`
}

// synthesizeTemplate substitutes character classes into a single example:
// letters become a letter class, digits a digit class, whitespace optional
// whitespace. Runs collapse to an exact count.
func synthesizeTemplate(example string) string {
	var b strings.Builder
	runes := []rune(example)
	for i := 0; i < len(runes); {
		r := runes[i]
		cls := classOf(r)
		run := 1
		for i+run < len(runes) && classOf(runes[i+run]) == cls && cls != "" {
			run++
		}
		switch {
		case cls == "":
			b.WriteString(regexp.QuoteMeta(string(r)))
		case cls == `\s?` || run == 1:
			b.WriteString(cls)
		default:
			fmt.Fprintf(&b, "%s{%d}", cls, run)
		}
		i += run
	}
	return b.String()
}

func classOf(r rune) string {
	switch {
	case unicode.IsLetter(r):
		return `[A-Za-z]`
	case unicode.IsDigit(r):
		return `\d`
	case unicode.IsSpace(r):
		return `\s?`
	default:
		return ""
	}
}

// longestRun returns the length of the longest consecutive run of runes
// satisfying the predicate.
func longestRun(s string, pred func(rune) bool) int {
	best, cur := 0, 0
	for _, r := range s {
		if pred(r) {
			cur++
			if cur > best {
				best = cur
			}
		} else {
			cur = 0
		}
	}
	return best
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
