package pattern

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billflow/billflow/internal/model"
)

func TestDetect_LabeledAccount(t *testing.T) {
	text := "Account Nbr: FBNWSTX999888"

	result := Detect(text, DefaultCatalog())

	matches := result["account-labeled"]
	require.Len(t, matches, 1)
	assert.Equal(t, "FBNWSTX999888", matches[0].Value)
	assert.Greater(t, matches[0].Confidence, 0.8)
	assert.Contains(t, matches[0].Context, "Account Nbr")
}

func TestDetect_Deterministic(t *testing.T) {
	text := `Customer: Jane Doe
Account Number: AAQZPL1200
Statement date 5/12/2025, amount due $1,204.50.
Questions? Call (555) 123-4567 or write to billing@example.com.`

	first := Detect(text, DefaultCatalog())
	second := Detect(text, DefaultCatalog())

	require.Equal(t, first, second)
}

func TestDetect_ConfidenceBounds(t *testing.T) {
	text := `Account Number: AAQZPL1200 Customer: Jane Doe 5/12/2025 $42.00
990022113344 John Smith 123 Main Street Springfield 55901`

	result := Detect(text, DefaultCatalog())

	require.NotEmpty(t, result)
	for name, matches := range result {
		for _, m := range matches {
			assert.GreaterOrEqual(t, m.Confidence, 0.0, "rule %s value %q", name, m.Value)
			assert.LessOrEqual(t, m.Confidence, 1.0, "rule %s value %q", name, m.Value)
		}
	}
}

func TestDetect_DedupCaseInsensitive(t *testing.T) {
	rule := model.PatternRule{
		Name:      "code",
		Pattern:   `(?i)\babc\d{4}\b`,
		ValueType: model.ValueAccount,
		Priority:  5,
	}
	text := "ABC1234 then again abc1234 and once more ABC1234"

	result := Detect(text, []model.PatternRule{rule})

	matches := result["code"]
	require.Len(t, matches, 1)
	// First occurrence wins.
	assert.Equal(t, "ABC1234", matches[0].Value)
}

func TestDetect_ValidatorDiscardsCandidate(t *testing.T) {
	// 05152024 is MMDDYYYY shaped; 984512376 is a plausible account.
	text := "ref 05152024 account 984512376"

	result := Detect(text, DefaultCatalog())

	matches := result["account-numeric"]
	require.Len(t, matches, 1)
	assert.Equal(t, "984512376", matches[0].Value)
}

func TestDetect_NoMatchesOmitsRule(t *testing.T) {
	result := Detect("nothing of interest here", DefaultCatalog())

	assert.NotContains(t, result, "email")
	assert.NotContains(t, result, "account-labeled")
}

func TestDetect_SortedByConfidence(t *testing.T) {
	// The labeled occurrence scores higher than the bare one.
	rule := model.PatternRule{
		Name:      "code",
		Pattern:   `\b[A-Z]{4}\d{4}\b`,
		ValueType: model.ValueAccount,
		Priority:  5,
	}
	text := "QQWW1111 appears early, with plenty of padding after it so labels stay clear. Account code: ZZXX2222."

	result := Detect(text, []model.PatternRule{rule})

	matches := result["code"]
	require.Len(t, matches, 2)
	assert.Equal(t, "ZZXX2222", matches[0].Value)
	assert.GreaterOrEqual(t, matches[0].Confidence, matches[1].Confidence)
}

func TestDetectWithErrors_MalformedPattern(t *testing.T) {
	rules := []model.PatternRule{
		{Name: "broken", Pattern: `([unclosed`, ValueType: model.ValueAccount, Priority: 5},
		{Name: "working", Pattern: `\b[A-Z]{4}\d{4}\b`, ValueType: model.ValueAccount, Priority: 5},
	}

	result := DetectWithErrors("code QQWW1111 here", rules)

	require.Contains(t, result.Errors, "broken")
	assert.NotContains(t, result.Matches, "broken")
	require.Contains(t, result.Matches, "working")
}

func TestDetect_ZeroWidthPatternTerminates(t *testing.T) {
	rule := model.PatternRule{
		Name:      "zero",
		Pattern:   `x*`,
		ValueType: model.ValueName,
		Priority:  1,
	}

	// Must return, not hang; empty candidates are still matches.
	result := Detect(strings.Repeat("ab", 100), []model.PatternRule{rule})
	assert.NotNil(t, result)
}

func TestDetect_ContextWindowClipped(t *testing.T) {
	text := "Account: AAQZPL1200"

	result := Detect(text, DefaultCatalog())

	matches := result["account-labeled"]
	require.Len(t, matches, 1)
	assert.LessOrEqual(t, len(matches[0].Context), len(text))
}

func TestResult_Best(t *testing.T) {
	rules := DefaultCatalog()
	result := DetectWithErrors("Account Number: AAQZPL1200 and also 990022113344", rules)

	best, ok := result.Best(rules, model.ValueAccount)
	require.True(t, ok)
	assert.Equal(t, "AAQZPL1200", best.Value)

	_, ok = result.Best(rules, model.ValueEmail)
	assert.False(t, ok)
}
