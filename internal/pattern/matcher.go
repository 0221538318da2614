package pattern

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/billflow/billflow/internal/common"
	"github.com/billflow/billflow/internal/model"
)

const contextWindow = 50

// labelVocabulary boosts confidence when a match sits near wording that
// usually labels the field on a statement.
var labelVocabulary = []string{"name", "account", "number", "customer", "bill", "to", "holder"}

// strictAccountShape is the LETTERS+DIGITS form that earns the account bonus.
var strictAccountShape = regexp.MustCompile(`^[A-Za-z]+\d+$`)

// Result holds the outcome of one detection pass. Rules with zero surviving
// matches contribute no entry to Matches; rules whose pattern failed to
// compile are recorded in Errors and do not abort the other rules.
type Result struct {
	Matches map[string][]model.PatternMatch
	Errors  map[string]error
}

// Detect applies every rule to the text and returns, per rule name, a
// deduplicated list of matches sorted by descending confidence. Each call
// compiles and applies patterns from the start of the text; no matcher
// state survives between invocations.
func Detect(text string, rules []model.PatternRule) map[string][]model.PatternMatch {
	return DetectWithErrors(text, rules).Matches
}

// DetectWithErrors is Detect plus per-rule pattern errors for the rule
// testing path.
func DetectWithErrors(text string, rules []model.PatternRule) Result {
	result := Result{
		Matches: make(map[string][]model.PatternMatch),
		Errors:  make(map[string]error),
	}

	for _, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			result.Errors[rule.Name] = fmt.Errorf("%w: %v", common.ErrInvalidPattern, err)
			continue
		}

		matches := applyRule(text, rule, re)
		if len(matches) > 0 {
			result.Matches[rule.Name] = matches
		}
	}

	return result
}

// applyRule runs one compiled rule over the text, gating candidates through
// the rule's validator and scoring the survivors.
func applyRule(text string, rule model.PatternRule, re *regexp.Regexp) []model.PatternMatch {
	// FindAll advances past empty matches internally, so a zero-width
	// pattern cannot loop forever.
	locs := re.FindAllStringSubmatchIndex(text, -1)
	if locs == nil {
		return nil
	}

	matches := make([]model.PatternMatch, 0, len(locs))
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		candidate := text[start:end]
		if re.NumSubexp() > 0 && len(loc) >= 4 && loc[2] >= 0 {
			candidate = text[loc[2]:loc[3]]
			start = loc[2]
		}

		if rule.Validator != nil && !rule.Validator.Validate(candidate) {
			continue
		}

		ctx := contextAround(text, loc[0], loc[1])
		matches = append(matches, model.PatternMatch{
			Value:      candidate,
			Position:   start,
			Confidence: score(rule, candidate, ctx),
			Context:    ctx,
		})
	}

	matches = dedupeMatches(matches)

	// Stable sort keeps source order among equal confidences.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})

	return matches
}

// contextAround returns the trimmed text surrounding a match span.
func contextAround(text string, start, end int) string {
	lo := start - contextWindow
	if lo < 0 {
		lo = 0
	}
	hi := end + contextWindow
	if hi > len(text) {
		hi = len(text)
	}
	return strings.TrimSpace(text[lo:hi])
}

// score computes the heuristic confidence for one candidate, clamped to [0,1].
func score(rule model.PatternRule, candidate, context string) float64 {
	conf := 0.5
	conf += float64(rule.Priority) / 10 * 0.3

	lower := strings.ToLower(context)
	for _, label := range labelVocabulary {
		if strings.Contains(lower, label) {
			conf += 0.2
			break
		}
	}

	if rule.ValueType == model.ValueAccount && strictAccountShape.MatchString(candidate) {
		conf += 0.1
	}

	if len(candidate) < 3 || len(candidate) > 50 {
		conf -= 0.2
	}

	if conf < 0 {
		return 0
	}
	if conf > 1 {
		return 1
	}
	return conf
}

// dedupeMatches drops case-insensitive duplicate values, keeping the first
// occurrence in source order.
func dedupeMatches(matches []model.PatternMatch) []model.PatternMatch {
	seen := make(map[string]bool, len(matches))
	out := matches[:0]
	for _, m := range matches {
		key := strings.ToLower(m.Value)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

// Best returns the highest-confidence match for a value type across all
// rules in the result, or false when nothing of that type matched.
func (r Result) Best(rules []model.PatternRule, vt model.ValueType) (model.PatternMatch, bool) {
	var best model.PatternMatch
	found := false
	for _, rule := range rules {
		if rule.ValueType != vt {
			continue
		}
		for _, m := range r.Matches[rule.Name] {
			if !found || m.Confidence > best.Confidence {
				best = m
				found = true
			}
		}
	}
	return best, found
}
