package pattern

import (
	"fmt"
	"sort"
	"strings"

	"github.com/billflow/billflow/internal/model"
)

const maxDiscoveryExamples = 5

// Discover analyzes one sample document and proposes generalized patterns,
// one per value type that produced matches. The proposals are review
// material for a human operator; nothing is promoted into the catalog
// automatically.
func Discover(text string, rules []model.PatternRule) []model.DiscoveredPattern {
	result := DetectWithErrors(text, rules)

	type bucket struct {
		examples   []string
		seen       map[string]bool
		confidence float64
		frequency  int
	}
	buckets := make(map[model.ValueType]*bucket)

	for _, rule := range rules {
		matches := result.Matches[rule.Name]
		if len(matches) == 0 {
			continue
		}
		b := buckets[rule.ValueType]
		if b == nil {
			b = &bucket{seen: make(map[string]bool)}
			buckets[rule.ValueType] = b
		}
		for _, m := range matches {
			b.frequency++
			b.confidence += m.Confidence
			key := strings.ToLower(m.Value)
			if len(b.examples) < maxDiscoveryExamples && !b.seen[key] {
				b.seen[key] = true
				b.examples = append(b.examples, m.Value)
			}
		}
	}

	discovered := make([]model.DiscoveredPattern, 0, len(buckets))
	for vt, b := range buckets {
		src, err := Synthesize(b.examples, vt)
		if err != nil {
			continue
		}
		discovered = append(discovered, model.DiscoveredPattern{
			ValueType:   vt,
			Pattern:     src,
			Description: fmt.Sprintf("Discovered %s pattern (%d occurrences)", vt, b.frequency),
			Examples:    b.examples,
			Confidence:  b.confidence / float64(b.frequency),
			Frequency:   b.frequency,
		})
	}

	sort.SliceStable(discovered, func(i, j int) bool {
		if discovered[i].Frequency != discovered[j].Frequency {
			return discovered[i].Frequency > discovered[j].Frequency
		}
		return discovered[i].ValueType < discovered[j].ValueType
	})

	return discovered
}

// TestPattern applies a user-supplied pattern source to sample text. A
// malformed pattern comes back as a recoverable error rather than a panic,
// so one bad rule never aborts evaluation of the rest.
func TestPattern(patternSrc string, vt model.ValueType, sample string) ([]model.PatternMatch, error) {
	rule := model.PatternRule{
		Name:      "tester",
		Pattern:   patternSrc,
		ValueType: vt,
		Priority:  5,
	}
	result := DetectWithErrors(sample, []model.PatternRule{rule})
	if err := result.Errors[rule.Name]; err != nil {
		return nil, err
	}
	return result.Matches[rule.Name], nil
}
