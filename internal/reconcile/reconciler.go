// Package reconcile joins extracted statement segments to uploaded customer
// records by normalized account number.
package reconcile

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/billflow/billflow/internal/model"
)

// NormalizeKey folds case and trims whitespace so that human-entered
// account numbers from both sources join reliably.
func NormalizeKey(accountNumber string) string {
	return strings.ToLower(strings.TrimSpace(accountNumber))
}

// Reconcile classifies every segment as matched or unmatched against the
// customer list. Duplicate customer keys resolve last-write-wins, in input
// order. Unmatched segments are never dropped: they come back carrying a
// placeholder customer with an empty email and the segment's own best-guess
// name, so callers can report them. The operation is deterministic and has
// no side effects; re-running it on changed input is always safe.
func Reconcile(segments []model.ExtractedSegment, customers []model.CustomerRecord) []model.ReconciledRecord {
	lookup := make(map[string]model.CustomerRecord, len(customers))
	for _, c := range customers {
		lookup[NormalizeKey(c.AccountNumber)] = c
	}

	records := make([]model.ReconciledRecord, 0, len(segments))
	for _, seg := range segments {
		customer, ok := lookup[NormalizeKey(seg.AccountNumber)]
		if !ok {
			customer = model.CustomerRecord{
				AccountNumber: seg.AccountNumber,
				Email:         "",
				CustomerName:  seg.CustomerName,
			}
		}
		records = append(records, model.ReconciledRecord{
			Segment:  seg,
			Customer: customer,
			Matched:  ok,
		})
	}

	return records
}

// Matched filters a reconciliation result down to the records that hit a
// real customer row. Only these are eligible for email delivery.
func Matched(records []model.ReconciledRecord) []model.ReconciledRecord {
	var out []model.ReconciledRecord
	for _, r := range records {
		if r.Matched {
			out = append(out, r)
		}
	}
	return out
}

// Unmatched returns the records that found no customer. These are surfaced
// to the operator, never silently sent.
func Unmatched(records []model.ReconciledRecord) []model.ReconciledRecord {
	var out []model.ReconciledRecord
	for _, r := range records {
		if !r.Matched {
			out = append(out, r)
		}
	}
	return out
}

const maxSuggestions = 3

// Suggestions ranks customer account numbers that nearly match an
// unmatched segment's account. Purely advisory: it helps an operator spot
// a typo'd key but never changes the match outcome.
func Suggestions(accountNumber string, customers []model.CustomerRecord) []string {
	targets := make([]string, 0, len(customers))
	for _, c := range customers {
		targets = append(targets, c.AccountNumber)
	}

	ranks := fuzzy.RankFindNormalizedFold(strings.TrimSpace(accountNumber), targets)
	sort.Sort(ranks)

	out := make([]string, 0, maxSuggestions)
	for _, r := range ranks {
		out = append(out, r.Target)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
