// Package engine decides which pages of a statement document belong to
// which customer account, using the pattern matcher on per-page text and
// falling back to filename parsing when a document yields no signal.
package engine

import (
	"log/slog"

	"github.com/billflow/billflow/internal/filename"
	"github.com/billflow/billflow/internal/model"
	"github.com/billflow/billflow/internal/pattern"
	"github.com/billflow/billflow/internal/reconcile"
)

// Page is one page of extracted plain text, supplied by the external
// text-extraction collaborator. Number is 1-indexed.
type Page struct {
	Text   string
	Number int
}

// minAccountConfidence is the score below which a page's account candidate
// is treated as noise rather than a segment boundary.
const minAccountConfidence = 0.6

// Segmenter groups pages into account-labeled segments.
type Segmenter struct {
	rules []model.PatternRule
}

// NewSegmenter creates a segmenter using the given rule set.
func NewSegmenter(rules []model.PatternRule) *Segmenter {
	return &Segmenter{rules: rules}
}

// Segment walks the pages in order, opening a new segment whenever the
// top account candidate changes. Pages with no confident account join the
// segment in force: a continuation page belongs to the account that opened
// it. When no page in the document produces an account, the whole document
// becomes one segment labeled from the filename.
func (s *Segmenter) Segment(pages []Page, sourceName string) []model.ExtractedSegment {
	if len(pages) == 0 {
		return nil
	}

	fallback := filename.Parse(sourceName)

	var segments []model.ExtractedSegment
	var current *model.ExtractedSegment

	for _, page := range pages {
		result := pattern.DetectWithErrors(page.Text, s.rules)

		account, ok := result.Best(s.rules, model.ValueAccount)
		if ok && account.Confidence >= minAccountConfidence {
			if current == nil || reconcile.NormalizeKey(account.Value) != reconcile.NormalizeKey(current.AccountNumber) {
				if current != nil {
					segments = append(segments, *current)
				}
				current = &model.ExtractedSegment{
					AccountNumber:  account.Value,
					CustomerName:   fallback.CustomerName,
					SourceFileName: sourceName,
					StartPage:      page.Number,
					EndPage:        page.Number,
				}
			}
		}

		if current == nil {
			// Leading pages before the first account signal: hold them
			// for the filename-labeled segment below.
			current = &model.ExtractedSegment{
				AccountNumber:  fallback.AccountNumber,
				CustomerName:   fallback.CustomerName,
				SourceFileName: sourceName,
				StartPage:      page.Number,
				EndPage:        page.Number,
			}
		}
		current.EndPage = page.Number

		if name, ok := result.Best(s.rules, model.ValueName); ok {
			if current.CustomerName == fallback.CustomerName || current.CustomerName == model.UnknownField {
				current.CustomerName = name.Value
			}
		}
		if date, ok := result.Best(s.rules, model.ValueDate); ok && current.StatementDate == "" {
			current.StatementDate = date.Value
		}
	}

	if current != nil {
		segments = append(segments, *current)
	}

	slog.Debug("segmented document",
		"source", sourceName,
		"pages", len(pages),
		"segments", len(segments))

	return segments
}
