// Package pdfsplit re-assembles page runs from source statements into
// standalone PDF files, one per extracted segment.
package pdfsplit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/billflow/billflow/internal/model"
)

// PageCount returns the number of pages in a PDF payload.
func PageCount(data []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return count, nil
}

// SegmentBytes extracts the segment's page run from the source PDF and
// returns it as a standalone PDF payload.
func SegmentBytes(source []byte, seg model.ExtractedSegment) ([]byte, error) {
	start, end := seg.PageRange()
	if start < 1 || end < start {
		return nil, fmt.Errorf("invalid page range %d-%d", start, end)
	}

	var buf bytes.Buffer
	pages := []string{fmt.Sprintf("%d-%d", start, end)}
	if err := api.Trim(bytes.NewReader(source), &buf, pages, nil); err != nil {
		return nil, fmt.Errorf("failed to extract pages %d-%d: %w", start, end, err)
	}
	return buf.Bytes(), nil
}

// WriteSegment materializes a segment into dir using the deterministic
// output naming scheme and returns the written path. The segment must
// already carry its Content payload.
func WriteSegment(seg model.ExtractedSegment, dir string) (string, error) {
	if len(seg.Content) == 0 {
		return "", fmt.Errorf("segment %s has no content", seg.AccountNumber)
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	out := filepath.Join(dir, OutputName(seg))
	if err := os.WriteFile(out, seg.Content, 0640); err != nil {
		return "", fmt.Errorf("failed to write segment: %w", err)
	}
	return out, nil
}

// statementDateLayouts are the shapes the matcher's date rules produce.
var statementDateLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
	"1-2-06",
}

// OutputName builds the deterministic output filename
// {accountNumber}_{customerName}_{monthYear}.pdf, dropping the month-year
// part when the segment carries no parseable statement date.
func OutputName(seg model.ExtractedSegment) string {
	parts := []string{sanitize(seg.AccountNumber), sanitize(seg.CustomerName)}
	if my := monthYear(seg.StatementDate); my != "" {
		parts = append(parts, my)
	}
	return strings.Join(parts, "_") + ".pdf"
}

func monthYear(date string) string {
	if date == "" {
		return ""
	}
	for _, layout := range statementDateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("January 2006")
		}
	}
	return ""
}

var hostileChars = regexp.MustCompile(`[\\/:*?"<>|[:cntrl:]]+`)

// sanitize strips path-hostile characters from a name component.
func sanitize(s string) string {
	s = hostileChars.ReplaceAllString(s, "-")
	s = strings.TrimSpace(s)
	if s == "" {
		return model.UnknownField
	}
	return s
}
