package model

// UnknownField is the sentinel used when no parsing strategy yields a
// confident answer. Downstream reconciliation depends on both filename
// fields being non-empty, so parsing is total and never fails.
const UnknownField = "Unknown"

// FilenameParseResult is the best-guess decomposition of a statement filename.
type FilenameParseResult struct {
	AccountNumber string `json:"account_number"`
	CustomerName  string `json:"customer_name"`
}

// ExtractedSegment is one physical unit of a source document (a page or a
// contiguous page run) attributed to a single account. Content holds the
// segment bytes when the export collaborator has produced them.
type ExtractedSegment struct {
	AccountNumber  string `json:"account_number"`
	CustomerName   string `json:"customer_name"`
	SourceFileName string `json:"source_file_name"`
	StatementDate  string `json:"statement_date,omitempty"`
	Content        []byte `json:"-"`
	StartPage      int    `json:"start_page"`
	EndPage        int    `json:"end_page"`
}

// PageRange returns the 1-indexed inclusive page run this segment covers.
func (s ExtractedSegment) PageRange() (int, int) {
	return s.StartPage, s.EndPage
}
