package model

// CustomerRecord is one row from an uploaded customer list. Rows are
// validated on ingestion; invalid rows are dropped and reported.
type CustomerRecord struct {
	AccountNumber string `json:"account_number"`
	Email         string `json:"email"`
	CustomerName  string `json:"customer_name"`
}

// ReconciledRecord joins an extracted segment to a customer record.
// Matched is true iff Customer came from an actual join hit; unmatched
// segments carry a placeholder customer with an empty email.
type ReconciledRecord struct {
	Segment  ExtractedSegment `json:"segment"`
	Customer CustomerRecord   `json:"customer"`
	Matched  bool             `json:"matched"`
}

// EmailTemplate is a saved subject/body pair rendered per customer.
type EmailTemplate struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
