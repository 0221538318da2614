package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billflow/billflow/internal/model"
)

func matchedRecord(account, name, email string) model.ReconciledRecord {
	return model.ReconciledRecord{
		Segment: model.ExtractedSegment{
			AccountNumber: account,
			CustomerName:  name,
			StatementDate: "May 12, 2025",
		},
		Customer: model.CustomerRecord{
			AccountNumber: account,
			CustomerName:  name,
			Email:         email,
		},
		Matched: true,
	}
}

func TestRender_DefaultTemplate(t *testing.T) {
	record := matchedRecord("FBNWSTX123456", "John Smith", "john@example.com")

	subject, body, err := Render(DefaultTemplate(), record)
	require.NoError(t, err)

	assert.Equal(t, "Your statement for account FBNWSTX123456", subject)
	assert.Contains(t, body, "Hello John Smith,")
	assert.Contains(t, body, "FBNWSTX123456")
}

func TestRender_StatementDate(t *testing.T) {
	tmpl := model.EmailTemplate{
		Subject: "Statement {{.StatementDate}}",
		Body:    "{{.CustomerName}}",
	}

	subject, body, err := Render(tmpl, matchedRecord("A1", "Alice Brown", "a@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "Statement May 12, 2025", subject)
	assert.Equal(t, "Alice Brown", body)
}

func TestRender_InvalidTemplate(t *testing.T) {
	tmpl := model.EmailTemplate{Subject: "{{.Broken", Body: "ok"}

	_, _, err := Render(tmpl, matchedRecord("A1", "Alice Brown", "a@example.com"))
	assert.Error(t, err)
}

func TestSendMatched_DryRun(t *testing.T) {
	records := []model.ReconciledRecord{
		matchedRecord("A1", "Alice Brown", "a@example.com"),
		{
			Segment:  model.ExtractedSegment{AccountNumber: "ZZZ999"},
			Customer: model.CustomerRecord{AccountNumber: "ZZZ999"},
			Matched:  false,
		},
		matchedRecord("B2", "Bob Leeds", "b@example.com"),
	}

	s := NewSender("", "billing@example.com", false)
	deliveries := s.SendMatched(context.Background(), records, DefaultTemplate())

	// Unmatched records are skipped, and dry-run never marks anything sent.
	require.Len(t, deliveries, 2)
	for _, d := range deliveries {
		assert.NoError(t, d.Err)
		assert.False(t, d.Sent)
		assert.NotEmpty(t, d.Subject)
		assert.NotEmpty(t, d.Body)
	}
	assert.Equal(t, "A1", deliveries[0].Record.Customer.AccountNumber)
	assert.Equal(t, "B2", deliveries[1].Record.Customer.AccountNumber)
}

func TestSendMatched_RenderErrorCollected(t *testing.T) {
	tmpl := model.EmailTemplate{Subject: "{{.Broken", Body: "ok"}
	records := []model.ReconciledRecord{matchedRecord("A1", "Alice Brown", "a@example.com")}

	s := NewSender("", "billing@example.com", true)
	deliveries := s.SendMatched(context.Background(), records, tmpl)

	require.Len(t, deliveries, 1)
	assert.Error(t, deliveries[0].Err)
	assert.False(t, deliveries[0].Sent)
}
