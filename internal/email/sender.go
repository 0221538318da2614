// Package email delivers matched statements to customers through the
// Resend HTTP API.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/resend/resend-go/v2"

	"github.com/billflow/billflow/internal/model"
	"github.com/billflow/billflow/internal/pdfsplit"
)

// Sender sends rendered statement emails one at a time. A nil API key
// leaves the sender in dry-run mode: everything renders, nothing is sent.
type Sender struct {
	client *resend.Client
	from   string
	dryRun bool
}

// NewSender creates a sender. An empty apiKey forces dry-run.
func NewSender(apiKey, from string, dryRun bool) *Sender {
	var client *resend.Client
	if apiKey != "" {
		client = resend.NewClient(apiKey)
	} else {
		dryRun = true
	}
	return &Sender{client: client, from: from, dryRun: dryRun}
}

// Delivery is the per-record outcome of a send pass.
type Delivery struct {
	Err     error
	Record  model.ReconciledRecord
	Subject string
	Body    string
	Sent    bool
}

// templateData is what a saved template can reference.
type templateData struct {
	CustomerName  string
	AccountNumber string
	StatementDate string
}

// SendMatched renders and sends one email per matched record, sequentially.
// Unmatched records are skipped here and must be surfaced to the operator
// by the caller; they are never silently sent. Failures are collected per
// record so one bounce does not abort the batch.
func (s *Sender) SendMatched(ctx context.Context, records []model.ReconciledRecord, tmpl model.EmailTemplate) []Delivery {
	deliveries := make([]Delivery, 0, len(records))

	for _, record := range records {
		if !record.Matched {
			continue
		}

		d := Delivery{Record: record}
		d.Subject, d.Body, d.Err = Render(tmpl, record)
		if d.Err == nil && !s.dryRun {
			d.Err = s.sendOne(ctx, record, d.Subject, d.Body)
			d.Sent = d.Err == nil
		}

		if d.Err != nil {
			slog.Error("failed to deliver statement",
				"account", record.Customer.AccountNumber,
				"error", d.Err)
		}
		deliveries = append(deliveries, d)
	}

	return deliveries
}

// Render fills the template's subject and body for one record.
func Render(tmpl model.EmailTemplate, record model.ReconciledRecord) (subject, body string, err error) {
	data := templateData{
		CustomerName:  record.Customer.CustomerName,
		AccountNumber: record.Customer.AccountNumber,
		StatementDate: record.Segment.StatementDate,
	}

	subject, err = renderOne("subject", tmpl.Subject, data)
	if err != nil {
		return "", "", err
	}
	body, err = renderOne("body", tmpl.Body, data)
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}

func renderOne(name, src string, data templateData) (string, error) {
	t, err := template.New(name).Parse(src)
	if err != nil {
		return "", fmt.Errorf("invalid %s template: %w", name, err)
	}
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return b.String(), nil
}

func (s *Sender) sendOne(ctx context.Context, record model.ReconciledRecord, subject, body string) error {
	req := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{record.Customer.Email},
		Subject: subject,
		Text:    body,
	}
	if len(record.Segment.Content) > 0 {
		req.Attachments = []*resend.Attachment{{
			Filename: pdfsplit.OutputName(record.Segment),
			Content:  record.Segment.Content,
		}}
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// DefaultTemplate is used when no saved template is selected.
func DefaultTemplate() model.EmailTemplate {
	return model.EmailTemplate{
		Name:    "default",
		Subject: "Your statement for account {{.AccountNumber}}",
		Body: "Hello {{.CustomerName}},\n\n" +
			"Your latest statement for account {{.AccountNumber}} is attached.\n\n" +
			"Thank you.\n",
	}
}
