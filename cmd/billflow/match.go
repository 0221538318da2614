package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/billflow/billflow/internal/ingest"
	"github.com/billflow/billflow/internal/model"
	"github.com/billflow/billflow/internal/pdfsplit"
	"github.com/billflow/billflow/internal/reconcile"
)

func matchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match split statements against a customer list",
		Long: `Match previously split statement files against an uploaded customer CSV.

Every segment is classified as matched or unmatched by normalized account
number. Unmatched segments are listed with near-miss suggestions so typos
in either source can be spotted before sending.`,
		RunE: runMatch,
	}

	cmd.Flags().StringP("customers", "c", "", "Customer CSV file (required)")
	cmd.Flags().StringP("segments", "s", "segments", "Directory of split statement PDFs")
	_ = cmd.MarkFlagRequired("customers")

	_ = viper.BindPFlag("match.customers", cmd.Flags().Lookup("customers"))
	_ = viper.BindPFlag("match.segments", cmd.Flags().Lookup("segments"))

	return cmd
}

func runMatch(_ *cobra.Command, _ []string) error {
	customers, rowErrs, err := loadCustomerFile(viper.GetString("match.customers"))
	if err != nil {
		return err
	}
	reportRowErrors(rowErrs)

	segments, err := pdfsplit.SegmentsFromDir(viper.GetString("match.segments"), false)
	if err != nil {
		return err
	}

	records := reconcile.Reconcile(segments, customers)
	matched := reconcile.Matched(records)
	unmatched := reconcile.Unmatched(records)

	fmt.Printf("%d segment(s), %d customer(s): %d matched, %d unmatched\n\n",
		len(records), len(customers), len(matched), len(unmatched))

	for _, r := range matched {
		fmt.Printf("  ✓ %-20s %-25s %s\n",
			r.Segment.AccountNumber, r.Customer.CustomerName, r.Customer.Email)
	}

	if len(unmatched) > 0 {
		fmt.Println("\nUnmatched segments (will NOT be emailed):")
		for _, r := range unmatched {
			line := fmt.Sprintf("  ✗ %-20s %s", r.Segment.AccountNumber, r.Segment.CustomerName)
			if hints := reconcile.Suggestions(r.Segment.AccountNumber, customers); len(hints) > 0 {
				line += fmt.Sprintf("  (did you mean: %s?)", strings.Join(hints, ", "))
			}
			fmt.Println(line)
		}
	}

	return nil
}

func loadCustomerFile(path string) ([]model.CustomerRecord, []ingest.RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open customer file: %w", err)
	}
	defer f.Close()
	return ingest.LoadCustomers(f)
}

func reportRowErrors(rowErrs []ingest.RowError) {
	if len(rowErrs) == 0 {
		return
	}
	fmt.Printf("Skipped %d invalid customer row(s):\n", len(rowErrs))
	for _, e := range rowErrs {
		fmt.Printf("  - %s\n", e.Error())
	}
	fmt.Println()
}
