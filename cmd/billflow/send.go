package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/billflow/billflow/internal/email"
	"github.com/billflow/billflow/internal/model"
	"github.com/billflow/billflow/internal/pdfsplit"
	"github.com/billflow/billflow/internal/reconcile"
)

func sendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Email matched statements to customers",
		Long: `Send each matched customer their statement as a PDF attachment.

Only segments that matched a customer record are sent. Unmatched segments
are listed and skipped; they are never emailed. Use --dry-run to render
every email without sending anything.`,
		RunE: runSend,
	}

	cmd.Flags().StringP("customers", "c", "", "Customer CSV file (required)")
	cmd.Flags().StringP("segments", "s", "segments", "Directory of split statement PDFs")
	cmd.Flags().StringP("template", "t", "", "Saved template name (default: built-in template)")
	cmd.Flags().String("from", "", "From address (default: email.from config)")
	cmd.Flags().Bool("dry-run", false, "Render emails without sending")
	_ = cmd.MarkFlagRequired("customers")

	_ = viper.BindPFlag("send.customers", cmd.Flags().Lookup("customers"))
	_ = viper.BindPFlag("send.segments", cmd.Flags().Lookup("segments"))
	_ = viper.BindPFlag("send.template", cmd.Flags().Lookup("template"))
	_ = viper.BindPFlag("email.from", cmd.Flags().Lookup("from"))
	_ = viper.BindPFlag("send.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runSend(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	dryRun := viper.GetBool("send.dry_run")

	customers, rowErrs, err := loadCustomerFile(viper.GetString("send.customers"))
	if err != nil {
		return err
	}
	reportRowErrors(rowErrs)

	segments, err := pdfsplit.SegmentsFromDir(viper.GetString("send.segments"), true)
	if err != nil {
		return err
	}

	records := reconcile.Reconcile(segments, customers)
	unmatched := reconcile.Unmatched(records)
	for _, r := range unmatched {
		fmt.Printf("Skipping unmatched segment %s (%s)\n",
			r.Segment.AccountNumber, r.Segment.CustomerName)
	}

	matched := reconcile.Matched(records)
	if len(matched) == 0 {
		return fmt.Errorf("nothing to send: no segments matched a customer record")
	}

	tmpl, err := resolveTemplate(cmd)
	if err != nil {
		return err
	}

	sender := email.NewSender(
		viper.GetString("email.api_key"),
		viper.GetString("email.from"),
		dryRun)

	label := "sending"
	if dryRun {
		label = "rendering"
	}
	bar := progressbar.Default(int64(len(matched)), label)

	sent, failed := 0, 0
	for _, record := range matched {
		deliveries := sender.SendMatched(ctx, []model.ReconciledRecord{record}, tmpl)
		for _, d := range deliveries {
			switch {
			case d.Err != nil:
				failed++
			case d.Sent:
				sent++
			}
		}
		_ = bar.Add(1)
	}

	if dryRun {
		fmt.Printf("\nDry run: %d email(s) rendered, %d unmatched skipped\n", len(matched), len(unmatched))
		return nil
	}
	fmt.Printf("\nSent %d email(s), %d failed, %d unmatched skipped\n", sent, failed, len(unmatched))
	if failed > 0 {
		return fmt.Errorf("%d email(s) failed to send", failed)
	}
	return nil
}

// resolveTemplate loads the named saved template, or the built-in default.
func resolveTemplate(cmd *cobra.Command) (model.EmailTemplate, error) {
	name := viper.GetString("send.template")
	if name == "" {
		return email.DefaultTemplate(), nil
	}

	store, err := openStorage(cmd.Context())
	if err != nil {
		return model.EmailTemplate{}, err
	}
	defer store.Close()

	tmpl, err := store.GetTemplate(cmd.Context(), name)
	if err != nil {
		return model.EmailTemplate{}, err
	}
	return *tmpl, nil
}
