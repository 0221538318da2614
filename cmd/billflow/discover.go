package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/billflow/billflow/internal/model"
	"github.com/billflow/billflow/internal/pattern"
	"github.com/billflow/billflow/internal/tui"
)

func discoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover <sample.txt>",
		Short: "Propose extraction patterns from a sample document",
		Long: `Analyze one sample document, propose generalized patterns for the field
types it contains, and review them interactively. Accepted patterns are
saved as custom rules; rejected ones are discarded.

Use --plain to print the proposals without the interactive review (for
scripts or terminals without TTY support).`,
		Args: cobra.ExactArgs(1),
		RunE: runDiscover,
	}

	cmd.Flags().Bool("plain", false, "Print proposals without the interactive review")

	return cmd
}

func runDiscover(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	plain, _ := cmd.Flags().GetBool("plain")

	sample, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read sample: %w", err)
	}

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	rules, err := loadRules(ctx, store)
	if err != nil {
		return err
	}

	discovered := pattern.Discover(string(sample), rules)
	if len(discovered) == 0 {
		fmt.Println("No patterns discovered.")
		return nil
	}

	if plain {
		for _, d := range discovered {
			fmt.Printf("%s  (conf %.2f, %d occurrence(s))\n", d.ValueType, d.Confidence, d.Frequency)
			fmt.Printf("  pattern:  %s\n", d.Pattern)
			fmt.Printf("  examples: %s\n\n", strings.Join(d.Examples, ", "))
		}
		fmt.Println(`Run without --plain to review and promote, or save one directly with "billflow rules add".`)
		return nil
	}

	taken := make([]string, 0, len(rules))
	for _, r := range rules {
		taken = append(taken, r.Name)
	}

	promotions, err := tui.RunReview(ctx, discovered, taken)
	if err != nil {
		return err
	}
	if len(promotions) == 0 {
		fmt.Println("Nothing promoted.")
		return nil
	}

	for _, p := range promotions {
		rule := model.PatternRule{
			Name:        p.Name,
			Pattern:     p.Pattern.Pattern,
			Description: p.Pattern.Description,
			ValueType:   p.Pattern.ValueType,
			Priority:    promotedPriority(p.Pattern.Confidence),
		}
		if err := store.CreateCustomRule(ctx, &rule); err != nil {
			return fmt.Errorf("failed to save rule %q: %w", p.Name, err)
		}
		fmt.Printf("Saved custom rule %q (priority %d)\n", rule.Name, rule.Priority)
	}

	return nil
}

// promotedPriority derives a rule priority from the discovery confidence,
// clamped to the catalog's working range.
func promotedPriority(confidence float64) int {
	priority := int(confidence * 10)
	if priority < 1 {
		return 1
	}
	if priority > 10 {
		return 10
	}
	return priority
}
