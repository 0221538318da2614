package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/billflow/billflow/internal/common"
	"github.com/billflow/billflow/internal/model"
	"github.com/billflow/billflow/internal/pattern"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage extraction pattern rules",
	}

	cmd.AddCommand(rulesListCmd())
	cmd.AddCommand(rulesAddCmd())
	cmd.AddCommand(rulesDeleteCmd())
	cmd.AddCommand(rulesTestCmd())

	return cmd
}

func rulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and custom rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			rules, err := loadRules(ctx, store)
			if err != nil {
				return err
			}

			builtin := len(pattern.DefaultCatalog())
			for i, r := range rules {
				origin := "builtin"
				if i >= builtin {
					origin = "custom"
				}
				fmt.Printf("%-18s %-9s prio %2d  [%s]  %s\n",
					r.Name, r.ValueType, r.Priority, origin, r.Description)
			}
			return nil
		},
	}
}

func rulesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Save a custom extraction rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			patternSrc, _ := cmd.Flags().GetString("pattern")
			valueType, _ := cmd.Flags().GetString("type")
			priority, _ := cmd.Flags().GetInt("priority")
			description, _ := cmd.Flags().GetString("description")

			rule := model.PatternRule{
				Name:        args[0],
				Pattern:     patternSrc,
				Description: description,
				ValueType:   model.ValueType(valueType),
				Priority:    priority,
			}

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.CreateCustomRule(ctx, &rule); err != nil {
				if errors.Is(err, common.ErrInvalidPattern) {
					return common.NewUserError("pattern does not compile", err)
				}
				return err
			}

			fmt.Printf("Saved custom rule %q\n", rule.Name)
			return nil
		},
	}

	cmd.Flags().StringP("pattern", "p", "", "Pattern source (required)")
	cmd.Flags().StringP("type", "t", "account", "Value type (account, name, address, date, currency, phone, email)")
	cmd.Flags().Int("priority", 5, "Rule priority (higher = more authoritative)")
	cmd.Flags().StringP("description", "d", "", "Rule description")
	_ = cmd.MarkFlagRequired("pattern")

	return cmd
}

func rulesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a custom rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteCustomRule(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted custom rule %q\n", args[0])
			return nil
		},
	}
}

func rulesTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test <sample.txt>",
		Short: "Try a pattern against a sample document",
		Long: `Apply a pattern to a sample text file and show every match with its
confidence. A pattern that does not compile is reported as an error for
that pattern only.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patternSrc, _ := cmd.Flags().GetString("pattern")
			valueType, _ := cmd.Flags().GetString("type")

			sample, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read sample: %w", err)
			}

			matches, err := pattern.TestPattern(patternSrc, model.ValueType(valueType), string(sample))
			if err != nil {
				return common.NewUserError("pattern error", err)
			}
			if len(matches) == 0 {
				fmt.Println("No matches.")
				return nil
			}

			for _, m := range matches {
				fmt.Printf("%-30q conf %.2f  at %d\n", m.Value, m.Confidence, m.Position)
			}
			return nil
		},
	}

	cmd.Flags().StringP("pattern", "p", "", "Pattern source (required)")
	cmd.Flags().StringP("type", "t", "account", "Value type")
	_ = cmd.MarkFlagRequired("pattern")

	return cmd
}
