package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/billflow/billflow/internal/model"
)

func templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage saved email templates",
	}

	cmd.AddCommand(templatesListCmd())
	cmd.AddCommand(templatesSaveCmd())

	return cmd
}

func templatesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			templates, err := store.ListTemplates(ctx)
			if err != nil {
				return err
			}
			if len(templates) == 0 {
				fmt.Println("No saved templates. The built-in default is used when none is selected.")
				return nil
			}
			for _, t := range templates {
				fmt.Printf("%-20s %s\n", t.Name, t.Subject)
			}
			return nil
		},
	}
}

func templatesSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save or update a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			subject, _ := cmd.Flags().GetString("subject")
			bodyFile, _ := cmd.Flags().GetString("body-file")

			body, err := os.ReadFile(bodyFile)
			if err != nil {
				return fmt.Errorf("failed to read body file: %w", err)
			}

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			tmpl := model.EmailTemplate{
				Name:    args[0],
				Subject: subject,
				Body:    string(body),
			}
			if err := store.SaveTemplate(ctx, tmpl); err != nil {
				return err
			}

			fmt.Printf("Saved template %q\n", tmpl.Name)
			return nil
		},
	}

	cmd.Flags().String("subject", "", "Subject line template (required)")
	cmd.Flags().String("body-file", "", "File containing the body template (required)")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("body-file")

	return cmd
}
