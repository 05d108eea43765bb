package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/mealfinder/internal/config"
	"github.com/rshade/mealfinder/internal/engine"
)

// NewCategoriesCmd creates the categories command, which prints the category
// index of the loaded catalog in order of first appearance.
func NewCategoriesCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Print the categories of the loaded catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := engine.OutputFormat(output)
			if !format.IsValid() {
				return fmt.Errorf("unsupported output format: %s", output)
			}

			ctx, cancel := withLoadTimeout(cmd.Context())
			defer cancel()

			browser := newSession(config.GetGlobalConfig(), newPlainDisplay(ctx))
			defer browser.Close()

			if err := browser.Start(ctx); err != nil {
				return err
			}
			return engine.RenderCategories(cmd.OutOrStdout(), format, browser.Categories())
		},
	}

	cmd.Flags().StringVar(&output, "output", string(engine.OutputTable), "output format (table, json, ndjson)")
	return cmd
}
