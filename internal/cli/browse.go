package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/mealfinder/internal/config"
	"github.com/rshade/mealfinder/internal/tui"
)

// NewBrowseCmd creates the interactive browse command. When stdout is not a
// terminal it prints like list instead.
func NewBrowseCmd() *cobra.Command {
	params := listParams{}

	cmd := &cobra.Command{
		Use:         "browse",
		Short:       "Browse meals interactively",
		Annotations: map[string]string{annotationInteractive: "true"},
		Long: `Open the interactive browser.

Keys:
  /          search by name (suggestions appear as you type)
  esc        close search and suggestions
  up/down    choose a suggestion or a row
  enter      select the suggestion or open the meal
  left/h     previous page
  right/l    next page
  c          cycle category
  s          cycle sort
  r          retry after a load error
  q          quit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) {
				logger.Debug().Ctx(cmd.Context()).Msg("stdout is not a terminal, falling back to list output")
				return runList(cmd, params)
			}
			return runBrowse(cmd)
		},
	}

	addListFlags(cmd, &params)
	return cmd
}

func runBrowse(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	display := tui.NewDisplay()
	defer display.Close()

	browser := newSession(cfg, display)
	defer browser.Close()

	model := tui.NewBrowserModel(ctx, browser, display)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
