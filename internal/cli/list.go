package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/mealfinder/internal/catalog"
	"github.com/rshade/mealfinder/internal/cli/pagination"
	"github.com/rshade/mealfinder/internal/config"
	"github.com/rshade/mealfinder/internal/engine"
)

// listParams holds the flags of the list command.
type listParams struct {
	category string
	search   string
	output   string
	paging   pagination.PaginationParams
}

// listDocument is the JSON shape printed by list --output json.
type listDocument struct {
	State       engine.ViewState          `json:"state"`
	Query       string                    `json:"query,omitempty"`
	Items       []catalog.Meal            `json:"items"`
	Suggestions []catalog.Meal            `json:"suggestions,omitempty"`
	Pagination  pagination.PaginationMeta `json:"pagination"`
}

// NewListCmd creates the non-interactive list command.
func NewListCmd() *cobra.Command {
	params := listParams{paging: *pagination.NewPaginationParams()}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of meals",
		Long: `Load the catalog, apply the search, category and sort, and print one page.

The catalog is capped at page_size x max_pages meals (160 by default).`,
		Example: `  mealfinder list
  mealfinder list --category Seafood --sort name:desc
  mealfinder list --search pie --page 2 --output ndjson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, params)
		},
	}

	addListFlags(cmd, &params)
	return cmd
}

func addListFlags(cmd *cobra.Command, params *listParams) {
	cmd.Flags().StringVar(&params.category, "category", "", "only show meals in this category (exact match)")
	cmd.Flags().StringVar(&params.search, "search", "", "only show meals whose name contains this text")
	cmd.Flags().StringVar(&params.paging.Sort, "sort", "",
		"sort expression: name, name:asc, name:desc or none")
	cmd.Flags().IntVar(&params.paging.Page, "page", pagination.DefaultPage, "page number (1-based)")
	cmd.Flags().StringVar(&params.output, "output", string(engine.OutputTable), "output format (table, json, ndjson)")
}

func (p listParams) validate() error {
	if !engine.OutputFormat(p.output).IsValid() {
		return fmt.Errorf("unsupported output format: %s", p.output)
	}
	return p.paging.Validate()
}

func runList(cmd *cobra.Command, params listParams) error {
	if err := params.validate(); err != nil {
		return err
	}
	sortMode, err := pagination.ParseSortExpression(params.paging.Sort)
	if err != nil {
		return err
	}

	ctx, cancel := withLoadTimeout(cmd.Context())
	defer cancel()

	cfg := config.GetGlobalConfig()
	display := newPlainDisplay(ctx)
	browser := newSession(cfg, display)
	defer browser.Close()

	if err := browser.Start(ctx); err != nil {
		return err
	}

	applyListParams(browser, params, sortMode)

	snap := browser.Snapshot()
	logger.Debug().Ctx(ctx).
		Str("category", snap.State.Category).
		Str("sort", snap.State.Sort.String()).
		Int("page", snap.State.Page).
		Int("total_items", snap.Slice.TotalItems).
		Msg("list rendered")

	return writeList(cmd.OutOrStdout(), engine.OutputFormat(params.output), snap, display, cfg.Browse.PageSize)
}

// applyListParams replays the flags as user actions: search, category, sort,
// then the page move.
func applyListParams(browser *engine.Browser, params listParams, sortMode engine.SortMode) {
	if params.search != "" {
		browser.Search(params.search)
	}
	if params.category != "" {
		browser.SetCategory(params.category)
	}
	if sortMode != engine.SortNone {
		browser.SetSort(sortMode)
	}
	if params.paging.Page > 1 {
		browser.RequestPageChange(params.paging.Page - 1)
	}
}

func writeList(w io.Writer, format engine.OutputFormat, snap engine.Snapshot, display *plainDisplay, pageSize int) error {
	switch format {
	case engine.OutputJSON:
		return engine.WriteJSON(w, listDocument{
			State:       snap.State,
			Query:       snap.Query,
			Items:       snap.Slice.Items,
			Suggestions: display.Suggestions(),
			Pagination:  pagination.NewPaginationMeta(snap.Slice, pageSize),
		})
	default:
		return engine.RenderSlice(w, format, snap.Slice, snap.State)
	}
}

// loadTimeout bounds non-interactive loads so pipelines never hang.
const loadTimeout = 2 * time.Minute

func withLoadTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, loadTimeout)
}
