package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// EmptyMessage is shown in place of results when a slice has no records.
const EmptyMessage = "No meals found."

// maxNameWidth truncates long names in table output.
const maxNameWidth = 48

// RenderSlice writes slice to w as a table or as NDJSON records. JSON output is
// a document built by the caller and written with WriteJSON.
func RenderSlice(w io.Writer, format OutputFormat, slice DisplaySlice, state ViewState) error {
	switch format {
	case OutputNDJSON:
		return renderSliceNDJSON(w, slice)
	case OutputTable, "":
		return renderSliceTable(w, slice, state)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func renderSliceNDJSON(w io.Writer, slice DisplaySlice) error {
	enc := json.NewEncoder(w)
	for _, m := range slice.Items {
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encoding NDJSON: %w", err)
		}
	}
	return nil
}

func renderSliceTable(w io.Writer, slice DisplaySlice, state ViewState) error {
	if slice.Empty {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tAREA")
	fmt.Fprintln(tw, "--\t----\t--------\t----")
	for _, m := range slice.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ID, truncate(m.Name, maxNameWidth), dash(m.Category), dash(m.Area))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	category := state.Category
	if category == "" {
		category = "all"
	}
	_, err := fmt.Fprintf(w, "\nPage %d of %d (%d meals, category: %s, sort: %s)\n",
		slice.CurrentPage, slice.TotalPages, slice.TotalItems, category, state.Sort.Label())
	return err
}

// RenderCategories writes one category per line.
func RenderCategories(w io.Writer, format OutputFormat, categories []string) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, categories)
	case OutputNDJSON:
		enc := json.NewEncoder(w)
		for _, c := range categories {
			if err := enc.Encode(c); err != nil {
				return err
			}
		}
		return nil
	default:
		if len(categories) == 0 {
			return nil
		}
		_, err := io.WriteString(w, strings.Join(categories, "\n")+"\n")
		return err
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
