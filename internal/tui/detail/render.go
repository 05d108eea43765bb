package detail

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/mealfinder/internal/catalog"
)

const (
	// minWrapWidth is the narrowest width instructions are wrapped to.
	minWrapWidth = 20
	// framePadding accounts for the border and padding of the box.
	framePadding = 4
	// labelWidth aligns field values.
	labelWidth = 11
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(labelWidth)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// Render returns the detail view of meal for a terminal of the given width.
func Render(meal catalog.Meal, width int) string {
	inner := max(width-framePadding, minWrapWidth)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(meal.Name))
	sb.WriteString("\n\n")

	field(&sb, "ID", meal.ID)
	field(&sb, "Category", meal.Category)
	field(&sb, "Area", meal.Area)
	field(&sb, "Tags", strings.Join(meal.Tags, ", "))
	field(&sb, "Source", meal.SourceURL)
	field(&sb, "Video", meal.VideoURL)
	field(&sb, "Image", meal.ThumbnailURL)

	sb.WriteString("\n")
	if strings.TrimSpace(meal.Instructions) == "" {
		sb.WriteString(mutedStyle.Render("No instructions available."))
	} else {
		sb.WriteString(lipgloss.NewStyle().Width(inner-2).Render(strings.TrimSpace(meal.Instructions)))
	}

	return boxStyle.Width(inner).Render(sb.String())
}

func field(sb *strings.Builder, label, value string) {
	if value == "" {
		value = "-"
	}
	sb.WriteString(labelStyle.Render(label + ":"))
	sb.WriteString(valueStyle.Render(value))
	sb.WriteString("\n")
}
