package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one row. selected is true for the row under the cursor.
type RenderFunc[T any] func(item T, selected bool) string

// VirtualListModel is a cursor over items that renders a window of at most
// height rows around the selection.
type VirtualListModel[T any] struct {
	items      []T
	renderFunc RenderFunc[T]
	emptyText  string

	selected int
	offset   int
	height   int
	width    int
}

// NewVirtualListModel creates a list showing height rows of items.
func NewVirtualListModel[T any](items []T, height, width int, renderFunc RenderFunc[T]) *VirtualListModel[T] {
	m := &VirtualListModel[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     max(height, 1),
		width:      width,
	}
	m.scroll()
	return m
}

// WithEmptyText sets the text rendered when there are no items.
func (m *VirtualListModel[T]) WithEmptyText(text string) *VirtualListModel[T] {
	m.emptyText = text
	return m
}

// Init implements tea.Model.
func (m *VirtualListModel[T]) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys and resizes.
func (m *VirtualListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.scroll()
	}
	return m, nil
}

func (m *VirtualListModel[T]) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		m.SetSelected(m.selected - 1)
	case "down", "j":
		m.SetSelected(m.selected + 1)
	case "home":
		m.SetSelected(0)
	case "end":
		m.SetSelected(len(m.items) - 1)
	}
}

// scroll moves the window so the selection stays visible.
func (m *VirtualListModel[T]) scroll() {
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.height {
		m.offset = m.selected - m.height + 1
	}
	maxOffset := max(len(m.items)-m.height, 0)
	m.offset = min(max(m.offset, 0), maxOffset)
}

// View renders the visible rows.
func (m *VirtualListModel[T]) View() string {
	if len(m.items) == 0 {
		return m.emptyText
	}

	end := min(m.offset+m.height, len(m.items))
	rows := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(rows, "\n")
}

// SetItems replaces the items and resets the cursor to the first row.
func (m *VirtualListModel[T]) SetItems(items []T) {
	m.items = items
	m.selected = 0
	m.offset = 0
	m.scroll()
}

// SetHeight changes the number of visible rows.
func (m *VirtualListModel[T]) SetHeight(height int) {
	m.height = max(height, 1)
	m.scroll()
}

// ItemCount returns the number of items.
func (m *VirtualListModel[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the cursor index.
func (m *VirtualListModel[T]) Selected() int {
	return m.selected
}

// SetSelected moves the cursor, capped to valid bounds.
func (m *VirtualListModel[T]) SetSelected(index int) {
	if len(m.items) == 0 {
		m.selected = 0
		return
	}
	m.selected = min(max(index, 0), len(m.items)-1)
	m.scroll()
}

// Offset returns the index of the first visible row.
func (m *VirtualListModel[T]) Offset() int {
	return m.offset
}

// Height returns the viewport height.
func (m *VirtualListModel[T]) Height() int {
	return m.height
}

// Width returns the viewport width.
func (m *VirtualListModel[T]) Width() int {
	return m.width
}

// GetSelectedItem returns the item under the cursor, or nil if the list is empty.
func (m *VirtualListModel[T]) GetSelectedItem() *T {
	if len(m.items) == 0 {
		return nil
	}
	return &m.items[m.selected]
}
