package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/mealfinder/internal/catalog"
	"github.com/rshade/mealfinder/internal/engine"
	"github.com/rshade/mealfinder/internal/tui/detail"
	listview "github.com/rshade/mealfinder/internal/tui/list"
)

const (
	// browserChromeHeight is the number of lines used around the result rows.
	browserChromeHeight = 12

	// Row column widths.
	colWidthName     = 44
	colWidthCategory = 16
	colWidthArea     = 14
)

// Session is the browsing session driven by the model.
type Session interface {
	Start(ctx context.Context) error
	Retry(ctx context.Context) error
	RequestPageChange(delta int) bool
	CycleCategory() string
	CycleSort() engine.SortMode
	OnSearchInput(raw string)
	SelectSuggestion(id string) bool
	DismissSuggestions()
}

// startDoneMsg reports the end of a Start or Retry call.
type startDoneMsg struct {
	err error
}

// BrowserModel is the Bubble Tea model for interactive browsing. Results
// arrive only through the Display frames; key presses are forwarded to the
// Session.
type BrowserModel struct {
	ctx     context.Context
	session Session
	display *Display

	// View state
	state       ViewState
	slice       engine.DisplaySlice
	category    string
	sortMode    engine.SortMode
	suggestions []catalog.Meal
	suggestion  int
	selected    *catalog.Meal

	// Interactive components
	list        *listview.VirtualListModel[catalog.Meal]
	searchInput textinput.Model
	searching   bool

	// Display configuration
	width  int
	height int

	// Loading state
	loading *LoadingState

	// Error handling
	err error
}

// NewBrowserModel creates a model that starts the session on Init.
func NewBrowserModel(ctx context.Context, session Session, display *Display) *BrowserModel {
	m := &BrowserModel{
		ctx:         ctx,
		session:     session,
		display:     display,
		state:       ViewStateLoading,
		sortMode:    engine.SortNone,
		searchInput: newSearchInput(),
		loading:     NewLoadingState(),
		width:       defaultWidth,
		height:      defaultHeight,
	}
	m.list = listview.NewVirtualListModel([]catalog.Meal{}, m.listHeight(), m.width, renderMealRow).
		WithEmptyText(MutedStyle.Render(engine.EmptyMessage))
	return m
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search meals by name..."
	ti.CharLimit = searchInputCharLimit
	ti.Width = searchInputWidth
	return ti
}

// State returns the current view state.
func (m *BrowserModel) State() ViewState {
	return m.state
}

// Err returns the last load error.
func (m *BrowserModel) Err() error {
	return m.err
}

// Init starts the spinner, the frame listener and the catalog load.
func (m *BrowserModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.display.Listen(), m.startCmd(false))
}

func (m *BrowserModel) startCmd(retry bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if retry {
			err = m.session.Retry(m.ctx)
		} else {
			err = m.session.Start(m.ctx)
		}
		return startDoneMsg{err: err}
	}
}

// Update handles messages and updates the model state.
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetHeight(m.listHeight())
		return m, nil
	case framesMsg:
		return m, m.applyFrames(msg)
	case displayClosedMsg:
		return m, nil
	case startDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = ViewStateError
		}
		return m, nil
	case spinner.TickMsg:
		if m.state == ViewStateLoading {
			return m, m.loading.Update(msg)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// applyFrames applies queued display frames in order and re-arms the listener.
func (m *BrowserModel) applyFrames(frames framesMsg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(frames)+1)
	for _, f := range frames {
		if cmd := m.applyFrame(f); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, m.display.Listen())
	return tea.Batch(cmds...)
}

func (m *BrowserModel) applyFrame(frame tea.Msg) tea.Cmd {
	switch f := frame.(type) {
	case sliceFrameMsg:
		m.slice = f.slice
		m.list.SetItems(f.slice.Items)
		if m.state == ViewStateLoading || m.state == ViewStateError {
			m.state = ViewStateList
			m.err = nil
		}
	case suggestionsFrameMsg:
		m.suggestions = f.meals
		m.suggestion = 0
	case hideSuggestionsMsg:
		m.suggestions = nil
		m.suggestion = 0
	case loadingFrameMsg:
		if f.loading {
			m.state = ViewStateLoading
			m.loading.Reset()
			return m.loading.Init()
		}
	case progressFrameMsg:
		m.loading.SetProgress(f.done, f.total)
	case errorFrameMsg:
		m.err = f.err
		m.state = ViewStateError
	}
	return nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keyCtrlC {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}

	if m.searching && m.state == ViewStateList {
		return m.handleSearchKey(msg)
	}

	switch m.state {
	case ViewStateList:
		return m.handleListKey(msg)
	case ViewStateDetail:
		return m.handleDetailKey(msg)
	case ViewStateError:
		return m.handleErrorKey(msg)
	case ViewStateLoading, ViewStateQuitting:
		if msg.String() == keyQuit {
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *BrowserModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		m.blurSearch()
		m.session.DismissSuggestions()
		return m, nil
	case keyUp:
		if m.suggestion > 0 {
			m.suggestion--
		}
		return m, nil
	case keyDown:
		if m.suggestion < len(m.suggestions)-1 {
			m.suggestion++
		}
		return m, nil
	case keyEnter:
		m.blurSearch()
		if len(m.suggestions) > 0 {
			m.session.SelectSuggestion(m.suggestions[m.suggestion].ID)
		}
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if value := m.searchInput.Value(); value != before {
		m.session.OnSearchInput(value)
	}
	return m, cmd
}

func (m *BrowserModel) blurSearch() {
	m.searching = false
	m.searchInput.Blur()
}

func (m *BrowserModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case keyQuit:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keySlash:
		m.searching = true
		return m, m.searchInput.Focus()
	}

	// Any other key outside the search box closes the suggestion list.
	if key == keyEsc || len(m.suggestions) > 0 {
		m.session.DismissSuggestions()
	}

	switch key {
	case keyEsc:
		return m, nil
	case keyLeft, keyH:
		m.session.RequestPageChange(-1)
		return m, nil
	case keyRight, keyL:
		m.session.RequestPageChange(1)
		return m, nil
	case keyC:
		m.category = m.session.CycleCategory()
		return m, nil
	case keyS:
		m.sortMode = m.session.CycleSort()
		return m, nil
	case keyEnter:
		if item := m.list.GetSelectedItem(); item != nil {
			meal := *item
			m.selected = &meal
			m.state = ViewStateDetail
		}
		return m, nil
	}

	updated, cmd := m.list.Update(msg)
	if vl, ok := updated.(*listview.VirtualListModel[catalog.Meal]); ok {
		m.list = vl
	}
	return m, cmd
}

func (m *BrowserModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEsc, keyBack:
		m.selected = nil
		m.state = ViewStateList
	}
	return m, nil
}

func (m *BrowserModel) handleErrorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyR:
		m.err = nil
		m.state = ViewStateLoading
		m.loading.Reset()
		return m, tea.Batch(m.loading.Init(), m.startCmd(true))
	}
	return m, nil
}

func (m *BrowserModel) listHeight() int {
	return max(m.height-browserChromeHeight, minHeight)
}

// View renders the current view.
func (m *BrowserModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return RenderLoading(m.loading)
	case ViewStateError:
		return RenderError(m.err)
	case ViewStateDetail:
		if m.selected == nil {
			return ""
		}
		return detail.Render(*m.selected, m.width) + "\n" + HelpStyle.Render("[Esc] Back  [q] Quit")
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m *BrowserModel) renderListView() string {
	category := m.category
	if category == "" {
		category = "All"
	}
	status := fmt.Sprintf("Category: %s | Sort: %s | Page %d of %d (%d meals)",
		category, m.sortMode.Label(), m.slice.CurrentPage, m.slice.TotalPages, m.slice.TotalItems)

	sections := []string{
		TitleStyle.Render("MEALFINDER"),
		MutedStyle.Render(status),
		"Search: " + m.searchInput.View(),
	}
	if s := m.renderSuggestions(); s != "" {
		sections = append(sections, s)
	}

	header := fmt.Sprintf("%-*s  %-*s  %-*s",
		colWidthName, "Name",
		colWidthCategory, "Category",
		colWidthArea, "Area",
	)
	sections = append(sections,
		HeaderStyle.Render(header),
		m.list.View(),
		HelpStyle.Render(m.helpText()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *BrowserModel) renderSuggestions() string {
	if len(m.suggestions) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.suggestions))
	for i, s := range m.suggestions {
		line := "  " + s.Name
		if m.searching && i == m.suggestion {
			line = SelectedStyle.Render("> " + s.Name)
		}
		lines = append(lines, line)
	}
	return BoxStyle.Render(strings.Join(lines, "\n"))
}

func (m *BrowserModel) helpText() string {
	if m.searching {
		return "[↑↓] Choose  [Enter] Select  [Esc] Close"
	}
	return "[/] Search  [←→/hl] Page  [c] Category  [s] Sort  [↑↓/jk] Navigate  [Enter] Details  [q] Quit"
}

// RenderError renders a load failure with the retry hint.
func RenderError(err error) string {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return fmt.Sprintf("\n %s\n\n %s\n",
		ErrorStyle.Render("Failed to load meals: "+msg),
		HelpStyle.Render("[r] Retry  [q] Quit"))
}

// renderMealRow formats a single meal for list display.
func renderMealRow(meal catalog.Meal, selected bool) string {
	row := fmt.Sprintf("%-*s  %-*s  %-*s",
		colWidthName, truncate(meal.Name, colWidthName),
		colWidthCategory, truncate(meal.Category, colWidthCategory),
		colWidthArea, truncate(meal.Area, colWidthArea),
	)
	if selected {
		return SelectedStyle.Render(row)
	}
	return row
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
