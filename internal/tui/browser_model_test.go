package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/mealfinder/internal/catalog"
	"github.com/rshade/mealfinder/internal/engine"
)

type fakeSession struct {
	startErr    error
	starts      int
	retries     int
	pageDeltas  []int
	searches    []string
	selected    []string
	dismissed   int
	category    string
	sortMode    engine.SortMode
	cycleCalled int
}

func (s *fakeSession) Start(context.Context) error {
	s.starts++
	return s.startErr
}

func (s *fakeSession) Retry(context.Context) error {
	s.retries++
	return s.startErr
}

func (s *fakeSession) RequestPageChange(delta int) bool {
	s.pageDeltas = append(s.pageDeltas, delta)
	return true
}

func (s *fakeSession) CycleCategory() string {
	s.cycleCalled++
	s.category = "Beef"
	return s.category
}

func (s *fakeSession) CycleSort() engine.SortMode {
	s.sortMode = s.sortMode.Next()
	return s.sortMode
}

func (s *fakeSession) OnSearchInput(raw string) {
	s.searches = append(s.searches, raw)
}

func (s *fakeSession) SelectSuggestion(id string) bool {
	s.selected = append(s.selected, id)
	return true
}

func (s *fakeSession) DismissSuggestions() {
	s.dismissed++
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testMeals() []catalog.Meal {
	return []catalog.Meal{
		{ID: "1", Name: "Beef Wellington", Category: "Beef", Area: "British"},
		{ID: "2", Name: "Chicken Curry", Category: "Chicken", Area: "Indian"},
	}
}

func loadedModel(t *testing.T) (*BrowserModel, *fakeSession) {
	t.Helper()
	session := &fakeSession{}
	m := NewBrowserModel(context.Background(), session, NewDisplay())
	m.Update(framesMsg{
		loadingFrameMsg{loading: true},
		progressFrameMsg{done: 1, total: 26},
		loadingFrameMsg{loading: false},
		sliceFrameMsg{slice: engine.DisplaySlice{Items: testMeals(), CurrentPage: 1, TotalPages: 1, TotalItems: 2}},
	})
	require.Equal(t, ViewStateList, m.State())
	return m, session
}

func TestBrowserModel_StartsLoading(t *testing.T) {
	m := NewBrowserModel(context.Background(), &fakeSession{}, NewDisplay())
	assert.Equal(t, ViewStateLoading, m.State())
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Loading meals...")
}

func TestBrowserModel_ProgressShownWhileLoading(t *testing.T) {
	m := NewBrowserModel(context.Background(), &fakeSession{}, NewDisplay())
	m.Update(framesMsg{loadingFrameMsg{loading: true}, progressFrameMsg{done: 4, total: 26}})
	assert.Contains(t, m.View(), "4/26")
}

func TestBrowserModel_SliceFrameShowsList(t *testing.T) {
	m, _ := loadedModel(t)
	view := m.View()
	assert.Contains(t, view, "Beef Wellington")
	assert.Contains(t, view, "Page 1 of 1 (2 meals)")
}

func TestBrowserModel_EmptySlice(t *testing.T) {
	m, _ := loadedModel(t)
	m.Update(framesMsg{sliceFrameMsg{slice: engine.DisplaySlice{CurrentPage: 1, TotalPages: 1, Empty: true}}})
	assert.Contains(t, m.View(), engine.EmptyMessage)
}

func TestBrowserModel_PageKeys(t *testing.T) {
	m, session := loadedModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(keyRunes("l"))
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(keyRunes("h"))

	assert.Equal(t, []int{1, 1, -1, -1}, session.pageDeltas)
}

func TestBrowserModel_CategoryAndSortKeys(t *testing.T) {
	m, session := loadedModel(t)

	m.Update(keyRunes("c"))
	m.Update(keyRunes("s"))

	assert.Equal(t, 1, session.cycleCalled)
	view := m.View()
	assert.Contains(t, view, "Category: Beef")
	assert.Contains(t, view, "Sort: Name A-Z")
}

func TestBrowserModel_SearchInputForwarded(t *testing.T) {
	m, session := loadedModel(t)

	m.Update(keyRunes("/"))
	m.Update(keyRunes("c"))
	m.Update(keyRunes("u"))

	assert.Equal(t, []string{"c", "cu"}, session.searches)
	assert.Equal(t, 0, session.cycleCalled, "keys go to the search box while focused")
}

func TestBrowserModel_SelectSuggestion(t *testing.T) {
	m, session := loadedModel(t)
	m.Update(keyRunes("/"))
	m.Update(framesMsg{suggestionsFrameMsg{meals: testMeals()}})
	assert.Contains(t, m.View(), "> Beef Wellington")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"2"}, session.selected)
	assert.False(t, m.searching)
}

func TestBrowserModel_EscDismissesSuggestions(t *testing.T) {
	m, session := loadedModel(t)
	m.Update(keyRunes("/"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, 1, session.dismissed)
	assert.False(t, m.searching)

	m.Update(framesMsg{suggestionsFrameMsg{meals: testMeals()}, hideSuggestionsMsg{}})
	assert.NotContains(t, m.View(), "> Beef Wellington")
}

func TestBrowserModel_ListKeysDismissSuggestions(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"page right", tea.KeyMsg{Type: tea.KeyRight}},
		{"page left", keyRunes("h")},
		{"category", keyRunes("c")},
		{"sort", keyRunes("s")},
		{"row down", tea.KeyMsg{Type: tea.KeyDown}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, session := loadedModel(t)
			m.Update(framesMsg{suggestionsFrameMsg{meals: testMeals()}})
			require.False(t, m.searching)

			m.Update(tt.key)
			assert.Equal(t, 1, session.dismissed)
		})
	}

	t.Run("no suggestions visible", func(t *testing.T) {
		m, session := loadedModel(t)
		m.Update(tea.KeyMsg{Type: tea.KeyRight})
		m.Update(keyRunes("c"))
		assert.Equal(t, 0, session.dismissed)
	})
}

func TestBrowserModel_DetailView(t *testing.T) {
	m, _ := loadedModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ViewStateDetail, m.State())
	assert.Contains(t, m.View(), "Chicken Curry")
	assert.Contains(t, m.View(), "Indian")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewStateList, m.State())
}

func TestBrowserModel_ErrorAndRetry(t *testing.T) {
	session := &fakeSession{}
	m := NewBrowserModel(context.Background(), session, NewDisplay())

	loadErr := &catalog.FetchError{Shard: "c", Op: "status", Err: catalog.ErrUnexpectedStatus}
	m.Update(framesMsg{errorFrameMsg{err: loadErr}})
	require.Equal(t, ViewStateError, m.State())
	view := m.View()
	assert.Contains(t, view, `shard "c"`)
	assert.Contains(t, view, "[r] Retry")

	_, cmd := m.Update(keyRunes("r"))
	require.NotNil(t, cmd)
	assert.Equal(t, ViewStateLoading, m.State())
	assert.NoError(t, m.Err())
}

func TestBrowserModel_StartDoneError(t *testing.T) {
	m := NewBrowserModel(context.Background(), &fakeSession{}, NewDisplay())
	m.Update(startDoneMsg{err: errors.New("offline")})
	assert.Equal(t, ViewStateError, m.State())
	assert.True(t, strings.Contains(m.View(), "offline"))
}

func TestBrowserModel_StartCmdCallsSession(t *testing.T) {
	session := &fakeSession{}
	m := NewBrowserModel(context.Background(), session, NewDisplay())

	msg := m.startCmd(false)()
	assert.Equal(t, startDoneMsg{}, msg)
	assert.Equal(t, 1, session.starts)

	m.startCmd(true)()
	assert.Equal(t, 1, session.retries)
}

func TestBrowserModel_Quit(t *testing.T) {
	m, _ := loadedModel(t)
	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, ViewStateQuitting, m.State())
	assert.Empty(t, m.View())
}

func TestBrowserModel_WindowResize(t *testing.T) {
	m, _ := loadedModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 40-browserChromeHeight, m.list.Height())
}

func TestRenderMealRow(t *testing.T) {
	row := renderMealRow(catalog.Meal{Name: strings.Repeat("x", 60), Category: "Beef"}, false)
	assert.Contains(t, row, "...")
	assert.Contains(t, row, "Beef")
}
