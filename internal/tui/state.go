package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ViewState is the screen the browser model is showing.
type ViewState int

const (
	// ViewStateLoading shows the spinner while the catalog loads.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the current page of results.
	ViewStateList
	// ViewStateDetail shows one meal.
	ViewStateDetail
	// ViewStateError shows a load failure with a retry hint.
	ViewStateError
	// ViewStateQuitting is the final state before the program exits.
	ViewStateQuitting
)

// Key bindings.
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
	keyEsc   = "esc"
	keySlash = "/"
	keyUp    = "up"
	keyDown  = "down"
	keyLeft  = "left"
	keyRight = "right"
	keyH     = "h"
	keyL     = "l"
	keyC     = "c"
	keyS     = "s"
	keyR     = "r"
	keyBack  = "backspace"
)

const defaultLoadingMessage = "Loading meals..."

// LoadingState is the spinner and progress shown while loading.
type LoadingState struct {
	spinner spinner.Model
	message string
	done    int
	total   int
}

// NewLoadingState creates a LoadingState with the default message.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorHighlight)
	return &LoadingState{spinner: s, message: defaultLoadingMessage}
}

// Init starts the spinner.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// SetProgress records shard progress and updates the message.
func (l *LoadingState) SetProgress(done, total int) {
	l.done, l.total = done, total
	if total > 0 {
		l.message = fmt.Sprintf("Loading meals... (%d/%d shards)", done, total)
	}
}

// Reset clears progress.
func (l *LoadingState) Reset() {
	l.done, l.total = 0, 0
	l.message = defaultLoadingMessage
}

// Message returns the loading message.
func (l *LoadingState) Message() string {
	return l.message
}

// RenderLoading returns the string to display for a loading screen.
// If loading is nil, it returns the plain text "Loading...".
func RenderLoading(loading *LoadingState) string {
	if loading == nil {
		return "Loading..."
	}
	return fmt.Sprintf("\n %s %s\n\n", loading.spinner.View(), loading.message)
}
