package tui

import (
	"slices"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/mealfinder/internal/catalog"
	"github.com/rshade/mealfinder/internal/engine"
)

// Frame messages delivered to the browser model.
type (
	sliceFrameMsg       struct{ slice engine.DisplaySlice }
	suggestionsFrameMsg struct{ meals []catalog.Meal }
	hideSuggestionsMsg  struct{}
	loadingFrameMsg     struct{ loading bool }
	errorFrameMsg       struct{ err error }
	progressFrameMsg    struct{ done, total int }

	// framesMsg carries every frame queued since the last delivery, in order.
	framesMsg []tea.Msg

	// displayClosedMsg is delivered once after Close.
	displayClosedMsg struct{}
)

// Display implements engine.Display for the Bubble Tea program. Calls never
// block: frames are queued and handed to the model by the command returned
// from Listen.
type Display struct {
	mu     sync.Mutex
	queue  []tea.Msg
	notify chan struct{}
	done   chan struct{}
	once   sync.Once
}

var _ engine.Display = (*Display)(nil)

// NewDisplay creates an empty display queue.
func NewDisplay() *Display {
	return &Display{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

func (d *Display) push(msg tea.Msg) {
	d.mu.Lock()
	d.queue = append(d.queue, msg)
	d.mu.Unlock()

	select {
	case d.notify <- struct{}{}:
	default:
	}
}

// ShowSlice queues a rendered page.
func (d *Display) ShowSlice(slice engine.DisplaySlice) {
	slice.Items = slices.Clone(slice.Items)
	d.push(sliceFrameMsg{slice: slice})
}

// ShowSuggestions queues a suggestion list.
func (d *Display) ShowSuggestions(meals []catalog.Meal) {
	d.push(suggestionsFrameMsg{meals: slices.Clone(meals)})
}

// HideSuggestions queues hiding the suggestion list.
func (d *Display) HideSuggestions() {
	d.push(hideSuggestionsMsg{})
}

// SetLoading queues the loading signal.
func (d *Display) SetLoading(loading bool) {
	d.push(loadingFrameMsg{loading: loading})
}

// ShowError queues a load failure.
func (d *Display) ShowError(err error) {
	d.push(errorFrameMsg{err: err})
}

// SetProgress queues shard progress.
func (d *Display) SetProgress(done, total int) {
	d.push(progressFrameMsg{done: done, total: total})
}

// Close stops the listener. Frames pushed afterwards are dropped.
func (d *Display) Close() {
	d.once.Do(func() { close(d.done) })
}

// Listen returns a command that waits for queued frames and delivers them as
// one framesMsg. The model must call Listen again after each delivery.
func (d *Display) Listen() tea.Cmd {
	return func() tea.Msg {
		for {
			if frames := d.drain(); len(frames) > 0 {
				return frames
			}
			select {
			case <-d.notify:
			case <-d.done:
				return displayClosedMsg{}
			}
		}
	}
}

func (d *Display) drain() framesMsg {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.queue) == 0 {
		return nil
	}
	frames := framesMsg(d.queue)
	d.queue = nil
	return frames
}
