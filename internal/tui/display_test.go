package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/mealfinder/internal/catalog"
	"github.com/rshade/mealfinder/internal/engine"
)

func TestDisplay_QueuesFramesInOrder(t *testing.T) {
	d := NewDisplay()
	d.SetLoading(true)
	d.SetProgress(3, 26)
	d.ShowSlice(engine.DisplaySlice{CurrentPage: 1, TotalPages: 1})
	d.ShowSuggestions([]catalog.Meal{{ID: "1"}})
	d.HideSuggestions()
	d.ShowError(errors.New("boom"))

	msg := d.Listen()()
	frames, ok := msg.(framesMsg)
	require.True(t, ok)
	require.Len(t, frames, 6)

	assert.Equal(t, loadingFrameMsg{loading: true}, frames[0])
	assert.Equal(t, progressFrameMsg{done: 3, total: 26}, frames[1])
	assert.IsType(t, sliceFrameMsg{}, frames[2])
	assert.IsType(t, suggestionsFrameMsg{}, frames[3])
	assert.IsType(t, hideSuggestionsMsg{}, frames[4])
	assert.IsType(t, errorFrameMsg{}, frames[5])
}

func TestDisplay_ListenWaitsForFrames(t *testing.T) {
	d := NewDisplay()
	got := make(chan any, 1)
	go func() { got <- d.Listen()() }()

	select {
	case <-got:
		t.Fatal("listener returned before any frame was queued")
	case <-time.After(20 * time.Millisecond):
	}

	d.HideSuggestions()
	select {
	case msg := <-got:
		assert.Equal(t, framesMsg{hideSuggestionsMsg{}}, msg)
	case <-time.After(time.Second):
		t.Fatal("listener did not deliver frame")
	}
}

func TestDisplay_Close(t *testing.T) {
	d := NewDisplay()
	d.Close()
	d.Close()
	assert.Equal(t, displayClosedMsg{}, d.Listen()())
}

func TestDisplay_CopiesSliceItems(t *testing.T) {
	d := NewDisplay()
	items := []catalog.Meal{{Name: "Stew"}}
	d.ShowSlice(engine.DisplaySlice{Items: items})
	items[0].Name = "changed"

	frames := d.Listen()().(framesMsg)
	assert.Equal(t, "Stew", frames[0].(sliceFrameMsg).slice.Items[0].Name)
}
