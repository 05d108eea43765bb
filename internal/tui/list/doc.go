// Package listview provides a scrolling row list for Bubble Tea models.
//
// The list keeps a selection cursor, renders only the rows that fit the
// viewport, and can be refilled with new items while keeping the cursor in
// bounds. Navigation: up/down, j/k, home/end.
package listview
