// Package timing provides the two rate-control primitives used by the browser:
// a trailing-edge Debouncer and a drop-excess Throttler.
package timing
