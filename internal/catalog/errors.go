package catalog

import (
	"errors"
	"fmt"
)

// ErrUnexpectedStatus is wrapped by FetchError for non-2xx responses.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// FetchError reports a failed shard request: a transport error, a non-2xx
// status, or a body that is not valid JSON.
type FetchError struct {
	// Shard is the shard key being fetched.
	Shard string
	// Op is the failing step: "request", "status", "read" or "decode".
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch shard %q: %s: %v", e.Shard, e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err wraps a *FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
