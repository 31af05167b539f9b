package webfetch

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL means the url is not an absolute http(s) url.
	ErrInvalidURL = errors.New("invalid url")
	// ErrBadStatus means the server answered outside 2xx.
	ErrBadStatus = errors.New("unexpected status")
)

// FetchError reports why a page could not be retrieved. Status is 0 when no response
// was received.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
