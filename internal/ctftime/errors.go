package ctftime

import "fmt"

// FetchError indicates the feed was unreachable or answered with a
// non-success status.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("feed returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("fetching feed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError indicates the feed body could not be parsed as an event list.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing feed body: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
