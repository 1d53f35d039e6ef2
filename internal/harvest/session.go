// Package harvest walks a virtualized job list: find the container, scroll it
// to saturation, then snapshot every card while tolerating re-renders that
// detach nodes mid-read.
package harvest

import (
	"errors"
	"time"
)

// Card markers. The first is what we iterate over, the second set is only used
// for counting because some layouts render placeholder cards without a job id.
const (
	itemMarker  = "[data-gtm-job-id]"
	countMarker = "[data-gtm-job-id], [data-testid='opportunity-card']"
)

var (
	// ErrContainerNotFound means neither the configured locator nor any card
	// marker matched within the wait window.
	ErrContainerNotFound = errors.New("list container not found")

	// ErrStale marks a node reference that the DOM has since replaced. Callers
	// re-resolve by position and retry.
	ErrStale = errors.New("stale element reference")

	// ErrIncomplete marks a snapshot payload that came back in an unusable shape.
	ErrIncomplete = errors.New("extraction incomplete")
)

// Session is the browser surface the harvester drives. The playwright adapter
// implements it for real runs, tests swap in an in-memory fake.
type Session interface {
	// Query returns all elements matching a CSS selector, document-wide.
	Query(selector string) ([]Element, error)

	// Evaluate runs a script in the page and returns its serialized result.
	Evaluate(script string, args ...any) (any, error)

	// EvaluateHandle runs a script and returns the resulting element, or nil
	// when the script yields null or a non-element value.
	EvaluateHandle(script string, args ...any) (Element, error)

	// WaitFor blocks until the selector is attached to the DOM or the timeout
	// elapses. Supports css and xpath= selectors.
	WaitFor(selector string, timeout time.Duration) (Element, error)
}

// Element is one DOM node. Handles are positional at heart: a stale handle is
// worthless, only its index in the current scope lets us find the successor.
type Element interface {
	Query(selector string) ([]Element, error)
	Evaluate(script string, args ...any) (any, error)
	EvaluateHandle(script string, args ...any) (Element, error)

	// Attached reports whether the node is still connected to the document.
	Attached() bool
}
