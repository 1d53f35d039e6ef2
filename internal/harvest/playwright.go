package harvest

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

const isConnectedScript = "el => el.isConnected === true"

// PageSession adapts a playwright page to the Session surface.
type PageSession struct {
	page playwright.Page
}

func NewPageSession(page playwright.Page) *PageSession {
	return &PageSession{page: page}
}

func (s *PageSession) Query(selector string) ([]Element, error) {
	handles, err := s.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, classify(err)
	}
	return wrapAll(handles), nil
}

func (s *PageSession) Evaluate(script string, args ...any) (any, error) {
	v, err := s.page.Evaluate(script, args...)
	return v, classify(err)
}

func (s *PageSession) EvaluateHandle(script string, args ...any) (Element, error) {
	h, err := s.page.EvaluateHandle(script, args...)
	if err != nil {
		return nil, classify(err)
	}
	return asElement(h), nil
}

func (s *PageSession) WaitFor(selector string, timeout time.Duration) (Element, error) {
	h, err := s.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return nil, classify(err)
	}
	if h == nil {
		return nil, fmt.Errorf("no element for %s", selector)
	}
	return &pwElement{handle: h}, nil
}

type pwElement struct {
	handle playwright.ElementHandle
}

func (e *pwElement) Query(selector string) ([]Element, error) {
	handles, err := e.handle.QuerySelectorAll(selector)
	if err != nil {
		return nil, classify(err)
	}
	return wrapAll(handles), nil
}

func (e *pwElement) Evaluate(script string, args ...any) (any, error) {
	v, err := e.handle.Evaluate(script, args...)
	return v, classify(err)
}

func (e *pwElement) EvaluateHandle(script string, args ...any) (Element, error) {
	h, err := e.handle.EvaluateHandle(script, args...)
	if err != nil {
		return nil, classify(err)
	}
	return asElement(h), nil
}

func (e *pwElement) Attached() bool {
	v, err := e.handle.Evaluate(isConnectedScript)
	if err != nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func wrapAll(handles []playwright.ElementHandle) []Element {
	els := make([]Element, 0, len(handles))
	for _, h := range handles {
		els = append(els, &pwElement{handle: h})
	}
	return els
}

func asElement(h playwright.JSHandle) Element {
	if h == nil {
		return nil
	}
	el := h.AsElement()
	if el == nil {
		return nil
	}
	return &pwElement{handle: el}
}

// classify maps driver errors onto the package taxonomy. Playwright has no
// single stale error, detachment shows up under a handful of message shapes.
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"not attached",
		"detached from document",
		"execution context was destroyed",
		"stale",
		"could not find node",
	} {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: %v", ErrStale, err)
		}
	}
	return err
}
