package harvest

// An in-memory stand-in for a live page: a card arena whose visible prefix
// grows while the scroller moves, with injectable staleness per position.

import (
	"fmt"
	"time"
)

type fakeArena struct {
	cards   []map[string]any
	visible int

	// snapFailures[i] > 0 makes the next snapshot of position i fail stale.
	// scriptBroken[i] makes the full snapshot script always fail non-stale.
	snapFailures map[int]int
	scriptBroken map[int]bool

	doc       *fakeNode
	scroller  *fakeNode
	container *fakeNode
	shelf     *fakeNode

	// preferred is the locator string WaitFor resolves to the container.
	preferred string

	forwardHops  int
	rounds       int
	growthRounds int
	growthStep   int

	// detachAfterRound kills the scroller mid-run when > 0.
	detachAfterRound int
}

func newArena(total, visible int) *fakeArena {
	a := &fakeArena{
		visible:      visible,
		snapFailures: map[int]int{},
		scriptBroken: map[int]bool{},
	}
	for i := 0; i < total; i++ {
		a.cards = append(a.cards, cardPayload(i))
	}

	a.doc = &fakeNode{arena: a, name: "document", holdsCards: true, scrollable: true}
	body := &fakeNode{arena: a, name: "body", holdsCards: true}
	a.scroller = &fakeNode{arena: a, name: "scrollwrap", holdsCards: true, scrollable: true, parent: body}
	a.container = &fakeNode{arena: a, name: "container", holdsCards: true, parent: a.scroller}
	a.shelf = &fakeNode{arena: a, name: "shelf", holdsCards: true, parent: a.container}
	return a
}

func cardPayload(i int) map[string]any {
	return map[string]any{
		"job_id":         fmt.Sprintf("job-%d", i),
		"job_role":       fmt.Sprintf("Backend Engineer %d", i),
		"job_type":       "FULL_TIME",
		"job_cat":        "Engineering",
		"job_sub_cat":    "",
		"company_id":     "42",
		"is_hot_job":     false,
		"title":          fmt.Sprintf("Backend Engineer %d", i),
		"link":           fmt.Sprintf("/opportunities/jobs/backend-engineer-%d", i),
		"company":        "PT Maju Jaya",
		"locations":      []any{"Jakarta Selatan, Jakarta · Indonesia"},
		"salary":         "Rp5.000.000 - Rp7.000.000",
		"tags":           []any{"Penuh Waktu", "1 - 3 tahun"},
		"aktif_merekrut": true,
		"updated_at":     "Diperbarui 2 hari yang lalu",
		"company_logo":   "",
	}
}

func (a *fakeArena) visibleCards() []Element {
	els := make([]Element, 0, a.visible)
	for i := 0; i < a.visible && i < len(a.cards); i++ {
		els = append(els, &fakeCard{arena: a, idx: i})
	}
	return els
}

// onForwardHop advances the round counter every second forward hop (one round
// is forward + back + settle) and renders more cards while growth lasts.
func (a *fakeArena) onForwardHop() {
	a.forwardHops++
	if a.forwardHops%2 != 0 {
		return
	}
	a.rounds++
	if a.rounds <= a.growthRounds {
		a.visible += a.growthStep
		if a.visible > len(a.cards) {
			a.visible = len(a.cards)
		}
	}
	if a.detachAfterRound > 0 && a.rounds == a.detachAfterRound {
		a.scroller.detached = true
	}
}

// fakeNode is a structural node: container, ancestors, document scroller.
type fakeNode struct {
	arena      *fakeArena
	name       string
	parent     *fakeNode
	holdsCards bool
	scrollable bool
	scrollTop  float64
	detached   bool
}

func (n *fakeNode) Query(sel string) ([]Element, error) {
	if n.detached {
		return nil, fmt.Errorf("%w: %s removed", ErrStale, n.name)
	}
	if n.holdsCards && (sel == itemMarker || sel == countMarker) {
		return n.arena.visibleCards(), nil
	}
	return nil, nil
}

func (n *fakeNode) Evaluate(script string, args ...any) (any, error) {
	if n.detached {
		return nil, fmt.Errorf("%w: %s removed", ErrStale, n.name)
	}
	switch script {
	case scrollableProbeScript:
		return n.scrollable, nil
	case scrollForwardScript:
		n.scrollTop += 100
		n.arena.onForwardHop()
		return nil, nil
	case scrollBackScript:
		n.scrollTop -= 10
		return nil, nil
	}
	return nil, fmt.Errorf("unexpected script on %s: %s", n.name, script)
}

func (n *fakeNode) EvaluateHandle(script string, args ...any) (Element, error) {
	if script == parentScript {
		if n.parent == nil {
			return nil, nil
		}
		return n.parent, nil
	}
	return nil, fmt.Errorf("unexpected handle script on %s: %s", n.name, script)
}

func (n *fakeNode) Attached() bool { return !n.detached }

// fakeCard is a positional handle. Every resolution builds a fresh one, the
// arena index is its only identity, same as a real re-queried DOM node.
type fakeCard struct {
	arena *fakeArena
	idx   int
}

func (c *fakeCard) Query(sel string) ([]Element, error) { return nil, nil }

func (c *fakeCard) Evaluate(script string, args ...any) (any, error) {
	switch script {
	case snapshotScript:
		if c.arena.snapFailures[c.idx] > 0 {
			c.arena.snapFailures[c.idx]--
			return nil, fmt.Errorf("%w: card %d re-rendered", ErrStale, c.idx)
		}
		if c.arena.scriptBroken[c.idx] {
			return nil, fmt.Errorf("evaluation failed: SyntaxError")
		}
		return c.arena.cards[c.idx], nil
	case minimalSnapshotScript:
		src := c.arena.cards[c.idx]
		return map[string]any{
			"job_id":         src["job_id"],
			"title":          src["job_role"],
			"link":           "",
			"company":        "",
			"locations":      []any{},
			"salary":         "",
			"tags":           []any{},
			"aktif_merekrut": false,
			"updated_at":     "",
			"company_logo":   "",
		}, nil
	}
	return nil, fmt.Errorf("unexpected script on card %d: %s", c.idx, script)
}

func (c *fakeCard) EvaluateHandle(script string, args ...any) (Element, error) {
	if script == parentScript {
		return c.arena.shelf, nil
	}
	return nil, fmt.Errorf("unexpected handle script on card %d: %s", c.idx, script)
}

func (c *fakeCard) Attached() bool { return c.idx < c.arena.visible }

type fakeSession struct {
	arena *fakeArena
}

func (s *fakeSession) Query(sel string) ([]Element, error) {
	if sel == itemMarker || sel == countMarker {
		return s.arena.visibleCards(), nil
	}
	return nil, nil
}

func (s *fakeSession) Evaluate(script string, args ...any) (any, error) {
	return nil, fmt.Errorf("unexpected session script: %s", script)
}

func (s *fakeSession) EvaluateHandle(script string, args ...any) (Element, error) {
	if script == documentScrollerScript {
		return s.arena.doc, nil
	}
	return nil, fmt.Errorf("unexpected session handle script: %s", script)
}

func (s *fakeSession) WaitFor(sel string, timeout time.Duration) (Element, error) {
	if sel == s.arena.preferred && s.arena.container != nil && !s.arena.container.detached {
		return s.arena.container, nil
	}
	if sel == itemMarker && s.arena.visible > 0 {
		return &fakeCard{arena: s.arena, idx: 0}, nil
	}
	return nil, fmt.Errorf("timed out waiting for %s", sel)
}

// testTuning keeps the full loop but removes every pause so tests run flat out.
func testTuning() Tuning {
	tn := DefaultTuning()
	tn.LongPauseMin, tn.LongPauseMax = 0, 0
	tn.ShortPauseMin, tn.ShortPauseMax = 0, 0
	tn.MaxScrollRounds = 50
	tn.ItemsWait = 0
	tn.ContainerWait = 10 * time.Millisecond
	tn.MarkerWait = 10 * time.Millisecond
	tn.RefreshWait = 10 * time.Millisecond
	return tn
}
