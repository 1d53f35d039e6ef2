package harvest

import (
	"context"
	"log"

	"go-glints-harvester/utils"
)

const (
	scrollForwardScript = "(el, f) => { el.scrollTop = el.scrollTop + el.clientHeight * f; }"
	scrollBackScript    = "(el, px) => { el.scrollTop = el.scrollTop - px; }"

	scrollableProbeScript = `el => {
		const st = window.getComputedStyle(el);
		const oy = st.overflowY;
		return (oy === 'auto' || oy === 'scroll') && el.scrollHeight > el.clientHeight + 4;
	}`

	documentScrollerScript = "() => document.scrollingElement || document.documentElement"
)

// scrollableAncestor finds the element that actually moves when the list
// scrolls. The container itself often has overflow:visible while a wrapper a
// few levels up owns the scrollbar. Falls back to the document scroller.
func scrollableAncestor(sess Session, el Element) Element {
	node := el
	for i := 0; i < 8 && node != nil; i++ {
		if v, err := node.Evaluate(scrollableProbeScript); err == nil {
			if ok, _ := v.(bool); ok {
				return node
			}
		}
		parent, err := node.EvaluateHandle(parentScript)
		if err != nil {
			break
		}
		node = parent
	}
	doc, err := sess.EvaluateHandle(documentScrollerScript)
	if err != nil {
		return nil
	}
	return doc
}

// countItems counts cards under the container, or document-wide when the
// container is gone or unreadable.
func countItems(sess Session, container Element) int {
	if sc := safeScope(container); sc != nil {
		if cards, err := sc.Query(countMarker); err == nil {
			return len(cards)
		}
	}
	cards, err := sess.Query(countMarker)
	if err != nil {
		return 0
	}
	return len(cards)
}

// scrollUntilStable drives the oscillating scroll until the card count stops
// growing. Every hop tolerates a stale scroller by re-resolving it and moving
// on; a missed hop just costs one round. Returns the final card count.
func scrollUntilStable(ctx context.Context, sess Session, container Element, tn Tuning) int {
	scroller := scrollableAncestor(sess, safeScope(container))

	ensure := func() {
		if scroller == nil || !scroller.Attached() {
			scroller = scrollableAncestor(sess, safeScope(container))
		}
	}

	hop := func(script string, arg any) {
		if scroller == nil {
			return
		}
		if _, err := scroller.Evaluate(script, arg); err != nil {
			ensure()
		}
	}

	last := countItems(sess, container)
	stagnant := 0
	for i := 0; i < tn.MaxScrollRounds; i++ {
		if ctx.Err() != nil {
			return last
		}
		ensure()

		hop(scrollForwardScript, tn.ForwardFraction)
		utils.RandomDelay(tn.LongPauseMin, tn.LongPauseMax)

		hop(scrollBackScript, tn.BackPixels)
		utils.RandomDelay(tn.ShortPauseMin, tn.ShortPauseMax)

		hop(scrollForwardScript, tn.SettleFraction)
		utils.RandomDelay(tn.LongPauseMin, tn.LongPauseMax)

		count := countItems(sess, container)
		log.Printf("📜 [scroll %d/%d] cards=%d", i+1, tn.MaxScrollRounds, count)
		if count-last < tn.MinGrowth {
			stagnant++
		} else {
			stagnant = 0
		}
		last = count
		if stagnant >= tn.StagnationLimit {
			break
		}
	}
	return last
}
