package harvest

import (
	"fmt"
	"log"
)

const parentScript = "el => el.parentElement"

// locate resolves the list container. Order: the configured locator if given,
// otherwise wait for a card marker and climb to the ancestor holding the most
// cards. A nil return with nil error means no single container stood out and
// all later queries should run document-wide.
func locate(sess Session, preferred string, tn Tuning) (Element, error) {
	if preferred != "" {
		el, err := sess.WaitFor(preferred, tn.ContainerWait)
		if err == nil && el != nil {
			log.Printf("🔍 Container resolved via configured locator")
			return el, nil
		}
		log.Printf("⚠️ Configured container locator did not resolve, inferring from card markers")
	}

	first, err := sess.WaitFor(itemMarker, tn.MarkerWait)
	if err != nil || first == nil {
		return nil, fmt.Errorf("%w: no %s marker within %s", ErrContainerNotFound, itemMarker, tn.MarkerWait)
	}

	// Walk up from the first card. The deepest ancestor with the max card
	// count wins, so sibling sections sharing a common wrapper do not leak in.
	var best Element
	bestCount := 0
	node := first
	for i := 0; i < 10 && node != nil; i++ {
		if cards, qerr := node.Query(itemMarker); qerr == nil && len(cards) > bestCount {
			best = node
			bestCount = len(cards)
		}
		parent, perr := node.EvaluateHandle(parentScript)
		if perr != nil {
			break
		}
		node = parent
	}
	if best != nil {
		log.Printf("🔍 Container inferred from markers (%d cards inside)", bestCount)
		return best, nil
	}
	return nil, nil
}

// refreshContainer re-acquires the container after a detachment. Only possible
// when a locator was configured; without one the caller falls back to the
// document scope.
func refreshContainer(sess Session, preferred string, tn Tuning) Element {
	if preferred == "" {
		return nil
	}
	el, err := sess.WaitFor(preferred, tn.RefreshWait)
	if err != nil {
		return nil
	}
	return el
}

// safeScope returns the container while it is still attached, nil otherwise.
func safeScope(container Element) Element {
	if container != nil && container.Attached() {
		return container
	}
	return nil
}
