package harvest

import (
	"errors"
	"time"
)

// collectItems grabs the current card handles in DOM order. A stale container
// is re-acquired between attempts; the document scope is the hard fallback.
// Returns the handles plus the container actually used, which may have been
// refreshed.
func collectItems(sess Session, container Element, preferred string, tn Tuning) ([]Element, Element) {
	for attempt := 0; attempt < tn.ItemRetries; attempt++ {
		if container != nil && !container.Attached() {
			container = refreshContainer(sess, preferred, tn)
		}

		var (
			cards []Element
			err   error
		)
		if container != nil {
			cards, err = container.Query(itemMarker)
		} else {
			cards, err = sess.Query(itemMarker)
		}
		if err == nil {
			return cards, container
		}
		if errors.Is(err, ErrStale) {
			container = refreshContainer(sess, preferred, tn)
			time.Sleep(time.Duration(200+200*attempt) * time.Millisecond)
			continue
		}
		break
	}

	cards, err := sess.Query(itemMarker)
	if err != nil {
		return nil, container
	}
	return cards, container
}

// itemAt re-resolves the card at idx under the current scope. The index is the
// one stable coordinate across re-renders; nil means the list shrank below it.
func itemAt(sess Session, container Element, idx int) Element {
	if container != nil && container.Attached() {
		cards, err := container.Query(itemMarker)
		if err != nil || idx >= len(cards) {
			return nil
		}
		return cards[idx]
	}
	cards, err := sess.Query(itemMarker)
	if err != nil || idx >= len(cards) {
		return nil
	}
	return cards[idx]
}
