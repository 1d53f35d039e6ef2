package harvest

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"go-glints-harvester/internal/normalize"
	"go-glints-harvester/internal/scraper"
)

// Harvester walks one live list and returns the jobs it rendered. One
// Harvester per site binding; Run is called once per keyword on a page that
// already shows the list.
type Harvester struct {
	// ContainerLocator optionally pins the list container, e.g.
	// "xpath=/html/body/div[2]/...". Empty means infer from card markers.
	ContainerLocator string

	// Source is stamped into every record.
	Source string

	Tuning Tuning
}

func New(locator, source string) *Harvester {
	return &Harvester{
		ContainerLocator: locator,
		Source:           source,
		Tuning:           DefaultTuning(),
	}
}

// Run harvests every card currently reachable in the list: wait for cards,
// resolve the container, scroll to saturation, then snapshot each position.
// The returned jobs are normalized, unique by link, in DOM visitation order.
func (h *Harvester) Run(ctx context.Context, sess Session, keyword string) ([]scraper.Job, error) {
	tn := h.Tuning

	present := waitForItems(ctx, sess, tn)
	log.Printf("🃏 Cards present before scroll: %d", present)

	container, err := locate(sess, h.ContainerLocator, tn)
	if err != nil {
		return nil, err
	}
	if container == nil {
		log.Printf("🔍 No container matched, operating document-wide")
	} else if !container.Attached() {
		container = refreshContainer(sess, h.ContainerLocator, tn)
	}

	if present == 0 && countItems(sess, container) == 0 {
		log.Printf("⚠️ No cards rendered for %q, nothing to harvest", keyword)
		return nil, nil
	}

	scrollUntilStable(ctx, sess, container, tn)

	cards, container := collectItems(sess, container, h.ContainerLocator, tn)
	total := len(cards)
	log.Printf("📦 Total cards found: %d", total)

	seen := mapset.NewSet[string]()
	jobs := make([]scraper.Job, 0, total)
	skipped := 0
	for idx := 0; idx < total; idx++ {
		if ctx.Err() != nil {
			return jobs, ctx.Err()
		}

		snap, ok := snapshotAt(sess, container, cards[idx], idx, tn.ItemRetries)
		if !ok {
			skipped++
			continue
		}

		job := h.record(snap, keyword)
		if job.Title == "" || job.Link == "" || !seen.Add(job.Link) {
			skipped++
			continue
		}
		jobs = append(jobs, job)
	}

	if skipped > 0 {
		log.Printf("⚠️ %d cards skipped (stale, incomplete, or duplicate)", skipped)
	}
	log.Printf("✅ %q: %d jobs harvested", keyword, len(jobs))
	return jobs, nil
}

// snapshotAt extracts the card at idx, re-resolving the handle by position on
// every staleness hit. False means the position was given up on.
func snapshotAt(sess Session, container Element, card Element, idx, retries int) (RawSnapshot, bool) {
	for attempt := 0; attempt < retries; attempt++ {
		if card == nil {
			card = itemAt(sess, container, idx)
			if card == nil {
				log.Printf("⚠️ Card %d vanished, skipping", idx)
				return RawSnapshot{}, false
			}
		}

		snap, err := Snapshot(card)
		if err == nil {
			return snap, true
		}
		if !errors.Is(err, ErrStale) {
			log.Printf("⚠️ Card %d unreadable: %v", idx, err)
			return RawSnapshot{}, false
		}

		card = itemAt(sess, container, idx)
		time.Sleep(time.Duration(100+100*attempt) * time.Millisecond)
	}
	log.Printf("⚠️ Card %d still stale after %d attempts, skipping", idx, retries)
	return RawSnapshot{}, false
}

// record turns a raw snapshot into the output shape. Title is cleaned first
// because salary scrubbing needs it.
func (h *Harvester) record(snap RawSnapshot, keyword string) scraper.Job {
	title := normalize.FlattenSpace(snap.Title)

	tags := make([]string, 0, len(snap.Tags))
	for _, tag := range snap.Tags {
		if t := normalize.FlattenSpace(tag); t != "" {
			tags = append(tags, t)
		}
	}

	return scraper.Job{
		Title:    title,
		Company:  normalize.FlattenSpace(snap.Company),
		Location: strings.Join(normalize.Locations(snap.Locations), ", "),
		Salary:   normalize.CleanSalary(snap.Salary, title),
		Tags:     tags,
		Link:     normalize.AbsoluteLink(snap.Link),
		Posted:   normalize.FlattenSpace(snap.UpdatedAt),
		Keyword:  keyword,
		Source:   h.Source,
	}
}

// waitForItems polls the document until MinItems cards exist or ItemsWait runs
// out. Harvesting proceeds either way; the count is informational.
func waitForItems(ctx context.Context, sess Session, tn Tuning) int {
	deadline := time.Now().Add(tn.ItemsWait)
	last := 0
	for time.Now().Before(deadline) {
		if ctx.Err() != nil {
			return last
		}
		count := 0
		if cards, err := sess.Query(countMarker); err == nil {
			count = len(cards)
		}
		if count >= tn.MinItems {
			return count
		}
		if count > last {
			last = count
			time.Sleep(600 * time.Millisecond)
		} else {
			time.Sleep(800 * time.Millisecond)
		}
	}
	return last
}
