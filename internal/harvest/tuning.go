package harvest

import "time"

// Tuning bundles every pacing and retry knob. Zero pauses are legal, which is
// what the tests use to run the full loop instantly.
type Tuning struct {
	// One perturbation round scrolls forward by ForwardFraction of the
	// scroller's clientHeight, back up by BackPixels, then forward again by
	// SettleFraction. The jiggle makes virtualized lists re-render rows that
	// a single big jump would leave unmounted.
	ForwardFraction float64
	BackPixels      int
	SettleFraction  float64

	// Jittered pauses in milliseconds: long after each forward hop, short
	// after the backward hop.
	LongPauseMin  int
	LongPauseMax  int
	ShortPauseMin int
	ShortPauseMax int

	// The loop stops after MaxScrollRounds, or earlier once the card count
	// has grown by less than MinGrowth for StagnationLimit rounds in a row.
	MaxScrollRounds int
	MinGrowth       int
	StagnationLimit int

	// ItemRetries bounds positional re-resolution attempts per card.
	ItemRetries int

	ContainerWait time.Duration // configured locator
	MarkerWait    time.Duration // first card marker fallback
	RefreshWait   time.Duration // container re-acquisition mid-run
	ItemsWait     time.Duration // pre-scroll poll for MinItems cards
	MinItems      int
}

func DefaultTuning() Tuning {
	return Tuning{
		ForwardFraction: 0.92,
		BackPixels:      120,
		SettleFraction:  0.98,
		LongPauseMin:    350,
		LongPauseMax:    600,
		ShortPauseMin:   120,
		ShortPauseMax:   250,
		MaxScrollRounds: 100,
		MinGrowth:       1,
		StagnationLimit: 3,
		ItemRetries:     3,
		ContainerWait:   8 * time.Second,
		MarkerWait:      25 * time.Second,
		RefreshWait:     5 * time.Second,
		ItemsWait:       20 * time.Second,
		MinItems:        2,
	}
}
