package utils

import (
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// RandomDelay sleeps between min and max milliseconds. A window of zero (or
// min >= max) degrades to a fixed min sleep, which is how tests disable jitter.
func RandomDelay(min, max int) {
	ms := min
	if max > min {
		ms += rand.Intn(max - min)
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// MouseJiggle wanders the cursor to a random point over the listing area.
func MouseJiggle(page playwright.Page) {
	x := 100 + rand.Float64()*800
	y := 100 + rand.Float64()*600

	//hop through a midpoint instead of teleporting
	page.Mouse().Move(x*0.6, y*0.6)
	RandomDelay(40, 120)
	page.Mouse().Move(x, y)
	RandomDelay(100, 300)
}

// SmoothScroll drifts down the page with a small upward correction, then jumps
// to the document end so the virtualized list starts mounting rows.
func SmoothScroll(page playwright.Page) {
	page.Mouse().Wheel(0, float64(300+rand.Intn(400)))
	RandomDelay(400, 900)

	page.Mouse().Wheel(0, float64(-(120 + rand.Intn(160))))
	RandomDelay(300, 700)

	page.Evaluate("window.scrollTo(0, document.documentElement.scrollHeight)")
}
