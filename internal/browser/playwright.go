package browser

import (
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"
)

// The UA and window size Glints sees. The tall window makes the virtualized
// list mount more cards per scroll position.
const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	windowWidth  = 1600
	windowHeight = 4000
)

type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewPlaywright(headless bool) (*PlaywrightManager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-gpu",
			"--no-sandbox",
			"--disable-dev-shm-usage",
			fmt.Sprintf("--window-size=%d,%d", windowWidth, windowHeight),
			"--lang=id-ID,id",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch chromium browser: %w", err)
	}

	return &PlaywrightManager{pw: pw, browser: browser}, nil
}

// NewContext builds a browsing context with the locale the site serves and
// injects session cookies when given. Cookie errors are logged, not fatal: an
// anonymous session still sees the public listings.
func (pm *PlaywrightManager) NewContext(cookies []playwright.OptionalCookie) (playwright.BrowserContext, error) {
	browserCtx, err := pm.browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(userAgent),
		Locale:    playwright.String("id-ID"),
		Viewport: &playwright.Size{
			Width:  windowWidth,
			Height: windowHeight,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	if len(cookies) > 0 {
		if err := browserCtx.AddCookies(cookies); err != nil {
			log.Printf("⚠️ Could not inject cookies: %v", err)
		} else {
			log.Printf("🍪 Injected %d cookies", len(cookies))
		}
	}

	return browserCtx, nil
}

func (pm *PlaywrightManager) Close() error {
	if pm.browser != nil {
		if err := pm.browser.Close(); err != nil {
			return err
		}
	}
	return pm.pw.Stop()
}
