package main

import (
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"

	"go-glints-harvester/internal/browser"
)

func main() {
	fmt.Println("🌐 Testing Browser Manager...")

	//create playwright manager
	pm, err := browser.NewPlaywright(true)
	if err != nil {
		log.Fatalf("Failed to create Playwright: %v", err)
	}
	defer pm.Close()

	fmt.Println("✅ Playwright started")

	//load cookies
	cookies, err := browser.LoadCookies(".cookies/cookies-glints.json")
	if err != nil {
		log.Printf("⚠️ Could not load cookies: %v. Continuing without them.", err)
	}

	fmt.Printf("✅ Loaded %d cookies\n", len(cookies))

	//create context with cookies
	browserCtx, err := pm.NewContext(cookies)
	if err != nil {
		log.Fatalf("Failed to create context: %v", err)
	}
	defer browserCtx.Close()

	fmt.Println("✅ Browser context created")

	//create page and navigate
	page, err := browserCtx.NewPage()
	if err != nil {
		log.Fatalf("Failed to create page: %v", err)
	}

	fmt.Println("🔍 Navigating to Glints...")
	_, err = page.Goto("https://glints.com/id/opportunities/jobs/explore?keyword=social+media+specialist&country=ID")
	if err != nil {
		log.Fatalf("Failed to navigate: %v", err)
	}

	title, _ := page.Title()
	fmt.Printf("✅ Page title: %s\n", title)

	//count whatever cards rendered without scrolling
	count, _ := page.Locator("[data-gtm-job-id], [data-testid='opportunity-card']").Count()
	fmt.Printf("🃏 Visible job cards: %d\n", count)

	//take screenshot
	_, err = page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String("glints-test.png"),
	})
	if err != nil {
		log.Printf("⚠️ Screenshot failed: %v", err)
	} else {
		fmt.Println("📸 Screenshot saved to glints-test.png")
	}
}
