package glints

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/playwright-community/playwright-go"

	"go-glints-harvester/internal/config"
	"go-glints-harvester/internal/harvest"
	"go-glints-harvester/internal/normalize"
	"go-glints-harvester/internal/scraper"
	"go-glints-harvester/utils"
)

//consentLabels covers the banner variants Glints serves, Indonesian first
var consentLabels = []string{"Terima", "Setuju", "Accept all", "Accept All", "Saya setuju", "Allow all"}

type GlintsScraper struct {
	cfg *config.Config
}

func NewGlintsScraper(cfg *config.Config) *GlintsScraper {
	return &GlintsScraper{
		cfg: cfg,
	}
}

func (s *GlintsScraper) Name() string {
	return "glints"
}

// searchURL builds the explore URL for one keyword. Spaces become plus
// signs, matching the form encoding the site itself produces.
func searchURL(keyword, country string) string {
	return fmt.Sprintf(
		"https://glints.com/id/opportunities/jobs/explore?keyword=%s&country=%s&locationName=All+Cities%%2FProvinces&lowestLocationLevel=1",
		url.QueryEscape(keyword), url.QueryEscape(country),
	)
}

func (s *GlintsScraper) Scrape(ctx context.Context, page playwright.Page) ([]scraper.Job, error) {
	var allJobs []scraper.Job
	log.Println("📋 Searching Glints...")

	//initialize screenshot debugger
	screenshotDebugger := utils.NewScreenShotDebugger()

	//each keyword gets its own tab so a broken page never poisons the next search
	for _, keyword := range s.cfg.Keywords {
		select {
		case <-ctx.Done():
			return allJobs, ctx.Err()
		default:
		}

		jobs, err := s.scrapeKeyword(ctx, page.Context(), keyword, screenshotDebugger)
		if err != nil {
			log.Printf("⚠️ Keyword %q failed: %v", keyword, err)
			continue
		}
		allJobs = append(allJobs, jobs...)
	}

	return allJobs, nil
}

func (s *GlintsScraper) scrapeKeyword(ctx context.Context, browserCtx playwright.BrowserContext, keyword string, dbg *utils.ScreenShotDebugger) ([]scraper.Job, error) {
	tab, err := browserCtx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open tab: %w", err)
	}
	defer tab.Close()

	target := searchURL(keyword, s.cfg.Country)
	log.Printf("  🔍 Searching: %s", keyword)

	if _, err := tab.Goto(target, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(45000),
	}); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", target, err)
	}

	//let the shell render before poking at it
	utils.RandomDelay(1000, 1600)
	acceptConsent(tab)

	//human behavior
	utils.MouseJiggle(tab)
	utils.SmoothScroll(tab)
	utils.RandomDelay(500, 1000)

	h := harvest.New(s.containerLocator(), s.Name())
	h.Tuning.MaxScrollRounds = s.cfg.MaxScrollRounds
	h.Tuning.StagnationLimit = s.cfg.ScrollStagnation
	h.Tuning.ItemRetries = s.cfg.ItemRetries

	jobs, err := h.Run(ctx, harvest.NewPageSession(tab), keyword)
	if err != nil {
		dbg.CaptureAndLog(tab, "glints-"+normalize.Slugify(keyword), fmt.Sprintf("🚨 Glints: harvest failed for %q", keyword))
		return nil, err
	}
	if len(jobs) == 0 {
		dbg.CaptureAndLog(tab, "glints-empty-"+normalize.Slugify(keyword), fmt.Sprintf("⚠️ Glints: no cards harvested for %q", keyword))
	}
	return jobs, nil
}

func (s *GlintsScraper) containerLocator() string {
	if s.cfg.ContainerXPath == "" {
		return ""
	}
	return "xpath=" + s.cfg.ContainerXPath
}

//acceptConsent clicks whichever cookie banner button shows up, if any
func acceptConsent(page playwright.Page) {
	for _, label := range consentLabels {
		btn := page.Locator(fmt.Sprintf("button:has-text(%q)", label)).First()
		visible, err := btn.IsVisible()
		if err != nil || !visible {
			continue
		}
		if err := btn.Click(playwright.LocatorClickOptions{
			Timeout: playwright.Float(2000),
		}); err == nil {
			log.Printf("  🍪 Dismissed consent banner via %q", label)
			utils.RandomDelay(300, 600)
			return
		}
	}
}
