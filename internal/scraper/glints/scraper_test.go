package glints

import (
	"context"
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"

	"go-glints-harvester/internal/config"
)

//helper start mock browser, skipping when no runtime is installed
func setupPlaywright(t *testing.T) (*playwright.Playwright, playwright.Browser, playwright.Page) {
	pw, err := playwright.Run()
	if err != nil {
		t.Skipf("could not launch playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		t.Skipf("could not launch browser: %v", err)
	}
	page, err := browser.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		t.Fatalf("could not create page: %v", err)
	}
	return pw, browser, page
}

const mockListingHTML = `<html><body>
<div id="consent-banner">
  <p>Kami menggunakan cookie untuk meningkatkan pengalaman Anda.</p>
  <button onclick="document.getElementById('consent-banner').remove()">Terima</button>
</div>
<div id="shell">
  <div id="list">
    <div data-gtm-job-id="j-1">
      <a href="/id/opportunities/jobs/backend-engineer-1">Backend Engineer 1</a>
      <div data-cy="company_name_job_card"><a href="/id/companies/pt-maju-jaya">PT Maju Jaya</a></div>
      <div data-testid="location"><span>Jakarta Selatan, Jakarta · Indonesia</span></div>
      <div data-testid="salary">Rp5.000.000 - Rp7.000.000</div>
      <div data-testid="job-tag">Penuh Waktu</div>
      <div data-testid="job-tag">1 - 3 tahun</div>
      <div data-testid="updated-at">Diperbarui 2 hari yang lalu</div>
    </div>
    <div data-gtm-job-id="j-2">
      <a href="/id/opportunities/jobs/backend-engineer-2">Backend Engineer 2</a>
      <div data-cy="company_name_job_card"><a href="/id/companies/pt-sukses">PT Sukses Selalu</a></div>
      <div data-testid="location"><span>Bandung, Jawa Barat · Indonesia</span></div>
      <div data-testid="salary">Gaji Tidak Ditampilkan</div>
      <div data-testid="job-tag">Kontrak</div>
      <div data-testid="updated-at">Diperbarui sehari yang lalu</div>
    </div>
    <div data-gtm-job-id="j-3">
      <a href="/id/opportunities/jobs/backend-engineer-3">Backend Engineer 3</a>
      <div data-cy="company_name_job_card"><a href="/id/companies/pt-abadi">PT Abadi</a></div>
      <div data-testid="location"><span>All Cities/Provinces</span></div>
      <div data-testid="salary">Rp8jt - Rp10jt/bulan</div>
      <div data-testid="job-tag">Penuh Waktu</div>
      <div data-testid="updated-at">Diperbarui 3 hari yang lalu</div>
    </div>
  </div>
</div>
</body></html>`

func TestGlintsScraper_Scrape_Mock(t *testing.T) {
	pw, browser, page := setupPlaywright(t)
	defer pw.Stop()
	defer browser.Close()

	//route everything back to the canned listing so no real traffic leaves;
	//the fixture carries a consent banner the scraper must click through first
	page.Context().Route("**/*", func(route playwright.Route) {
		route.Fulfill(playwright.RouteFulfillOptions{
			Status:      playwright.Int(200),
			ContentType: playwright.String("text/html"),
			Body:        mockListingHTML,
		})
	})

	cfg := &config.Config{
		Keywords:         []string{"backend"},
		Country:          "ID",
		MaxScrollRounds:  5,
		ScrollStagnation: 2,
		ItemRetries:      2,
	}
	s := NewGlintsScraper(cfg)

	jobs, err := s.Scrape(context.Background(), page)

	assert.NoError(t, err)
	if assert.Len(t, jobs, 3) {
		first := jobs[0]
		assert.Equal(t, "Backend Engineer 1", first.Title)
		assert.Equal(t, "PT Maju Jaya", first.Company)
		assert.Equal(t, "Jakarta Selatan, Jakarta, Indonesia", first.Location)
		assert.Equal(t, "Rp5.000.000 - Rp7.000.000", first.Salary)
		assert.Equal(t, "https://glints.com/id/opportunities/jobs/backend-engineer-1", first.Link)
		assert.Equal(t, []string{"Penuh Waktu", "1 - 3 tahun"}, first.Tags)
		assert.Equal(t, "Diperbarui 2 hari yang lalu", first.Posted)
		assert.Equal(t, "backend", first.Keyword)
		assert.Equal(t, "glints", first.Source)

		assert.Equal(t, "Gaji Tidak Ditampilkan", jobs[1].Salary)
		//the catch-all location placeholder should vanish entirely
		assert.Equal(t, "", jobs[2].Location)
		assert.Equal(t, "Rp8jt - Rp10jt", jobs[2].Salary)
	}
}

func TestAcceptConsent(t *testing.T) {
	pw, browser, page := setupPlaywright(t)
	defer pw.Stop()
	defer browser.Close()

	err := page.SetContent(`<div id="consent-banner">
		<button onclick="document.getElementById('consent-banner').remove()">Terima</button>
	</div>`)
	assert.NoError(t, err)

	acceptConsent(page)

	count, err := page.Locator("#consent-banner").Count()
	assert.NoError(t, err)
	assert.Equal(t, 0, count, "banner should be gone after the click")
}

func TestSearchURL(t *testing.T) {
	got := searchURL("social media specialist", "ID")
	want := "https://glints.com/id/opportunities/jobs/explore?keyword=social+media+specialist&country=ID&locationName=All+Cities%2FProvinces&lowestLocationLevel=1"
	if got != want {
		t.Errorf("searchURL = %q, want %q", got, want)
	}
	if strings.Contains(got, " ") {
		t.Errorf("searchURL should never contain raw spaces: %q", got)
	}
}

//integration test: run against real site
func TestGlintsScraper_Scrape_Real(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	pw, browser, page := setupPlaywright(t)
	defer pw.Stop()
	defer browser.Close()

	cfg := &config.Config{
		Keywords:         []string{"social media specialist"},
		Country:          "ID",
		ContainerXPath:   config.DefaultContainerXPath,
		MaxScrollRounds:  10,
		ScrollStagnation: 3,
		ItemRetries:      3,
	}
	s := NewGlintsScraper(cfg)

	jobs, err := s.Scrape(context.Background(), page)

	assert.NoError(t, err)
	for _, job := range jobs {
		assert.Equal(t, "glints", job.Source)
		assert.NotEmpty(t, job.Link)
	}
}
