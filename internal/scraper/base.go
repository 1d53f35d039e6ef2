// Define an interface for all scrapers
// Ensure consistency

package scraper

import (
	"context"

	"github.com/playwright-community/playwright-go"
)

type Job struct {
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Location string   `json:"location"`
	Salary   string   `json:"salary"`
	Tags     []string `json:"tags"`
	Link     string   `json:"link"`
	Posted   string   `json:"posted"`
	Keyword  string   `json:"keyword"`
	Source   string   `json:"source"`
}

//Scraper defines the interface that all platform scrapers must implement
type Scraper interface {
	//Scrape jobs from the platform
	Scrape(ctx context.Context, page playwright.Page) ([]Job, error)

	//Name is the platform name
	Name() string
}
