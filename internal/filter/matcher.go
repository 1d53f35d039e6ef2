package filter

import (
	"strings"

	"go-glints-harvester/internal/scraper"
)

// ShouldNotify decides whether a harvested job is worth announcing.
// Exports always keep the full harvest; this gate only trims notifications.
func ShouldNotify(job scraper.Job, exclude []string, maxAgeDays int) bool {
	text := strings.ToLower(job.Title + " " + strings.Join(job.Tags, " "))

	//must not contain exclude keywords
	for _, kw := range exclude {
		if kw == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(kw)) {
			return false
		}
	}

	//must be recent enough when a cutoff is configured
	if maxAgeDays > 0 && !IsRecentJob(job.Posted, maxAgeDays) {
		return false
	}

	return true
}
