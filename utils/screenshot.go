package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ScreenShotDebugger drops full-page captures of failed or empty harvests
// under logs/screenshots.
type ScreenShotDebugger struct {
	dir string
}

func NewScreenShotDebugger() *ScreenShotDebugger {
	return &ScreenShotDebugger{dir: filepath.Join("logs", "screenshots")}
}

// CaptureAndLog saves a dated PNG named after the failing harvest and logs the
// reason alongside it. The directory is created on first capture.
func (s *ScreenShotDebugger) CaptureAndLog(page playwright.Page, name, message string) error {
	log.Printf("📸 %s", message)

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		log.Printf("⚠️ Could not create %s: %v", s.dir, err)
		return err
	}

	dest := filepath.Join(s.dir, fmt.Sprintf("%s_%s.png", name, time.Now().Format("20060102-150405")))
	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(dest),
		FullPage: playwright.Bool(true),
	}); err != nil {
		log.Printf("⚠️ Failed to capture screenshot: %v", err)
		return err
	}

	log.Printf("🖼️ Saved %s", dest)
	return nil
}
