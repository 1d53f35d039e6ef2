package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-glints-harvester/internal/ai"
	"go-glints-harvester/internal/browser"
	"go-glints-harvester/internal/config"
	"go-glints-harvester/internal/database"
	"go-glints-harvester/internal/dedup"
	"go-glints-harvester/internal/export"
	"go-glints-harvester/internal/filter"
	"go-glints-harvester/internal/scraper"
	"go-glints-harvester/internal/scraper/glints"
	"go-glints-harvester/internal/telegram"
	"go-glints-harvester/utils"
)

func main() {
	//load config
	cfg := config.Load()
	log.Printf("🔧 Config loaded. Keywords: %v", cfg.Keywords)

	//init telegram bot when configured
	var bot *telegram.Bot
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		var err error
		bot, err = telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("❌ Failed to init Telegram Bot: %v", err)
		}
		log.Println("🤖 Telegram Bot initialized.")
	}

	//setup context with timeout = 30 mins
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	log.Println("🚀 Starting Glints harvester...")

	//init playwright manager
	pwManager, err := browser.NewPlaywright(cfg.Headless)
	if err != nil {
		log.Fatalf("❌ Failed to init Playwright: %v", err)
	}
	//close playwright manager when application stops
	defer pwManager.Close()

	//load cookies (file path with JSON/JSONL/Netscape content, or a raw Cookie header)
	cookies, err := browser.LoadCookies(cfg.CookiesPath)
	if err != nil {
		log.Printf("⚠️ Could not load cookies: %v. Continuing without them.", err)
	} else if len(cookies) > 0 {
		log.Printf("🍪 Loaded %d cookies", len(cookies))
	}

	//create new browser context with cookies
	browserCtx, err := pwManager.NewContext(cookies)
	if err != nil {
		log.Fatalf("❌ Failed to create browser context: %v", err)
	}

	//create new page
	page, err := browserCtx.NewPage()
	if err != nil {
		log.Fatalf("❌ Failed to create new page: %v", err)
	}
	log.Println("✅ Browser initialized successfully!")

	//initialize scrapers
	scrapers := []scraper.Scraper{
		glints.NewGlintsScraper(cfg),
	}

	//run scrapers loop
	var allJobs []scraper.Job
	for _, s := range scrapers {
		log.Printf("▶️ Starting scraper: %s", s.Name())
		jobs, err := s.Scrape(ctx, page)
		if err != nil {
			log.Printf("❌ Error running scraper %s: %v", s.Name(), err)
			if bot != nil {
				bot.SendError(fmt.Errorf("scraper %s: %w", s.Name(), err))
			}
			continue
		}
		log.Printf("✅ Scraper %s finished. Found %d jobs.", s.Name(), len(jobs))
		allJobs = append(allJobs, jobs...)
	}

	log.Printf("📦 Total jobs collected: %d", len(allJobs))

	//classify every job, falling back to an Unknown label when the provider fails
	client := ai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	records := make([]export.Record, 0, len(allJobs))
	for _, job := range allJobs {
		cls, err := client.ClassifyJob(ctx, job)
		if err != nil {
			log.Printf("⚠️ Classification failed for %q: %v", job.Title, err)
			cls = ai.FallbackClassification()
		}
		records = append(records, export.Record{Job: job, Classification: cls})
		utils.RandomDelay(200, 450)
	}

	//write one CSV and one JSONL per keyword
	counts := make(map[string]int, len(cfg.Keywords))
	for _, keyword := range cfg.Keywords {
		var batch []export.Record
		for _, rec := range records {
			if rec.Keyword == keyword {
				batch = append(batch, rec)
			}
		}
		counts[keyword] = len(batch)

		if len(batch) == 0 {
			log.Printf("⏭️ No jobs for %q, skipping export", keyword)
			continue
		}

		csvPath, jsonlPath := export.Paths(cfg.OutPrefix, keyword)
		if err := export.WriteCSV(csvPath, batch); err != nil {
			log.Printf("⚠️ Failed to write %s: %v", csvPath, err)
		} else {
			log.Printf("📁 Saved %d jobs to %s", len(batch), csvPath)
		}
		if err := export.WriteJSONL(jsonlPath, batch); err != nil {
			log.Printf("⚠️ Failed to write %s: %v", jsonlPath, err)
		} else {
			log.Printf("📁 Saved %d jobs to %s", len(batch), jsonlPath)
		}

		printSummary(batch)
	}

	//recap across keywords
	if len(cfg.Keywords) > 1 {
		log.Printf("=== RECAP ===")
		for _, keyword := range cfg.Keywords {
			log.Printf("  - %q: %d jobs", keyword, counts[keyword])
		}
		log.Printf("TOTAL: %d jobs", len(records))
	}

	//persist to Postgres when configured
	if cfg.DatabaseURL != "" {
		repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("⚠️ Database unavailable: %v", err)
		} else {
			defer repo.Close()
			if err := repo.EnsureSchema(ctx); err != nil {
				log.Printf("⚠️ Could not apply database schema: %v", err)
			}
			saved := 0
			for _, rec := range records {
				if _, err := repo.SaveJob(ctx, rec); err != nil {
					log.Printf("⚠️ Failed to save %q: %v", rec.Title, err)
					continue
				}
				saved++
			}
			log.Printf("🗄️ Saved %d/%d jobs to database", saved, len(records))
		}
	}

	//dedup against earlier runs so Telegram only hears about new listings
	jobCache := dedup.NewJobCache(cfg.CachePath)
	var unseen []export.Record
	for _, rec := range records {
		if !jobCache.IsSeen(rec.Link) {
			unseen = append(unseen, rec)
		}
	}
	log.Printf("🔍 Deduplication: %d total -> %d unseen jobs", len(records), len(unseen))

	var unseenLinks []string
	for _, rec := range unseen {
		unseenLinks = append(unseenLinks, rec.Link)
	}
	jobCache.Add(unseenLinks)

	//start sending jobs to telegram, muting excluded or stale listings
	if bot != nil && len(unseen) > 0 {
		var toSend []export.Record
		for _, rec := range unseen {
			if !filter.ShouldNotify(rec.Job, cfg.ExcludeKeywords, cfg.NotifyMaxAgeDays) {
				continue
			}
			toSend = append(toSend, rec)
		}
		if muted := len(unseen) - len(toSend); muted > 0 {
			log.Printf("🔇 Notification filters muted %d of %d new jobs", muted, len(unseen))
		}

		log.Printf("📊 Sending %d new jobs to Telegram", len(toSend))
		for _, rec := range toSend {
			log.Printf("  ✉️ %s @ %s", rec.Title, rec.Company)
			if err := bot.SendJob(rec); err != nil {
				log.Printf("⚠️ Failed to send job to Telegram: %v", err)
			}
			//1 second delay to avoid 429
			time.Sleep(1 * time.Second)
		}
		statusMsg := fmt.Sprintf("✅ Harvest finished: %d jobs, %d new.", len(records), len(unseen))
		if err := bot.SendStatus(statusMsg); err != nil {
			log.Printf("⚠️ Failed to send status to Telegram: %v", err)
		}
	}

	log.Println("🏁 Execution finished.")
}

func printSummary(records []export.Record) {
	log.Printf("=== SUMMARY ===")
	log.Printf("Total jobs: %d", len(records))
	for i, cc := range export.ClusterCounts(records) {
		if i >= 10 {
			break
		}
		log.Printf("  - %s: %d", cc.Cluster, cc.Count)
	}
}
