package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"go-glints-harvester/internal/ai"
	"go-glints-harvester/internal/database"
	"go-glints-harvester/internal/export"
	"go-glints-harvester/internal/scraper"
	"go-glints-harvester/internal/telegram"
)

// Pushes one fake record through the database and Telegram, end to end.
func main() {
	if err := godotenv.Load(".env"); err != nil {
		godotenv.Load("../../.env")
	}

	dbURL := os.Getenv("DATABASE_URL")
	tgToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")

	if dbURL == "" || tgToken == "" || chatIDStr == "" {
		log.Fatal("Missing DATABASE_URL, TELEGRAM_BOT_TOKEN, or TELEGRAM_CHAT_ID")
	}

	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
	}

	// 1. Connect DB
	ctx := context.Background()
	repo, err := database.ConnectDB(ctx, dbURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("Schema apply failed: %v", err)
	}

	// 2. Build a fake record to push through the pipeline
	rec := export.Record{
		Job: scraper.Job{
			Title:    "E2E Test Specialist",
			Company:  "PT Uji Coba",
			Location: "Jakarta Selatan, Jakarta, Indonesia",
			Salary:   "Rp5.000.000 - Rp7.000.000",
			Tags:     []string{"Penuh Waktu"},
			Link:     "https://glints.com/id/opportunities/jobs/e2e-test",
			Posted:   "Diperbarui hari ini",
			Keyword:  "e2e test",
			Source:   "glints",
		},
		Classification: ai.Classification{
			Cluster:    "Social Media",
			Category:   "Marketing",
			Seniority:  "Mid",
			WorkMode:   "onsite",
			Languages:  []string{"Indonesian"},
			Confidence: 0.9,
		},
	}

	// 3. Save and read back
	stored, err := repo.SaveJob(ctx, rec)
	if err != nil {
		log.Fatalf("SaveJob failed: %v", err)
	}
	fmt.Printf("✅ Saved job %s\n", stored.ID)

	recent, err := repo.RecentJobs(ctx, rec.Keyword, 5)
	if err != nil {
		log.Fatalf("RecentJobs failed: %v", err)
	}
	fmt.Printf("✅ RecentJobs returned %d rows\n", len(recent))

	// 4. Announce it on Telegram
	bot, err := telegram.NewBot(tgToken, chatID)
	if err != nil {
		log.Fatalf("Telegram init failed: %v", err)
	}
	if err := bot.SendJob(rec); err != nil {
		log.Fatalf("SendJob failed: %v", err)
	}

	fmt.Println("🏁 E2E check finished.")
}
