package main

import (
	"fmt"

	"go-glints-harvester/internal/config"
)

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg := config.Load()
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Keywords: %v\n", cfg.Keywords)
	fmt.Printf("   Country: %s\n", cfg.Country)
	fmt.Printf("   Headless: %t\n", cfg.Headless)
	fmt.Printf("   Container XPath: %s\n", cfg.ContainerXPath)
	fmt.Printf("   Scroll rounds: %d (stagnation %d)\n", cfg.MaxScrollRounds, cfg.ScrollStagnation)
	fmt.Printf("   Cookies: %s\n", cfg.CookiesPath)
	fmt.Printf("   Output prefix: %s\n", cfg.OutPrefix)
	fmt.Printf("   Gemini model: %s\n", cfg.GeminiModel)
	fmt.Printf("   Notify filters: exclude=%v, max age %d days\n", cfg.ExcludeKeywords, cfg.NotifyMaxAgeDays)
	if cfg.TelegramToken != "" {
		fmt.Printf("   Telegram chat ID: %d\n", cfg.TelegramChatID)
	}
}
