// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"go-glints-harvester/internal/normalize"
)

// DefaultContainerXPath pins the job list wrapper on the Glints explore page.
// Layout shifts make it drift over time, so the harvester falls back to marker
// inference whenever it stops matching.
const DefaultContainerXPath = "/html/body/div[2]/div/div[1]/div[2]/div[2]/div[2]/div[4]/div[2]/div[1]"

type Config struct {
	Keywords []string `yaml:"keywords"`
	Country  string   `yaml:"country"`
	Headless bool     `yaml:"headless"`

	//Harvest behavior
	ContainerXPath   string `yaml:"container_xpath"`
	MaxScrollRounds  int    `yaml:"max_scroll_rounds"`
	ScrollStagnation int    `yaml:"scroll_stagnation"`
	ItemRetries      int    `yaml:"item_retries"`

	//Paths
	CookiesPath string `yaml:"cookies_path"`
	CachePath   string `yaml:"cache_path"`
	OutPrefix   string `yaml:"out_prefix"`

	//Enrichment (optional)
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	GeminiModel  string `yaml:"gemini_model"`

	//Notifications (optional)
	TelegramToken    string   `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64    `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	ExcludeKeywords  []string `yaml:"exclude_keywords"`
	NotifyMaxAgeDays int      `yaml:"notify_max_age_days"`

	//Persistence (optional)
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`
	ServerPort  string `yaml:"server_port" env:"PORT"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Headless must default to true, preset before yaml so the file can still say no
	cfg := &Config{Headless: true}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if kw := os.Getenv("KEYWORDS"); kw != "" {
		cfg.Keywords = normalize.ParseKeywords(kw)
	}

	if c := os.Getenv("COUNTRY"); c != "" {
		cfg.Country = c
	}

	if h := os.Getenv("HEADLESS"); h != "" {
		v, err := strconv.ParseBool(h)
		if err != nil {
			log.Fatalf("Invalid HEADLESS: %v", err)
		}
		cfg.Headless = v
	}

	if xp := os.Getenv("CONTAINER_XPATH"); xp != "" {
		cfg.ContainerXPath = xp
	}

	if p := os.Getenv("COOKIES"); p != "" {
		cfg.CookiesPath = p
	}

	if p := os.Getenv("OUT_PREFIX"); p != "" {
		cfg.OutPrefix = p
	}

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.GeminiAPIKey = k
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	if ex := os.Getenv("EXCLUDE_KEYWORDS"); ex != "" {
		cfg.ExcludeKeywords = normalize.ParseKeywords(ex)
	}

	if d := os.Getenv("NOTIFY_MAX_AGE_DAYS"); d != "" {
		days, err := strconv.Atoi(d)
		if err != nil {
			log.Fatalf("Invalid NOTIFY_MAX_AGE_DAYS: %v", err)
		}
		cfg.NotifyMaxAgeDays = days
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.DatabaseURL = dsn
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.ServerPort = port
	}

	//Set default values if not set
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = []string{"social media specialist"}
	}

	if cfg.Country == "" {
		cfg.Country = "ID"
	}

	if cfg.ContainerXPath == "" {
		cfg.ContainerXPath = DefaultContainerXPath
	}

	if cfg.MaxScrollRounds <= 0 {
		cfg.MaxScrollRounds = 100
	}

	if cfg.ScrollStagnation <= 0 {
		cfg.ScrollStagnation = 3
	}

	if cfg.ItemRetries <= 0 {
		cfg.ItemRetries = 3
	}

	if cfg.CachePath == "" {
		cfg.CachePath = ".cache/seen_jobs.json"
	}

	if cfg.OutPrefix == "" {
		cfg.OutPrefix = "out/glints_jobs"
	}

	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.5-flash"
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}

	//Cookies, Gemini, Telegram and the database are optional extras
	if cfg.TelegramToken == "" || cfg.TelegramChatID == 0 {
		log.Println("⚠️ Telegram not configured, notifications disabled")
	}

	if cfg.DatabaseURL == "" {
		log.Println("⚠️ DATABASE_URL not set, persistence disabled")
	}

	return cfg
}
