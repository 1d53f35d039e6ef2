package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"go-glints-harvester/internal/scraper"
)

// Client is the interface for AI providers
type Client interface {
	// ClassifyJob labels one harvested job with a cluster, category,
	// seniority, work mode, languages, and a confidence score.
	ClassifyJob(ctx context.Context, job scraper.Job) (Classification, error)
}

// Classification is the labelling a provider returns for a single job.
type Classification struct {
	Cluster    string   `json:"cluster"`
	Category   string   `json:"category"`
	Seniority  string   `json:"seniority"`
	WorkMode   string   `json:"work_mode"`
	Languages  []string `json:"languages"`
	Confidence float64  `json:"confidence"`
}

// FallbackClassification marks a job the provider could not label.
// Confidence 0 lets downstream consumers filter unlabelled rows.
func FallbackClassification() Classification {
	return Classification{
		Cluster:    "Unknown",
		Category:   "Unknown",
		Seniority:  "Unknown",
		WorkMode:   "unknown",
		Languages:  []string{},
		Confidence: 0,
	}
}

// NewClient picks a provider from the configured Gemini key.
// Without a key the mock classifier keeps the pipeline runnable offline.
func NewClient(apiKey, model string) Client {
	if apiKey == "" {
		log.Printf("⚠️ GEMINI_API_KEY not set, using mock classifier")
		return NewMockClient()
	}
	log.Printf("🤖 Classifying jobs with Gemini model %s", model)
	return NewGeminiClient(apiKey, model)
}

// buildSystemPrompt creates the system instruction for the AI model
func buildSystemPrompt() string {
	return "You are a job-intelligence assistant. Given a job title, company, location, and optional tags/salary, " +
		"return a JSON with fields: cluster, category, seniority, work_mode (remote/onsite/hybrid/unknown), " +
		"languages (array of strings), and confidence (0-1). Use concise, consistent cluster names " +
		"(e.g., 'Social Media', 'Content', 'Graphic Design', 'Data', 'Sales', 'Customer Support', 'Engineering')."
}

// buildUserPrompt renders the job fields plus the output contract
func buildUserPrompt(job scraper.Job) string {
	return fmt.Sprintf(
		"TITLE: %s\nCOMPANY: %s\nLOCATION: %s\nSALARY: %s\nTAGS: %s\n\n"+
			"Return ONLY valid JSON with these keys: cluster, category, seniority, work_mode, languages, confidence.",
		orDash(job.Title),
		orDash(job.Company),
		orDash(job.Location),
		orDash(job.Salary),
		orDash(strings.Join(job.Tags, ", ")),
	)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// MockClient labels jobs with cheap keyword heuristics so the pipeline
// can run end to end without an API key.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) ClassifyJob(ctx context.Context, job scraper.Job) (Classification, error) {
	title := strings.ToLower(job.Title)

	cls := Classification{
		Cluster:    "Unknown",
		Category:   "Unknown",
		Seniority:  "Unknown",
		WorkMode:   "unknown",
		Languages:  []string{},
		Confidence: 0.4,
	}

	switch {
	case containsAny(title, "social media", "sosmed"):
		cls.Cluster = "Social Media"
	case containsAny(title, "content", "copywriter", "penulis"):
		cls.Cluster = "Content"
	case containsAny(title, "design", "desain", "graphic"):
		cls.Cluster = "Graphic Design"
	case containsAny(title, "data", "analyst", "analis"):
		cls.Cluster = "Data"
	case containsAny(title, "sales", "account executive"):
		cls.Cluster = "Sales"
	case containsAny(title, "customer", "support", "admin"):
		cls.Cluster = "Customer Support"
	case containsAny(title, "engineer", "developer", "programmer"):
		cls.Cluster = "Engineering"
	}

	switch {
	case containsAny(title, "senior", "sr."):
		cls.Seniority = "Senior"
	case containsAny(title, "junior", "jr."):
		cls.Seniority = "Junior"
	case containsAny(title, "lead", "head of"):
		cls.Seniority = "Lead"
	case containsAny(title, "intern", "magang"):
		cls.Seniority = "Internship"
	}

	haystack := strings.ToLower(job.Location + " " + strings.Join(job.Tags, " "))
	if strings.Contains(haystack, "remote") {
		cls.WorkMode = "remote"
	}

	return cls, nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
