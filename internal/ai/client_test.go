package ai

import (
	"context"
	"strings"
	"testing"

	"go-glints-harvester/internal/scraper"
)

func TestNewClientPicksProvider(t *testing.T) {
	if _, ok := NewClient("", "gemini-2.5-flash").(*MockClient); !ok {
		t.Fatalf("expected mock client when no API key is configured")
	}
	if _, ok := NewClient("some-key", "gemini-2.5-flash").(*geminiClient); !ok {
		t.Fatalf("expected gemini client when an API key is configured")
	}
}

func TestMockClassifyHeuristics(t *testing.T) {
	tests := []struct {
		title     string
		location  string
		cluster   string
		seniority string
		workMode  string
	}{
		{"Social Media Specialist", "Jakarta", "Social Media", "Unknown", "unknown"},
		{"Senior Backend Engineer", "Remote, Indonesia", "Engineering", "Senior", "remote"},
		{"Junior Graphic Designer", "Bandung", "Graphic Design", "Junior", "unknown"},
		{"Data Analyst Intern", "Surabaya", "Data", "Internship", "unknown"},
		{"Copywriter", "", "Content", "Unknown", "unknown"},
		{"Quantum Plumber", "", "Unknown", "Unknown", "unknown"},
	}

	c := NewMockClient()
	for _, tt := range tests {
		cls, err := c.ClassifyJob(context.Background(), scraper.Job{Title: tt.title, Location: tt.location})
		if err != nil {
			t.Fatalf("ClassifyJob(%q): %v", tt.title, err)
		}
		if cls.Cluster != tt.cluster {
			t.Errorf("ClassifyJob(%q) cluster = %q, want %q", tt.title, cls.Cluster, tt.cluster)
		}
		if cls.Seniority != tt.seniority {
			t.Errorf("ClassifyJob(%q) seniority = %q, want %q", tt.title, cls.Seniority, tt.seniority)
		}
		if cls.WorkMode != tt.workMode {
			t.Errorf("ClassifyJob(%q) work mode = %q, want %q", tt.title, cls.WorkMode, tt.workMode)
		}
		if cls.Languages == nil {
			t.Errorf("ClassifyJob(%q) languages should never be nil", tt.title)
		}
	}
}

func TestBuildUserPromptFillsBlanks(t *testing.T) {
	prompt := buildUserPrompt(scraper.Job{Title: "Content Writer"})
	for _, want := range []string{"TITLE: Content Writer", "COMPANY: -", "SALARY: -", "TAGS: -"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestCleanMarkdownJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := cleanMarkdownJSON(tt.in); got != tt.want {
			t.Errorf("cleanMarkdownJSON(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
