package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-glints-harvester/internal/scraper"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

type geminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	retries    int
	backoff    time.Duration
	httpClient *http.Client
}

// NewGeminiClient creates a Google Gemini API client for job classification
func NewGeminiClient(apiKey, model string) Client {
	return &geminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiBaseURL,
		retries: 3,
		backoff: 1500 * time.Millisecond,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

// ClassifyJob asks Gemini to label one job, retrying transient failures
// with a growing backoff before giving up.
func (g *geminiClient) ClassifyJob(ctx context.Context, job scraper.Job) (Classification, error) {
	prompt := buildSystemPrompt() + "\n\n" + buildUserPrompt(job)

	var lastErr error
	for attempt := 1; attempt <= g.retries; attempt++ {
		text, err := g.callAPI(ctx, prompt)
		if err == nil {
			cls, perr := parseClassification(text)
			if perr == nil {
				return cls, nil
			}
			err = perr
		}
		lastErr = err
		if attempt < g.retries {
			select {
			case <-ctx.Done():
				return FallbackClassification(), ctx.Err()
			case <-time.After(g.backoff * time.Duration(attempt)):
			}
		}
	}
	return FallbackClassification(), fmt.Errorf("gemini classification failed after %d attempts: %w", g.retries, lastErr)
}

func (g *geminiClient) callAPI(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:      0.1, // Low temperature for consistent JSON output
			MaxOutputTokens:  500,
			ResponseMIMEType: "application/json",
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(bodyBytes, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if geminiResp.Error != nil {
		return "", fmt.Errorf("gemini API error %d: %s", geminiResp.Error.Code, geminiResp.Error.Message)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// parseClassification decodes the model output. Keys the model omitted
// keep their defaults so a sparse answer still yields a usable label.
func parseClassification(text string) (Classification, error) {
	cls := Classification{
		Cluster:    "Unknown",
		Category:   "Unknown",
		Seniority:  "Unknown",
		WorkMode:   "unknown",
		Confidence: 0.5,
	}

	payload := cleanMarkdownJSON(text)
	//models sometimes wrap the object in prose, so keep only the outermost braces
	if i, j := strings.Index(payload, "{"), strings.LastIndex(payload, "}"); i >= 0 && j > i {
		payload = payload[i : j+1]
	}

	if err := json.Unmarshal([]byte(payload), &cls); err != nil {
		return Classification{}, fmt.Errorf("unparseable classification %q: %w", text, err)
	}
	if cls.Languages == nil {
		cls.Languages = []string{}
	}
	return cls, nil
}

// cleanMarkdownJSON removes backticks and "json" prefix if the AI model tries to be helpful
func cleanMarkdownJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
