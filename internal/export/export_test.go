package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-glints-harvester/internal/ai"
	"go-glints-harvester/internal/scraper"
)

func sampleRecords() []Record {
	return []Record{
		{
			Job: scraper.Job{
				Title:    "Social Media Specialist",
				Company:  "PT Maju Jaya",
				Location: "Jakarta Selatan, Jakarta, Indonesia",
				Salary:   "Rp5.000.000 - Rp7.000.000",
				Tags:     []string{"Penuh Waktu", "1 - 3 tahun"},
				Link:     "https://glints.com/opportunities/jobs/sms-1",
				Posted:   "Diperbarui 2 hari yang lalu",
				Keyword:  "social media specialist",
				Source:   "glints",
			},
			Classification: ai.Classification{
				Cluster:    "Social Media",
				Category:   "Marketing",
				Seniority:  "Mid",
				WorkMode:   "onsite",
				Languages:  []string{"Indonesian", "English"},
				Confidence: 0.92,
			},
		},
		{
			Job: scraper.Job{
				Title:   "Content Writer",
				Link:    "https://glints.com/opportunities/jobs/cw-1",
				Keyword: "social media specialist",
				Source:  "glints",
			},
			Classification: ai.Classification{
				Cluster:    "Content",
				WorkMode:   "unknown",
				Languages:  []string{},
				Confidence: 0.5,
			},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "glints_jobs_social-media.csv")
	assert.NoError(t, WriteCSV(path, sampleRecords()))

	raw, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}), "CSV should start with a UTF-8 BOM")

	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, []string{
		"Social Media Specialist",
		"PT Maju Jaya",
		"Jakarta Selatan, Jakarta, Indonesia",
		"Rp5.000.000 - Rp7.000.000",
		"Penuh Waktu, 1 - 3 tahun",
		"https://glints.com/opportunities/jobs/sms-1",
		"Diperbarui 2 hari yang lalu",
		"social media specialist",
		"glints",
		"Social Media",
		"Marketing",
		"Mid",
		"onsite",
		"Indonesian, English",
		"0.92",
	}, rows[1])
}

func TestWriteJSONLFlattensRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glints_jobs_social-media.jsonl")
	assert.NoError(t, WriteJSONL(path, sampleRecords()))

	raw, err := os.ReadFile(path)
	assert.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(raw), []byte("\n"))
	assert.Len(t, lines, 2)

	var row map[string]any
	assert.NoError(t, json.Unmarshal(lines[0], &row))
	assert.Equal(t, "Social Media Specialist", row["title"])
	assert.Equal(t, "Social Media", row["cluster"])
	assert.Equal(t, 0.92, row["confidence"])
	_, nested := row["Job"]
	assert.False(t, nested, "embedded structs should marshal flat")
}

func TestWriteCleansModelText(t *testing.T) {
	records := []Record{
		{
			Job: scraper.Job{
				Title: "Social Media Specialist",
				Link:  "https://glints.com/opportunities/jobs/sms-1",
			},
			Classification: ai.Classification{
				Cluster:    "Social\nMedia",
				Category:   "Marketing & Ads",
				Seniority:  " Mid ",
				WorkMode:   "on\nsite",
				Languages:  []string{" English\n", ""},
				Confidence: 0.8,
			},
		},
	}

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "jobs.csv")
	assert.NoError(t, WriteCSV(csvPath, records))

	raw, err := os.ReadFile(csvPath)
	assert.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, "Social Media", rows[1][9])
	assert.Equal(t, "Marketing & Ads", rows[1][10])
	assert.Equal(t, "Mid", rows[1][11])
	assert.Equal(t, "on site", rows[1][12])
	assert.Equal(t, "English", rows[1][13])

	jsonlPath := filepath.Join(dir, "jobs.jsonl")
	assert.NoError(t, WriteJSONL(jsonlPath, records))

	raw, err = os.ReadFile(jsonlPath)
	assert.NoError(t, err)
	var row map[string]any
	assert.NoError(t, json.Unmarshal(bytes.TrimSpace(raw), &row))
	assert.Equal(t, "Social Media", row["cluster"])
	assert.Equal(t, "on site", row["work_mode"])
	assert.Equal(t, []any{"English"}, row["languages"])
}

func TestWriteSkipsEmptyBatch(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "empty.csv")
	jsonlPath := filepath.Join(dir, "empty.jsonl")

	assert.NoError(t, WriteCSV(csvPath, nil))
	assert.NoError(t, WriteJSONL(jsonlPath, nil))

	_, err := os.Stat(csvPath)
	assert.True(t, os.IsNotExist(err), "empty batch should not create a CSV")
	_, err = os.Stat(jsonlPath)
	assert.True(t, os.IsNotExist(err), "empty batch should not create a JSONL")
}

func TestPaths(t *testing.T) {
	csvPath, jsonlPath := Paths("out/glints_jobs", "Social Media Specialist")
	if csvPath != "out/glints_jobs_social-media-specialist.csv" {
		t.Errorf("csv path = %q", csvPath)
	}
	if jsonlPath != "out/glints_jobs_social-media-specialist.jsonl" {
		t.Errorf("jsonl path = %q", jsonlPath)
	}
}

func TestClusterCounts(t *testing.T) {
	records := []Record{
		{Classification: ai.Classification{Cluster: "Content"}},
		{Classification: ai.Classification{Cluster: "Social Media"}},
		{Classification: ai.Classification{Cluster: "Social Media"}},
		{Classification: ai.Classification{Cluster: "Data"}},
	}
	got := ClusterCounts(records)
	want := []ClusterCount{
		{Cluster: "Social Media", Count: 2},
		{Cluster: "Content", Count: 1},
		{Cluster: "Data", Count: 1},
	}
	assert.Equal(t, want, got)
}
