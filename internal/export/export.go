//Package export writes harvested jobs to per-keyword CSV and JSONL files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"go-glints-harvester/internal/ai"
	"go-glints-harvester/internal/normalize"
	"go-glints-harvester/internal/scraper"
)

// Record is one output row: a harvested job plus its AI labelling.
// Both embeds marshal flat, so a JSONL line carries every field at the top level.
type Record struct {
	scraper.Job
	ai.Classification
}

var header = []string{
	"title", "company", "location", "salary", "tags", "link", "posted", "keyword", "source",
	"cluster", "category", "seniority", "work_mode", "languages", "confidence",
}

// Paths returns the CSV and JSONL file names for one keyword,
// e.g. prefix "out/glints_jobs" and keyword "social media" give
// out/glints_jobs_social-media.csv and .jsonl.
func Paths(prefix, keyword string) (csvPath, jsonlPath string) {
	slug := normalize.Slugify(keyword)
	return fmt.Sprintf("%s_%s.csv", prefix, slug), fmt.Sprintf("%s_%s.jsonl", prefix, slug)
}

// WriteCSV writes records to path, creating parent directories as needed.
// The file starts with a UTF-8 BOM so Excel on Windows detects the encoding.
// An empty batch writes no file at all.
func WriteCSV(path string, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	if err := ensureParentDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(r.clean().row()); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

// WriteJSONL writes one JSON object per line, keeping unicode unescaped.
// An empty batch writes no file at all.
func WriteJSONL(path string, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	if err := ensureParentDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	for _, r := range records {
		if err := enc.Encode(r.clean()); err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
	}
	return nil
}

// clean flattens the model-provided free text. Job fields arrive already
// normalized from the harvester, so only the classification side needs it.
func (r Record) clean() Record {
	r.Cluster = normalize.FlattenSpace(r.Cluster)
	r.Category = normalize.FlattenSpace(r.Category)
	r.Seniority = normalize.FlattenSpace(r.Seniority)
	r.WorkMode = normalize.FlattenSpace(r.WorkMode)
	langs := make([]string, 0, len(r.Languages))
	for _, l := range r.Languages {
		if t := normalize.FlattenSpace(l); t != "" {
			langs = append(langs, t)
		}
	}
	r.Languages = langs
	return r
}

func (r Record) row() []string {
	return []string{
		r.Title,
		r.Company,
		r.Location,
		r.Salary,
		normalize.JoinList(r.Tags),
		r.Link,
		r.Posted,
		r.Keyword,
		r.Source,
		r.Cluster,
		r.Category,
		r.Seniority,
		r.WorkMode,
		normalize.JoinList(r.Languages),
		strconv.FormatFloat(r.Confidence, 'f', -1, 64),
	}
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

// ClusterCount is one line of the run summary.
type ClusterCount struct {
	Cluster string
	Count   int
}

// ClusterCounts tallies records per cluster, most frequent first.
// Ties break on the cluster name so the output stays stable.
func ClusterCounts(records []Record) []ClusterCount {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Cluster]++
	}

	out := make([]ClusterCount, 0, len(counts))
	for cluster, n := range counts {
		out = append(out, ClusterCount{Cluster: cluster, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Cluster < out[j].Cluster
	})
	return out
}
