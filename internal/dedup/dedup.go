package dedup

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type seenEntry struct {
	Link      string `json:"link"`
	Timestamp int64  `json:"timestamp"`
}

// JobCache remembers which job links earlier runs already processed,
// so reruns only announce listings that are actually new.
type JobCache struct {
	mu       sync.Mutex
	filePath string
	seen     map[string]int64
}

const thirtyDaysMs = int64(30 * 24 * 60 * 60 * 1000)

// NewJobCache creates or loads the cache stored at filePath
func NewJobCache(filePath string) *JobCache {
	if dir := filepath.Dir(filePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Printf("⚠️ Failed to create cache directory: %v", err)
		}
	}
	cache := &JobCache{
		filePath: filePath,
		seen:     make(map[string]int64),
	}
	cache.load()
	return cache
}

// IsSeen checks if a job link has already been processed.
// The mutex guards the map, which is not safe for concurrent use.
func (jc *JobCache) IsSeen(link string) bool {
	jc.mu.Lock()
	defer jc.mu.Unlock()
	_, exists := jc.seen[link]
	return exists
}

func (jc *JobCache) Add(links []string) {
	jc.mu.Lock()
	defer jc.mu.Unlock()

	now := time.Now().UnixMilli()
	changed := false
	for _, link := range links {
		if _, exists := jc.seen[link]; !exists {
			jc.seen[link] = now
			changed = true
		}
	}

	if changed {
		jc.save()
	}
}

// load reads the cache from disk, dropping entries older than thirty days
func (jc *JobCache) load() {
	data, err := os.ReadFile(jc.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read %s: %v", jc.filePath, err)
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("⚠️ Failed to parse %s: %v", jc.filePath, err)
		return
	}

	cutoff := time.Now().UnixMilli() - thirtyDaysMs
	loaded := 0
	for _, e := range entries {
		if e.Timestamp > cutoff {
			jc.seen[e.Link] = e.Timestamp
			loaded++
		}
	}
	log.Printf("📋 Loaded %d previously seen jobs (%d expired and removed)", loaded, len(entries)-loaded)
}

// save writes the current cache to disk
func (jc *JobCache) save() {
	entries := make([]seenEntry, 0, len(jc.seen))
	for link, ts := range jc.seen {
		entries = append(entries, seenEntry{Link: link, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal seen jobs: %v", err)
		return
	}
	if err := os.WriteFile(jc.filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write %s: %v", jc.filePath, err)
	}
	log.Printf("💾 Saved %d seen jobs to cache", len(entries))
}
