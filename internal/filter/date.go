package filter

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var relativeAgeRegex = regexp.MustCompile(`(\d+)\+?\s*(jam|hari|minggu|bulan)`)

// PostedAge parses the relative timestamps Glints renders, like
// "Diperbarui 2 hari yang lalu" or "Diperbarui sebulan yang lalu".
// The second return is false when the string carries no readable age.
func PostedAge(posted string) (time.Duration, bool) {
	s := strings.ToLower(strings.TrimSpace(posted))
	if s == "" {
		return 0, false
	}

	//freshly updated listings carry no number at all
	if strings.Contains(s, "baru saja") || strings.Contains(s, "hari ini") {
		return 0, true
	}

	//"se-" prefix means exactly one unit: sehari, seminggu, sebulan, sejam
	switch {
	case strings.Contains(s, "sejam"):
		return time.Hour, true
	case strings.Contains(s, "sehari"):
		return 24 * time.Hour, true
	case strings.Contains(s, "seminggu"):
		return 7 * 24 * time.Hour, true
	case strings.Contains(s, "sebulan"):
		return 30 * 24 * time.Hour, true
	}

	match := relativeAgeRegex.FindStringSubmatch(s)
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}

	switch match[2] {
	case "jam":
		return time.Duration(n) * time.Hour, true
	case "hari":
		return time.Duration(n) * 24 * time.Hour, true
	case "minggu":
		return time.Duration(n) * 7 * 24 * time.Hour, true
	case "bulan":
		return time.Duration(n) * 30 * 24 * time.Hour, true
	}
	return 0, false
}

// IsRecentJob reports whether a listing was updated within maxAgeDays.
// Unreadable timestamps count as recent so nothing silently disappears.
func IsRecentJob(posted string, maxAgeDays int) bool {
	age, ok := PostedAge(posted)
	if !ok {
		return true
	}
	return age <= time.Duration(maxAgeDays)*24*time.Hour
}
