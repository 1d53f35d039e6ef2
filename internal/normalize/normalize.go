// Text cleanup for harvested fields.
// Everything here is pure: no browser, no I/O.

package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const siteOrigin = "https://glints.com"

// UndisclosedSalary is the canonical phrase emitted for listings that hide pay.
const UndisclosedSalary = "Gaji Tidak Ditampilkan"

// placeholder location Glints injects when a listing has no real city
const locationPlaceholder = "all cities/provinces"

var (
	spaceRun      = regexp.MustCompile(`\s+`)
	locationSplit = regexp.MustCompile(`\s*[·,/]\s*`)
	undisclosedRe = regexp.MustCompile(`(?i)gaji\s+tidak\s+ditampilkan|not\s+disclosed`)
	rupiahRangeRe = regexp.MustCompile(`(?i)(Rp[^A-Za-z]*?\d[\d.,]*(?:\s*(?:jt|k)\b)?(?:\s*(?:-|–|to|\+)\s*(?:Rp\s*)?\d[\d.,]*(?:\s*(?:jt|k)\b)?)?)`)
	usdRangeRe    = regexp.MustCompile(`(?i)(USD[^A-Za-z]*?\d[\d.,]*(?:\s*(?:-|–|to|\+)\s*(?:USD\s*)?\d[\d.,]*)?)`)
	keywordSplit  = regexp.MustCompile(`[,\n]+`)
	slugStrip     = regexp.MustCompile(`[^a-z0-9]+`)
)

// FlattenSpace collapses newlines, carriage returns, non-breaking spaces and runs of
// whitespace into single spaces and trims both ends.
func FlattenSpace(s string) string {
	s = strings.NewReplacer("\r", " ", "\n", " ", "\u00a0", " ").Replace(s)
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// Locations cleans a raw location list: each entry may itself bundle several
// semantic locations ("Kecamatan, Kota · Provinsi"), so split on comma, middle dot
// and slash, trim stray separators, drop empties/placeholders and dedupe in order.
func Locations(raw []string) []string {
	seen := make(map[string]bool)
	cleaned := make([]string, 0, len(raw))
	for _, entry := range raw {
		// the placeholder contains a slash, so it must be rejected before splitting
		if strings.EqualFold(FlattenSpace(entry), locationPlaceholder) {
			continue
		}
		for _, part := range locationSplit.Split(entry, -1) {
			t := strings.Trim(FlattenSpace(part), " ,")
			if t == "" || t == "-" || strings.EqualFold(t, locationPlaceholder) {
				continue
			}
			if !seen[t] {
				seen[t] = true
				cleaned = append(cleaned, t)
			}
		}
	}
	return cleaned
}

// CleanSalary extracts the salary span from whatever text the card rendered.
// The card sometimes prepends the job title to the salary node, so the title is
// passed in to scrub that artifact.
func CleanSalary(val, title string) string {
	t := FlattenSpace(val)
	if t == "" {
		return ""
	}
	if title != "" && strings.HasPrefix(strings.ToLower(t), strings.ToLower(title)) {
		t = strings.TrimSpace(t[len(title):])
	}
	if undisclosedRe.MatchString(t) {
		return UndisclosedSalary
	}
	if m := rupiahRangeRe.FindStringSubmatch(t); m != nil {
		return FlattenSpace(m[1])
	}
	if m := usdRangeRe.FindStringSubmatch(t); m != nil {
		return FlattenSpace(m[1])
	}
	return t
}

// AbsoluteLink turns a relative job href into a full URL on the site origin.
// Absolute links pass through untouched, empty stays empty.
func AbsoluteLink(href string) string {
	t := strings.TrimSpace(href)
	if t == "" {
		return ""
	}
	if strings.HasPrefix(t, "http://") || strings.HasPrefix(t, "https://") {
		return t
	}
	if !strings.HasPrefix(t, "/") {
		t = "/" + t
	}
	return siteOrigin + t
}

// JoinList flattens each element and joins the non-empty ones with ", ".
func JoinList(parts []string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := FlattenSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ", ")
}

// ParseKeywords accepts a comma- or newline-separated keyword list and returns the
// unique keywords in first-seen order.
func ParseKeywords(s string) []string {
	if s == "" {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, part := range keywordSplit.Split(s, -1) {
		p := strings.TrimSpace(part)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// foldASCII strips diacritics so slugs stay plain ASCII
func foldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// Slugify makes a filesystem-safe slug out of a keyword: "Social Media" -> "social-media".
func Slugify(s string) string {
	slug := strings.Trim(slugStrip.ReplaceAllString(strings.ToLower(foldASCII(s)), "-"), "-")
	if slug == "" {
		return "jobs"
	}
	return slug
}
