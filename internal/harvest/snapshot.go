package harvest

import (
	"errors"
	"fmt"
	"log"
)

// snapshotScript reads a whole card in one script round trip. Selector chains
// are deliberately loose: Glints rotates its styled-component class hashes, so
// data attributes come first and class fragments are only a fallback.
const snapshotScript = `card => {
	const textOf = (el) => el ? (el.innerText || el.textContent || "").trim() : "";
	const q = (sel, root = card) => root.querySelector(sel);
	const qAll = (sel, root = card) => Array.from(root.querySelectorAll(sel));

	let anchor = q("a[href*='/opportunities/jobs/']");
	if (!anchor) {
		const anchors = qAll("a");
		anchor = anchors.find(a => (a.getAttribute("href") || "").includes("/opportunities/jobs/")) || null;
	}

	const titleFromAnchor = textOf(anchor);
	const titleFromAria = anchor ? (anchor.getAttribute("aria-label") || "") : "";
	const titleFromAttr = card.getAttribute("data-gtm-job-role") || card.getAttribute("data-gtm-job-title") || "";
	const title = [titleFromAnchor, titleFromAria, titleFromAttr].find(t => t && t.length > 0) || "";

	let href = anchor ? (anchor.getAttribute("href") || "") : "";
	if (!href) {
		href = card.getAttribute("data-href") || card.getAttribute("data-url") || "";
	}

	let company = "";
	const compEl = q("[data-cy='company_name_job_card'] a, [data-testid='company-name'] a, a[href*='/companies/']");
	if (compEl) company = textOf(compEl);

	let locations = [];
	const locWrap = q("[data-testid='location'], .CardJobLocation__LocationWrapper-sc-v7ofa9-0, [class*='LocationWrapper']");
	if (locWrap) {
		const parts = qAll(".CardJobLocation__LocationSpan-sc-v7ofa9-1, span, a", locWrap).map(textOf).filter(Boolean);
		if (parts.length) {
			locations = parts;
		} else {
			const t = textOf(locWrap);
			if (t) locations = [t];
		}
	}

	let salary = "";
	const sal = q("[data-testid='salary'], [class*='SalaryWrapper'], [class*='Salary']");
	if (sal) salary = textOf(sal);
	if (!salary) {
		const notD = q("[class*='NotDisclosed']");
		if (notD) salary = textOf(notD);
	}
	if (salary && salary.toLowerCase().includes(title.toLowerCase())) {
		salary = salary.replace(title, "").trim();
	}

	const tags = qAll(".CompactOpportunityCardsc__TagsWrapper-sc-dkg8my-37 .TagStyle__TagContentWrapper-sc-r1wv7a-1, [data-testid='job-tag']")
		.map(textOf).filter(Boolean);

	const updated = textOf(q(".CompactOpportunityCardsc__UpdatedAtMessage-sc-dkg8my-26, [data-testid='updated-at']"));

	let logo = "";
	const img = q("img[alt]");
	if (img) logo = img.getAttribute("src") || "";

	const hiring = /aktif merekrut/i.test(textOf(card));

	return {
		job_id: card.getAttribute("data-gtm-job-id") || "",
		job_role: card.getAttribute("data-gtm-job-role") || "",
		job_type: card.getAttribute("data-gtm-job-type") || "",
		job_cat: card.getAttribute("data-gtm-job-category") || "",
		job_sub_cat: card.getAttribute("data-gtm-job-sub-category") || "",
		company_id: card.getAttribute("data-gtm-job-company-id") || "",
		is_hot_job: (card.getAttribute("data-gtm-is-hot-job") || "").toLowerCase() === "true",
		title: title,
		link: href || "",
		company: company,
		locations: locations,
		salary: salary,
		tags: tags,
		aktif_merekrut: hiring,
		updated_at: updated,
		company_logo: logo
	};
}`

// minimalSnapshotScript salvages the card attributes when the full script
// blows up. The result never carries a link, so the record is dropped later,
// but the run keeps going.
const minimalSnapshotScript = `card => ({
	job_id: card.getAttribute("data-gtm-job-id") || "",
	title: card.getAttribute("data-gtm-job-role") || "",
	link: "",
	company: "",
	locations: [],
	salary: "",
	tags: [],
	aktif_merekrut: false,
	updated_at: "",
	company_logo: ""
})`

// RawSnapshot is one card frozen at one instant, still unnormalized.
type RawSnapshot struct {
	JobID       string
	JobRole     string
	JobType     string
	JobCategory string
	JobSubCat   string
	CompanyID   string
	IsHotJob    bool
	Title       string
	Link        string
	Company     string
	Locations   []string
	Salary      string
	Tags        []string
	Hiring      bool
	UpdatedAt   string
	CompanyLogo string
}

// Snapshot extracts one card. A stale card surfaces as ErrStale for the caller
// to re-resolve; any other script failure degrades to the attribute-only
// fallback.
func Snapshot(card Element) (RawSnapshot, error) {
	v, err := card.Evaluate(snapshotScript)
	if err != nil {
		if errors.Is(err, ErrStale) {
			return RawSnapshot{}, err
		}
		return minimalSnapshot(card, err)
	}
	return decodeSnapshot(v)
}

func minimalSnapshot(card Element, cause error) (RawSnapshot, error) {
	v, err := card.Evaluate(minimalSnapshotScript)
	if err != nil {
		return RawSnapshot{}, err
	}
	snap, err := decodeSnapshot(v)
	if err != nil {
		return RawSnapshot{}, err
	}
	log.Printf("⚠️ Card script failed (%v), salvaged attributes only", cause)
	return snap, nil
}

func decodeSnapshot(v any) (RawSnapshot, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return RawSnapshot{}, fmt.Errorf("%w: snapshot payload is %T, not an object", ErrIncomplete, v)
	}
	return RawSnapshot{
		JobID:       str(m, "job_id"),
		JobRole:     str(m, "job_role"),
		JobType:     str(m, "job_type"),
		JobCategory: str(m, "job_cat"),
		JobSubCat:   str(m, "job_sub_cat"),
		CompanyID:   str(m, "company_id"),
		IsHotJob:    boolVal(m, "is_hot_job"),
		Title:       str(m, "title"),
		Link:        str(m, "link"),
		Company:     str(m, "company"),
		Locations:   strList(m, "locations"),
		Salary:      str(m, "salary"),
		Tags:        strList(m, "tags"),
		Hiring:      boolVal(m, "aktif_merekrut"),
		UpdatedAt:   str(m, "updated_at"),
		CompanyLogo: str(m, "company_logo"),
	}, nil
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolVal(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func strList(m map[string]any, key string) []string {
	xs, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if s, ok := x.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
