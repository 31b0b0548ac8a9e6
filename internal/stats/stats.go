// Package stats derives dashboard views from the completion ledger. All
// functions are pure; the ledger rows they fold over come from the store.
package stats

import (
	"sort"
	"time"

	"chorechart/internal/model"
)

// TimelineWindow is the trailing activity window shown on the dashboard.
const TimelineWindow = 7 * 24 * time.Hour

// Timeline is date-bucketed, user-bucketed point sums over the trailing
// window. Dates with no activity are absent, not zero.
type Timeline struct {
	Dates []string                  `json:"dates"`
	Data  map[string]map[string]int `json:"data"`
}

// BuildTimeline buckets ledger entries from the trailing window ending at
// now. The lower bound (now − 7 days) is inclusive. Dates are the UTC
// calendar date of each completion, sorted ascending.
func BuildTimeline(logs []model.ChoreLog, now time.Time) Timeline {
	cutoff := now.Add(-TimelineWindow)

	data := make(map[string]map[string]int)
	for _, l := range logs {
		if l.CompletedAt.Before(cutoff) || l.CompletedAt.After(now) {
			continue
		}
		date := l.CompletedAt.UTC().Format("2006-01-02")
		if data[date] == nil {
			data[date] = make(map[string]int)
		}
		data[date][l.Username] += l.PointsEarned
	}

	dates := make([]string, 0, len(data))
	for d := range data {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	return Timeline{Dates: dates, Data: data}
}

// Distribution maps username to total points for every user with a positive
// total. Zero-point users are omitted by design.
func Distribution(users []model.User) map[string]int {
	dist := make(map[string]int)
	for _, u := range users {
		if u.TotalPoints > 0 {
			dist[u.Username] = u.TotalPoints
		}
	}
	return dist
}

// PageMeta describes one page of the paginated history listing.
type PageMeta struct {
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// Paginate normalizes page/perPage (defaults 1 and 10), and returns the
// limit/offset to query plus the page metadata. An out-of-range page is not
// an error; it simply yields an empty page.
func Paginate(total, page, perPage int) (limit, offset int, meta PageMeta) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	pages := (total + perPage - 1) / perPage

	meta = PageMeta{
		Total:   total,
		Pages:   pages,
		Page:    page,
		PerPage: perPage,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
	return perPage, (page - 1) * perPage, meta
}
