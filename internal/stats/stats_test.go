package stats

import (
	"reflect"
	"testing"
	"time"

	"chorechart/internal/model"
)

func logAt(user string, points int, at time.Time) model.ChoreLog {
	return model.ChoreLog{Username: user, PointsEarned: points, CompletedAt: at}
}

func TestBuildTimelineWindowAndSumming(t *testing.T) {
	now := time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)

	logs := []model.ChoreLog{
		logAt("A", 5, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)),
		logAt("A", 3, time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)),
		// Outside the window relative to now
		logAt("B", 10, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)),
	}

	tl := BuildTimeline(logs, now)

	if !reflect.DeepEqual(tl.Dates, []string{"2024-01-01"}) {
		t.Errorf("dates = %v, want [2024-01-01]", tl.Dates)
	}
	want := map[string]map[string]int{"2024-01-01": {"A": 8}}
	if !reflect.DeepEqual(tl.Data, want) {
		t.Errorf("data = %v, want %v", tl.Data, want)
	}
}

func TestBuildTimelineInclusiveLowerBound(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	logs := []model.ChoreLog{
		// Exactly now − 7 days: included
		logAt("A", 1, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)),
		// One second earlier: excluded
		logAt("A", 1, time.Date(2024, 3, 2, 23, 59, 59, 0, time.UTC)),
	}

	tl := BuildTimeline(logs, now)
	if len(tl.Dates) != 1 || tl.Dates[0] != "2024-03-03" {
		t.Errorf("dates = %v, want [2024-03-03]", tl.Dates)
	}
}

func TestBuildTimelineMultipleUsersAndDates(t *testing.T) {
	now := time.Date(2024, 5, 7, 12, 0, 0, 0, time.UTC)

	logs := []model.ChoreLog{
		logAt("A", 2, time.Date(2024, 5, 3, 8, 0, 0, 0, time.UTC)),
		logAt("B", 4, time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC)),
		logAt("B", 6, time.Date(2024, 5, 5, 9, 0, 0, 0, time.UTC)),
	}

	tl := BuildTimeline(logs, now)
	if !reflect.DeepEqual(tl.Dates, []string{"2024-05-03", "2024-05-05"}) {
		t.Errorf("dates = %v", tl.Dates)
	}
	if tl.Data["2024-05-03"]["A"] != 2 || tl.Data["2024-05-03"]["B"] != 4 {
		t.Errorf("2024-05-03 = %v", tl.Data["2024-05-03"])
	}
	if tl.Data["2024-05-05"]["B"] != 6 {
		t.Errorf("2024-05-05 = %v", tl.Data["2024-05-05"])
	}
}

func TestBuildTimelineEmpty(t *testing.T) {
	tl := BuildTimeline(nil, time.Now())
	if len(tl.Dates) != 0 {
		t.Errorf("dates = %v, want empty", tl.Dates)
	}
	if len(tl.Data) != 0 {
		t.Errorf("data = %v, want empty", tl.Data)
	}
}

func TestDistributionOmitsZeroPointUsers(t *testing.T) {
	users := []model.User{
		{Username: "alice", TotalPoints: 30},
		{Username: "bob", TotalPoints: 0},
		{Username: "carol", TotalPoints: 12},
	}

	dist := Distribution(users)
	want := map[string]int{"alice": 30, "carol": 12}
	if !reflect.DeepEqual(dist, want) {
		t.Errorf("distribution = %v, want %v", dist, want)
	}
}

func TestPaginateFirstPage(t *testing.T) {
	limit, offset, meta := Paginate(25, 1, 10)
	if limit != 10 || offset != 0 {
		t.Errorf("limit/offset = %d/%d, want 10/0", limit, offset)
	}
	if meta.Total != 25 || meta.Pages != 3 {
		t.Errorf("total/pages = %d/%d, want 25/3", meta.Total, meta.Pages)
	}
	if !meta.HasNext || meta.HasPrev {
		t.Errorf("has_next/has_prev = %v/%v, want true/false", meta.HasNext, meta.HasPrev)
	}
}

func TestPaginateOutOfRangePage(t *testing.T) {
	limit, offset, meta := Paginate(25, 99, 10)
	if limit != 10 || offset != 980 {
		t.Errorf("limit/offset = %d/%d, want 10/980", limit, offset)
	}
	if meta.HasNext {
		t.Error("has_next should be false past the last page")
	}
	if !meta.HasPrev {
		t.Error("has_prev should be true for page > 1")
	}
}

func TestPaginateDefaults(t *testing.T) {
	limit, offset, meta := Paginate(5, 0, 0)
	if limit != 10 || offset != 0 {
		t.Errorf("limit/offset = %d/%d, want defaults 10/0", limit, offset)
	}
	if meta.Page != 1 || meta.PerPage != 10 {
		t.Errorf("page/per_page = %d/%d, want 1/10", meta.Page, meta.PerPage)
	}
	if meta.Pages != 1 {
		t.Errorf("pages = %d, want 1", meta.Pages)
	}
}
