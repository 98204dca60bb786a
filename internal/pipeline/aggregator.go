package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/brgy/internal/model"
	"github.com/theirongolddev/brgy/internal/paginator"
)

// AggregateMonths counts records per calendar month, newest month first.
// Months follow the same grouping as the grid headers; months without
// records are omitted.
func AggregateMonths(records []model.Record) []model.MonthlyStats {
	monthMap := make(map[int]*model.MonthlyStats)
	for _, r := range records {
		if r.Issued.IsZero() {
			continue
		}
		key := paginator.MonthIndex(r.Issued)
		ms, ok := monthMap[key]
		if !ok {
			ms = &model.MonthlyStats{Month: paginator.MonthStart(r.Issued)}
			monthMap[key] = ms
		}
		ms.Add(r.Kind)
	}

	months := make([]model.MonthlyStats, 0, len(monthMap))
	for _, ms := range monthMap {
		months = append(months, *ms)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month.After(months[j].Month)
	})
	return months
}

// LastMonths returns n consecutive months ending with the month of now,
// oldest first, taking counts from months and zero elsewhere.
func LastMonths(months []model.MonthlyStats, now time.Time, n int) []model.MonthlyStats {
	byMonth := make(map[int]model.MonthlyStats, len(months))
	for _, ms := range months {
		byMonth[paginator.MonthIndex(ms.Month)] = ms
	}

	end := paginator.MonthStart(now)
	out := make([]model.MonthlyStats, n)
	for i := range out {
		m := end.AddDate(0, i-n+1, 0)
		ms, ok := byMonth[paginator.MonthIndex(m)]
		if !ok {
			ms = model.MonthlyStats{Month: m}
		}
		out[i] = ms
	}
	return out
}
