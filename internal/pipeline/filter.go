// Package pipeline turns stored records into the ordered, filtered lists the
// grid views page through.
package pipeline

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/theirongolddev/brgy/internal/model"
)

// Keywords splits a free-text search into keywords.
func Keywords(query string) []string {
	return strings.Fields(query)
}

// FilterByKeywords returns items whose owner name or purpose contains every
// keyword, ignoring case.
func FilterByKeywords(items []model.ListItem, keywords []string) []model.ListItem {
	if len(keywords) == 0 {
		return items
	}
	fold := cases.Fold()
	needles := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			needles = append(needles, fold.String(k))
		}
	}
	if len(needles) == 0 {
		return items
	}

	var result []model.ListItem
	for _, it := range items {
		hay := fold.String(it.DisplayName + " " + it.Purpose)
		match := true
		for _, n := range needles {
			if !strings.Contains(hay, n) {
				match = false
				break
			}
		}
		if match {
			result = append(result, it)
		}
	}
	return result
}

// FilterByTime returns items issued within [since, until). Zero bounds are
// open.
func FilterByTime(items []model.ListItem, since, until time.Time) []model.ListItem {
	if since.IsZero() && until.IsZero() {
		return items
	}
	var result []model.ListItem
	for _, it := range items {
		if !since.IsZero() && it.Issued.Before(since) {
			continue
		}
		if !until.IsZero() && !it.Issued.Before(until) {
			continue
		}
		result = append(result, it)
	}
	return result
}

// SortByIssuedDesc orders items newest first, keeping the input order of
// records issued at the same instant.
func SortByIssuedDesc(items []model.ListItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Issued.After(items[j].Issued)
	})
}
