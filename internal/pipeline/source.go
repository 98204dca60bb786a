package pipeline

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/theirongolddev/brgy/internal/model"
	"github.com/theirongolddev/brgy/internal/paginator"
)

// Lister is the part of the store a Source reads from.
type Lister interface {
	Records(kind model.Kind) ([]model.ListItem, error)
}

// Source fetches filtered record lists, newest first.
type Source struct {
	Store  Lister
	Logger zerolog.Logger
}

// Fetch loads every record of kind matching all keywords.
func (s Source) Fetch(kind model.Kind, keywords []string) ([]model.ListItem, error) {
	items, err := s.Store.Records(kind)
	if err != nil {
		return nil, fmt.Errorf("loading %s records: %w", kind, err)
	}
	filtered := FilterByKeywords(items, keywords)
	SortByIssuedDesc(filtered)

	s.Logger.Debug().
		Str("kind", kind.String()).
		Strs("keywords", keywords).
		Int("total", len(items)).
		Int("matched", len(filtered)).
		Msg("records fetched")
	return filtered, nil
}

// Paginate builds the grid paginator for a fetched list.
func (s Source) Paginate(items []model.ListItem, slotCount int, continuationHeaders bool) (*paginator.Paginator[model.ListItem], error) {
	logger := s.Logger
	return paginator.New(items, paginator.Config[model.ListItem]{
		SlotCount:           slotCount,
		Date:                model.ListItem.IssuedAt,
		Label:               model.ListItem.Label,
		ID:                  model.ListItem.Key,
		ContinuationHeaders: continuationHeaders,
		Logger:              &logger,
	})
}
