// Package paginator lays out date-ordered records into fixed-size, two-column
// slot grids. Each run of records issued in the same month is introduced by a
// header row spanning both columns, and a header is never split across pages.
package paginator

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// DefaultSlotCount is the number of slots in one page of the records grid.
const DefaultSlotCount = 40

// Columns is the number of slots per grid row. Headers span a whole row.
const Columns = 2

// ErrInvalidSlotCount is returned by New for grids that cannot hold a header
// row followed by at least one entry.
var ErrInvalidSlotCount = errors.New("slot count must be even and at least 4")

// Config describes how records are read by a Paginator.
type Config[T any] struct {
	// SlotCount is the page size in slots. Zero means DefaultSlotCount.
	SlotCount int

	// Date returns the issue date a record is grouped by.
	Date func(T) time.Time
	// Label returns the text shown in a record's slot.
	Label func(T) string
	// ID returns the stable identifier used for detail lookups.
	ID func(T) string

	// ContinuationHeaders repeats the month header at the top of a page when
	// a month's run continues from the previous page.
	ContinuationHeaders bool

	Logger *zerolog.Logger
}

// monthKey identifies a calendar month; noMonth precedes every record.
type monthKey int

const noMonth monthKey = -1

func monthOf(t time.Time) monthKey {
	return monthKey(MonthIndex(t))
}

// MonthIndex numbers the calendar month of t in t's own location. Grid
// headers and monthly counts both group by it.
func MonthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// MonthStart is midnight on the first day of t's month, in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// HeaderLabel is the header text for the month containing t.
func HeaderLabel(t time.Time) string {
	return t.Format("January 2006")
}

// cursor marks where a page begins: the first record it holds and the month
// considered already announced when it starts.
type cursor struct {
	rec  int
	prev monthKey
}

// Paginator computes page boundaries and slot layouts for one record list.
// It is rebuilt whenever the list changes.
type Paginator[T any] struct {
	cfg     Config[T]
	size    int
	records []T
	starts  []cursor
	usage   int
	log     zerolog.Logger
}

// New builds a Paginator over records, which must already be ordered by
// issue date, newest first.
func New[T any](records []T, cfg Config[T]) (*Paginator[T], error) {
	size := cfg.SlotCount
	if size == 0 {
		size = DefaultSlotCount
	}
	if size < 2*Columns || size%Columns != 0 {
		return nil, ErrInvalidSlotCount
	}
	if cfg.Date == nil {
		return nil, errors.New("paginator: Date accessor is required")
	}
	if cfg.Label == nil {
		cfg.Label = func(T) string { return "" }
	}
	if cfg.ID == nil {
		cfg.ID = func(T) string { return "" }
	}

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	p := &Paginator[T]{
		cfg:     cfg,
		size:    size,
		records: records,
		log:     log,
	}
	p.usage = p.labelUsage()
	p.paginate()
	return p, nil
}

// SlotCount returns the page size in slots.
func (p *Paginator[T]) SlotCount() int { return p.size }

// Len returns the number of records being paginated.
func (p *Paginator[T]) Len() int { return len(p.records) }

// LabelUsage returns the number of label units the record list occupies:
// one per record, one per month header, plus one filler for each header that
// has to skip the right-hand cell of a half-filled row.
func (p *Paginator[T]) LabelUsage() int { return p.usage }

// PageCount returns the number of pages needed to show every record, at
// least one.
func (p *Paginator[T]) PageCount() int { return len(p.starts) }

func (p *Paginator[T]) labelUsage() int {
	units, pos := 0, 0
	prev := noMonth
	for _, rec := range p.records {
		if m := monthOf(p.cfg.Date(rec)); m != prev {
			if pos%Columns != 0 {
				units += 2
				pos += Columns - pos%Columns
			} else {
				units++
			}
			pos += Columns
			prev = m
		}
		units++
		pos++
	}
	return units
}

func (p *Paginator[T]) paginate() {
	p.starts = []cursor{{rec: 0, prev: noMonth}}
	c := p.starts[0]
	for {
		next := p.fill(c, nil)
		if next.rec >= len(p.records) {
			return
		}
		p.starts = append(p.starts, next)
		c = next
	}
}

// fill lays out records starting at c into slots (which may be nil when only
// the page boundary is wanted) and returns where the following page starts.
func (p *Paginator[T]) fill(c cursor, slots []Slot[T]) cursor {
	put := func(i int, s Slot[T]) {
		if slots != nil {
			slots[i] = s
		}
	}

	prev := c.prev
	pos := 0
	i := c.rec
	for i < len(p.records) {
		rec := p.records[i]
		issued := p.cfg.Date(rec)
		if m := monthOf(issued); m != prev {
			hdr := pos
			if r := pos % Columns; r != 0 {
				hdr += Columns - r
			}
			// The header row plus one entry must fit, otherwise the run
			// starts on the next page.
			if hdr+Columns >= p.size {
				break
			}
			for f := pos; f < hdr; f++ {
				put(f, Slot[T]{Kind: SlotFiller})
			}
			label := HeaderLabel(issued)
			put(hdr, Slot[T]{Kind: SlotHeader, Label: label})
			for k := 1; k < Columns; k++ {
				put(hdr+k, Slot[T]{Kind: SlotHeaderSpan, Label: label})
			}
			pos = hdr + Columns
			prev = m
		}
		if pos >= p.size {
			break
		}
		put(pos, Slot[T]{
			Kind:  SlotEntry,
			Label: p.cfg.Label(rec),
			ID:    p.cfg.ID(rec),
			Item:  rec,
		})
		pos++
		i++
	}

	next := cursor{rec: i, prev: prev}
	if p.cfg.ContinuationHeaders {
		next.prev = noMonth
	}
	return next
}

// Clamp returns page limited to [1, PageCount].
func (p *Paginator[T]) Clamp(page int) int {
	n := page
	if n < 1 {
		n = 1
	}
	if last := p.PageCount(); n > last {
		n = last
	}
	if n != page {
		p.log.Warn().
			Int("page", page).
			Int("page_count", p.PageCount()).
			Msg("page out of range, clamping")
	}
	return n
}

// Layout returns the slot assignment of the given 1-based page. Out-of-range
// page numbers are clamped.
func (p *Paginator[T]) Layout(page int) Page[T] {
	n := p.Clamp(page)
	slots := make([]Slot[T], p.size)
	p.fill(p.starts[n-1], slots)
	return Page[T]{Number: n, Slots: slots}
}

// Locate returns the page holding the record with the given id, or 0 when no
// record has that id.
func (p *Paginator[T]) Locate(id string) int {
	for i, rec := range p.records {
		if p.cfg.ID(rec) != id {
			continue
		}
		page := 1
		for k, c := range p.starts {
			if c.rec <= i {
				page = k + 1
			}
		}
		return page
	}
	return 0
}
