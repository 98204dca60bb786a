package paginator

// SlotKind tells what a grid slot holds.
type SlotKind int

const (
	SlotEmpty      SlotKind = iota // nothing placed
	SlotHeader                     // month header, left cell of its row
	SlotHeaderSpan                 // cell covered by the header to its left
	SlotFiller                     // right cell skipped so a header can start a row
	SlotEntry                      // one record
)

func (k SlotKind) String() string {
	switch k {
	case SlotHeader:
		return "header"
	case SlotHeaderSpan:
		return "header-span"
	case SlotFiller:
		return "filler"
	case SlotEntry:
		return "entry"
	default:
		return "empty"
	}
}

// Slot is one cell of a page.
type Slot[T any] struct {
	Kind  SlotKind
	Label string // header text or entry display label
	ID    string // record id, entries only
	Item  T      // entries only
}

// IsEntry reports whether the slot holds a record.
func (s Slot[T]) IsEntry() bool { return s.Kind == SlotEntry }

// Page is the slot assignment of one page of the grid.
type Page[T any] struct {
	Number int
	Slots  []Slot[T]
}

// Slot returns the slot at index i, or an empty slot when i is out of range.
func (pg Page[T]) Slot(i int) Slot[T] {
	if i < 0 || i >= len(pg.Slots) {
		return Slot[T]{}
	}
	return pg.Slots[i]
}

// ID returns the record id placed at slot i, or "" when the slot is not an
// entry.
func (pg Page[T]) ID(i int) string {
	return pg.Slot(i).ID
}

// Entry returns the record at slot i.
func (pg Page[T]) Entry(i int) (T, bool) {
	s := pg.Slot(i)
	return s.Item, s.IsEntry()
}

// Entries counts the entry slots on the page.
func (pg Page[T]) Entries() int {
	n := 0
	for _, s := range pg.Slots {
		if s.IsEntry() {
			n++
		}
	}
	return n
}

// LabelUnits counts the slots that consume label units: entries, headers and
// fillers. Header spans belong to their header and are not counted.
func (pg Page[T]) LabelUnits() int {
	n := 0
	for _, s := range pg.Slots {
		switch s.Kind {
		case SlotEntry, SlotHeader, SlotFiller:
			n++
		}
	}
	return n
}

// FirstEntry returns the index of the first entry slot, or -1.
func (pg Page[T]) FirstEntry() int {
	for i, s := range pg.Slots {
		if s.IsEntry() {
			return i
		}
	}
	return -1
}

// Step returns the index of the nearest entry reached from slot from by
// moving step slots at a time, or from itself when none is found. Moving by
// Columns walks down a column; moving by 1 walks the reading order.
func (pg Page[T]) Step(from, step int) int {
	if step == 0 {
		return from
	}
	for i := from + step; i >= 0 && i < len(pg.Slots); i += step {
		if pg.Slots[i].IsEntry() {
			return i
		}
	}
	return from
}
