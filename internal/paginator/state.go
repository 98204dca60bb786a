package paginator

// NoSelection is the Selected value of a State with nothing selected.
const NoSelection = -1

// State is the pagination and selection state of one grid view. It is a
// value: every transition returns a new State and the UI keeps the only
// mutable copy.
type State struct {
	Page       int // 1-based
	PageCount  int
	LabelUsage int
	Selected   int // slot index on the current page, or NoSelection
}

// HasSelection reports whether a slot is selected.
func (s State) HasSelection() bool { return s.Selected != NoSelection }

// Start returns the state of a freshly loaded list: first page, nothing
// selected.
func (p *Paginator[T]) Start() State {
	return State{
		Page:       1,
		PageCount:  p.PageCount(),
		LabelUsage: p.LabelUsage(),
		Selected:   NoSelection,
	}
}

// Goto moves to page (clamped) and clears the selection.
func (p *Paginator[T]) Goto(s State, page int) State {
	s.Page = p.Clamp(page)
	s.PageCount = p.PageCount()
	s.LabelUsage = p.LabelUsage()
	s.Selected = NoSelection
	return s
}

// Next moves one page forward, staying on the last page.
func (p *Paginator[T]) Next(s State) State {
	if s.Page >= p.PageCount() {
		return s
	}
	return p.Goto(s, s.Page+1)
}

// Prev moves one page back, staying on the first page.
func (p *Paginator[T]) Prev(s State) State {
	if s.Page <= 1 {
		return s
	}
	return p.Goto(s, s.Page-1)
}

// SelectionResult describes what a Select call did.
type SelectionResult int

const (
	SelectionIgnored SelectionResult = iota // slot is not an entry; nothing changed
	SelectionShown                          // nothing was selected, now i is
	SelectionMoved                          // selection moved to another entry
	SelectionCleared                        // selection removed
)

func (r SelectionResult) String() string {
	switch r {
	case SelectionShown:
		return "shown"
	case SelectionMoved:
		return "moved"
	case SelectionCleared:
		return "cleared"
	default:
		return "ignored"
	}
}

// Changed reports whether the selection changed.
func (r SelectionResult) Changed() bool { return r != SelectionIgnored }

// Select applies a click on slot i of pg. Clicking the selected slot again,
// or passing NoSelection, clears the selection. Clicks on anything but an
// entry are ignored.
func Select[T any](s State, pg Page[T], i int) (State, SelectionResult) {
	if s.HasSelection() && (i == NoSelection || i == s.Selected) {
		s.Selected = NoSelection
		return s, SelectionCleared
	}
	if !pg.Slot(i).IsEntry() {
		return s, SelectionIgnored
	}
	result := SelectionShown
	if s.HasSelection() {
		result = SelectionMoved
	}
	s.Selected = i
	return s, result
}
