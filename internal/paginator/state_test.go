package paginator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectionFixture(t *testing.T) (*Paginator[rec], Page[rec]) {
	t.Helper()
	records := append(run("a", 2024, time.August, 1), run("b", 2024, time.July, 3)...)
	p := newTestPaginator(t, records, 10, true)
	// H HS | E F | H HS | E E | E _
	return p, p.Layout(1)
}

func TestSelectStateMachine(t *testing.T) {
	p, pg := selectionFixture(t)
	s := p.Start()
	require.Equal(t, NoSelection, s.Selected)

	s, res := Select(s, pg, 2)
	assert.Equal(t, SelectionShown, res)
	assert.Equal(t, 2, s.Selected)
	item, ok := pg.Entry(s.Selected)
	require.True(t, ok)
	assert.Equal(t, "a00", item.id)

	s, res = Select(s, pg, 7)
	assert.Equal(t, SelectionMoved, res)
	assert.Equal(t, 7, s.Selected)

	s, res = Select(s, pg, 7)
	assert.Equal(t, SelectionCleared, res)
	assert.False(t, s.HasSelection())

	s, res = Select(s, pg, 6)
	assert.Equal(t, SelectionShown, res)
	s, res = Select(s, pg, NoSelection)
	assert.Equal(t, SelectionCleared, res)
	assert.Equal(t, NoSelection, s.Selected)
}

func TestSelectIgnoresNonEntries(t *testing.T) {
	p, pg := selectionFixture(t)

	for _, i := range []int{0, 1, 3, 4, 5, 9, 10, 42} {
		s, res := Select(p.Start(), pg, i)
		assert.Equal(t, SelectionIgnored, res, "slot %d", i)
		assert.False(t, res.Changed())
		assert.Equal(t, NoSelection, s.Selected)
	}

	s, _ := Select(p.Start(), pg, 8)
	s, res := Select(s, pg, 0)
	assert.Equal(t, SelectionIgnored, res)
	assert.Equal(t, 8, s.Selected)

	_, res = Select(p.Start(), pg, NoSelection)
	assert.Equal(t, SelectionIgnored, res)
}

func TestSelectSelfToggle(t *testing.T) {
	p, pg := selectionFixture(t)
	start := p.Start()

	s, _ := Select(start, pg, 6)
	s, _ = Select(s, pg, 6)
	assert.Equal(t, start, s)
}

func TestPageChangeClearsSelection(t *testing.T) {
	p := newTestPaginator(t, mixed(), DefaultSlotCount, true)
	require.Greater(t, p.PageCount(), 2)

	s := p.Start()
	pg := p.Layout(s.Page)
	s, _ = Select(s, pg, pg.FirstEntry())
	require.True(t, s.HasSelection())

	s = p.Next(s)
	assert.Equal(t, 2, s.Page)
	assert.False(t, s.HasSelection())

	s = p.Goto(s, p.PageCount())
	assert.Equal(t, p.PageCount(), s.Page)
	assert.Equal(t, s, p.Next(s))

	s = p.Goto(s, 1)
	assert.Equal(t, s, p.Prev(s))

	s = p.Goto(s, 1000)
	assert.Equal(t, p.PageCount(), s.Page)
	assert.Equal(t, p.LabelUsage(), s.LabelUsage)
}
