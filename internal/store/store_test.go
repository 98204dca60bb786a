package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/brgy/internal/model"
	"github.com/theirongolddev/brgy/internal/paginator"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "brgy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	s.now = func() time.Time { return at(2024, time.June, 1) }
	return s
}

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestAddResidentRoundTrip(t *testing.T) {
	s := openTestStore(t)
	s.now = func() time.Time { return at(2024, time.August, 3) }

	added, err := s.AddResident(model.Resident{
		FirstName:   "Juan",
		MiddleName:  "Santos",
		LastName:    "Dela Cruz",
		Sex:         model.SexMale,
		Birthdate:   time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC),
		CivilStatus: model.CivilMarried,
		Address:     "Purok 3",
	})
	require.NoError(t, err)
	require.NotEmpty(t, added.ID)

	got, err := s.Resident(added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dela Cruz, Juan S.", got.DisplayName())
	assert.True(t, got.Registered.Equal(at(2024, time.August, 3)))
	assert.True(t, got.Birthdate.Equal(added.Birthdate))
	assert.Equal(t, model.CivilMarried, got.CivilStatus)
	assert.False(t, got.Archived)

	items, err := s.Records(model.KindResident)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, added.ID, items[0].OwnerID)
	assert.Equal(t, "Dela Cruz, Juan S.", items[0].DisplayName)
}

func TestResidentNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Resident("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.ArchiveResident("nope"), ErrNotFound)
}

func TestRecordsNewestFirstAndArchivedHidden(t *testing.T) {
	s := openTestStore(t)

	ana, err := s.AddResident(model.Resident{FirstName: "Ana", LastName: "Reyes"})
	require.NoError(t, err)
	ben, err := s.AddResident(model.Resident{FirstName: "Ben", LastName: "Cruz"})
	require.NoError(t, err)

	_, err = s.IssueRecord(model.KindIDCard, ana.ID, "", at(2024, time.July, 1))
	require.NoError(t, err)
	_, err = s.IssueRecord(model.KindIDCard, ben.ID, "", at(2024, time.August, 9))
	require.NoError(t, err)
	_, err = s.IssueRecord(model.KindIDCard, ana.ID, "replacement", at(2024, time.August, 20))
	require.NoError(t, err)

	items, err := s.Records(model.KindIDCard)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "replacement", items[0].Purpose)
	assert.Equal(t, "Cruz, Ben", items[1].DisplayName)
	assert.Equal(t, "Reyes, Ana", items[2].DisplayName)

	require.NoError(t, s.ArchiveResident(ana.ID))
	items, err = s.Records(model.KindIDCard)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, ben.ID, items[0].OwnerID)

	_, err = s.IssueRecord(model.KindClearance, ana.ID, "employment", time.Time{})
	assert.ErrorIs(t, err, ErrArchived)

	require.NoError(t, s.RestoreResident(ana.ID))
	items, err = s.Records(model.KindIDCard)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestSameInstantKeepsNewestCreatedFirst(t *testing.T) {
	s := openTestStore(t)
	r, err := s.AddResident(model.Resident{FirstName: "Ana", LastName: "Reyes"})
	require.NoError(t, err)

	when := at(2024, time.May, 5)
	first, err := s.IssueRecord(model.KindClearance, r.ID, "first", when)
	require.NoError(t, err)
	second, err := s.IssueRecord(model.KindClearance, r.ID, "second", when)
	require.NoError(t, err)

	items, err := s.Records(model.KindClearance)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestBusinessRecords(t *testing.T) {
	s := openTestStore(t)

	b, err := s.AddBusiness(model.Business{Name: "Aling Nena Sari-Sari", OwnerName: "Nena Santos", Category: "retail"})
	require.NoError(t, err)

	_, err = s.IssueRecord(model.KindBusiness, b.ID, "permit renewal", at(2025, time.January, 10))
	require.NoError(t, err)

	items, err := s.Records(model.KindBusiness)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Aling Nena Sari-Sari", items[0].DisplayName)
	assert.Equal(t, "permit renewal", items[0].Purpose)

	got, err := s.Business(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "retail", got.Category)

	require.NoError(t, s.ArchiveBusiness(b.ID))
	items, err = s.Records(model.KindBusiness)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestIssueDatesGroupByLocalMonth(t *testing.T) {
	saved := time.Local
	time.Local = time.FixedZone("PHT", 8*60*60)
	t.Cleanup(func() { time.Local = saved })

	s := openTestStore(t)
	r, err := s.AddResident(model.Resident{FirstName: "Ana", LastName: "Reyes"})
	require.NoError(t, err)

	firstOfAugust := time.Date(2024, time.August, 1, 0, 0, 0, 0, time.Local)
	_, err = s.IssueRecord(model.KindIDCard, r.ID, "", firstOfAugust)
	require.NoError(t, err)
	_, err = s.IssueRecord(model.KindIDCard, r.ID, "", time.Date(2024, time.July, 31, 23, 0, 0, 0, time.Local))
	require.NoError(t, err)

	items, err := s.Records(model.KindIDCard)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, time.August, items[0].Issued.Month())
	assert.Equal(t, 1, items[0].Issued.Day())

	p, err := paginator.New(items, paginator.Config[model.ListItem]{
		SlotCount: 10,
		Date:      model.ListItem.IssuedAt,
		Label:     model.ListItem.Label,
		ID:        model.ListItem.Key,
	})
	require.NoError(t, err)
	pg := p.Layout(1)

	assert.Equal(t, paginator.SlotHeader, pg.Slot(0).Kind)
	assert.Equal(t, "August 2024", pg.Slot(0).Label)
	assert.Equal(t, items[0].ID, pg.Slot(2).ID)
	assert.Equal(t, paginator.SlotFiller, pg.Slot(3).Kind)
	assert.Equal(t, "July 2024", pg.Slot(4).Label)
	assert.Equal(t, items[1].ID, pg.Slot(6).ID)
}

func TestIssueRecordRejectsRegistrationAndUnknownOwner(t *testing.T) {
	s := openTestStore(t)

	_, err := s.IssueRecord(model.KindResident, "x", "", time.Time{})
	assert.Error(t, err)

	_, err = s.IssueRecord(model.KindIDCard, "missing", "", time.Time{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordLookupAndStats(t *testing.T) {
	s := openTestStore(t)
	r, err := s.AddResident(model.Resident{FirstName: "Ana", LastName: "Reyes"})
	require.NoError(t, err)
	rec, err := s.IssueRecord(model.KindClearance, r.ID, "scholarship", at(2024, time.March, 2))
	require.NoError(t, err)

	got, err := s.Record(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, model.KindClearance, got.Kind)
	assert.Equal(t, "scholarship", got.Purpose)
	assert.True(t, got.Issued.Equal(rec.Issued))

	_, err = s.Record("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	st, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, model.RegistryStats{Residents: 1, Clearances: 1}, st)

	recent, err := s.RecordsSince(at(2024, time.January, 1))
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestSettings(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.Setting(SettingPasswordHash)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetSetting(SettingPasswordHash, "abc"))
	require.NoError(t, s.SetSetting(SettingPasswordHash, "def"))

	v, ok, err := s.Setting(SettingPasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "def", v)
}
