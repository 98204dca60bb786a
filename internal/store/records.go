package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/brgy/internal/model"
)

func insertRecord(tx *sql.Tx, rec model.Record) error {
	_, err := tx.Exec(`INSERT INTO records (id, kind, owner_id, issued_at, purpose)
		VALUES (?, ?, ?, ?, ?)`,
		rec.ID, int(rec.Kind), rec.OwnerID, formatTime(rec.Issued), rec.Purpose)
	if err != nil {
		return fmt.Errorf("inserting %s record: %w", rec.Kind, err)
	}
	return nil
}

// IssueRecord issues an ID card or clearance to a resident, or a permit
// renewal to a business. Registrations are created by AddResident and
// AddBusiness. A zero at means now.
func (s *Store) IssueRecord(kind model.Kind, ownerID, purpose string, at time.Time) (model.Record, error) {
	if kind == model.KindResident {
		return model.Record{}, errors.New("residents are registered with AddResident")
	}
	if at.IsZero() {
		at = s.now()
	}

	var archived bool
	if kind.OwnedByBusiness() {
		b, err := s.Business(ownerID)
		if err != nil {
			return model.Record{}, err
		}
		archived = b.Archived
	} else {
		r, err := s.Resident(ownerID)
		if err != nil {
			return model.Record{}, err
		}
		archived = r.Archived
	}
	if archived {
		return model.Record{}, fmt.Errorf("issuing %s to %s: %w", kind, ownerID, ErrArchived)
	}

	rec := model.Record{
		Kind:    kind,
		ID:      newID(),
		OwnerID: ownerID,
		Issued:  at,
		Purpose: purpose,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return rec, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertRecord(tx, rec); err != nil {
		return rec, err
	}
	return rec, tx.Commit()
}

// Record loads one record by id.
func (s *Store) Record(id string) (model.Record, error) {
	var rec model.Record
	var kind int
	var issued sql.NullString

	err := s.db.QueryRow(`SELECT id, kind, owner_id, issued_at, purpose FROM records WHERE id = ?`, id).
		Scan(&rec.ID, &kind, &rec.OwnerID, &issued, &rec.Purpose)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("record %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return rec, err
	}
	rec.Kind = model.Kind(kind)
	rec.Issued = parseTime(issued)
	return rec, nil
}

// Records returns every record of a kind whose owner is not archived, newest
// first. Records issued at the same instant keep the most recently created
// one first.
func (s *Store) Records(kind model.Kind) ([]model.ListItem, error) {
	var query string
	if kind.OwnedByBusiness() {
		query = `SELECT r.id, r.owner_id, r.issued_at, r.purpose, o.name, '', '', ''
			FROM records r JOIN businesses o ON o.id = r.owner_id
			WHERE r.kind = ? AND o.archived = 0
			ORDER BY r.issued_at DESC, r.rowid DESC`
	} else {
		query = `SELECT r.id, r.owner_id, r.issued_at, r.purpose,
			o.first_name, o.middle_name, o.last_name, o.suffix
			FROM records r JOIN residents o ON o.id = r.owner_id
			WHERE r.kind = ? AND o.archived = 0
			ORDER BY r.issued_at DESC, r.rowid DESC`
	}

	rows, err := s.db.Query(query, int(kind))
	if err != nil {
		return nil, fmt.Errorf("querying %s records: %w", kind, err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.ListItem
	for rows.Next() {
		var it model.ListItem
		var issued sql.NullString
		var first, middle, last, suffix string
		if err := rows.Scan(&it.ID, &it.OwnerID, &issued, &it.Purpose,
			&first, &middle, &last, &suffix); err != nil {
			return nil, err
		}
		it.Kind = kind
		it.Issued = parseTime(issued)
		if kind.OwnedByBusiness() {
			it.DisplayName = first
		} else {
			it.DisplayName = model.Resident{
				FirstName:  first,
				MiddleName: middle,
				LastName:   last,
				Suffix:     suffix,
			}.DisplayName()
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// RecordsSince returns every record issued at or after since, of any kind,
// including those of archived owners.
func (s *Store) RecordsSince(since time.Time) ([]model.Record, error) {
	rows, err := s.db.Query(`SELECT id, kind, owner_id, issued_at, purpose
		FROM records WHERE issued_at >= ? ORDER BY issued_at DESC`, formatTime(since))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Record
	for rows.Next() {
		var rec model.Record
		var kind int
		var issued sql.NullString
		if err := rows.Scan(&rec.ID, &kind, &rec.OwnerID, &issued, &rec.Purpose); err != nil {
			return nil, err
		}
		rec.Kind = model.Kind(kind)
		rec.Issued = parseTime(issued)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Stats returns the registry counts.
func (s *Store) Stats() (model.RegistryStats, error) {
	var st model.RegistryStats
	err := s.db.QueryRow(`SELECT
		(SELECT COUNT(*) FROM residents WHERE archived = 0),
		(SELECT COUNT(*) FROM residents WHERE archived = 1),
		(SELECT COUNT(*) FROM businesses WHERE archived = 0),
		(SELECT COUNT(*) FROM records WHERE kind = ?),
		(SELECT COUNT(*) FROM records WHERE kind = ?)`,
		int(model.KindIDCard), int(model.KindClearance),
	).Scan(&st.Residents, &st.ArchivedResidents, &st.Businesses, &st.IDCards, &st.Clearances)
	return st, err
}
