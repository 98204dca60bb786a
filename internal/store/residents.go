package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/theirongolddev/brgy/internal/model"
)

// AddResident registers a resident and records the registration. The stored
// resident, with its id and registration time filled in, is returned.
func (s *Store) AddResident(r model.Resident) (model.Resident, error) {
	if r.ID == "" {
		r.ID = newID()
	}
	if r.Registered.IsZero() {
		r.Registered = s.now()
	}
	r.Archived = false

	tx, err := s.db.Begin()
	if err != nil {
		return r, err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT INTO residents
		(id, first_name, middle_name, last_name, suffix, sex, birthdate,
		 civil_status, address, contact, registered_at, archived)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
		r.ID, r.FirstName, r.MiddleName, r.LastName, r.Suffix, r.Sex, formatTime(r.Birthdate),
		r.CivilStatus, r.Address, r.Contact, formatTime(r.Registered),
	)
	if err != nil {
		return r, fmt.Errorf("inserting resident: %w", err)
	}

	if err := insertRecord(tx, model.Record{
		Kind:    model.KindResident,
		ID:      newID(),
		OwnerID: r.ID,
		Issued:  r.Registered,
		Purpose: "registration",
	}); err != nil {
		return r, err
	}

	return r, tx.Commit()
}

// Resident loads one resident by id.
func (s *Store) Resident(id string) (model.Resident, error) {
	var r model.Resident
	var birth, registered sql.NullString
	var archived int

	err := s.db.QueryRow(`SELECT
		id, first_name, middle_name, last_name, suffix, sex, birthdate,
		civil_status, address, contact, registered_at, archived
		FROM residents WHERE id = ?`, id).Scan(
		&r.ID, &r.FirstName, &r.MiddleName, &r.LastName, &r.Suffix, &r.Sex, &birth,
		&r.CivilStatus, &r.Address, &r.Contact, &registered, &archived,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return r, fmt.Errorf("resident %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return r, err
	}

	r.Birthdate = parseTime(birth)
	r.Registered = parseTime(registered)
	r.Archived = archived != 0
	return r, nil
}

// ArchiveResident hides a resident and every record issued to them from the
// registry lists.
func (s *Store) ArchiveResident(id string) error {
	return s.setArchived("residents", id, true)
}

// RestoreResident undoes ArchiveResident.
func (s *Store) RestoreResident(id string) error {
	return s.setArchived("residents", id, false)
}

func (s *Store) setArchived(table, id string, archived bool) error {
	// table is one of two constants, never user input.
	err := execOne(func() (sql.Result, error) {
		return s.db.Exec("UPDATE "+table+" SET archived = ? WHERE id = ?", boolInt(archived), id)
	})
	if err != nil {
		return fmt.Errorf("%s %s: %w", table, id, err)
	}
	return nil
}
