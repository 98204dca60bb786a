package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/theirongolddev/brgy/internal/model"
)

// AddBusiness registers a business and records the registration.
func (s *Store) AddBusiness(b model.Business) (model.Business, error) {
	if b.ID == "" {
		b.ID = newID()
	}
	if b.Registered.IsZero() {
		b.Registered = s.now()
	}
	b.Archived = false

	tx, err := s.db.Begin()
	if err != nil {
		return b, err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT INTO businesses
		(id, name, owner_name, address, category, registered_at, archived)
		VALUES (?, ?, ?, ?, ?, ?, 0)`,
		b.ID, b.Name, b.OwnerName, b.Address, b.Category, formatTime(b.Registered),
	)
	if err != nil {
		return b, fmt.Errorf("inserting business: %w", err)
	}

	if err := insertRecord(tx, model.Record{
		Kind:    model.KindBusiness,
		ID:      newID(),
		OwnerID: b.ID,
		Issued:  b.Registered,
		Purpose: "registration",
	}); err != nil {
		return b, err
	}

	return b, tx.Commit()
}

// Business loads one business by id.
func (s *Store) Business(id string) (model.Business, error) {
	var b model.Business
	var registered sql.NullString
	var archived int

	err := s.db.QueryRow(`SELECT id, name, owner_name, address, category, registered_at, archived
		FROM businesses WHERE id = ?`, id).Scan(
		&b.ID, &b.Name, &b.OwnerName, &b.Address, &b.Category, &registered, &archived,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return b, fmt.Errorf("business %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return b, err
	}

	b.Registered = parseTime(registered)
	b.Archived = archived != 0
	return b, nil
}

// ArchiveBusiness hides a business from the registry lists.
func (s *Store) ArchiveBusiness(id string) error {
	return s.setArchived("businesses", id, true)
}
