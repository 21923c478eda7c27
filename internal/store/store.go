package store

import (
	"database/sql"
	"fmt"

	"hausfrau/internal/model"
)

type StoreStore struct {
	db *sql.DB
}

func NewStoreStore(db *sql.DB) *StoreStore {
	return &StoreStore{db: db}
}

func scanStore(scanner interface{ Scan(...any) error }) (*model.Store, error) {
	var st model.Store
	var modified sql.NullTime
	if err := scanner.Scan(&st.ID, &st.Name, &modified); err != nil {
		return nil, err
	}
	if modified.Valid {
		st.Modified = &modified.Time
	}
	return &st, nil
}

const storeCols = `id, name, modified`

// List returns persisted stores ordered by name. A persisted row literally
// named "All" is filtered so the virtual store stays unique in listings.
func (s *StoreStore) List() ([]model.Store, error) {
	rows, err := s.db.Query(`SELECT ` + storeCols + ` FROM store WHERE name <> 'All' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var stores []model.Store
	for rows.Next() {
		st, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		stores = append(stores, *st)
	}
	return stores, rows.Err()
}

func (s *StoreStore) GetByID(id int64) (*model.Store, error) {
	row := s.db.QueryRow(`SELECT `+storeCols+` FROM store WHERE id = ?`, id)
	st, err := scanStore(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	return st, nil
}

func (s *StoreStore) Create(name string) (*model.Store, error) {
	result, err := s.db.Exec(`INSERT INTO store (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("insert store: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *StoreStore) Rename(id int64, name string) (*model.Store, error) {
	result, err := s.db.Exec(
		`UPDATE store SET name = ?, modified = CURRENT_TIMESTAMP WHERE id = ?`,
		name, id,
	)
	if err != nil {
		return nil, fmt.Errorf("rename store: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.GetByID(id)
}

// Delete removes a store. It returns false when no row matched.
func (s *StoreStore) Delete(id int64) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM store WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete store: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
