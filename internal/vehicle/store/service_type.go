package store

import (
	"database/sql"
	"fmt"

	"hausfrau/internal/vehicle/model"
)

type ServiceTypeStore struct {
	db *sql.DB
}

func NewServiceTypeStore(db *sql.DB) *ServiceTypeStore {
	return &ServiceTypeStore{db: db}
}

func scanServiceType(scanner interface{ Scan(...any) error }) (*model.ServiceType, error) {
	var st model.ServiceType
	var modified sql.NullTime
	if err := scanner.Scan(&st.ID, &st.Name, &modified); err != nil {
		return nil, err
	}
	if modified.Valid {
		st.Modified = &modified.Time
	}
	return &st, nil
}

func (s *ServiceTypeStore) List() ([]model.ServiceType, error) {
	rows, err := s.db.Query(`SELECT id, name, modified FROM servicetype ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list service types: %w", err)
	}
	defer rows.Close()

	var types []model.ServiceType
	for rows.Next() {
		st, err := scanServiceType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service type: %w", err)
		}
		types = append(types, *st)
	}
	return types, rows.Err()
}

func (s *ServiceTypeStore) GetByID(id int64) (*model.ServiceType, error) {
	row := s.db.QueryRow(`SELECT id, name, modified FROM servicetype WHERE id = ?`, id)
	st, err := scanServiceType(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get service type: %w", err)
	}
	return st, nil
}

func (s *ServiceTypeStore) Create(name string) (*model.ServiceType, error) {
	result, err := s.db.Exec(`INSERT INTO servicetype (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("insert service type: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ServiceTypeStore) Rename(id int64, name string) (*model.ServiceType, error) {
	result, err := s.db.Exec(
		`UPDATE servicetype SET name = ?, modified = CURRENT_TIMESTAMP WHERE id = ?`,
		name, id,
	)
	if err != nil {
		return nil, fmt.Errorf("rename service type: %w", err)
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

// Delete removes a service type. It returns false when no row matched.
func (s *ServiceTypeStore) Delete(id int64) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM servicetype WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete service type: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
