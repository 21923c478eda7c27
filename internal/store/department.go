package store

import (
	"database/sql"
	"fmt"

	"hausfrau/internal/model"
)

type DepartmentStore struct {
	db *sql.DB
}

func NewDepartmentStore(db *sql.DB) *DepartmentStore {
	return &DepartmentStore{db: db}
}

func scanDepartment(scanner interface{ Scan(...any) error }) (*model.Department, error) {
	var d model.Department
	var modified sql.NullTime
	if err := scanner.Scan(&d.ID, &d.Name, &modified); err != nil {
		return nil, err
	}
	if modified.Valid {
		d.Modified = &modified.Time
	}
	return &d, nil
}

const departmentCols = `id, name, modified`

func (s *DepartmentStore) List() ([]model.Department, error) {
	rows, err := s.db.Query(`SELECT ` + departmentCols + ` FROM department ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var departments []model.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		departments = append(departments, *d)
	}
	return departments, rows.Err()
}

func (s *DepartmentStore) GetByID(id int64) (*model.Department, error) {
	row := s.db.QueryRow(`SELECT `+departmentCols+` FROM department WHERE id = ?`, id)
	d, err := scanDepartment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get department: %w", err)
	}
	return d, nil
}

func (s *DepartmentStore) Create(name string) (*model.Department, error) {
	result, err := s.db.Exec(`INSERT INTO department (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("insert department: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}
