package store

import (
	"database/sql"
	"fmt"

	"hausfrau/internal/model"
)

type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

func scanItem(scanner interface{ Scan(...any) error }) (*model.Item, error) {
	var item model.Item
	var deptID sql.NullInt64
	var deptName sql.NullString
	var modified sql.NullTime
	if err := scanner.Scan(&item.ID, &item.Name, &deptID, &item.Qty, &modified, &deptName); err != nil {
		return nil, err
	}
	if deptID.Valid {
		item.DepartmentID = &deptID.Int64
	}
	if deptName.Valid {
		item.DepartmentName = &deptName.String
	}
	if modified.Valid {
		item.Modified = &modified.Time
	}
	return &item, nil
}

const itemCols = `i.id, i.name, i.department_id, i.qty, i.modified, d.name AS department_name`

func (s *ItemStore) List() ([]model.Item, error) {
	rows, err := s.db.Query(
		`SELECT ` + itemCols + `
		 FROM items i
		 LEFT JOIN department d ON i.department_id = d.id
		 ORDER BY d.name, i.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *ItemStore) GetByID(id int64) (*model.Item, error) {
	row := s.db.QueryRow(
		`SELECT `+itemCols+`
		 FROM items i
		 LEFT JOIN department d ON i.department_id = d.id
		 WHERE i.id = ?`,
		id,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (s *ItemStore) Create(name string, departmentID *int64, qty int64) (*model.Item, error) {
	var dept sql.NullInt64
	if departmentID != nil {
		dept = sql.NullInt64{Int64: *departmentID, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO items (name, department_id, qty) VALUES (?, ?, ?)`,
		name, dept, qty,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ItemStore) Update(id int64, name string, departmentID *int64, qty int64) (*model.Item, error) {
	var dept sql.NullInt64
	if departmentID != nil {
		dept = sql.NullInt64{Int64: *departmentID, Valid: true}
	}

	result, err := s.db.Exec(
		`UPDATE items SET name = ?, department_id = ?, qty = ?, modified = CURRENT_TIMESTAMP WHERE id = ?`,
		name, dept, qty, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
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

// Delete removes an item. It returns false when no row matched.
func (s *ItemStore) Delete(id int64) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
