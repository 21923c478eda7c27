package store

import (
	"database/sql"
	"fmt"

	"hausfrau/internal/vehicle/model"
)

type VehicleStore struct {
	db *sql.DB
}

func NewVehicleStore(db *sql.DB) *VehicleStore {
	return &VehicleStore{db: db}
}

func scanVehicle(scanner interface{ Scan(...any) error }) (*model.Vehicle, error) {
	var v model.Vehicle
	var modified sql.NullTime
	if err := scanner.Scan(&v.ID, &v.Name, &modified); err != nil {
		return nil, err
	}
	if modified.Valid {
		v.Modified = &modified.Time
	}
	return &v, nil
}

const vehicleCols = `id, name, modified`

func (s *VehicleStore) List() ([]model.Vehicle, error) {
	rows, err := s.db.Query(`SELECT ` + vehicleCols + ` FROM vehicle ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []model.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

func (s *VehicleStore) GetByID(id int64) (*model.Vehicle, error) {
	row := s.db.QueryRow(`SELECT `+vehicleCols+` FROM vehicle WHERE id = ?`, id)
	v, err := scanVehicle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

func (s *VehicleStore) Create(name string) (*model.Vehicle, error) {
	result, err := s.db.Exec(`INSERT INTO vehicle (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("insert vehicle: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *VehicleStore) Rename(id int64, name string) (*model.Vehicle, error) {
	result, err := s.db.Exec(
		`UPDATE vehicle SET name = ?, modified = CURRENT_TIMESTAMP WHERE id = ?`,
		name, id,
	)
	if err != nil {
		return nil, fmt.Errorf("rename vehicle: %w", err)
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

// Delete removes a vehicle. It returns false when no row matched.
func (s *VehicleStore) Delete(id int64) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM vehicle WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete vehicle: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
