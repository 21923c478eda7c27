package store

import (
	"database/sql"
	"fmt"

	"hausfrau/internal/vehicle/model"
)

// recentLogLimit bounds the cross-vehicle history listing.
const recentLogLimit = 100

type ServiceLogStore struct {
	db *sql.DB
}

func NewServiceLogStore(db *sql.DB) *ServiceLogStore {
	return &ServiceLogStore{db: db}
}

func scanLogEntry(scanner interface{ Scan(...any) error }, withVehicleName bool) (*model.ServiceLogEntry, error) {
	var e model.ServiceLogEntry
	var miles, qty sql.NullInt64
	var notes sql.NullString
	var modified sql.NullTime

	dest := []any{
		&e.ID, &e.VehicleID, &e.ServiceID, &e.ServiceDate,
		&miles, &notes, &qty, &modified, &e.ServiceName,
	}
	if withVehicleName {
		dest = append(dest, &e.VehicleName)
	}
	if err := scanner.Scan(dest...); err != nil {
		return nil, err
	}

	if miles.Valid {
		e.ServiceMiles = &miles.Int64
	}
	if notes.Valid {
		e.Notes = &notes.String
	}
	if qty.Valid {
		e.Qty = &qty.Int64
	}
	if modified.Valid {
		e.Modified = &modified.Time
	}
	return &e, nil
}

const logCols = `sl.id, sl.vehicle_id, sl.service_id, sl.service_date,
	sl.service_miles, sl.notes, sl.qty, sl.modified, st.name AS service_name`

// ListForVehicle returns one vehicle's history, newest first.
func (s *ServiceLogStore) ListForVehicle(vehicleID int64) ([]model.ServiceLogEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+logCols+`
		 FROM service_log sl
		 JOIN servicetype st ON sl.service_id = st.id
		 WHERE sl.vehicle_id = ?
		 ORDER BY sl.service_date DESC, sl.service_miles DESC`,
		vehicleID,
	)
	if err != nil {
		return nil, fmt.Errorf("list service log: %w", err)
	}
	defer rows.Close()

	var entries []model.ServiceLogEntry
	for rows.Next() {
		e, err := scanLogEntry(rows, false)
		if err != nil {
			return nil, fmt.Errorf("scan service log entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// ListRecent returns the latest entries across all vehicles.
func (s *ServiceLogStore) ListRecent() ([]model.ServiceLogEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+logCols+`, v.name AS vehicle_name
		 FROM service_log sl
		 JOIN servicetype st ON sl.service_id = st.id
		 JOIN vehicle v ON sl.vehicle_id = v.id
		 ORDER BY sl.service_date DESC, sl.service_miles DESC
		 LIMIT ?`,
		recentLogLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("list recent service log: %w", err)
	}
	defer rows.Close()

	var entries []model.ServiceLogEntry
	for rows.Next() {
		e, err := scanLogEntry(rows, true)
		if err != nil {
			return nil, fmt.Errorf("scan service log entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *ServiceLogStore) GetByID(id int64) (*model.ServiceLogEntry, error) {
	row := s.db.QueryRow(
		`SELECT `+logCols+`, v.name AS vehicle_name
		 FROM service_log sl
		 JOIN servicetype st ON sl.service_id = st.id
		 JOIN vehicle v ON sl.vehicle_id = v.id
		 WHERE sl.id = ?`,
		id,
	)
	e, err := scanLogEntry(row, true)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get service log entry: %w", err)
	}
	return e, nil
}

func (s *ServiceLogStore) Create(vehicleID, serviceID int64, serviceDate string, serviceMiles *int64, notes *string, qty *int64) (*model.ServiceLogEntry, error) {
	result, err := s.db.Exec(
		`INSERT INTO service_log (vehicle_id, service_id, service_date, service_miles, notes, qty)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		vehicleID, serviceID, serviceDate, nullInt(serviceMiles), nullStr(notes), nullInt(qty),
	)
	if err != nil {
		return nil, fmt.Errorf("insert service log entry: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ServiceLogStore) Update(id int64, serviceDate string, serviceMiles *int64, notes *string, qty *int64) (*model.ServiceLogEntry, error) {
	result, err := s.db.Exec(
		`UPDATE service_log
		 SET service_date = ?, service_miles = ?, notes = ?, qty = ?, modified = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		serviceDate, nullInt(serviceMiles), nullStr(notes), nullInt(qty), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update service log entry: %w", err)
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

// Delete removes one log entry. It returns false when no row matched.
func (s *ServiceLogStore) Delete(id int64) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM service_log WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete service log entry: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
