package store

import (
	"database/sql"
	"fmt"

	"hausfrau/internal/vehicle/model"
)

type ServiceIntervalStore struct {
	db *sql.DB
}

func NewServiceIntervalStore(db *sql.DB) *ServiceIntervalStore {
	return &ServiceIntervalStore{db: db}
}

func scanInterval(scanner interface{ Scan(...any) error }, withVehicleName bool) (*model.ServiceInterval, error) {
	var iv model.ServiceInterval
	var months, miles, nextMiles sql.NullInt64
	var notes, nextDate sql.NullString
	var modified sql.NullTime

	dest := []any{
		&iv.VehicleID, &iv.ServiceID, &months, &miles, &notes,
		&nextDate, &nextMiles, &modified, &iv.ServiceName,
	}
	if withVehicleName {
		dest = append(dest, &iv.VehicleName)
	}
	if err := scanner.Scan(dest...); err != nil {
		return nil, err
	}

	if months.Valid {
		iv.Months = &months.Int64
	}
	if miles.Valid {
		iv.Miles = &miles.Int64
	}
	if notes.Valid {
		iv.Notes = &notes.String
	}
	if nextDate.Valid {
		iv.NextDate = &nextDate.String
	}
	if nextMiles.Valid {
		iv.NextMiles = &nextMiles.Int64
	}
	if modified.Valid {
		iv.Modified = &modified.Time
	}
	return &iv, nil
}

const intervalCols = `si.vehicle_id, si.service_id, si.months, si.miles, si.notes,
	si.next_date, si.next_miles, si.modified, st.name AS service_name`

// ListForVehicle returns a vehicle's maintenance schedule ordered by service
// type name.
func (s *ServiceIntervalStore) ListForVehicle(vehicleID int64) ([]model.ServiceInterval, error) {
	rows, err := s.db.Query(
		`SELECT `+intervalCols+`
		 FROM service_intervals si
		 JOIN servicetype st ON si.service_id = st.id
		 WHERE si.vehicle_id = ?
		 ORDER BY st.name`,
		vehicleID,
	)
	if err != nil {
		return nil, fmt.Errorf("list service intervals: %w", err)
	}
	defer rows.Close()

	var intervals []model.ServiceInterval
	for rows.Next() {
		iv, err := scanInterval(rows, false)
		if err != nil {
			return nil, fmt.Errorf("scan service interval: %w", err)
		}
		intervals = append(intervals, *iv)
	}
	return intervals, rows.Err()
}

func (s *ServiceIntervalStore) Get(vehicleID, serviceID int64) (*model.ServiceInterval, error) {
	row := s.db.QueryRow(
		`SELECT `+intervalCols+`
		 FROM service_intervals si
		 JOIN servicetype st ON si.service_id = st.id
		 WHERE si.vehicle_id = ? AND si.service_id = ?`,
		vehicleID, serviceID,
	)
	iv, err := scanInterval(row, false)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get service interval: %w", err)
	}
	return iv, nil
}

// Upsert inserts a schedule row or updates the cadence of the existing
// (vehicle, service type) pair.
func (s *ServiceIntervalStore) Upsert(vehicleID, serviceID int64, months, miles *int64, notes *string) (*model.ServiceInterval, error) {
	_, err := s.db.Exec(
		`INSERT INTO service_intervals (vehicle_id, service_id, months, miles, notes)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (vehicle_id, service_id)
		 DO UPDATE SET months = excluded.months, miles = excluded.miles,
		               notes = excluded.notes, modified = CURRENT_TIMESTAMP`,
		vehicleID, serviceID, nullInt(months), nullInt(miles), nullStr(notes),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert service interval: %w", err)
	}
	return s.Get(vehicleID, serviceID)
}

func (s *ServiceIntervalStore) Update(vehicleID, serviceID int64, months, miles *int64, notes, nextDate *string, nextMiles *int64) (*model.ServiceInterval, error) {
	result, err := s.db.Exec(
		`UPDATE service_intervals
		 SET months = ?, miles = ?, notes = ?, next_date = ?, next_miles = ?, modified = CURRENT_TIMESTAMP
		 WHERE vehicle_id = ? AND service_id = ?`,
		nullInt(months), nullInt(miles), nullStr(notes), nullStr(nextDate), nullInt(nextMiles),
		vehicleID, serviceID,
	)
	if err != nil {
		return nil, fmt.Errorf("update service interval: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.Get(vehicleID, serviceID)
}

// Delete removes one schedule row. It returns false when no row matched.
func (s *ServiceIntervalStore) Delete(vehicleID, serviceID int64) (bool, error) {
	result, err := s.db.Exec(
		`DELETE FROM service_intervals WHERE vehicle_id = ? AND service_id = ?`,
		vehicleID, serviceID,
	)
	if err != nil {
		return false, fmt.Errorf("delete service interval: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// ListUpcoming returns intervals due on or before the cutoff date
// (YYYY-MM-DD), joined with vehicle and service names.
func (s *ServiceIntervalStore) ListUpcoming(cutoff string) ([]model.ServiceInterval, error) {
	rows, err := s.db.Query(
		`SELECT `+intervalCols+`, v.name AS vehicle_name
		 FROM service_intervals si
		 JOIN servicetype st ON si.service_id = st.id
		 JOIN vehicle v ON si.vehicle_id = v.id
		 WHERE si.next_date IS NOT NULL AND si.next_date <= ?
		 ORDER BY si.next_date ASC, si.next_miles ASC`,
		cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("list upcoming services: %w", err)
	}
	defer rows.Close()

	var intervals []model.ServiceInterval
	for rows.Next() {
		iv, err := scanInterval(rows, true)
		if err != nil {
			return nil, fmt.Errorf("scan upcoming service: %w", err)
		}
		intervals = append(intervals, *iv)
	}
	return intervals, rows.Err()
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullStr(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
