package store

import (
	"database/sql"
	"fmt"

	"hausfrau/internal/model"
)

// tempSwapSeq is the holding value used while two sequences trade places.
// zone_sequence is validated to be >= 1 at the boundary, so -1 can never
// collide with a real sequence.
const tempSwapSeq = -1

type ZoneStore struct {
	db *sql.DB
}

func NewZoneStore(db *sql.DB) *ZoneStore {
	return &ZoneStore{db: db}
}

func scanZone(scanner interface{ Scan(...any) error }) (*model.StoreZone, error) {
	var z model.StoreZone
	var modified sql.NullTime
	if err := scanner.Scan(&z.StoreID, &z.ZoneSequence, &z.ZoneName, &z.DepartmentID, &modified, &z.DepartmentName); err != nil {
		return nil, err
	}
	if modified.Valid {
		z.Modified = &modified.Time
	}
	return &z, nil
}

const zoneCols = `sz.store_id, sz.zone_sequence, sz.zone_name, sz.department_id, sz.modified, d.name AS department_name`

// ListForStore returns a real store's zone rows with department names,
// ordered by walking sequence then department name.
func (s *ZoneStore) ListForStore(storeID int64) ([]model.StoreZone, error) {
	rows, err := s.db.Query(
		`SELECT `+zoneCols+`
		 FROM store_zones sz
		 JOIN department d ON sz.department_id = d.id
		 WHERE sz.store_id = ?
		 ORDER BY sz.zone_sequence, d.name`,
		storeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()

	var zones []model.StoreZone
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		zones = append(zones, *z)
	}
	return zones, rows.Err()
}

// ListAllStore synthesizes the virtual store's layout: every department under
// a single "General" zone at sequence 1. No store_zones rows are read.
func (s *ZoneStore) ListAllStore() ([]model.StoreZone, error) {
	rows, err := s.db.Query(`SELECT id, name FROM department ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list departments for virtual store: %w", err)
	}
	defer rows.Close()

	var zones []model.StoreZone
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		zones = append(zones, model.StoreZone{
			StoreID:        model.AllStoreID,
			ZoneSequence:   1,
			ZoneName:       model.GeneralZone,
			DepartmentID:   id,
			DepartmentName: name,
		})
	}
	return zones, rows.Err()
}

func (s *ZoneStore) Get(storeID, seq, departmentID int64) (*model.StoreZone, error) {
	row := s.db.QueryRow(
		`SELECT `+zoneCols+`
		 FROM store_zones sz
		 JOIN department d ON sz.department_id = d.id
		 WHERE sz.store_id = ? AND sz.zone_sequence = ? AND sz.department_id = ?`,
		storeID, seq, departmentID,
	)
	z, err := scanZone(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get zone: %w", err)
	}
	return z, nil
}

// Upsert inserts a (store, sequence, department) assignment or, when the
// composite key already exists, updates only the zone name.
func (s *ZoneStore) Upsert(storeID, seq int64, name string, departmentID int64) (*model.StoreZone, error) {
	_, err := s.db.Exec(
		`INSERT INTO store_zones (store_id, zone_sequence, zone_name, department_id)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (store_id, zone_sequence, department_id)
		 DO UPDATE SET zone_name = excluded.zone_name, modified = CURRENT_TIMESTAMP`,
		storeID, seq, name, departmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert zone: %w", err)
	}
	return s.Get(storeID, seq, departmentID)
}

// SwapSequences exchanges the ordering of all rows at seqA with all rows at
// seqB for one store, atomically. A direct pair of updates would collide on
// the composite primary key, so rows at seqA pass through a temporary
// sentinel first.
func (s *ZoneStore) SwapSequences(storeID, seqA, seqB int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	steps := []struct {
		from, to int64
	}{
		{seqA, tempSwapSeq},
		{seqB, seqA},
		{tempSwapSeq, seqB},
	}
	for _, st := range steps {
		if _, err := tx.Exec(
			`UPDATE store_zones SET zone_sequence = ?, modified = CURRENT_TIMESTAMP
			 WHERE store_id = ? AND zone_sequence = ?`,
			st.to, storeID, st.from,
		); err != nil {
			return fmt.Errorf("move sequence %d to %d: %w", st.from, st.to, err)
		}
	}

	return tx.Commit()
}

// Delete removes one (store, sequence, department) row. It returns false
// when no row matched.
func (s *ZoneStore) Delete(storeID, seq, departmentID int64) (bool, error) {
	result, err := s.db.Exec(
		`DELETE FROM store_zones WHERE store_id = ? AND zone_sequence = ? AND department_id = ?`,
		storeID, seq, departmentID,
	)
	if err != nil {
		return false, fmt.Errorf("delete zone: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
