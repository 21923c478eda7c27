package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"hausfrau/internal/model"
)

const (
	cleanupKey      = "shopping_list_last_cleanup_at"
	cleanupInterval = 24 * time.Hour
)

type ShoppingListStore struct {
	db *sql.DB
}

func NewShoppingListStore(db *sql.DB) *ShoppingListStore {
	return &ShoppingListStore{db: db}
}

func scanEntry(scanner interface{ Scan(...any) error }) (*model.ShoppingListEntry, error) {
	var e model.ShoppingListEntry
	var description, deptName, itemName sql.NullString
	var deptID, itemID sql.NullInt64
	var purchased int
	var modified sql.NullTime

	err := scanner.Scan(
		&e.Name, &description, &e.Quantity, &deptID, &itemID,
		&purchased, &modified, &deptName, &itemName,
	)
	if err != nil {
		return nil, err
	}

	e.Purchased = purchased != 0
	if description.Valid {
		e.Description = &description.String
	}
	if deptID.Valid {
		e.DepartmentID = &deptID.Int64
	}
	if itemID.Valid {
		e.ItemID = &itemID.Int64
	}
	if deptName.Valid {
		e.DepartmentName = &deptName.String
	}
	if itemName.Valid {
		e.ItemName = &itemName.String
	}
	if modified.Valid {
		e.Modified = &modified.Time
	}
	return &e, nil
}

const entryCols = `sl.name, sl.description, sl.quantity, sl.department_id, sl.item_id,
	sl.purchased, sl.modified, d.name AS department_name, i.name AS item_name`

func (s *ShoppingListStore) GetByName(name string) (*model.ShoppingListEntry, error) {
	row := s.db.QueryRow(
		`SELECT `+entryCols+`
		 FROM shopping_list sl
		 LEFT JOIN department d ON sl.department_id = d.id
		 LEFT JOIN items i ON sl.item_id = i.id
		 WHERE sl.name = ?`,
		name,
	)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// ListAll returns every entry with department and item names, for the
// management page. Ordered by name.
func (s *ShoppingListStore) ListAll() ([]model.ShoppingListEntry, error) {
	rows, err := s.db.Query(
		`SELECT ` + entryCols + `
		 FROM shopping_list sl
		 LEFT JOIN department d ON sl.department_id = d.id
		 LEFT JOIN items i ON sl.item_id = i.id
		 ORDER BY sl.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []model.ShoppingListEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Upsert adds an entry or, when the name already exists, updates it in place
// and resets nothing else (purchased state is preserved on update).
func (s *ShoppingListStore) Upsert(name string, description *string, quantity string, departmentID, itemID *int64) (*model.ShoppingListEntry, error) {
	var desc sql.NullString
	if description != nil {
		desc = sql.NullString{String: *description, Valid: true}
	}
	var dept, item sql.NullInt64
	if departmentID != nil {
		dept = sql.NullInt64{Int64: *departmentID, Valid: true}
	}
	if itemID != nil {
		item = sql.NullInt64{Int64: *itemID, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO shopping_list (name, description, quantity, department_id, item_id, purchased)
		 VALUES (?, ?, ?, ?, ?, 0)
		 ON CONFLICT (name)
		 DO UPDATE SET description = excluded.description, quantity = excluded.quantity,
		               department_id = excluded.department_id, item_id = excluded.item_id,
		               modified = CURRENT_TIMESTAMP`,
		name, desc, quantity, dept, item,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert entry: %w", err)
	}
	return s.GetByName(name)
}

// Update applies a partial update. Nil fields are left untouched; the caller
// guarantees at least one field is set.
func (s *ShoppingListStore) Update(name string, quantity *string, purchased *bool) (*model.ShoppingListEntry, error) {
	var sets []string
	var args []any
	if quantity != nil {
		sets = append(sets, "quantity = ?")
		args = append(args, *quantity)
	}
	if purchased != nil {
		sets = append(sets, "purchased = ?")
		args = append(args, boolToInt(*purchased))
	}
	sets = append(sets, "modified = CURRENT_TIMESTAMP")
	args = append(args, name)

	result, err := s.db.Exec(
		`UPDATE shopping_list SET `+strings.Join(sets, ", ")+` WHERE name = ?`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.GetByName(name)
}

func (s *ShoppingListStore) SetPurchased(name string, purchased bool) (*model.ShoppingListEntry, error) {
	result, err := s.db.Exec(
		`UPDATE shopping_list SET purchased = ?, modified = CURRENT_TIMESTAMP WHERE name = ?`,
		boolToInt(purchased), name,
	)
	if err != nil {
		return nil, fmt.Errorf("set purchased: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.GetByName(name)
}

// Delete removes an entry. It returns false when no row matched.
func (s *ShoppingListStore) Delete(name string) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM shopping_list WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("delete entry: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func scanRow(scanner interface{ Scan(...any) error }) (*model.ShoppingListRow, error) {
	var r model.ShoppingListRow
	var description, deptName sql.NullString
	var deptID, itemID sql.NullInt64
	var purchased int

	err := scanner.Scan(
		&r.Name, &description, &r.Quantity, &purchased,
		&deptID, &itemID, &r.Zone, &r.ZoneSeq, &deptName,
	)
	if err != nil {
		return nil, err
	}

	r.Purchased = purchased != 0
	if description.Valid {
		r.Description = &description.String
	}
	if deptID.Valid {
		r.DepartmentID = &deptID.Int64
	}
	if itemID.Valid {
		r.ItemID = &itemID.Int64
	}
	if deptName.Valid {
		r.DepartmentName = &deptName.String
	}
	return &r, nil
}

// Project turns the persisted list into the ordered, zone-grouped view for
// one store. The virtual store never reads store_zones: every entry lands in
// the "General" zone, ordered by name. Real stores left-join their zone
// assignments and fall back to Uncategorized/999. Read-only; run the janitor
// separately beforehand.
func (s *ShoppingListStore) Project(storeID int64, showPurchased bool) ([]model.ShoppingListRow, error) {
	var query string
	var args []any

	if storeID == model.AllStoreID {
		query = fmt.Sprintf(
			`SELECT sl.name, sl.description, sl.quantity, sl.purchased,
			        sl.department_id, sl.item_id,
			        '%s' AS zone, %d AS zone_seq,
			        d.name AS department_name
			 FROM shopping_list sl
			 LEFT JOIN department d ON sl.department_id = d.id`,
			model.GeneralZone, model.GeneralZoneSeq,
		)
		if !showPurchased {
			query += ` WHERE sl.purchased = 0`
		}
		query += ` ORDER BY sl.name`
	} else {
		query = fmt.Sprintf(
			`SELECT sl.name, sl.description, sl.quantity, sl.purchased,
			        sl.department_id, sl.item_id,
			        COALESCE(sz.zone_name, '%s') AS zone,
			        COALESCE(sz.zone_sequence, %d) AS zone_seq,
			        d.name AS department_name
			 FROM shopping_list sl
			 LEFT JOIN store_zones sz ON sz.department_id = sl.department_id AND sz.store_id = ?
			 LEFT JOIN department d ON sl.department_id = d.id`,
			model.UncategorizedZone, model.UncategorizedZoneSeq,
		)
		args = append(args, storeID)
		if !showPurchased {
			query += ` WHERE sl.purchased = 0`
		}
		query += ` ORDER BY zone_seq, sl.name`
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("project shopping list: %w", err)
	}
	defer rows.Close()

	var projected []model.ShoppingListRow
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan projected row: %w", err)
		}
		projected = append(projected, *r)
	}
	return projected, rows.Err()
}

// RunCleanupIfDue purges purchased entries once the last cleanup is 24 hours
// old, absent, or unparseable, then rewrites the timestamp. Check and purge
// share one transaction so two concurrent callers cannot interleave a
// half-committed purge. Returns the number of entries deleted (zero when the
// timestamp is still fresh).
func (s *ShoppingListStore) RunCleanupIfDue() (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var value string
	err = tx.QueryRow(`SELECT value FROM settings WHERE key = ?`, cleanupKey).Scan(&value)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("read cleanup timestamp: %w", err)
	}
	if err == nil {
		if last, perr := time.Parse(time.RFC3339, value); perr == nil && time.Since(last) < cleanupInterval {
			return 0, nil
		}
	}

	result, err := tx.Exec(`DELETE FROM shopping_list WHERE purchased = 1`)
	if err != nil {
		return 0, fmt.Errorf("purge purchased entries: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		cleanupKey, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return 0, fmt.Errorf("write cleanup timestamp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit cleanup: %w", err)
	}
	return deleted, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
