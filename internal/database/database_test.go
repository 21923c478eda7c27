package database

import "testing"

func TestOpenEnablesForeignKeys(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	var on int
	if err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&on); err != nil {
		t.Fatalf("read foreign_keys pragma: %v", err)
	}
	if on != 1 {
		t.Fatalf("foreign_keys = %d, want 1", on)
	}
}

func TestOpenRejectsDanglingReferences(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// No store 9999 or department 9999 exists; the insert must fail instead
	// of leaving a dangling row.
	_, err = db.Exec(
		`INSERT INTO store_zones (store_id, zone_sequence, zone_name, department_id)
		 VALUES (9999, 1, 'Ghost', 9999)`,
	)
	if err == nil {
		t.Fatal("expected foreign key violation, got nil")
	}
	if !IsForeignKeyViolation(err) {
		t.Errorf("expected foreign key violation, got %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM store_zones`).Scan(&count); err != nil {
		t.Fatalf("count zone rows: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 zone rows, got %d", count)
	}
}
