package store

import (
	"testing"

	"hausfrau/internal/database"
)

func setupStoreTestDB(t *testing.T) *StoreStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStoreStore(db)
}

func TestStoreCRUD(t *testing.T) {
	ss := setupStoreTestDB(t)

	// Create
	st, err := ss.Create("Safeway")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if st.Name != "Safeway" {
		t.Errorf("name = %q, want %q", st.Name, "Safeway")
	}
	if st.ID <= 0 {
		t.Errorf("id = %d, want positive", st.ID)
	}
	if st.Modified != nil {
		t.Error("modified should be nil on create")
	}

	// GetByID
	got, err := ss.GetByID(st.ID)
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	if got.Name != "Safeway" {
		t.Errorf("got name = %q, want %q", got.Name, "Safeway")
	}

	// Rename
	renamed, err := ss.Rename(st.ID, "Costco")
	if err != nil {
		t.Fatalf("rename store: %v", err)
	}
	if renamed.Name != "Costco" {
		t.Errorf("renamed name = %q, want %q", renamed.Name, "Costco")
	}
	if renamed.Modified == nil {
		t.Error("modified should be set after rename")
	}

	// Delete
	deleted, err := ss.Delete(st.ID)
	if err != nil {
		t.Fatalf("delete store: %v", err)
	}
	if !deleted {
		t.Error("expected delete to match a row")
	}
	got, err = ss.GetByID(st.ID)
	if err != nil {
		t.Fatalf("get deleted store: %v", err)
	}
	if got != nil {
		t.Error("expected nil for deleted store")
	}
}

func TestStoreGetByIDNotFound(t *testing.T) {
	ss := setupStoreTestDB(t)

	got, err := ss.GetByID(9999)
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	if got != nil {
		t.Error("expected nil for nonexistent store")
	}
}

func TestStoreRenameNotFound(t *testing.T) {
	ss := setupStoreTestDB(t)

	got, err := ss.Rename(9999, "Ghost")
	if err != nil {
		t.Fatalf("rename store: %v", err)
	}
	if got != nil {
		t.Error("expected nil for nonexistent store")
	}
}

func TestStoreDeleteNotFound(t *testing.T) {
	ss := setupStoreTestDB(t)

	deleted, err := ss.Delete(9999)
	if err != nil {
		t.Fatalf("delete store: %v", err)
	}
	if deleted {
		t.Error("expected false for nonexistent store")
	}
}

func TestStoreListOrdering(t *testing.T) {
	ss := setupStoreTestDB(t)

	ss.Create("Winco")
	ss.Create("Albertsons")
	ss.Create("Fred Meyer")

	stores, err := ss.List()
	if err != nil {
		t.Fatalf("list stores: %v", err)
	}
	if len(stores) != 3 {
		t.Fatalf("expected 3 stores, got %d", len(stores))
	}

	want := []string{"Albertsons", "Fred Meyer", "Winco"}
	for i, name := range want {
		if stores[i].Name != name {
			t.Errorf("stores[%d].Name = %q, want %q", i, stores[i].Name, name)
		}
	}
}

func TestStoreListFiltersAllRow(t *testing.T) {
	ss := setupStoreTestDB(t)

	// A persisted row literally named "All" must never surface, because the
	// virtual store already claims that name.
	ss.Create("All")
	ss.Create("Safeway")

	stores, err := ss.List()
	if err != nil {
		t.Fatalf("list stores: %v", err)
	}
	if len(stores) != 1 {
		t.Fatalf("expected 1 store, got %d", len(stores))
	}
	if stores[0].Name != "Safeway" {
		t.Errorf("stores[0].Name = %q, want %q", stores[0].Name, "Safeway")
	}
}

func TestStoreCreateDuplicateName(t *testing.T) {
	ss := setupStoreTestDB(t)

	if _, err := ss.Create("Safeway"); err != nil {
		t.Fatalf("create store: %v", err)
	}
	_, err := ss.Create("Safeway")
	if err == nil {
		t.Fatal("expected error for duplicate name")
	}
	if !database.IsUniqueViolation(err) {
		t.Errorf("expected unique violation, got %v", err)
	}
}
