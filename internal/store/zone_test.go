package store

import (
	"testing"

	"hausfrau/internal/database"
	"hausfrau/internal/model"
)

func setupZoneTestDB(t *testing.T) (*ZoneStore, *StoreStore, *DepartmentStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewZoneStore(db), NewStoreStore(db), NewDepartmentStore(db)
}

func TestZoneUpsertInsertAndUpdate(t *testing.T) {
	zs, ss, ds := setupZoneTestDB(t)

	st, _ := ss.Create("Safeway")
	dept, _ := ds.Create("Dairy")

	// Insert
	z, err := zs.Upsert(st.ID, 1, "Back Wall", dept.ID)
	if err != nil {
		t.Fatalf("upsert zone: %v", err)
	}
	if z.ZoneName != "Back Wall" {
		t.Errorf("zone name = %q, want %q", z.ZoneName, "Back Wall")
	}
	if z.DepartmentName != "Dairy" {
		t.Errorf("department name = %q, want %q", z.DepartmentName, "Dairy")
	}
	if z.Modified != nil {
		t.Error("modified should be nil on insert")
	}

	// Same composite key updates the name only
	z, err = zs.Upsert(st.ID, 1, "Dairy Wall", dept.ID)
	if err != nil {
		t.Fatalf("upsert zone again: %v", err)
	}
	if z.ZoneName != "Dairy Wall" {
		t.Errorf("zone name = %q, want %q", z.ZoneName, "Dairy Wall")
	}
	if z.Modified == nil {
		t.Error("modified should be set after update")
	}

	zones, err := zs.ListForStore(st.ID)
	if err != nil {
		t.Fatalf("list zones: %v", err)
	}
	if len(zones) != 1 {
		t.Fatalf("expected 1 zone row, got %d", len(zones))
	}
}

func TestZoneListForStoreOrdering(t *testing.T) {
	zs, ss, ds := setupZoneTestDB(t)

	st, _ := ss.Create("Safeway")
	produce, _ := ds.Create("Produce")
	dairy, _ := ds.Create("Dairy")
	bakery, _ := ds.Create("Bakery")

	zs.Upsert(st.ID, 2, "Middle", dairy.ID)
	zs.Upsert(st.ID, 1, "Entrance", produce.ID)
	zs.Upsert(st.ID, 1, "Entrance", bakery.ID)

	zones, err := zs.ListForStore(st.ID)
	if err != nil {
		t.Fatalf("list zones: %v", err)
	}
	if len(zones) != 3 {
		t.Fatalf("expected 3 zones, got %d", len(zones))
	}

	// Sequence ascending, department name breaking ties
	if zones[0].DepartmentName != "Bakery" || zones[0].ZoneSequence != 1 {
		t.Errorf("zones[0] = %q seq %d, want Bakery seq 1", zones[0].DepartmentName, zones[0].ZoneSequence)
	}
	if zones[1].DepartmentName != "Produce" || zones[1].ZoneSequence != 1 {
		t.Errorf("zones[1] = %q seq %d, want Produce seq 1", zones[1].DepartmentName, zones[1].ZoneSequence)
	}
	if zones[2].DepartmentName != "Dairy" || zones[2].ZoneSequence != 2 {
		t.Errorf("zones[2] = %q seq %d, want Dairy seq 2", zones[2].DepartmentName, zones[2].ZoneSequence)
	}
}

func TestZoneListAllStore(t *testing.T) {
	zs, ss, ds := setupZoneTestDB(t)

	st, _ := ss.Create("Safeway")
	produce, _ := ds.Create("Produce")
	dairy, _ := ds.Create("Dairy")

	// Real zone rows must not leak into the virtual layout
	zs.Upsert(st.ID, 5, "Back", dairy.ID)

	zones, err := zs.ListAllStore()
	if err != nil {
		t.Fatalf("list virtual zones: %v", err)
	}
	if len(zones) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(zones))
	}
	for _, z := range zones {
		if z.StoreID != model.AllStoreID {
			t.Errorf("store id = %d, want %d", z.StoreID, model.AllStoreID)
		}
		if z.ZoneName != model.GeneralZone {
			t.Errorf("zone name = %q, want %q", z.ZoneName, model.GeneralZone)
		}
		if z.ZoneSequence != 1 {
			t.Errorf("zone sequence = %d, want 1", z.ZoneSequence)
		}
	}
	if zones[0].DepartmentID != dairy.ID {
		t.Errorf("zones[0].DepartmentID = %d, want %d (Dairy)", zones[0].DepartmentID, dairy.ID)
	}
	if zones[1].DepartmentID != produce.ID {
		t.Errorf("zones[1].DepartmentID = %d, want %d (Produce)", zones[1].DepartmentID, produce.ID)
	}
}

func TestZoneSwapSequences(t *testing.T) {
	zs, ss, ds := setupZoneTestDB(t)

	st, _ := ss.Create("Safeway")
	produce, _ := ds.Create("Produce")
	dairy, _ := ds.Create("Dairy")
	bakery, _ := ds.Create("Bakery")

	zs.Upsert(st.ID, 1, "Entrance", produce.ID)
	zs.Upsert(st.ID, 1, "Entrance", bakery.ID)
	zs.Upsert(st.ID, 2, "Back", dairy.ID)

	if err := zs.SwapSequences(st.ID, 1, 2); err != nil {
		t.Fatalf("swap sequences: %v", err)
	}

	zones, err := zs.ListForStore(st.ID)
	if err != nil {
		t.Fatalf("list zones: %v", err)
	}
	if len(zones) != 3 {
		t.Fatalf("expected 3 zones after swap, got %d", len(zones))
	}

	// Dairy moved to 1, the pair at 1 moved to 2, no sentinel rows remain
	if zones[0].DepartmentName != "Dairy" || zones[0].ZoneSequence != 1 {
		t.Errorf("zones[0] = %q seq %d, want Dairy seq 1", zones[0].DepartmentName, zones[0].ZoneSequence)
	}
	if zones[1].ZoneSequence != 2 || zones[2].ZoneSequence != 2 {
		t.Errorf("remaining sequences = %d, %d, want 2, 2", zones[1].ZoneSequence, zones[2].ZoneSequence)
	}
	for _, z := range zones {
		if z.ZoneSequence < 1 {
			t.Errorf("sentinel sequence %d leaked for department %q", z.ZoneSequence, z.DepartmentName)
		}
	}
}

func TestZoneSwapLeavesOtherStoresAlone(t *testing.T) {
	zs, ss, ds := setupZoneTestDB(t)

	a, _ := ss.Create("Safeway")
	b, _ := ss.Create("Costco")
	dairy, _ := ds.Create("Dairy")

	zs.Upsert(a.ID, 1, "Back", dairy.ID)
	zs.Upsert(b.ID, 1, "Front", dairy.ID)

	if err := zs.SwapSequences(a.ID, 1, 2); err != nil {
		t.Fatalf("swap sequences: %v", err)
	}

	zones, _ := zs.ListForStore(b.ID)
	if len(zones) != 1 || zones[0].ZoneSequence != 1 {
		t.Fatalf("other store's zones changed: %+v", zones)
	}
}

func TestZoneDelete(t *testing.T) {
	zs, ss, ds := setupZoneTestDB(t)

	st, _ := ss.Create("Safeway")
	dairy, _ := ds.Create("Dairy")

	zs.Upsert(st.ID, 1, "Back", dairy.ID)

	deleted, err := zs.Delete(st.ID, 1, dairy.ID)
	if err != nil {
		t.Fatalf("delete zone: %v", err)
	}
	if !deleted {
		t.Error("expected delete to match a row")
	}

	deleted, err = zs.Delete(st.ID, 1, dairy.ID)
	if err != nil {
		t.Fatalf("delete zone again: %v", err)
	}
	if deleted {
		t.Error("expected false for already deleted zone")
	}
}

func TestZoneUpsertForeignKeyViolation(t *testing.T) {
	zs, _, _ := setupZoneTestDB(t)

	_, err := zs.Upsert(9999, 1, "Ghost", 9999)
	if err == nil {
		t.Fatal("expected error for missing store and department")
	}
	if !database.IsForeignKeyViolation(err) {
		t.Errorf("expected foreign key violation, got %v", err)
	}
}

func TestZoneDeleteStoreCascades(t *testing.T) {
	zs, ss, ds := setupZoneTestDB(t)

	st, _ := ss.Create("Safeway")
	dairy, _ := ds.Create("Dairy")
	zs.Upsert(st.ID, 1, "Back", dairy.ID)

	if _, err := ss.Delete(st.ID); err != nil {
		t.Fatalf("delete store: %v", err)
	}

	zones, err := zs.ListForStore(st.ID)
	if err != nil {
		t.Fatalf("list zones: %v", err)
	}
	if len(zones) != 0 {
		t.Errorf("expected 0 zones after cascade, got %d", len(zones))
	}
}
