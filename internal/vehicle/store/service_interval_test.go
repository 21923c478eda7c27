package store

import (
	"testing"

	"hausfrau/internal/vehicle/database"
)

func setupIntervalTestDB(t *testing.T) (*ServiceIntervalStore, *VehicleStore, *ServiceTypeStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewServiceIntervalStore(db), NewVehicleStore(db), NewServiceTypeStore(db)
}

func TestIntervalUpsertInsertAndUpdate(t *testing.T) {
	is, vs, ts := setupIntervalTestDB(t)

	v, _ := vs.Create("Outback")
	oil, _ := ts.Create("Oil Change")

	months := int64(6)
	miles := int64(5000)
	iv, err := is.Upsert(v.ID, oil.ID, &months, &miles, nil)
	if err != nil {
		t.Fatalf("upsert interval: %v", err)
	}
	if iv.Months == nil || *iv.Months != 6 {
		t.Errorf("months = %v, want 6", iv.Months)
	}
	if iv.Miles == nil || *iv.Miles != 5000 {
		t.Errorf("miles = %v, want 5000", iv.Miles)
	}
	if iv.ServiceName != "Oil Change" {
		t.Errorf("service name = %q, want %q", iv.ServiceName, "Oil Change")
	}

	// Same pair updates the cadence instead of inserting
	months = 12
	iv, err = is.Upsert(v.ID, oil.ID, &months, nil, nil)
	if err != nil {
		t.Fatalf("upsert interval again: %v", err)
	}
	if iv.Months == nil || *iv.Months != 12 {
		t.Errorf("months = %v, want 12", iv.Months)
	}
	if iv.Miles != nil {
		t.Errorf("miles = %v, want nil after upsert", iv.Miles)
	}

	intervals, err := is.ListForVehicle(v.ID)
	if err != nil {
		t.Fatalf("list intervals: %v", err)
	}
	if len(intervals) != 1 {
		t.Fatalf("expected 1 interval, got %d", len(intervals))
	}
}

func TestIntervalUpdateNextDue(t *testing.T) {
	is, vs, ts := setupIntervalTestDB(t)

	v, _ := vs.Create("Outback")
	oil, _ := ts.Create("Oil Change")

	months := int64(6)
	is.Upsert(v.ID, oil.ID, &months, nil, nil)

	nextDate := "2026-10-15"
	nextMiles := int64(85000)
	iv, err := is.Update(v.ID, oil.ID, &months, nil, nil, &nextDate, &nextMiles)
	if err != nil {
		t.Fatalf("update interval: %v", err)
	}
	if iv.NextDate == nil || *iv.NextDate != "2026-10-15" {
		t.Errorf("next date = %v, want 2026-10-15", iv.NextDate)
	}
	if iv.NextMiles == nil || *iv.NextMiles != 85000 {
		t.Errorf("next miles = %v, want 85000", iv.NextMiles)
	}
}

func TestIntervalUpdateNotFound(t *testing.T) {
	is, _, _ := setupIntervalTestDB(t)

	iv, err := is.Update(9999, 9999, nil, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("update interval: %v", err)
	}
	if iv != nil {
		t.Error("expected nil for nonexistent interval")
	}
}

func TestIntervalDelete(t *testing.T) {
	is, vs, ts := setupIntervalTestDB(t)

	v, _ := vs.Create("Outback")
	oil, _ := ts.Create("Oil Change")
	is.Upsert(v.ID, oil.ID, nil, nil, nil)

	deleted, err := is.Delete(v.ID, oil.ID)
	if err != nil {
		t.Fatalf("delete interval: %v", err)
	}
	if !deleted {
		t.Error("expected delete to match a row")
	}

	deleted, err = is.Delete(v.ID, oil.ID)
	if err != nil {
		t.Fatalf("delete interval again: %v", err)
	}
	if deleted {
		t.Error("expected false for already deleted interval")
	}
}

func TestIntervalListUpcoming(t *testing.T) {
	is, vs, ts := setupIntervalTestDB(t)

	v, _ := vs.Create("Outback")
	oil, _ := ts.Create("Oil Change")
	tires, _ := ts.Create("Tire Rotation")
	brakes, _ := ts.Create("Brake Inspection")

	is.Upsert(v.ID, oil.ID, nil, nil, nil)
	is.Upsert(v.ID, tires.ID, nil, nil, nil)
	is.Upsert(v.ID, brakes.ID, nil, nil, nil)

	soon := "2026-09-10"
	later := "2026-12-01"
	is.Update(v.ID, oil.ID, nil, nil, nil, &soon, nil)
	is.Update(v.ID, tires.ID, nil, nil, nil, &later, nil)
	// brakes has no next_date and must never appear

	upcoming, err := is.ListUpcoming("2026-09-30")
	if err != nil {
		t.Fatalf("list upcoming: %v", err)
	}
	if len(upcoming) != 1 {
		t.Fatalf("expected 1 upcoming service, got %d", len(upcoming))
	}
	if upcoming[0].ServiceName != "Oil Change" {
		t.Errorf("service name = %q, want %q", upcoming[0].ServiceName, "Oil Change")
	}
	if upcoming[0].VehicleName != "Outback" {
		t.Errorf("vehicle name = %q, want %q", upcoming[0].VehicleName, "Outback")
	}

	upcoming, err = is.ListUpcoming("2026-12-31")
	if err != nil {
		t.Fatalf("list upcoming with later cutoff: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("expected 2 upcoming services, got %d", len(upcoming))
	}
	// Soonest due first
	if upcoming[0].ServiceName != "Oil Change" || upcoming[1].ServiceName != "Tire Rotation" {
		t.Errorf("order = %q, %q, want Oil Change, Tire Rotation",
			upcoming[0].ServiceName, upcoming[1].ServiceName)
	}
}

func TestIntervalDeleteVehicleCascades(t *testing.T) {
	is, vs, ts := setupIntervalTestDB(t)

	v, _ := vs.Create("Outback")
	oil, _ := ts.Create("Oil Change")
	is.Upsert(v.ID, oil.ID, nil, nil, nil)

	if _, err := vs.Delete(v.ID); err != nil {
		t.Fatalf("delete vehicle: %v", err)
	}

	intervals, err := is.ListForVehicle(v.ID)
	if err != nil {
		t.Fatalf("list intervals: %v", err)
	}
	if len(intervals) != 0 {
		t.Errorf("expected 0 intervals after cascade, got %d", len(intervals))
	}
}
