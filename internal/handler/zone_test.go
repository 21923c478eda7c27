package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"hausfrau/internal/database"
	"hausfrau/internal/model"
	"hausfrau/internal/store"
	ws "hausfrau/internal/websocket"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func setupZoneHandlerTest(t *testing.T) (*ZoneHandler, *store.ZoneStore, *store.StoreStore, *store.DepartmentStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := discardLogger()
	zones := store.NewZoneStore(db)
	return NewZoneHandler(zones, ws.NewHub(logger), logger),
		zones, store.NewStoreStore(db), store.NewDepartmentStore(db)
}

func postJSON(path, id, body string) (*httptest.ResponseRecorder, *http.Request) {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.SetPathValue("id", id)
	return httptest.NewRecorder(), r
}

func TestZoneUpsertBlankNameNormalizesToGeneral(t *testing.T) {
	h, _, ss, ds := setupZoneHandlerTest(t)

	st, _ := ss.Create("Safeway")
	dept, _ := ds.Create("Dairy")

	body := `{"zone_sequence": 1, "zone_name": "   ", "department_id": ` + itoa(dept.ID) + `}`
	rec, r := postJSON("/stores/1/zones", itoa(st.ID), body)
	h.Upsert(rec, r)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var zone model.StoreZone
	if err := json.NewDecoder(rec.Body).Decode(&zone); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if zone.ZoneName != model.GeneralZone {
		t.Errorf("zone name = %q, want %q", zone.ZoneName, model.GeneralZone)
	}
}

func TestZoneUpsertRejectsNonPositiveSequence(t *testing.T) {
	h, zones, ss, ds := setupZoneHandlerTest(t)

	st, _ := ss.Create("Safeway")
	dept, _ := ds.Create("Dairy")

	for _, seq := range []string{"0", "-3"} {
		body := `{"zone_sequence": ` + seq + `, "zone_name": "Back", "department_id": ` + itoa(dept.ID) + `}`
		rec, r := postJSON("/stores/1/zones", itoa(st.ID), body)
		h.Upsert(rec, r)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("sequence %s: status = %d, want 400", seq, rec.Code)
		}
	}

	// Validation fires before persistence; nothing may have been written
	got, err := zones.ListForStore(st.ID)
	if err != nil {
		t.Fatalf("list zones: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected 0 zone rows, got %d", len(got))
	}
}

func TestZoneUpsertRejectsNonPositiveDepartment(t *testing.T) {
	h, zones, ss, _ := setupZoneHandlerTest(t)

	st, _ := ss.Create("Safeway")

	body := `{"zone_sequence": 1, "zone_name": "Back", "department_id": 0}`
	rec, r := postJSON("/stores/1/zones", itoa(st.ID), body)
	h.Upsert(rec, r)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}

	got, _ := zones.ListForStore(st.ID)
	if len(got) != 0 {
		t.Errorf("expected 0 zone rows, got %d", len(got))
	}
}

func TestZoneSwapMissingArgsRejected(t *testing.T) {
	h, zones, ss, ds := setupZoneHandlerTest(t)

	st, _ := ss.Create("Safeway")
	dept, _ := ds.Create("Dairy")
	zones.Upsert(st.ID, 1, "Back", dept.ID)

	for _, body := range []string{`{}`, `{"seqA": 1}`, `{"seqB": 2}`} {
		rec, r := postJSON("/stores/1/zones/swap", itoa(st.ID), body)
		h.Swap(rec, r)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}

	// Rows untouched by the rejected swaps
	got, _ := zones.ListForStore(st.ID)
	if len(got) != 1 || got[0].ZoneSequence != 1 {
		t.Fatalf("zone rows changed: %+v", got)
	}
}

func TestZoneWritesVirtualStoreForbidden(t *testing.T) {
	h, _, _, _ := setupZoneHandlerTest(t)

	rec, r := postJSON("/stores/-1/zones", "-1", `{"zone_sequence": 1, "department_id": 1}`)
	h.Upsert(rec, r)
	if rec.Code != http.StatusForbidden {
		t.Errorf("upsert status = %d, want 403", rec.Code)
	}

	rec, r = postJSON("/stores/-1/zones/swap", "-1", `{"seqA": 1, "seqB": 2}`)
	h.Swap(rec, r)
	if rec.Code != http.StatusForbidden {
		t.Errorf("swap status = %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	del := httptest.NewRequest(http.MethodDelete, "/stores/-1/zones/1/1", nil)
	del.SetPathValue("id", "-1")
	del.SetPathValue("seq", "1")
	del.SetPathValue("dept", "1")
	h.Delete(rec, del)
	if rec.Code != http.StatusForbidden {
		t.Errorf("delete status = %d, want 403", rec.Code)
	}
}
