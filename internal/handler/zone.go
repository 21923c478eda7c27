package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"hausfrau/internal/database"
	"hausfrau/internal/model"
	"hausfrau/internal/store"
	ws "hausfrau/internal/websocket"
)

type ZoneHandler struct {
	zones  *store.ZoneStore
	hub    *ws.Hub
	logger *slog.Logger
}

func NewZoneHandler(zones *store.ZoneStore, hub *ws.Hub, logger *slog.Logger) *ZoneHandler {
	return &ZoneHandler{zones: zones, hub: hub, logger: logger}
}

type zoneRequest struct {
	ZoneSequence *int64 `json:"zone_sequence"`
	ZoneName     string `json:"zone_name"`
	DepartmentID *int64 `json:"department_id"`
}

type swapRequest struct {
	SeqA *int64 `json:"seqA"`
	SeqB *int64 `json:"seqB"`
}

// List returns a store's zone layout. The virtual store gets a synthetic
// layout: every department under "General" at sequence 1.
func (h *ZoneHandler) List(w http.ResponseWriter, r *http.Request) {
	var zones []model.StoreZone
	var err error

	if model.IsAllStore(r.PathValue("id")) {
		zones, err = h.zones.ListAllStore()
	} else {
		var storeID int64
		storeID, err = parseIDParam(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store id"})
			return
		}
		zones, err = h.zones.ListForStore(storeID)
	}
	if err != nil {
		h.logger.Error("list zones", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch store zones"})
		return
	}
	if zones == nil {
		zones = []model.StoreZone{}
	}
	writeJSON(w, http.StatusOK, zones)
}

func (h *ZoneHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	if model.IsAllStore(r.PathValue("id")) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "The All store cannot be modified"})
		return
	}

	storeID, err := parseIDParam(r)
	if err != nil || storeID < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store id"})
		return
	}

	var req zoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.ZoneSequence == nil || *req.ZoneSequence < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid zone_sequence"})
		return
	}
	if req.DepartmentID == nil || *req.DepartmentID < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid department id"})
		return
	}

	name := strings.TrimSpace(req.ZoneName)
	if name == "" {
		name = model.GeneralZone
	}

	zone, err := h.zones.Upsert(storeID, *req.ZoneSequence, name, *req.DepartmentID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":  "Store or department not found",
				"detail": err.Error(),
			})
			return
		}
		if database.IsUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{
				"error":  "Department already assigned to this zone",
				"detail": err.Error(),
			})
			return
		}
		h.logger.Error("upsert zone", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create store zone"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("zone", "upserted", storeID))
	writeJSON(w, http.StatusCreated, zone)
}

// Swap exchanges the walking order of two zone sequences atomically.
func (h *ZoneHandler) Swap(w http.ResponseWriter, r *http.Request) {
	if model.IsAllStore(r.PathValue("id")) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "The All store cannot be modified"})
		return
	}

	storeID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store id"})
		return
	}

	var req swapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.SeqA == nil || req.SeqB == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "seqA and seqB are required"})
		return
	}
	if *req.SeqA < 1 || *req.SeqB < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid zone_sequence"})
		return
	}

	if err := h.zones.SwapSequences(storeID, *req.SeqA, *req.SeqB); err != nil {
		h.logger.Error("swap zones", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to reorder store zones"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("zone", "reordered", storeID))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Store zones reordered successfully"})
}

func (h *ZoneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if model.IsAllStore(r.PathValue("id")) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "The All store cannot be modified"})
		return
	}

	storeID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store id"})
		return
	}
	seq, err := strconv.ParseInt(r.PathValue("seq"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid zone sequence"})
		return
	}
	departmentID, err := strconv.ParseInt(r.PathValue("dept"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid department id"})
		return
	}

	found, err := h.zones.Delete(storeID, seq, departmentID)
	if err != nil {
		h.logger.Error("delete zone", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete store zone"})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Store zone not found"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("zone", "deleted", storeID))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Store zone deleted successfully"})
}
