package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"hausfrau/internal/database"
	"hausfrau/internal/vehicle/model"
	"hausfrau/internal/vehicle/store"
	ws "hausfrau/internal/websocket"
)

type ServiceLogHandler struct {
	log    *store.ServiceLogStore
	hub    *ws.Hub
	logger *slog.Logger
}

func NewServiceLogHandler(log *store.ServiceLogStore, hub *ws.Hub, logger *slog.Logger) *ServiceLogHandler {
	return &ServiceLogHandler{log: log, hub: hub, logger: logger}
}

type serviceLogRequest struct {
	VehicleID    *int64  `json:"vehicle_id"`
	ServiceID    *int64  `json:"service_id"`
	ServiceDate  string  `json:"service_date"`
	ServiceMiles *int64  `json:"service_miles"`
	Notes        *string `json:"notes"`
	Qty          *int64  `json:"qty"`
}

func (h *ServiceLogHandler) ListForVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := parsePathInt(r, "vehicleID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid vehicle id"})
		return
	}

	entries, err := h.log.ListForVehicle(vehicleID)
	if err != nil {
		h.logger.Error("list service log", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch service log"})
		return
	}
	if entries == nil {
		entries = []model.ServiceLogEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *ServiceLogHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	entries, err := h.log.ListRecent()
	if err != nil {
		h.logger.Error("list recent service log", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch service log"})
		return
	}
	if entries == nil {
		entries = []model.ServiceLogEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *ServiceLogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid service log id"})
		return
	}

	entry, err := h.log.GetByID(id)
	if err != nil {
		h.logger.Error("get service log entry", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch service log entry"})
		return
	}
	if entry == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "service log entry not found"})
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *ServiceLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req serviceLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.VehicleID == nil || req.ServiceID == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "vehicle_id and service_id are required"})
		return
	}
	req.ServiceDate = strings.TrimSpace(req.ServiceDate)
	if req.ServiceDate == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "service_date is required"})
		return
	}

	entry, err := h.log.Create(*req.VehicleID, *req.ServiceID, req.ServiceDate, req.ServiceMiles, req.Notes, req.Qty)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "vehicle or service type not found"})
			return
		}
		h.logger.Error("create service log entry", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create service log entry"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("service_log", "created", entry.ID))
	writeJSON(w, http.StatusCreated, entry)
}

func (h *ServiceLogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid service log id"})
		return
	}

	var req serviceLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	req.ServiceDate = strings.TrimSpace(req.ServiceDate)
	if req.ServiceDate == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "service_date is required"})
		return
	}

	entry, err := h.log.Update(id, req.ServiceDate, req.ServiceMiles, req.Notes, req.Qty)
	if err != nil {
		h.logger.Error("update service log entry", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update service log entry"})
		return
	}
	if entry == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "service log entry not found"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("service_log", "updated", entry.ID))
	writeJSON(w, http.StatusOK, entry)
}

func (h *ServiceLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid service log id"})
		return
	}

	found, err := h.log.Delete(id)
	if err != nil {
		h.logger.Error("delete service log entry", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete service log entry"})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "service log entry not found"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("service_log", "deleted", id))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Service log entry deleted successfully"})
}
