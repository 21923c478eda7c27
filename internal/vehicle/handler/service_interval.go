package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"hausfrau/internal/database"
	"hausfrau/internal/vehicle/model"
	"hausfrau/internal/vehicle/store"
	ws "hausfrau/internal/websocket"
)

const defaultUpcomingDays = 30

type ServiceIntervalHandler struct {
	intervals *store.ServiceIntervalStore
	hub       *ws.Hub
	logger    *slog.Logger
}

func NewServiceIntervalHandler(intervals *store.ServiceIntervalStore, hub *ws.Hub, logger *slog.Logger) *ServiceIntervalHandler {
	return &ServiceIntervalHandler{intervals: intervals, hub: hub, logger: logger}
}

type intervalRequest struct {
	ServiceID *int64  `json:"service_id"`
	Months    *int64  `json:"months"`
	Miles     *int64  `json:"miles"`
	Notes     *string `json:"notes"`
	NextDate  *string `json:"next_date"`
	NextMiles *int64  `json:"next_miles"`
}

func (h *ServiceIntervalHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := parsePathInt(r, "vehicleID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid vehicle id"})
		return
	}

	intervals, err := h.intervals.ListForVehicle(vehicleID)
	if err != nil {
		h.logger.Error("list service intervals", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch service intervals"})
		return
	}
	if intervals == nil {
		intervals = []model.ServiceInterval{}
	}
	writeJSON(w, http.StatusOK, intervals)
}

func (h *ServiceIntervalHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := parsePathInt(r, "vehicleID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid vehicle id"})
		return
	}

	var req intervalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.ServiceID == nil || *req.ServiceID < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid service id"})
		return
	}

	iv, err := h.intervals.Upsert(vehicleID, *req.ServiceID, req.Months, req.Miles, req.Notes)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "vehicle or service type not found"})
			return
		}
		h.logger.Error("upsert service interval", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create service interval"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("service_interval", "upserted", vehicleID))
	writeJSON(w, http.StatusCreated, iv)
}

func (h *ServiceIntervalHandler) Update(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := parsePathInt(r, "vehicleID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid vehicle id"})
		return
	}
	serviceID, err := parsePathInt(r, "serviceID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid service id"})
		return
	}

	var req intervalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	iv, err := h.intervals.Update(vehicleID, serviceID, req.Months, req.Miles, req.Notes, req.NextDate, req.NextMiles)
	if err != nil {
		h.logger.Error("update service interval", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update service interval"})
		return
	}
	if iv == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "service interval not found"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("service_interval", "updated", vehicleID))
	writeJSON(w, http.StatusOK, iv)
}

func (h *ServiceIntervalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := parsePathInt(r, "vehicleID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid vehicle id"})
		return
	}
	serviceID, err := parsePathInt(r, "serviceID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid service id"})
		return
	}

	found, err := h.intervals.Delete(vehicleID, serviceID)
	if err != nil {
		h.logger.Error("delete service interval", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete service interval"})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "service interval not found"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("service_interval", "deleted", vehicleID))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Service interval deleted successfully"})
}

// Upcoming lists intervals due within the next N days (default 30).
func (h *ServiceIntervalHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	days := int64(defaultUpcomingDays)
	if q := r.URL.Query().Get("days"); q != "" {
		parsed, err := parseDays(q)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid days"})
			return
		}
		days = parsed
	}

	cutoff := time.Now().UTC().AddDate(0, 0, int(days)).Format("2006-01-02")
	intervals, err := h.intervals.ListUpcoming(cutoff)
	if err != nil {
		h.logger.Error("list upcoming services", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch upcoming services"})
		return
	}
	if intervals == nil {
		intervals = []model.ServiceInterval{}
	}
	writeJSON(w, http.StatusOK, intervals)
}
