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

type VehicleHandler struct {
	vehicles *store.VehicleStore
	hub      *ws.Hub
	logger   *slog.Logger
}

func NewVehicleHandler(vehicles *store.VehicleStore, hub *ws.Hub, logger *slog.Logger) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles, hub: hub, logger: logger}
}

type nameRequest struct {
	Name string `json:"name"`
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.List()
	if err != nil {
		h.logger.Error("list vehicles", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch vehicles"})
		return
	}
	if vehicles == nil {
		vehicles = []model.Vehicle{}
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid vehicle id"})
		return
	}

	v, err := h.vehicles.GetByID(id)
	if err != nil {
		h.logger.Error("get vehicle", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch vehicle"})
		return
	}
	if v == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "vehicle not found"})
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	v, err := h.vehicles.Create(req.Name)
	if err != nil {
		if database.IsUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "a vehicle with this name already exists"})
			return
		}
		h.logger.Error("create vehicle", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create vehicle"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("vehicle", "created", v.ID))
	writeJSON(w, http.StatusCreated, v)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid vehicle id"})
		return
	}

	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	v, err := h.vehicles.Rename(id, req.Name)
	if err != nil {
		if database.IsUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "a vehicle with this name already exists"})
			return
		}
		h.logger.Error("rename vehicle", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update vehicle"})
		return
	}
	if v == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "vehicle not found"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("vehicle", "updated", v.ID))
	writeJSON(w, http.StatusOK, v)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid vehicle id"})
		return
	}

	found, err := h.vehicles.Delete(id)
	if err != nil {
		h.logger.Error("delete vehicle", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete vehicle"})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "vehicle not found"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("vehicle", "deleted", id))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle deleted successfully"})
}
