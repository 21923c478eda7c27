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

type ServiceTypeHandler struct {
	types  *store.ServiceTypeStore
	hub    *ws.Hub
	logger *slog.Logger
}

func NewServiceTypeHandler(types *store.ServiceTypeStore, hub *ws.Hub, logger *slog.Logger) *ServiceTypeHandler {
	return &ServiceTypeHandler{types: types, hub: hub, logger: logger}
}

func (h *ServiceTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.types.List()
	if err != nil {
		h.logger.Error("list service types", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch service types"})
		return
	}
	if types == nil {
		types = []model.ServiceType{}
	}
	writeJSON(w, http.StatusOK, types)
}

func (h *ServiceTypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid service type id"})
		return
	}

	st, err := h.types.GetByID(id)
	if err != nil {
		h.logger.Error("get service type", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch service type"})
		return
	}
	if st == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "service type not found"})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *ServiceTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	st, err := h.types.Create(req.Name)
	if err != nil {
		if database.IsUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "a service type with this name already exists"})
			return
		}
		h.logger.Error("create service type", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create service type"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("service_type", "created", st.ID))
	writeJSON(w, http.StatusCreated, st)
}

func (h *ServiceTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid service type id"})
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

	st, err := h.types.Rename(id, req.Name)
	if err != nil {
		if database.IsUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "a service type with this name already exists"})
			return
		}
		h.logger.Error("rename service type", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update service type"})
		return
	}
	if st == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "service type not found"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("service_type", "updated", st.ID))
	writeJSON(w, http.StatusOK, st)
}

func (h *ServiceTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid service type id"})
		return
	}

	found, err := h.types.Delete(id)
	if err != nil {
		h.logger.Error("delete service type", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete service type"})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "service type not found"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("service_type", "deleted", id))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Service type deleted successfully"})
}
