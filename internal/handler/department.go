package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"hausfrau/internal/database"
	"hausfrau/internal/model"
	"hausfrau/internal/store"
	ws "hausfrau/internal/websocket"
)

type DepartmentHandler struct {
	departments *store.DepartmentStore
	hub         *ws.Hub
	logger      *slog.Logger
}

func NewDepartmentHandler(departments *store.DepartmentStore, hub *ws.Hub, logger *slog.Logger) *DepartmentHandler {
	return &DepartmentHandler{departments: departments, hub: hub, logger: logger}
}

func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	departments, err := h.departments.List()
	if err != nil {
		h.logger.Error("list departments", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch departments"})
		return
	}
	if departments == nil {
		departments = []model.Department{}
	}
	writeJSON(w, http.StatusOK, departments)
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	d, err := h.departments.Create(req.Name)
	if err != nil {
		if database.IsUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "a department with this name already exists"})
			return
		}
		h.logger.Error("create department", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create department"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("department", "created", d.ID))
	writeJSON(w, http.StatusCreated, d)
}
