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

type ItemHandler struct {
	items  *store.ItemStore
	hub    *ws.Hub
	logger *slog.Logger
}

func NewItemHandler(items *store.ItemStore, hub *ws.Hub, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{items: items, hub: hub, logger: logger}
}

type itemRequest struct {
	Name         string `json:"name"`
	DepartmentID *int64 `json:"department_id"`
	Qty          int64  `json:"qty"`
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List()
	if err != nil {
		h.logger.Error("list items", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch items"})
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		return
	}

	item, err := h.items.GetByID(id)
	if err != nil {
		h.logger.Error("get item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch item"})
		return
	}
	if item == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	item, err := h.items.Create(req.Name, req.DepartmentID, req.Qty)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "department not found"})
			return
		}
		h.logger.Error("create item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create item"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("item", "created", item.ID))
	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	item, err := h.items.Update(id, req.Name, req.DepartmentID, req.Qty)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "department not found"})
			return
		}
		h.logger.Error("update item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update item"})
		return
	}
	if item == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("item", "updated", item.ID))
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		return
	}

	found, err := h.items.Delete(id)
	if err != nil {
		h.logger.Error("delete item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete item"})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("item", "deleted", id))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}
