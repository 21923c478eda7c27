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

type StoreHandler struct {
	stores *store.StoreStore
	hub    *ws.Hub
	logger *slog.Logger
}

func NewStoreHandler(stores *store.StoreStore, hub *ws.Hub, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{stores: stores, hub: hub, logger: logger}
}

type storeRequest struct {
	Name string `json:"name"`
}

// List returns the virtual "All" store followed by every persisted store.
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	stores, err := h.stores.List()
	if err != nil {
		h.logger.Error("list stores", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch stores"})
		return
	}
	writeJSON(w, http.StatusOK, append([]model.Store{model.AllStore}, stores...))
}

func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	if model.IsAllStore(r.PathValue("id")) {
		writeJSON(w, http.StatusOK, model.AllStore)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store id"})
		return
	}

	st, err := h.stores.GetByID(id)
	if err != nil {
		h.logger.Error("get store", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch store"})
		return
	}
	if st == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "store not found"})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req storeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	st, err := h.stores.Create(req.Name)
	if err != nil {
		if database.IsUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "a store with this name already exists"})
			return
		}
		h.logger.Error("create store", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create store"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("store", "created", st.ID))
	writeJSON(w, http.StatusCreated, st)
}

func (h *StoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	if model.IsAllStore(r.PathValue("id")) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "The All store cannot be modified"})
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store id"})
		return
	}

	var req storeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	st, err := h.stores.Rename(id, req.Name)
	if err != nil {
		if database.IsUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "a store with this name already exists"})
			return
		}
		h.logger.Error("rename store", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update store"})
		return
	}
	if st == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "store not found"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("store", "updated", st.ID))
	writeJSON(w, http.StatusOK, st)
}

func (h *StoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if model.IsAllStore(r.PathValue("id")) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "The All store cannot be deleted"})
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store id"})
		return
	}

	found, err := h.stores.Delete(id)
	if err != nil {
		h.logger.Error("delete store", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete store"})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "store not found"})
		return
	}

	h.hub.Broadcast(ws.NewEvent("store", "deleted", id))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Store deleted successfully"})
}
