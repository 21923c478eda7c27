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

type ShoppingListHandler struct {
	entries *store.ShoppingListStore
	hub     *ws.Hub
	logger  *slog.Logger
}

func NewShoppingListHandler(entries *store.ShoppingListStore, hub *ws.Hub, logger *slog.Logger) *ShoppingListHandler {
	return &ShoppingListHandler{entries: entries, hub: hub, logger: logger}
}

type shoppingListRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Quantity     string  `json:"quantity"`
	DepartmentID *int64  `json:"department_id"`
	ItemID       *int64  `json:"item_id"`
}

type shoppingListUpdateRequest struct {
	Quantity  *string `json:"quantity"`
	Purchased *bool   `json:"purchased"`
}

// runJanitor purges stale purchased entries before a read. Returns false
// after writing an error response.
func (h *ShoppingListHandler) runJanitor(w http.ResponseWriter) bool {
	deleted, err := h.entries.RunCleanupIfDue()
	if err != nil {
		h.logger.Error("purchased cleanup", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch shopping list"})
		return false
	}
	if deleted > 0 {
		h.logger.Info("purged purchased entries", "count", deleted)
	}
	return true
}

// Project returns the ordered, zone-grouped list for one store. The virtual
// store id -1 flattens everything into the "General" zone.
func (h *ShoppingListHandler) Project(w http.ResponseWriter, r *http.Request) {
	if !h.runJanitor(w) {
		return
	}

	var storeID int64
	if model.IsAllStore(r.PathValue("storeID")) {
		storeID = model.AllStoreID
	} else {
		var err error
		storeID, err = strconv.ParseInt(r.PathValue("storeID"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store id"})
			return
		}
	}

	showPurchased := r.URL.Query().Get("showPurchased") == "true"

	rows, err := h.entries.Project(storeID, showPurchased)
	if err != nil {
		h.logger.Error("project shopping list", "error", err, "store_id", storeID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch shopping list"})
		return
	}
	if rows == nil {
		rows = []model.ShoppingListRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

// ListAll returns every entry for the management page.
func (h *ShoppingListHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	if !h.runJanitor(w) {
		return
	}

	entries, err := h.entries.ListAll()
	if err != nil {
		h.logger.Error("list shopping list", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch shopping list"})
		return
	}
	if entries == nil {
		entries = []model.ShoppingListEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Upsert adds an entry, or updates the existing one when the name is already
// on the list.
func (h *ShoppingListHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req shoppingListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if req.Quantity == "" {
		req.Quantity = "1"
	}

	entry, err := h.entries.Upsert(req.Name, req.Description, req.Quantity, req.DepartmentID, req.ItemID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "department or item not found"})
			return
		}
		h.logger.Error("upsert shopping list entry", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to add to shopping list"})
		return
	}

	h.hub.Broadcast(ws.NewNamedEvent("shopping_list", "upserted", entry.Name))
	writeJSON(w, http.StatusCreated, entry)
}

func (h *ShoppingListHandler) Update(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var req shoppingListUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Quantity == nil && req.Purchased == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No fields to update"})
		return
	}

	entry, err := h.entries.Update(name, req.Quantity, req.Purchased)
	if err != nil {
		h.logger.Error("update shopping list entry", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update shopping list"})
		return
	}
	if entry == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "shopping list item not found"})
		return
	}

	h.hub.Broadcast(ws.NewNamedEvent("shopping_list", "updated", entry.Name))
	writeJSON(w, http.StatusOK, entry)
}

// SetPurchased flips the purchased flag; the janitor later purges flagged
// entries.
func (h *ShoppingListHandler) SetPurchased(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var req struct {
		Purchased bool `json:"purchased"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	entry, err := h.entries.SetPurchased(name, req.Purchased)
	if err != nil {
		h.logger.Error("set purchased", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update purchased status"})
		return
	}
	if entry == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "shopping list item not found"})
		return
	}

	h.hub.Broadcast(ws.NewNamedEvent("shopping_list", "purchased", entry.Name))
	writeJSON(w, http.StatusOK, entry)
}

func (h *ShoppingListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	found, err := h.entries.Delete(name)
	if err != nil {
		h.logger.Error("delete shopping list entry", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to remove from shopping list"})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "shopping list item not found"})
		return
	}

	h.hub.Broadcast(ws.NewNamedEvent("shopping_list", "deleted", name))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item removed from shopping list"})
}
