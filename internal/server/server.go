package server

import (
	"database/sql"
	"log/slog"
	"net/http"

	"hausfrau/internal/handler"
	"hausfrau/internal/health"
	"hausfrau/internal/middleware"
	"hausfrau/internal/store"
	ws "hausfrau/internal/websocket"
)

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	healthState   *health.State
	storeH        *handler.StoreHandler
	zoneH         *handler.ZoneHandler
	departmentH   *handler.DepartmentHandler
	itemH         *handler.ItemHandler
	shoppingListH *handler.ShoppingListHandler
	logger        *slog.Logger
}

func New(db *sql.DB, healthState *health.State, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	storeStore := store.NewStoreStore(db)
	zoneStore := store.NewZoneStore(db)
	departmentStore := store.NewDepartmentStore(db)
	itemStore := store.NewItemStore(db)
	shoppingListStore := store.NewShoppingListStore(db)

	return &Server{
		db:            db,
		hub:           hub,
		healthState:   healthState,
		storeH:        handler.NewStoreHandler(storeStore, hub, logger.With("component", "store")),
		zoneH:         handler.NewZoneHandler(zoneStore, hub, logger.With("component", "zone")),
		departmentH:   handler.NewDepartmentHandler(departmentStore, hub, logger.With("component", "department")),
		itemH:         handler.NewItemHandler(itemStore, hub, logger.With("component", "item")),
		shoppingListH: handler.NewShoppingListHandler(shoppingListStore, hub, logger.With("component", "shopping_list")),
		logger:        logger,
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Stores (virtual "All" store handled inside the handlers)
	mux.HandleFunc("GET /stores", s.storeH.List)
	mux.HandleFunc("POST /stores", s.storeH.Create)
	mux.HandleFunc("GET /stores/{id}", s.storeH.Get)
	mux.HandleFunc("PUT /stores/{id}", s.storeH.Update)
	mux.HandleFunc("DELETE /stores/{id}", s.storeH.Delete)

	// Store zones
	mux.HandleFunc("GET /stores/{id}/zones", s.zoneH.List)
	mux.HandleFunc("POST /stores/{id}/zones", s.zoneH.Upsert)
	mux.HandleFunc("POST /stores/{id}/zones/swap", s.zoneH.Swap)
	mux.HandleFunc("DELETE /stores/{id}/zones/{seq}/{dept}", s.zoneH.Delete)

	// Departments
	mux.HandleFunc("GET /departments", s.departmentH.List)
	mux.HandleFunc("POST /departments", s.departmentH.Create)

	// Item catalog
	mux.HandleFunc("GET /items", s.itemH.List)
	mux.HandleFunc("POST /items", s.itemH.Create)
	mux.HandleFunc("GET /items/{id}", s.itemH.Get)
	mux.HandleFunc("PUT /items/{id}", s.itemH.Update)
	mux.HandleFunc("DELETE /items/{id}", s.itemH.Delete)

	// Shopping list
	mux.HandleFunc("GET /shopping-list", s.shoppingListH.ListAll)
	mux.HandleFunc("POST /shopping-list", s.shoppingListH.Upsert)
	mux.HandleFunc("GET /shopping-list/{storeID}", s.shoppingListH.Project)
	mux.HandleFunc("PUT /shopping-list/{name}", s.shoppingListH.Update)
	mux.HandleFunc("PATCH /shopping-list/{name}/purchased", s.shoppingListH.SetPurchased)
	mux.HandleFunc("DELETE /shopping-list/{name}", s.shoppingListH.Delete)

	mux.HandleFunc("GET /health", health.Handler(s.healthState))
	mux.HandleFunc("GET /ws", ws.Handle(s.hub, s.logger.With("component", "websocket")))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}
