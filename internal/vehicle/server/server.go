package server

import (
	"database/sql"
	"log/slog"
	"net/http"

	"hausfrau/internal/health"
	"hausfrau/internal/middleware"
	"hausfrau/internal/vehicle/handler"
	"hausfrau/internal/vehicle/store"
	ws "hausfrau/internal/websocket"
)

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	healthState  *health.State
	vehicleH     *handler.VehicleHandler
	serviceTypeH *handler.ServiceTypeHandler
	intervalH    *handler.ServiceIntervalHandler
	serviceLogH  *handler.ServiceLogHandler
	logger       *slog.Logger
}

func New(db *sql.DB, healthState *health.State, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	vehicleStore := store.NewVehicleStore(db)
	serviceTypeStore := store.NewServiceTypeStore(db)
	intervalStore := store.NewServiceIntervalStore(db)
	serviceLogStore := store.NewServiceLogStore(db)

	return &Server{
		db:           db,
		hub:          hub,
		healthState:  healthState,
		vehicleH:     handler.NewVehicleHandler(vehicleStore, hub, logger.With("component", "vehicle")),
		serviceTypeH: handler.NewServiceTypeHandler(serviceTypeStore, hub, logger.With("component", "service_type")),
		intervalH:    handler.NewServiceIntervalHandler(intervalStore, hub, logger.With("component", "service_interval")),
		serviceLogH:  handler.NewServiceLogHandler(serviceLogStore, hub, logger.With("component", "service_log")),
		logger:       logger,
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Vehicles
	mux.HandleFunc("GET /vehicles", s.vehicleH.List)
	mux.HandleFunc("POST /vehicles", s.vehicleH.Create)
	mux.HandleFunc("GET /vehicles/{id}", s.vehicleH.Get)
	mux.HandleFunc("PUT /vehicles/{id}", s.vehicleH.Update)
	mux.HandleFunc("DELETE /vehicles/{id}", s.vehicleH.Delete)

	// Service types
	mux.HandleFunc("GET /service-types", s.serviceTypeH.List)
	mux.HandleFunc("POST /service-types", s.serviceTypeH.Create)
	mux.HandleFunc("GET /service-types/{id}", s.serviceTypeH.Get)
	mux.HandleFunc("PUT /service-types/{id}", s.serviceTypeH.Update)
	mux.HandleFunc("DELETE /service-types/{id}", s.serviceTypeH.Delete)

	// Maintenance schedules
	mux.HandleFunc("GET /vehicles/{vehicleID}/service-intervals", s.intervalH.List)
	mux.HandleFunc("POST /vehicles/{vehicleID}/service-intervals", s.intervalH.Upsert)
	mux.HandleFunc("PUT /vehicles/{vehicleID}/service-intervals/{serviceID}", s.intervalH.Update)
	mux.HandleFunc("DELETE /vehicles/{vehicleID}/service-intervals/{serviceID}", s.intervalH.Delete)
	mux.HandleFunc("GET /upcoming-services", s.intervalH.Upcoming)

	// Service history
	mux.HandleFunc("GET /vehicles/{vehicleID}/service-log", s.serviceLogH.ListForVehicle)
	mux.HandleFunc("GET /service-log", s.serviceLogH.ListRecent)
	mux.HandleFunc("POST /service-log", s.serviceLogH.Create)
	mux.HandleFunc("GET /service-log/{id}", s.serviceLogH.Get)
	mux.HandleFunc("PUT /service-log/{id}", s.serviceLogH.Update)
	mux.HandleFunc("DELETE /service-log/{id}", s.serviceLogH.Delete)

	mux.HandleFunc("GET /health", health.Handler(s.healthState))
	mux.HandleFunc("GET /ws", ws.Handle(s.hub, s.logger.With("component", "websocket")))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}
