package http

import (
	"context"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Flarenzy/ipam-engine/internal/auth"
	"github.com/Flarenzy/ipam-engine/internal/domain"
)

// HealthChecker is what /readyz probes. *pgxpool.Pool satisfies it.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type API struct {
	Logger        *slog.Logger
	Health        HealthChecker
	Service       domain.Service
	Authenticator auth.Authenticator

	metrics *metrics
}

func NewAPI(logger *slog.Logger, health HealthChecker, service domain.Service, authenticator auth.Authenticator) *API {
	return &API{
		Logger:        logger,
		Health:        health,
		Service:       service,
		Authenticator: authenticator,
		metrics:       newMetrics(),
	}
}

func (a *API) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", a.handleHealthz)
	mux.HandleFunc("GET /readyz", a.handleReadyz)

	mux.HandleFunc("GET /api/v1/subnets", a.handleListSubnets)
	mux.HandleFunc("POST /api/v1/subnets", a.handleCreateSubnet)
	mux.HandleFunc("GET /api/v1/subnets/{id}", a.handleGetSubnetByID)
	mux.HandleFunc("DELETE /api/v1/subnets/{id}", a.handleDeleteSubnetByID)
	mux.HandleFunc("GET /api/v1/subnets/{id}/records", a.handleListRecords)
	mux.HandleFunc("POST /api/v1/subnets/{id}/allocate", a.handleAllocate)
	mux.HandleFunc("GET /api/v1/subnets/{id}/reservations", a.handleListReservations)
	mux.HandleFunc("POST /api/v1/subnets/{id}/reservations", a.handleCreateReservation)
	mux.HandleFunc("POST /api/v1/records/{uuid}/release", a.handleRelease)
	mux.HandleFunc("PATCH /api/v1/records/{uuid}", a.handleUpdateRecord)
	mux.HandleFunc("DELETE /api/v1/reservations/{id}", a.handleDeleteReservation)
	mux.HandleFunc("GET /api/v1/tools/range", a.handleComputeRange)
	mux.HandleFunc("GET /api/v1/tools/contains", a.handleContains)

	mux.Handle("GET /metrics", a.metrics.handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return a.metricsMiddleware(a.authMiddleware(mux))
}
