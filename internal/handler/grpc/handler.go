// Package grpc exposes the storage service over gRPC. Only the standard
// health service is served; vault traffic goes through the HTTP API.
package grpc

import (
	"context"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/service"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health-check name of the storage service.
const ServiceName = "zkvault.v1.StorageService"

// Handler is the root gRPC transport handler.
type Handler struct {
	services *service.Services
	health   *health.Server
	logger   *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
}

// Register attaches the health service to s and marks the storage service
// as serving once the app info service answers with a version.
func (h *Handler) Register(s *gogrpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)

	status := healthpb.HealthCheckResponse_SERVING
	if h.services == nil || h.services.AppInfoService == nil || h.services.AppInfoService.GetAppVersion(context.Background()) == "" {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
	h.logger.Info().Str("status", status.String()).Msg("gRPC health registered")
}

// Shutdown flips every service to NOT_SERVING so watchers notice before the
// listener goes away.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
