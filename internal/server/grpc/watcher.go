package grpc

import (
	"context"
	"errors"
	"time"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/flatauth/internal/common"
)

// Probe loads the user collection once and publishes the result. Corrupt
// content still counts as serving: the backend answered.
func (s *GRPCServer) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout())
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if _, err := s.store.LoadAll(probeCtx); err != nil && !errors.Is(err, common.ErrCorruptStore) {
		s.logger.Warn(ctx, "user store probe failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(UsersServiceName, status)
	return status
}

// watch re-probes every interval; a non-positive interval disables it.
func (s *GRPCServer) watch(ctx context.Context) {
	if s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Probe(ctx)
		}
	}
}

func (s *GRPCServer) probeTimeout() time.Duration {
	if s.interval <= 0 {
		return time.Second
	}
	return s.interval
}
