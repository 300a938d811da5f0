package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"procurepulse/pkg/contracts"
	"procurepulse/pkg/contracts/domain"
)

// DatasetStatus is the part of DashboardService the health checks need
type DatasetStatus interface {
	Dataset(ctx context.Context) (domain.DatasetInfo, error)
	Path() string
}

// HealthService reports liveness, readiness and build information
type HealthService struct {
	version   string
	buildTime string
	dataset   DatasetStatus
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual component health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Rows    int    `json:"rows,omitempty"`
}

// Status values
const (
	StatusOK       = "ok"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
	StatusAlive    = "alive"
)

// NewHealthService creates a health service over dataset
func NewHealthService(version, buildTime string, dataset DatasetStatus, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		dataset:   dataset,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// ReadinessCheck is ready once a dataset is cached
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    StatusReady,
		Timestamp: time.Now(),
		Version:   hs.version,
		Services: map[string]ServiceHealth{
			"dataset": hs.checkDataset(ctx),
		},
	}

	for _, svc := range status.Services {
		if svc.Status != StatusReady {
			status.Status = StatusNotReady
			break
		}
	}

	hs.logger.DebugContext(ctx, "readiness checked", slog.String("status", status.Status))
	return status
}

// LivenessCheck reports process uptime and runtime figures
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    StatusAlive,
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	info := contracts.Build()
	result := map[string]interface{}{
		"version":     hs.version,
		"git_commit":  info.GitCommit,
		"api_version": info.APIVersion,
		"data_format": info.DataFormat,
		"go_version":  info.GoVersion,
		"os":          info.OS,
		"arch":        info.Architecture,
		"start_time":  hs.startTime.Format(time.RFC3339),
	}
	if hs.buildTime != "" {
		result["build_time"] = hs.buildTime
	}
	return result
}

func (hs *HealthService) checkDataset(ctx context.Context) ServiceHealth {
	if hs.dataset == nil {
		return ServiceHealth{Status: StatusNotReady, Message: "dataset service not configured"}
	}
	info, err := hs.dataset.Dataset(ctx)
	if err != nil {
		return ServiceHealth{Status: StatusNotReady, Message: err.Error()}
	}
	return ServiceHealth{
		Status:  StatusReady,
		Message: "loaded from " + info.Path,
		Rows:    info.Rows,
	}
}
