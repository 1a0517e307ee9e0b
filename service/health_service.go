package service

import (
	"context"
	"time"
)

// HealthChecker is implemented by ledger clients that can probe the node.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

type HealthStatus struct {
	Status    string `json:"status"`
	Cluster   string `json:"cluster"`
	Endpoint  string `json:"endpoint"`
	Timestamp uint64 `json:"timestamp"`
	Uptime    uint64 `json:"uptime_seconds"`
	Error     string `json:"error,omitempty"`
}

const (
	StatusServing    = "SERVING"
	StatusNotServing = "NOT_SERVING"
)

type HealthService struct {
	checker  HealthChecker
	cluster  string
	endpoint string
	started  time.Time
}

func NewHealthService(checker HealthChecker, cluster, endpoint string) *HealthService {
	return &HealthService{checker: checker, cluster: cluster, endpoint: endpoint, started: time.Now()}
}

func (hs *HealthService) Check(ctx context.Context) *HealthStatus {
	now := time.Now()
	resp := &HealthStatus{
		Status:    StatusServing,
		Cluster:   hs.cluster,
		Endpoint:  hs.endpoint,
		Timestamp: uint64(now.Unix()),
		Uptime:    uint64(now.Sub(hs.started).Seconds()),
	}
	if hs.checker == nil {
		resp.Status = StatusNotServing
		resp.Error = "no ledger connection configured"
		return resp
	}
	if err := hs.checker.CheckHealth(ctx); err != nil {
		resp.Status = StatusNotServing
		resp.Error = err.Error()
	}
	return resp
}
