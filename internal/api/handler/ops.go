package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/ruthgorge/expedition/internal/api/models"
	"github.com/ruthgorge/expedition/internal/api/response"
	"github.com/ruthgorge/expedition/internal/document"
	"github.com/ruthgorge/expedition/internal/plan"
	"github.com/ruthgorge/expedition/internal/provider/resilience"
)

// OpsConfig holds the dependencies reported by the ops endpoints. Any of
// them may be nil.
type OpsConfig struct {
	Version   string
	BuildTime string
	Plans     *plan.Service
	Sweeper   *plan.Sweeper
	Document  *document.Loader
	Registry  *resilience.Registry
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	cfg OpsConfig
	now func() time.Time
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(cfg OpsConfig) *OpsHandler {
	return &OpsHandler{cfg: cfg, now: time.Now}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(h.now()),
		Details: map[string]any{
			"version":   h.cfg.Version,
			"buildTime": h.cfg.BuildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. The server is
// ready once the reference catalog is loaded; the guide document is optional.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if h.cfg.Plans == nil || h.cfg.Plans.Store() == nil {
		response.ServiceUnavailable(w, r, "reference catalog not loaded")
		return
	}
	response.JSON(w, r, http.StatusOK, models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(h.now()),
	})
}

// SystemStatus handles GET /v1/ops/status - provider and subsystem status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	status := models.SystemStatus{
		Status:     models.HealthStatusOK,
		Time:       models.Timestamp(h.now()),
		Subsystems: h.subsystems(r.Context()),
		Providers:  h.providers(),
	}
	for _, s := range status.Subsystems {
		status.Status = worst(status.Status, s.Status)
	}
	for _, p := range status.Providers {
		status.Status = worst(status.Status, degradeOnly(p.Status))
	}
	response.JSON(w, r, http.StatusOK, status)
}

func (h *OpsHandler) subsystems(ctx context.Context) []models.SubsystemStatus {
	var out []models.SubsystemStatus

	catalog := models.SubsystemStatus{Name: "reference-catalog", Status: models.HealthStatusOK}
	if h.cfg.Plans == nil || h.cfg.Plans.Store() == nil {
		catalog.Status = models.HealthStatusFail
	} else {
		detail := strconv.Itoa(len(h.cfg.Plans.Store().Routes())) + " routes"
		catalog.Detail = &detail
	}
	out = append(out, catalog)

	if h.cfg.Plans != nil {
		sessions := models.SubsystemStatus{Name: "plan-sessions", Status: models.HealthStatusOK}
		n, err := h.cfg.Plans.Count(ctx)
		detail := strconv.Itoa(n) + " active"
		if err != nil {
			sessions.Status = models.HealthStatusDegraded
			detail = err.Error()
		} else if h.cfg.Sweeper != nil {
			if last, removed := h.cfg.Sweeper.Stats(); !last.IsZero() {
				detail += ", last sweep " + last.UTC().Format(time.RFC3339) + ", " + strconv.FormatInt(removed, 10) + " removed"
			}
		}
		sessions.Detail = &detail
		out = append(out, sessions)
	}

	doc := models.SubsystemStatus{Name: "reference-document", Status: models.HealthStatusDegraded}
	if h.cfg.Document != nil {
		st := h.cfg.Document.Status()
		detail := string(st.State)
		switch st.State {
		case document.StateReady:
			doc.Status = models.HealthStatusOK
			detail += ", " + strconv.Itoa(st.PageCount) + " pages"
		case document.StateError:
			detail += ": " + st.Error
		}
		doc.Detail = &detail
	}
	out = append(out, doc)

	return out
}

func (h *OpsHandler) providers() []models.ProviderStatus {
	out := []models.ProviderStatus{}
	if h.cfg.Registry == nil {
		return out
	}
	for _, p := range h.cfg.Registry.GetAllHealth() {
		s := models.ProviderStatus{
			Provider:            p.Name,
			Status:              models.HealthStatusFail,
			CircuitState:        p.CircuitState.String(),
			ConsecutiveFailures: p.Counts.ConsecutiveFailures,
		}
		switch {
		case p.IsHealthy():
			s.Status = models.HealthStatusOK
		case p.IsDegraded():
			s.Status = models.HealthStatusDegraded
		}
		if p.LastSuccessAt != nil {
			t := models.Timestamp(*p.LastSuccessAt)
			s.LastSuccessAt = &t
		}
		if p.LastFailureAt != nil {
			t := models.Timestamp(*p.LastFailureAt)
			s.LastFailureAt = &t
		}
		if p.LastError != "" {
			msg := p.LastError
			s.Message = &msg
		}
		out = append(out, s)
	}
	return out
}

// A failing upstream only degrades the service.
func degradeOnly(s models.HealthStatus) models.HealthStatus {
	if s == models.HealthStatusFail {
		return models.HealthStatusDegraded
	}
	return s
}

func worst(a, b models.HealthStatus) models.HealthStatus {
	rank := map[models.HealthStatus]int{
		models.HealthStatusOK:       0,
		models.HealthStatusDegraded: 1,
		models.HealthStatusFail:     2,
	}
	if rank[b] > rank[a] {
		return b
	}
	return a
}
