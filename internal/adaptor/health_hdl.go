package adaptor

import (
	"context"
	"net/http"
	"time"

	"storefront/pkg/database"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	db  database.Pinger
	log *zap.Logger
}

func NewHealthHandler(db database.Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:  db,
		log: log,
	}
}

type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Time     string `json:"time"`
}

// Check handles GET /api/health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	status := healthStatus{
		Status:   "ok",
		Database: "up",
		Time:     time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.db.Ping(ctx); err != nil {
		h.log.Error("Health check failed - database unreachable", zap.Error(err))
		status.Status = "degraded"
		status.Database = "down"
		utils.ResponseServiceUnavailable(w, "Database unavailable", status)
		return
	}

	utils.ResponseSuccess(w, "Service healthy", status)
}
