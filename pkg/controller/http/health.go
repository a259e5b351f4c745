package http

import (
	"net/http"

	"github.com/estatemanner/hookrelay/pkg/domain/model"
	"github.com/estatemanner/hookrelay/pkg/domain/types"
)

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	status := &model.HealthStatus{
		Status:  "healthy",
		Service: "hookrelay",
		Version: types.Version,
	}

	writeJSON(r.Context(), w, http.StatusOK, status)
}
