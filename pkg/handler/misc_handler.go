// Handler for miscellaneous endpoints such as health check

package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/yumyai/mbdash/logger"
	"github.com/yumyai/mbdash/pkg/middle"
	"go.uber.org/zap"
)

type HealthResponse struct {
	Health    string    `json:"health"`
	Timestamp time.Time `json:"timestamp"`
	Tables    int       `json:"cached_tables"`
}

func (app *AppContext) HealthCheck(w http.ResponseWriter, r *http.Request) {

	response := HealthResponse{
		Health:    "ok",
		Timestamp: time.Now(),
		Tables:    app.Tables.Len(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)

}

// reqLogger is the request-scoped logger carrying the request ID.
func reqLogger(r *http.Request) *zap.Logger {
	return middle.FromContext(r.Context(), logger.L())
}

func badRequest(w http.ResponseWriter, r *http.Request, err error) {
	reqLogger(r).Debug("Bad request", zap.Error(err))
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if userError(err) {
		badRequest(w, r, err)
		return
	}
	reqLogger(r).Error(msg, zap.Error(err))
	http.Error(w, msg, http.StatusInternalServerError)
}
