package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/grq-validation/internal/api/handlers"
	"github.com/wonny/grq-validation/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(scoreHandler *handlers.ScoreHandler, limiter Limiter, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Score file endpoints
	api.HandleFunc("/scores", scoreHandler.ListScores).Methods("GET")
	api.HandleFunc("/scores/{date}/portfolio", scoreHandler.GetPortfolio).Methods("GET")
	api.HandleFunc("/scores/{date}/instruments", scoreHandler.GetInstruments).Methods("GET")
	api.HandleFunc("/scores/{date}/instruments/{symbol}", scoreHandler.GetInstrument).Methods("GET")

	// /health 는 제한 없음
	api.Use(rateLimitMiddleware(limiter, log))

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "grq-validation-api",
	})
}
