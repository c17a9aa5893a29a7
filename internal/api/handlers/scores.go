package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/grq-validation/internal/contracts"
	"github.com/wonny/grq-validation/pkg/logger"
)

// Evaluations is what the score endpoints need from the evaluation service
type Evaluations interface {
	ScoreDates(ctx context.Context, all bool) ([]time.Time, error)
	Evaluate(ctx context.Context, scoreDate time.Time) (contracts.EvaluationRun, error)
	Instrument(ctx context.Context, scoreDate time.Time, symbol string) (contracts.InstrumentMetrics, error)
}

// ScoreHandler handles score file endpoints
// ⭐ SSOT: 스코어/평가 API 핸들러는 이 구조체에서만
type ScoreHandler struct {
	evals  Evaluations
	logger *logger.Logger
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(evals Evaluations, log *logger.Logger) *ScoreHandler {
	return &ScoreHandler{evals: evals, logger: log}
}

// ScoreDateItem one entry of the score file list
type ScoreDateItem struct {
	ScoreDate  string `json:"score_date"`
	HorizonEnd string `json:"horizon_end"`
}

// ListScores returns score dates, newest first
// GET /api/scores?all=true
func (h *ScoreHandler) ListScores(w http.ResponseWriter, r *http.Request) {
	all := r.URL.Query().Get("all") == "true"

	dates, err := h.evals.ScoreDates(r.Context(), all)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list score dates")
		respondError(w, http.StatusInternalServerError, "Failed to list score files")
		return
	}

	items := make([]ScoreDateItem, len(dates))
	for i, d := range dates {
		items[i] = ScoreDateItem{
			ScoreDate:  d.Format(contracts.DateLayout),
			HorizonEnd: contracts.HorizonEnd(d).Format(contracts.DateLayout),
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(items),
		"scores": items,
	})
}

// GetPortfolio returns portfolio metrics for one score file
// GET /api/scores/{date}/portfolio
func (h *ScoreHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	scoreDate, ok := h.scoreDate(w, r)
	if !ok {
		return
	}

	run, err := h.evals.Evaluate(r.Context(), scoreDate)
	if err != nil {
		h.respondEvalError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":       run.ID,
		"policy_hash":  run.PolicyHash,
		"evaluated_at": run.EvaluatedAt,
		"portfolio":    run.Portfolio,
	})
}

// GetInstruments returns metrics of every instrument in a score file
// GET /api/scores/{date}/instruments
func (h *ScoreHandler) GetInstruments(w http.ResponseWriter, r *http.Request) {
	scoreDate, ok := h.scoreDate(w, r)
	if !ok {
		return
	}

	run, err := h.evals.Evaluate(r.Context(), scoreDate)
	if err != nil {
		h.respondEvalError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"score_date":  scoreDate.Format(contracts.DateLayout),
		"count":       len(run.Instruments),
		"instruments": run.Instruments,
	})
}

// GetInstrument returns metrics of one instrument
// GET /api/scores/{date}/instruments/{symbol}
func (h *ScoreHandler) GetInstrument(w http.ResponseWriter, r *http.Request) {
	scoreDate, ok := h.scoreDate(w, r)
	if !ok {
		return
	}

	symbol := mux.Vars(r)["symbol"]
	if !contracts.IsValidSymbol(symbol) {
		respondError(w, http.StatusBadRequest, "Invalid symbol")
		return
	}

	metrics, err := h.evals.Instrument(r.Context(), scoreDate, symbol)
	if err != nil {
		h.respondEvalError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}

func (h *ScoreHandler) scoreDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	scoreDate, err := contracts.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format (expected YYYY-MM-DD)")
		return time.Time{}, false
	}
	return scoreDate, true
}

func (h *ScoreHandler) respondEvalError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contracts.ErrNotFound):
		respondError(w, http.StatusNotFound, "Score file not found")
	case errors.Is(err, contracts.ErrUnknownSymbol):
		respondError(w, http.StatusNotFound, "Symbol not in score file")
	default:
		h.logger.WithError(err).Error("Evaluation failed")
		respondError(w, http.StatusInternalServerError, "Evaluation failed")
	}
}
