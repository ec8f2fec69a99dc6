package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	log "github.com/sirupsen/logrus"

	"loanportal/internal/model"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// HistoryStore persists predictions
type HistoryStore interface {
	LogPrediction(ctx context.Context, entry *model.PredictionLog) error
	ListPredictions(ctx context.Context, limit, offset int) ([]model.PredictionLog, int, error)
	GetPrediction(ctx context.Context, id string) (*model.PredictionLog, error)
}

// HistoryService records successful predictions and serves them back
type HistoryService struct {
	repo    HistoryStore
	pending sync.WaitGroup
}

// NewHistoryService creates a new history service
func NewHistoryService(repo HistoryStore) *HistoryService {
	return &HistoryService{repo: repo}
}

// Recorder wraps next so every successful prediction made for sessionID is logged
func (h *HistoryService) Recorder(next Predictor, sessionID string) Predictor {
	return &recordingPredictor{next: next, history: h, sessionID: sessionID}
}

// Record logs one prediction without blocking the caller
func (h *HistoryService) Record(sessionID string, req model.PredictionRequest, result *model.PredictionResult) {
	entry := NewPredictionLog(sessionID, req, result)

	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		if err := h.repo.LogPrediction(context.Background(), entry); err != nil {
			log.WithError(err).WithField("prediction", entry.ID).Warn("failed to record prediction")
		}
	}()
}

// Wait blocks until every pending Record has finished
func (h *HistoryService) Wait() {
	h.pending.Wait()
}

// List returns recent predictions, newest first
func (h *HistoryService) List(ctx context.Context, limit, offset int) (*model.HistoryResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	logs, total, err := h.repo.ListPredictions(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return &model.HistoryResponse{
		Predictions: logs,
		Total:       total,
	}, nil
}

// Get retrieves a single prediction; nil when not found
func (h *HistoryService) Get(ctx context.Context, id string) (*model.PredictionLog, error) {
	return h.repo.GetPrediction(ctx, id)
}

// NewPredictionLog builds the row stored for one prediction. The feature
// impact values go into a vector column; it stays NULL when the result has no chart.
func NewPredictionLog(sessionID string, req model.PredictionRequest, result *model.PredictionResult) *model.PredictionLog {
	entry := &model.PredictionLog{
		ID:             uuid.NewString(),
		Inputs:         model.JSONMap(req.Clone()),
		PredictionText: result.PredictionText,
		Confidence:     result.Confidence,
		RiskLevel:      result.RiskLevel,
		CreatedAt:      time.Now().UTC(),
	}
	if sessionID != "" {
		entry.SessionID = &sessionID
	}
	if result.ExplanationText != "" {
		explanation := result.ExplanationText
		entry.Explanation = &explanation
	}
	if len(result.ChartLabels) > 0 {
		entry.FeatureLabels = model.JSONArray(append([]string{}, result.ChartLabels...))

		impact := make([]float32, len(result.ChartValues))
		for i, v := range result.ChartValues {
			impact[i] = float32(v)
		}
		vec := pgvector.NewVector(impact)
		entry.FeatureImpact = &vec
	}
	return entry
}

// recordingPredictor logs every successful prediction of one session
type recordingPredictor struct {
	next      Predictor
	history   *HistoryService
	sessionID string
}

func (p *recordingPredictor) SubmitPrediction(ctx context.Context, req model.PredictionRequest) (*model.PredictionResult, error) {
	result, err := p.next.SubmitPrediction(ctx, req)
	if err != nil || result == nil {
		return result, err
	}

	p.history.Record(p.sessionID, req, result)
	return result, nil
}
