package service

import (
	"context"

	"loanportal/internal/model"
)

// Predictor submits applicant attributes to the predict endpoint
type Predictor interface {
	SubmitPrediction(ctx context.Context, req model.PredictionRequest) (*model.PredictionResult, error)
}

// ChatSender forwards one free-text question to the chat endpoint
type ChatSender interface {
	SubmitChatMessage(ctx context.Context, message string) (string, error)
}

// ReportFetcher downloads the PDF report of the last prediction
type ReportFetcher interface {
	DownloadReport(ctx context.Context) ([]byte, error)
}

// Ensure LoanClient implements all transport interfaces
var (
	_ Predictor     = (*LoanClient)(nil)
	_ ChatSender    = (*LoanClient)(nil)
	_ ReportFetcher = (*LoanClient)(nil)
)
