package service

import "errors"

var (
	// ErrPredictionRequestFailed covers network errors and non-success statuses on predict
	ErrPredictionRequestFailed = errors.New("prediction request failed")
	// ErrChatRequestFailed covers any failure during the chat round trip
	ErrChatRequestFailed = errors.New("chat request failed")
	// ErrReportRequestFailed covers any failure fetching the PDF report
	ErrReportRequestFailed = errors.New("report request failed")
	// ErrMalformedResponse means the predict body decoded but required fields were missing or inconsistent
	ErrMalformedResponse = errors.New("malformed prediction response")

	ErrUnknownField  = errors.New("unknown form field")
	ErrMissingField  = errors.New("required form field is empty")
	ErrInvalidOption = errors.New("invalid option for form field")
)
