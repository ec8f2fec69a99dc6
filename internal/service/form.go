package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"loanportal/internal/model"
)

// FormState is a snapshot of a FormController
type FormState struct {
	Fields model.PredictionRequest
	Result *model.PredictionResult
	Error  string
	Busy   bool
}

// FormController holds the loan application form and its current outcome.
// Each Submit takes a sequence number; only the most recently issued
// submission may store its outcome, so a slow earlier call can never
// overwrite a newer result.
type FormController struct {
	predictor Predictor

	mu     sync.Mutex
	fields model.PredictionRequest // replaced, never mutated in place
	result *model.PredictionResult
	errMsg string
	busy   bool
	seq    uint64
}

// NewFormController creates a form seeded with the default values
func NewFormController(predictor Predictor) *FormController {
	return &FormController{
		predictor: predictor,
		fields:    model.DefaultPredictionRequest(),
	}
}

// SetField replaces one entry, leaving the others untouched
func (f *FormController) SetField(name, value string) error {
	if !model.IsKnownField(name) {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	next := f.fields.Clone()
	next[name] = value
	f.fields = next
	return nil
}

// SetFields replaces several entries at once. Nothing changes if any name is unknown.
func (f *FormController) SetFields(values map[string]string) error {
	for name := range values {
		if !model.IsKnownField(name) {
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	next := f.fields.Clone()
	for name, value := range values {
		next[name] = value
	}
	f.fields = next
	return nil
}

// Fields returns a copy of the current form values
func (f *FormController) Fields() model.PredictionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields.Clone()
}

// State returns a snapshot of the form and its outcome
func (f *FormController) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FormState{
		Fields: f.fields.Clone(),
		Result: f.result,
		Error:  f.errMsg,
		Busy:   f.busy,
	}
}

// Validate checks required-field presence and the select options.
// Numeric content is left for the backend to parse.
func (f *FormController) Validate() error {
	return ValidateFields(f.Fields())
}

// ValidateFields checks that every field is present and non-blank and that
// categorical fields hold one of their options
func ValidateFields(fields model.PredictionRequest) error {
	for _, name := range model.FieldNames {
		if strings.TrimSpace(fields[name]) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}

	for name, options := range model.FieldOptions {
		if !containsString(options, fields[name]) {
			return fmt.Errorf("%w: %s=%q", ErrInvalidOption, name, fields[name])
		}
	}

	return nil
}

// Submit validates the form and sends it to the predict endpoint.
// A validation failure is returned and no call is made. Transport and decode
// failures are not returned; they become the fixed error message in State.
func (f *FormController) Submit(ctx context.Context) error {
	f.mu.Lock()
	req := f.fields
	if err := ValidateFields(req); err != nil {
		f.mu.Unlock()
		return err
	}
	f.seq++
	seq := f.seq
	f.errMsg = ""
	f.result = nil
	f.busy = true
	f.mu.Unlock()

	var (
		result *model.PredictionResult
		err    error
	)
	defer func() { f.complete(seq, result, err) }()

	result, err = f.predictor.SubmitPrediction(ctx, req.Clone())
	return nil
}

// complete applies the outcome of submission seq if it is still the latest
func (f *FormController) complete(seq uint64, result *model.PredictionResult, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.seq {
		log.WithFields(log.Fields{"seq": seq, "latest": f.seq}).Debug("discarding stale prediction outcome")
		return
	}

	f.busy = false
	if err != nil || result == nil {
		if err != nil {
			log.WithError(err).Warn("prediction failed")
		}
		f.result = nil
		f.errMsg = model.PredictionFailureMessage
		return
	}
	f.result = result
	f.errMsg = ""
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
