package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pgvector/pgvector-go"
)

// Applicant attribute names, in form order
const (
	FieldDependents        = "no_of_dependents"
	FieldIncomeAnnum       = "income_annum"
	FieldLoanAmount        = "loan_amount"
	FieldLoanTerm          = "loan_term"
	FieldCibilScore        = "cibil_score"
	FieldResidentialAssets = "residential_assets_value"
	FieldCommercialAssets  = "commercial_assets_value"
	FieldLuxuryAssets      = "luxury_assets_value"
	FieldBankAssets        = "bank_asset_value"
	FieldEducation         = "education"
	FieldSelfEmployed      = "self_employed"
)

const (
	ApprovedPredictionText   = "Loan Approved"
	DefaultEducation         = "Graduate"
	DefaultSelfEmployed      = "Yes"
	RiskLevelLow             = "Low Risk"
	RiskLevelMedium          = "Medium Risk"
	PredictionFailureMessage = "Could not connect to the prediction server. Make sure your Flask backend is running."
)

// NumericFields are sent as strings; the backend parses them
var NumericFields = []string{
	FieldDependents,
	FieldIncomeAnnum,
	FieldLoanAmount,
	FieldLoanTerm,
	FieldCibilScore,
	FieldResidentialAssets,
	FieldCommercialAssets,
	FieldLuxuryAssets,
	FieldBankAssets,
}

// FieldNames lists every field of a PredictionRequest
var FieldNames = append(append([]string{}, NumericFields...), FieldEducation, FieldSelfEmployed)

// Select options for the categorical fields
var (
	EducationOptions    = []string{"Graduate", "Not Graduate"}
	SelfEmployedOptions = []string{"Yes", "No"}
)

// FieldOptions maps categorical fields to their allowed values
var FieldOptions = map[string][]string{
	FieldEducation:    EducationOptions,
	FieldSelfEmployed: SelfEmployedOptions,
}

// IsKnownField reports whether name is one of FieldNames
func IsKnownField(name string) bool {
	for _, f := range FieldNames {
		if f == name {
			return true
		}
	}
	return false
}

// PredictionRequest maps field name to its raw string input.
// It is built fresh per submission and never mutated after it is sent.
type PredictionRequest map[string]string

// Clone returns an independent copy
func (r PredictionRequest) Clone() PredictionRequest {
	out := make(PredictionRequest, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// DefaultPredictionRequest returns the initial form values
func DefaultPredictionRequest() PredictionRequest {
	req := make(PredictionRequest, len(FieldNames))
	for _, f := range NumericFields {
		req[f] = ""
	}
	req[FieldEducation] = DefaultEducation
	req[FieldSelfEmployed] = DefaultSelfEmployed
	return req
}

// PredictionResult is the decoded body of the predict endpoint
type PredictionResult struct {
	PredictionText  string    `json:"prediction_text" yaml:"prediction_text"`
	Confidence      float64   `json:"confidence" yaml:"confidence"`
	RiskLevel       string    `json:"risk_level" yaml:"risk_level"`
	ExplanationText string    `json:"explanation_text" yaml:"explanation_text"`
	ChartLabels     []string  `json:"chart_labels" yaml:"chart_labels"`
	ChartValues     []float64 `json:"chart_values" yaml:"chart_values"`
}

// PredictionLog is a persisted prediction (history)
type PredictionLog struct {
	ID             string           `json:"id" db:"id"`
	SessionID      *string          `json:"session_id,omitempty" db:"session_id"`
	Inputs         JSONMap          `json:"inputs" db:"inputs"`
	PredictionText string           `json:"prediction_text" db:"prediction_text"`
	Confidence     float64          `json:"confidence" db:"confidence"`
	RiskLevel      string           `json:"risk_level" db:"risk_level"`
	Explanation    *string          `json:"explanation_text,omitempty" db:"explanation_text"`
	FeatureLabels  JSONArray        `json:"chart_labels,omitempty" db:"feature_labels"`
	FeatureImpact  *pgvector.Vector `json:"-" db:"feature_impact"` // NULL when the backend sent no chart
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
}

// MarshalJSON adds the feature-impact vector as chart_values, paired with chart_labels
func (l PredictionLog) MarshalJSON() ([]byte, error) {
	type alias PredictionLog
	var values []float32
	if l.FeatureImpact != nil {
		values = l.FeatureImpact.Slice()
	}
	return json.Marshal(struct {
		alias
		ChartValues []float32 `json:"chart_values,omitempty"`
	}{alias(l), values})
}

// UnmarshalJSON reads chart_values back into the feature-impact vector
func (l *PredictionLog) UnmarshalJSON(data []byte) error {
	type alias PredictionLog
	aux := struct {
		*alias
		ChartValues []float32 `json:"chart_values"`
	}{alias: (*alias)(l)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.ChartValues) > 0 {
		vec := pgvector.NewVector(aux.ChartValues)
		l.FeatureImpact = &vec
	}
	return nil
}

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}

// JSONMap represents a JSON object field
type JSONMap map[string]string

// Value implements driver.Valuer interface
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
