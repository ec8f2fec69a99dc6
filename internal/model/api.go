package model

import "time"

// ChartPoint is one bar of the feature-impact chart
type ChartPoint struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// ResultView holds display-ready values derived from a PredictionResult
type ResultView struct {
	Approved       bool         `json:"approved" yaml:"approved"`
	PredictionText string       `json:"prediction_text" yaml:"prediction_text"`
	Confidence     float64      `json:"confidence" yaml:"confidence"`
	RiskLevel      string       `json:"risk_level" yaml:"risk_level"`
	RiskPercent    int          `json:"risk_percent" yaml:"risk_percent"`
	RiskColor      string       `json:"risk_color" yaml:"risk_color"`
	Explanation    string       `json:"explanation_text" yaml:"explanation_text"`
	FeatureImpact  []ChartPoint `json:"feature_impact,omitempty" yaml:"feature_impact,omitempty"` // absent when the backend sent no chart
}

// PredictForm binds a full form submission (JSON or form-urlencoded)
type PredictForm struct {
	NoOfDependents         string `json:"no_of_dependents" form:"no_of_dependents" binding:"required"`
	IncomeAnnum            string `json:"income_annum" form:"income_annum" binding:"required"`
	LoanAmount             string `json:"loan_amount" form:"loan_amount" binding:"required"`
	LoanTerm               string `json:"loan_term" form:"loan_term" binding:"required"`
	CibilScore             string `json:"cibil_score" form:"cibil_score" binding:"required"`
	ResidentialAssetsValue string `json:"residential_assets_value" form:"residential_assets_value" binding:"required"`
	CommercialAssetsValue  string `json:"commercial_assets_value" form:"commercial_assets_value" binding:"required"`
	LuxuryAssetsValue      string `json:"luxury_assets_value" form:"luxury_assets_value" binding:"required"`
	BankAssetValue         string `json:"bank_asset_value" form:"bank_asset_value" binding:"required"`
	Education              string `json:"education" form:"education" binding:"omitempty,oneof='Graduate' 'Not Graduate'"`
	SelfEmployed           string `json:"self_employed" form:"self_employed" binding:"omitempty,oneof=Yes No"`
}

// Fields converts the bound form into field/value pairs.
// Empty categorical fields are left out so the form defaults apply.
func (f PredictForm) Fields() map[string]string {
	out := map[string]string{
		FieldDependents:        f.NoOfDependents,
		FieldIncomeAnnum:       f.IncomeAnnum,
		FieldLoanAmount:        f.LoanAmount,
		FieldLoanTerm:          f.LoanTerm,
		FieldCibilScore:        f.CibilScore,
		FieldResidentialAssets: f.ResidentialAssetsValue,
		FieldCommercialAssets:  f.CommercialAssetsValue,
		FieldLuxuryAssets:      f.LuxuryAssetsValue,
		FieldBankAssets:        f.BankAssetValue,
	}
	if f.Education != "" {
		out[FieldEducation] = f.Education
	}
	if f.SelfEmployed != "" {
		out[FieldSelfEmployed] = f.SelfEmployed
	}
	return out
}

// SetFieldRequest updates one form field
type SetFieldRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value"`
}

// FormResponse is the portal view of a form controller
type FormResponse struct {
	Fields PredictionRequest `json:"fields" yaml:"fields"`
	Busy   bool              `json:"busy" yaml:"busy"`
	Error  string            `json:"error,omitempty" yaml:"error,omitempty"`
	Result *PredictionResult `json:"result,omitempty" yaml:"result,omitempty"`
	View   *ResultView       `json:"view,omitempty" yaml:"view,omitempty"`
}

// ChatRequest carries one chat draft
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the portal view of a chat session
type ChatResponse struct {
	SessionID  string        `json:"session_id"`
	Sent       bool          `json:"sent"`
	Busy       bool          `json:"busy"`
	Transcript []ChatMessage `json:"transcript"`
}

// SessionResponse identifies a portal session
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryResponse lists recent predictions
type HistoryResponse struct {
	Predictions []PredictionLog `json:"predictions"`
	Total       int             `json:"total"`
}
