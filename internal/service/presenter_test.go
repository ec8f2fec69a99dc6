package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"loanportal/internal/model"
)

func TestIsApproved(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Loan Approved", true},
		{"Loan Rejected", false},
		{"loan approved", false},
		{"Loan Approved ", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, IsApproved(&model.PredictionResult{PredictionText: tt.text}))
		})
	}

	assert.False(t, IsApproved(nil))
}

func TestRiskGauge(t *testing.T) {
	tests := []struct {
		level       string
		wantPercent int
		wantColor   string
	}{
		{"Low Risk", 30, "hsl(145 70% 45%)"},
		{"Medium Risk", 65, "hsl(40 85% 55%)"},
		{"High Risk", 95, "hsl(0 70% 55%)"},
		{"", 95, "hsl(0 70% 55%)"},
		{"low risk", 95, "hsl(0 70% 55%)"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.wantPercent, RiskPercent(tt.level))
			assert.Equal(t, tt.wantColor, RiskColor(tt.level))
		})
	}
}

func TestChartSeries(t *testing.T) {
	points := ChartSeries([]string{"cibil_score", "loan_term"}, []float64{0.623, 0.1005})
	assert.Equal(t, []model.ChartPoint{
		{Name: "cibil score", Value: 62.3},
		{Name: "loan term", Value: 10.1},
	}, points)

	assert.Nil(t, ChartSeries(nil, nil))
	assert.Nil(t, ChartSeries([]string{}, []float64{}))
}

func TestChartSeries_RoundsExactValue(t *testing.T) {
	tests := []struct {
		impact float64
		want   float64
	}{
		{0.2345, 23.4},
		{0.0015, 0.1},
		{1.0005, 100.0},
		{0.0125, 1.3},
		{-0.2345, -23.4},
		{0.1005, 10.1},
		{0.0004, 0},
	}

	for _, tt := range tests {
		points := ChartSeries([]string{"x"}, []float64{tt.impact})
		assert.Equal(t, tt.want, points[0].Value, "impact %v", tt.impact)
	}
}

func TestChartSeries_NegativeImpact(t *testing.T) {
	points := ChartSeries([]string{"loan_amount"}, []float64{-0.256})
	assert.Equal(t, -25.6, points[0].Value)
}

func TestPresent(t *testing.T) {
	view := Present(&model.PredictionResult{
		PredictionText:  "Loan Approved",
		Confidence:      87.5,
		RiskLevel:       "Medium Risk",
		ExplanationText: "ok",
		ChartLabels:     []string{"income_annum"},
		ChartValues:     []float64{0.5},
	})

	assert.True(t, view.Approved)
	assert.Equal(t, 65, view.RiskPercent)
	assert.Equal(t, "hsl(40 85% 55%)", view.RiskColor)
	assert.Equal(t, "ok", view.Explanation)
	assert.Equal(t, []model.ChartPoint{{Name: "income annum", Value: 50}}, view.FeatureImpact)

	assert.Equal(t, model.ResultView{}, Present(nil))
}
