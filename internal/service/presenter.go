package service

import (
	"math"
	"math/big"
	"strings"

	"loanportal/internal/model"
)

// Risk gauge percentages
const (
	riskPercentLow    = 30
	riskPercentMedium = 65
	riskPercentHigh   = 95
)

// Risk gauge colors
const (
	riskColorLow    = "hsl(145 70% 45%)"
	riskColorMedium = "hsl(40 85% 55%)"
	riskColorHigh   = "hsl(0 70% 55%)"
)

// IsApproved is an exact, case-sensitive match on the prediction text
func IsApproved(r *model.PredictionResult) bool {
	return r != nil && r.PredictionText == model.ApprovedPredictionText
}

// RiskPercent maps a risk level to the gauge fill. Every unrecognized level,
// including "High Risk" and "", lands in the top bucket.
func RiskPercent(level string) int {
	switch level {
	case model.RiskLevelLow:
		return riskPercentLow
	case model.RiskLevelMedium:
		return riskPercentMedium
	default:
		return riskPercentHigh
	}
}

// RiskColor maps a risk level to the gauge hue, keyed like RiskPercent
func RiskColor(level string) string {
	switch level {
	case model.RiskLevelLow:
		return riskColorLow
	case model.RiskLevelMedium:
		return riskColorMedium
	default:
		return riskColorHigh
	}
}

// ChartSeries builds the feature-impact bars. Labels get underscores replaced
// by spaces; values are scaled to percent and rounded to one decimal.
// It returns nil when there are no labels.
func ChartSeries(labels []string, values []float64) []model.ChartPoint {
	if len(labels) == 0 {
		return nil
	}

	points := make([]model.ChartPoint, len(labels))
	for i, label := range labels {
		var v float64
		if i < len(values) {
			v = values[i]
		}
		points[i] = model.ChartPoint{
			Name:  strings.ReplaceAll(label, "_", " "),
			Value: roundTo1Decimal(v * 100),
		}
	}
	return points
}

// Present derives every display value from a result. A nil result yields the zero view.
func Present(r *model.PredictionResult) model.ResultView {
	if r == nil {
		return model.ResultView{}
	}
	return model.ResultView{
		Approved:       IsApproved(r),
		PredictionText: r.PredictionText,
		Confidence:     r.Confidence,
		RiskLevel:      r.RiskLevel,
		RiskPercent:    RiskPercent(r.RiskLevel),
		RiskColor:      RiskColor(r.RiskLevel),
		Explanation:    r.ExplanationText,
		FeatureImpact:  ChartSeries(r.ChartLabels, r.ChartValues),
	}
}

// roundTo1Decimal rounds the exact binary value of a float64 to 1 decimal,
// ties away from zero, so 23.449999... stays 23.4 and 1.25 becomes 1.3
func roundTo1Decimal(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}

	r := new(big.Rat).SetFloat64(math.Abs(value))
	r.Mul(r, big.NewRat(10, 1))
	r.Add(r, big.NewRat(1, 2))
	tenths := new(big.Int).Quo(r.Num(), r.Denom())
	if tenths.Sign() == 0 {
		return 0
	}

	rounded, _ := new(big.Rat).SetFrac(tenths, big.NewInt(10)).Float64()
	if value < 0 {
		return -rounded
	}
	return rounded
}
