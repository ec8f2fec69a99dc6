package model

import (
	"encoding/json"
	"testing"

	"github.com/pgvector/pgvector-go"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPredictionRequest(t *testing.T) {
	req := DefaultPredictionRequest()

	assert.Len(t, req, len(FieldNames))
	assert.Equal(t, "Graduate", req[FieldEducation])
	assert.Equal(t, "Yes", req[FieldSelfEmployed])
	assert.Equal(t, "", req[FieldCibilScore])
}

func TestPredictionRequestClone(t *testing.T) {
	req := DefaultPredictionRequest()
	clone := req.Clone()
	clone[FieldLoanTerm] = "24"

	assert.Equal(t, "", req[FieldLoanTerm])
	assert.Equal(t, "24", clone[FieldLoanTerm])
}

func TestIsKnownField(t *testing.T) {
	for _, name := range FieldNames {
		assert.True(t, IsKnownField(name), name)
	}
	assert.False(t, IsKnownField("loan_id"))
	assert.False(t, IsKnownField(""))
}

func TestPredictFormFields(t *testing.T) {
	form := PredictForm{CibilScore: "700", SelfEmployed: "No"}
	fields := form.Fields()

	assert.Equal(t, "700", fields[FieldCibilScore])
	assert.Equal(t, "No", fields[FieldSelfEmployed])
	_, hasEducation := fields[FieldEducation]
	assert.False(t, hasEducation, "an empty select keeps the form default")
}

func TestJSONMapValueAndScan(t *testing.T) {
	in := JSONMap{FieldCibilScore: "778", FieldEducation: "Graduate"}
	v, err := in.Value()
	require.NoError(t, err)

	var out JSONMap
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)

	require.NoError(t, out.Scan(`{"loan_term":"12"}`))
	assert.Equal(t, JSONMap{FieldLoanTerm: "12"}, out)

	require.NoError(t, out.Scan(nil))
	assert.Nil(t, out)

	v, err = JSONMap(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestJSONArrayScan(t *testing.T) {
	var labels JSONArray
	require.NoError(t, labels.Scan([]byte(`["cibil_score","loan_term"]`)))
	assert.Equal(t, JSONArray{"cibil_score", "loan_term"}, labels)
}

func TestPredictionLogJSON_ChartValues(t *testing.T) {
	vec := pgvector.NewVector([]float32{0.5, -0.25})
	entry := PredictionLog{
		ID:             "a",
		Inputs:         JSONMap{"loan_term": "12"},
		PredictionText: ApprovedPredictionText,
		FeatureLabels:  JSONArray{"cibil_score", "loan_term"},
		FeatureImpact:  &vec,
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"chart_labels":["cibil_score","loan_term"]`)
	assert.Contains(t, string(data), `"chart_values":[0.5,-0.25]`)
	assert.NotContains(t, string(data), "feature_impact")

	var decoded PredictionLog
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "a", decoded.ID)
	require.NotNil(t, decoded.FeatureImpact)
	assert.Equal(t, []float32{0.5, -0.25}, decoded.FeatureImpact.Slice())

	data, err = json.Marshal(PredictionLog{ID: "b"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "chart_values")
}
