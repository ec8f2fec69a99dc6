package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePredictionResult(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: approvedBody},
		{
			name: "empty chart is fine",
			body: `{"prediction_text":"Loan Rejected","confidence":40,"risk_level":"High Risk","explanation_text":"","chart_labels":[],"chart_values":[]}`,
		},
		{
			name:    "null field counts as missing",
			body:    `{"prediction_text":"Loan Approved","confidence":null,"risk_level":"Low Risk","explanation_text":"","chart_labels":[],"chart_values":[]}`,
			wantErr: "missing confidence",
		},
		{
			name:    "lists every missing key",
			body:    `{"prediction_text":"Loan Approved","confidence":1}`,
			wantErr: "missing risk_level, explanation_text, chart_labels, chart_values",
		},
		{
			name:    "wrong type",
			body:    `{"prediction_text":"Loan Approved","confidence":"high","risk_level":"Low Risk","explanation_text":"","chart_labels":[],"chart_values":[]}`,
			wantErr: "malformed prediction response",
		},
		{
			name:    "length mismatch",
			body:    `{"prediction_text":"Loan Approved","confidence":1,"risk_level":"Low Risk","explanation_text":"","chart_labels":["a","b"],"chart_values":[0.1]}`,
			wantErr: "2 chart labels but 1 chart values",
		},
		{name: "array body", body: `[1,2]`, wantErr: "expected a JSON object"},
		{name: "garbage", body: `{`, wantErr: "not valid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DecodePredictionResult([]byte(tt.body))
			if tt.wantErr != "" {
				assert.ErrorIs(t, err, ErrMalformedResponse)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, result)
		})
	}
}

func TestExtractChatReply_NonStringReplyIsIgnored(t *testing.T) {
	reply, err := ExtractChatReply([]byte(`{"reply": 42, "message": "fallback"}`))
	require.NoError(t, err)
	assert.Equal(t, "fallback", reply)
}

func TestExtractChatReply_Null(t *testing.T) {
	_, err := ExtractChatReply([]byte(`null`))
	assert.Error(t, err)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", truncateString("abc", 5))
	assert.Equal(t, "ab...", truncateString("abcdef", 2))
}
