package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"loanportal/internal/model"
)

// requiredResultKeys must all be present (and not null) in a predict response
var requiredResultKeys = []string{
	"prediction_text",
	"confidence",
	"risk_level",
	"explanation_text",
	"chart_labels",
	"chart_values",
}

// DecodePredictionResult decodes and validates a predict response body.
// Missing keys, wrong types and label/value length mismatches return ErrMalformedResponse.
func DecodePredictionResult(body []byte) (*model.PredictionResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrMalformedResponse)
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedResponse)
	}

	var missing []string
	for _, key := range requiredResultKeys {
		if v := root.Get(key); !v.Exists() || v.Type == gjson.Null {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedResponse, strings.Join(missing, ", "))
	}

	var result model.PredictionResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(result.ChartLabels) != len(result.ChartValues) {
		return nil, fmt.Errorf("%w: %d chart labels but %d chart values",
			ErrMalformedResponse, len(result.ChartLabels), len(result.ChartValues))
	}

	return &result, nil
}

// ExtractChatReply applies the reply fallback chain: a non-empty "reply", else a
// non-empty "message", else NoChatResponse. A body that is not JSON, or is JSON null,
// is an error.
func ExtractChatReply(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("invalid JSON in chat response: %s", truncateString(string(body), 100))
	}

	root := gjson.ParseBytes(body)
	if root.Type == gjson.Null {
		return "", fmt.Errorf("chat response is null")
	}

	for _, key := range []string{"reply", "message"} {
		if v := root.Get(key); v.Type == gjson.String && v.Str != "" {
			return v.Str, nil
		}
	}

	return model.NoChatResponse, nil
}

// truncateString truncates a string to maxLen bytes
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
