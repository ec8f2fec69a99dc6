package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T) (*httptest.Server, *url.Values) {
	t.Helper()
	received := &url.Values{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/predict":
			body, _ := io.ReadAll(r.Body)
			*received, _ = url.ParseQuery(string(body))
			_, _ = w.Write([]byte(`{"prediction_text":"Loan Approved","confidence":91.5,"risk_level":"Low Risk","explanation_text":"Good score.","chart_labels":["cibil_score"],"chart_values":[0.7]}`))
		case "/chat":
			_, _ = w.Write([]byte(`{"reply":"Pay on time."}`))
		case "/report":
			_, _ = w.Write([]byte("%PDF-1.4"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server, received
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

var predictArgs = []string{
	"--no-of-dependents", "2",
	"--income-annum", "9600000",
	"--loan-amount", "29900000",
	"--loan-term", "12",
	"--cibil-score", "778",
	"--residential-assets-value", "2400000",
	"--commercial-assets-value", "17600000",
	"--luxury-assets-value", "22700000",
	"--bank-asset-value", "8000000",
}

func TestPredictCommand(t *testing.T) {
	server, received := newBackend(t)

	args := append([]string{"predict", "--base-url", server.URL, "--self-employed", "No"}, predictArgs...)
	out, err := run(t, "", args...)
	require.NoError(t, err)

	assert.Contains(t, out, "Loan Approved (confidence 91.5%)")
	assert.Contains(t, out, "Risk: Low Risk [30%]")
	assert.Contains(t, out, "cibil score")
	assert.Equal(t, "778", received.Get("cibil_score"))
	assert.Equal(t, "Graduate", received.Get("education"))
	assert.Equal(t, "No", received.Get("self_employed"))
}

func TestPredictCommand_JSON(t *testing.T) {
	server, _ := newBackend(t)

	args := append([]string{"predict", "--base-url", server.URL, "-o", "json"}, predictArgs...)
	out, err := run(t, "", args...)
	require.NoError(t, err)
	assert.Contains(t, out, `"risk_percent": 30`)
}

func TestPredictCommand_YAML(t *testing.T) {
	server, _ := newBackend(t)

	args := append([]string{"predict", "--base-url", server.URL, "--output", "yaml"}, predictArgs...)
	out, err := run(t, "", args...)
	require.NoError(t, err)
	assert.Contains(t, out, "risk_percent: 30")
	assert.Contains(t, out, "prediction_text: Loan Approved")
}

func TestPredictCommand_UnknownOutput(t *testing.T) {
	server, _ := newBackend(t)

	args := append([]string{"predict", "--base-url", server.URL, "-o", "xml"}, predictArgs...)
	_, err := run(t, "", args...)
	assert.ErrorContains(t, err, "invalid output format: xml")
}

func TestPredictCommand_InvalidOption(t *testing.T) {
	server, _ := newBackend(t)

	args := append([]string{"predict", "--base-url", server.URL, "--education", "PhD"}, predictArgs...)
	_, err := run(t, "", args...)
	assert.ErrorContains(t, err, "invalid option")
}

func TestPredictCommand_BackendDown(t *testing.T) {
	server, _ := newBackend(t)
	server.Close()

	args := append([]string{"predict", "--base-url", server.URL}, predictArgs...)
	_, err := run(t, "", args...)
	assert.ErrorContains(t, err, "Could not connect to the prediction server")
}

func TestChatCommand(t *testing.T) {
	server, _ := newBackend(t)

	out, err := run(t, "How do I qualify?\n   \nexit\n", "chat", "--base-url", server.URL, "--greeting", "Hello!")
	require.NoError(t, err)

	assert.Contains(t, out, "assistant> Hello!")
	assert.Equal(t, 1, strings.Count(out, "assistant> Pay on time."))
}

func TestReportCommand(t *testing.T) {
	server, _ := newBackend(t)
	path := filepath.Join(t.TempDir(), "report.pdf")

	out, err := run(t, "", "report", "--base-url", server.URL, "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 8 bytes")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}
