package main

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/event-viability/internal/breakeven"
	"github.com/iwvelando/event-viability/pkg/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestAnalyzeCommandPretty(t *testing.T) {
	out, err := execute(t, "analyze", "--config", writeConfig(t, testConfig))
	require.NoError(t, err)
	assert.Contains(t, out, "--- Results for scenario baseline ---")
	assert.Contains(t, out, "--- Results for scenario quick-look ---")
	assert.NotContains(t, out, "draft")
}

func TestAnalyzeCommandCSV(t *testing.T) {
	out, err := execute(t, "analyze", "--config", writeConfig(t, testConfig), "-f", "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "baseline", records[1][0])
	assert.Equal(t, "0.6501", records[1][3])
}

func TestAnalyzeCommandInvalidFormat(t *testing.T) {
	_, err := execute(t, "analyze", "--config", writeConfig(t, testConfig), "-f", "xml")
	assert.Error(t, err)
}

func TestAnalyzeCommandXLSX(t *testing.T) {
	path := writeConfig(t, testConfig)

	_, err := execute(t, "analyze", "--config", path, "-f", "xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires --out")

	report := filepath.Join(t.TempDir(), "report.xlsx")
	out, err := execute(t, "analyze", "--config", path, "-f", "xlsx", "-o", report)
	require.NoError(t, err)
	assert.Empty(t, out)

	f, err := xlsx.OpenFile(report)
	require.NoError(t, err)
	_, ok := f.Sheet["Summary"]
	assert.True(t, ok)
	_, ok = f.Sheet["quick-look"]
	assert.True(t, ok)
}

func TestAnalyzeCommandEnvFile(t *testing.T) {
	env := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(env, []byte("EVENT_VIABILITY_OUTPUT_FORMAT=json\n"), 0600))
	t.Cleanup(func() { _ = os.Unsetenv("EVENT_VIABILITY_OUTPUT_FORMAT") })

	out, err := execute(t, "analyze", "--config", writeConfig(t, testConfig), "--env-file", env)
	require.NoError(t, err)

	var doc output.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Scenarios, 2)
	assert.Equal(t, "Not Viable", doc.Scenarios[0].Tier)
}

func TestAnalyzeCommandFailedScenario(t *testing.T) {
	conf := testConfig + `  - name: bad-rate
    active: true
    overrides:
      discountRate: 1.5
`
	out, err := execute(t, "analyze", "--config", writeConfig(t, conf), "-f", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 scenarios")
	assert.Contains(t, out, "bad-rate", "the report is still written")
}

func TestBreakevenCommand(t *testing.T) {
	out, err := execute(t, "breakeven", "--config", writeConfig(t, testConfig), "--json")
	require.NoError(t, err)

	var summary breakeven.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "baseline", summary.Scenario)
	assert.True(t, summary.Converged)
	assert.InDelta(t, 6266.49134069222, summary.Value, 0.5)
}

func TestBreakevenCommandText(t *testing.T) {
	out, err := execute(t, "breakeven", "--config", writeConfig(t, testConfig),
		"-s", "draft", "--field", "crowd-out")
	require.NoError(t, err)
	assert.Contains(t, out, "--- Break-even for scenario draft ---")
	assert.Contains(t, out, "crowd-out")
}

func TestBreakevenCommandErrors(t *testing.T) {
	path := writeConfig(t, testConfig)

	_, err := execute(t, "breakeven", "--config", path, "-s", "missing")
	assert.ErrorContains(t, err, "not found")

	_, err = execute(t, "breakeven", "--config", path, "--field", "inflation")
	assert.ErrorContains(t, err, "unknown break-even field")

	_, err = execute(t, "breakeven", "--config", path, "--lower", "9000", "--upper", "100")
	assert.Error(t, err)
}

func TestResolveCommand(t *testing.T) {
	out, err := execute(t, "resolve", "--config", writeConfig(t, testConfig))
	require.NoError(t, err)
	assert.Contains(t, out, "name: baseline")
	assert.Contains(t, out, "mode: basic")
	assert.NotContains(t, out, "name: draft")
}
