package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/iwvelando/event-viability/internal/config"
	"github.com/iwvelando/event-viability/internal/evaluation"
	"github.com/iwvelando/event-viability/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
)

func testBatch(t *testing.T) evaluation.Batch {
	t.Helper()
	conf := &config.Configuration{
		Common:      engine.DefaultParameters(),
		Concurrency: 2,
		Scenarios: []config.Scenario{
			{Name: "baseline", Active: true},
			{Name: "quick/look", Active: true, Mode: "basic"},
			{Name: "fragile", Active: true, Overrides: map[string]any{"tourism": map[string]any{"crowdOutPct": 1.5}}},
		},
	}
	batch, err := evaluation.Evaluate(context.Background(), zap.NewNop(), conf)
	require.NoError(t, err)

	batch.Results = append(batch.Results, evaluation.Result{Name: "broken", Err: errors.New("discount rate out of range")})
	return batch
}

func TestSummarize(t *testing.T) {
	summaries := Summarize(testBatch(t))
	require.Len(t, summaries, 4)

	baseline := summaries[0]
	assert.Equal(t, "baseline", baseline.Scenario)
	assert.Equal(t, "full", baseline.Mode)
	assert.Equal(t, "Not Viable", baseline.Tier)
	assert.Equal(t, 0.6501, baseline.BCR)
	assert.Equal(t, 4281.71, baseline.TotalBenefits)
	assert.Equal(t, 6586.11, baseline.NetPublicCost)
	assert.Equal(t, -2304.4, baseline.NetFiscalGain)
	assert.Equal(t, 120000.0, baseline.JobsCreated)
	assert.Equal(t, 0.0643, baseline.CompositeScore)
	require.NotNil(t, baseline.PaybackYears)
	assert.Equal(t, 30.8, *baseline.PaybackYears)
	require.Len(t, baseline.Streams, 8)
	assert.Equal(t, 872.01, baseline.Streams[0].PresentValue)
	require.NotNil(t, baseline.Comparison)
	assert.Equal(t, 0.2056, baseline.Comparison.BasicBCR)

	quick := summaries[1]
	assert.Equal(t, StatusSkipped, quick.Streams[1].Status)
	assert.Nil(t, quick.Comparison)

	fragile := summaries[2]
	assert.Equal(t, StatusFailed, fragile.Streams[0].Status)
	assert.Contains(t, fragile.Streams[0].Error, "crowdOutPct")

	assert.Equal(t, "discount rate out of range", summaries[3].Error)
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrettyFormat(&buf, testBatch(t)))
	out := buf.String()

	assert.Contains(t, out, "--- Results for scenario baseline ---")
	assert.Contains(t, out, "Not Viable (BCR 0.65)")
	assert.Contains(t, out, "$4,282M")
	assert.Contains(t, out, "-$2,304M")
	assert.Contains(t, out, "120,000")
	assert.Contains(t, out, "Property Tax Growth")
	assert.Contains(t, out, "$1,839.55M")
	assert.Contains(t, out, "skipped")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "Error: discount rate out of range")
	assert.Contains(t, out, "Basic analysis")
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CsvFormat(&buf, testBatch(t)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)

	header := records[0]
	assert.Equal(t, "scenario", header[0])
	assert.Equal(t, "migration_value", header[len(header)-3])
	for _, r := range records {
		assert.Len(t, r, len(header))
	}

	assert.Equal(t, []string{"baseline", "full", "Not Viable", "0.6501", "4281.71"}, records[1][:5])
	assert.Equal(t, "1839.55", records[1][12])
	assert.Equal(t, "", records[2][12], "skipped streams are blank")
	assert.Equal(t, "tourism", records[3][len(header)-2])
	assert.Equal(t, "broken", records[4][0])
	assert.Equal(t, "discount rate out of range", records[4][len(header)-1])
}

func TestJSONFormat(t *testing.T) {
	batch := testBatch(t)
	var buf bytes.Buffer
	require.NoError(t, JSONFormat(&buf, batch))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, batch.RunID, doc.RunID)
	require.Len(t, doc.Scenarios, 4)
	assert.Equal(t, 0.6501, doc.Scenarios[0].BCR)
	assert.Equal(t, "basic", doc.Scenarios[1].Mode)
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"runId\""))
}

func TestXLSXFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSXFormat(&buf, testBatch(t)))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, f.Sheets, 5)

	summary, ok := f.Sheet["Summary"]
	require.True(t, ok)
	require.Len(t, summary.Rows, 6)
	assert.Equal(t, "scenario", summary.Rows[1].Cells[0].String())
	assert.Equal(t, "baseline", summary.Rows[2].Cells[0].String())
	bcr, err := summary.Rows[2].Cells[3].Float()
	require.NoError(t, err)
	assert.InDelta(t, 0.6501, bcr, 1e-9)

	_, ok = f.Sheet["quick-look"]
	assert.True(t, ok, "invalid sheet name characters are replaced")

	baseline := f.Sheet["baseline"]
	require.NotNil(t, baseline)
	assert.Equal(t, "tier", baseline.Rows[2].Cells[0].String())
	assert.Equal(t, "Not Viable", baseline.Rows[2].Cells[1].String())
}

func TestWrite(t *testing.T) {
	batch := testBatch(t)
	for _, format := range []string{"pretty", "csv", "json", "xlsx"} {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, format, batch), format)
		assert.NotZero(t, buf.Len(), format)
	}
	assert.Error(t, Write(&bytes.Buffer{}, "xml", batch))
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{"Summary": true}
	assert.Equal(t, "Summary (2)", sheetName("Summary", 0, used))
	assert.Equal(t, "Scenario 2", sheetName("  ", 1, used))

	long := strings.Repeat("x", 40)
	first := sheetName(long, 2, used)
	second := sheetName(long, 3, used)
	assert.Len(t, first, 31)
	assert.Len(t, second, 31)
	assert.NotEqual(t, first, second)
}
