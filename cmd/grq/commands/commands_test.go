package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/grq-validation/internal/contracts"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := out
	out = buf
	t.Cleanup(func() { out = prev })
	return buf
}

func TestFormatters(t *testing.T) {
	v := 12.5
	neg := -3.0
	yes := true
	day := time.Date(2025, 2, 18, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"pct", fmtPct(&v), "+12.50%"},
		{"negative pct", fmtPct(&neg), "-3.00%"},
		{"nil pct", fmtPct(nil), "N/A"},
		{"price", fmtPrice(&v), "12.50"},
		{"date", fmtDate(&day), "2025-02-18"},
		{"nil date", fmtDate(nil), "N/A"},
		{"bool", fmtBool(&yes), "yes"},
		{"nil bool", fmtBool(nil), "N/A"},
		{"nil judgement", fmtJudgement(nil), "N/A"},
		{"judgement", fmtJudgement(&contracts.Judgement{
			Label: contracts.JudgementMissedTarget, Basis: contracts.BasisRealized, Phase: contracts.PhaseComplete,
		}), string(contracts.JudgementMissedTarget)},
		{"projection", fmtProjection(&contracts.HybridProjection{
			ProjectedReturn: 5, Method: contracts.MethodTargetBased, Confidence: 0.3,
		}), "+5.00% (target_based, 30%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestPrintTable(t *testing.T) {
	buf := captureOutput(t)

	PrintTableHeader([]string{"A", "B"}, []int{3, 2})
	PrintTableRow([]string{"x", "y"}, []int{3, 2})

	assert.Equal(t, "A    B \n───────\nx    y \n", buf.String())
}

func TestRunEvaluate_FileMode(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://unused@localhost/grq")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"score_date": "2025-02-14T00:00:00Z",
		"entries": [
			{"symbol": "AAPL", "score": 0.82, "target_price": 18.5},
			{"symbol": "MSFT", "score": 0.40, "target_price": 500}
		],
		"market": {
			"AAPL": [
				{"symbol": "AAPL", "date": "2025-02-18T00:00:00Z", "high": 15.18, "low": 14.72, "close": 15.0, "split_coefficient": 1},
				{"symbol": "AAPL", "date": "2025-03-18T00:00:00Z", "high": 16.445, "low": 16.445, "close": 16.445, "split_coefficient": 1}
			]
		}
	}`), 0o644))

	buf := captureOutput(t)
	evalFile, evalSymbol, evalSave, evalDate = path, "", false, ""
	t.Cleanup(func() { evalFile, evalSymbol = "", "" })

	require.NoError(t, runEvaluate(evaluateCmd, nil))

	output := buf.String()
	assert.Contains(t, output, "Score file 2025-02-14")
	assert.Contains(t, output, "AAPL")
	assert.Contains(t, output, "+23.75%", "target percentage from the 14.95 buy price")
	assert.Contains(t, output, string(contracts.StatusNoMarketData))

	buf.Reset()
	evalSymbol = "AAPL"
	require.NoError(t, runEvaluate(evaluateCmd, nil))
	assert.Contains(t, buf.String(), "2025-02-18", "buy date")
	assert.Contains(t, buf.String(), "14.95")

	evalSymbol = "NOPE"
	err := runEvaluate(evaluateCmd, nil)
	assert.ErrorIs(t, err, contracts.ErrUnknownSymbol)
}

func TestRunEvaluate_FlagConflicts(t *testing.T) {
	evalFile, evalSave = "batch.json", true
	t.Cleanup(func() { evalFile, evalSave = "", false })
	assert.Error(t, runEvaluate(evaluateCmd, nil))

	evalFile, evalSave, evalSymbol, evalDate = "", false, "AAPL", ""
	t.Cleanup(func() { evalSymbol = "" })
	assert.Error(t, runEvaluate(evaluateCmd, nil))
}
