package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/wonny/grq-validation/internal/contracts"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// out 표 출력 대상 (테스트에서 교체)
var out io.Writer = os.Stdout

const (
	doubleLine = "═══════════════════════════════════════════════════════════"
	singleLine = "───────────────────────────────────────────────────────────"
)

// PrintHeader prints a titled block header
func PrintHeader(title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, doubleLine)
	fmt.Fprintf(out, "  %s\n", title)
	fmt.Fprintln(out, singleLine)
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Fprintln(out, singleLine)
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Fprintln(out, doubleLine)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Fprintf(out, "⚠️  %s\n", message)
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Fprintf(out, "✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(out, "❌ %s\n", message)
}

// PrintTableHeader prints a table header
func PrintTableHeader(columns []string, widths []int) {
	PrintTableRow(columns, widths)

	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	fmt.Fprintln(out, strings.Repeat("─", totalWidth))
}

// PrintTableRow prints a table row
func PrintTableRow(values []string, widths []int) {
	for i, val := range values {
		fmt.Fprintf(out, "%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Fprint(out, "  ")
		}
	}
	fmt.Fprintln(out)
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(key string, value string, keyWidth int) {
	fmt.Fprintf(out, "   %-*s : %s\n", keyWidth, key, value)
}

// fmtPct 퍼센트 (nil = "N/A")
func fmtPct(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%+.2f%%", *v)
}

// fmtPrice 가격 (nil = "N/A")
func fmtPrice(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format(contracts.DateLayout)
}

func fmtBool(v *bool) string {
	switch {
	case v == nil:
		return "N/A"
	case *v:
		return "yes"
	default:
		return "no"
	}
}

func fmtJudgement(j *contracts.Judgement) string {
	if j == nil {
		return "N/A"
	}
	return j.Display()
}

func fmtProjection(p *contracts.HybridProjection) string {
	if p == nil {
		return "N/A"
	}
	return fmt.Sprintf("%+.2f%% (%s, %.0f%%)", p.ProjectedReturn, p.Method, p.Confidence*100)
}

func buyPrice(m contracts.InstrumentMetrics) *float64 {
	if m.BuyPrice == nil {
		return nil
	}
	return &m.BuyPrice.Price
}
