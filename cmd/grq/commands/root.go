package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	policyFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "grq",
	Short: "GRQ 추천 성과 검증",
	Long: `GRQ Validation CLI

스코어 파일(추천 종목 + 목표가)의 90일 성과를 검증합니다.
매수가 결정 → 수익률/배당 → 추세선 → 하이브리드 예측 → 판정.

Usage:
  go run ./cmd/grq [command]

Examples:
  go run ./cmd/grq evaluate --date 2025-02-14
  go run ./cmd/grq evaluate --file batch.json --symbol AAPL
  go run ./cmd/grq api --port 8080
  go run ./cmd/grq scheduler start
  go run ./cmd/grq status`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&policyFile, "policy", "", "projection policy YAML (default: GRQ_POLICY_FILE or built-in)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logs)")
}
