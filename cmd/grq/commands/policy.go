package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/grq-validation/internal/policy"
)

// policyCmd represents the policy command
var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "예측 정책 파일 관리",
}

var policyCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "정책 파일 검증 + 해시 출력",
	Long: `정책 YAML을 검증하고 해시와 경고를 출력합니다.
파일을 생략하면 기본 정책을 출력합니다.

Example:
  go run ./cmd/grq policy check config/policy/grq_default.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPolicyCheck,
}

func init() {
	rootCmd.AddCommand(policyCmd)
	policyCmd.AddCommand(policyCheckCmd)
}

func runPolicyCheck(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	f, raw, err := policy.LoadOrDefault(path)
	if err != nil {
		PrintError(err.Error())
		return err
	}
	snap, err := policy.NewSnapshot(f, raw)
	if err != nil {
		return err
	}

	p := f.Projection
	PrintHeader(fmt.Sprintf("Policy %s v%s", snap.PolicyID, snap.Version))
	PrintKeyValue("Hash", snap.PolicyHash, 14)
	PrintKeyValue("Buckets", fmt.Sprintf("early <%d ≤ mid <%d ≤ late", p.MidBucketStart, p.LateBucketStart), 14)
	PrintKeyValue("R² early/mid", fmt.Sprintf("%.2f / %.2f", p.Early.RSquaredThreshold, p.Mid.RSquaredThreshold), 14)
	PrintKeyValue("Dampening", fmt.Sprintf("%.2f / %.2f", p.Early.Dampening, p.Mid.Dampening), 14)
	PrintKeyValue("Clamp", fmt.Sprintf("[%.0f, %.0f]", p.ClampMin, p.ClampMax), 14)
	PrintSeparator()

	warnings := policy.Warn(f)
	if len(warnings) == 0 {
		PrintSuccess("Policy valid, no warnings")
		return nil
	}
	for _, w := range warnings {
		PrintWarning(fmt.Sprintf("[%s] %s", w.Code, w.Message))
	}
	return nil
}
