package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gzhole/modelgate/internal/audit"
	"github.com/gzhole/modelgate/internal/guardrail"
	"github.com/gzhole/modelgate/internal/message"
	"github.com/gzhole/modelgate/internal/pipeline"
	"github.com/gzhole/modelgate/internal/policy"
	"github.com/gzhole/modelgate/internal/risk"
	"github.com/spf13/cobra"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Self-test — verify the pipeline gates known-risky prompts",
	Long: `Run a quick diagnostic that drives canned prompts through a throwaway
pipeline and checks that redaction, classification, and the policy gate
behave as expected. Nothing is sent to any model and the real audit log
is not touched.

  modelgate selftest`,
	RunE: selftestCommand,
}

func init() {
	rootCmd.AddCommand(selftestCmd)
}

type requestCase struct {
	label        string
	text         string
	wantRisk     risk.Level
	wantApproval bool
	wantRedacted bool
}

type outputCase struct {
	label   string
	text    string
	level   risk.Level
	wantDec guardrail.Decision
}

func selftestCommand(cmd *cobra.Command, args []string) error {
	tmpDir, err := os.MkdirTemp("", "modelgate-selftest")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	sink, err := audit.NewFileSink(filepath.Join(tmpDir, "audit.jsonl"))
	if err != nil {
		return err
	}
	defer sink.Close()

	orch := pipeline.New(policy.DefaultPolicy(), sink, "selftest")

	fmt.Println("═══════════════════════════════════════════════════════")
	fmt.Println("  ModelGate Self-Test")
	fmt.Println("═══════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("─── Request Gate ──────────────────────────────────────")

	requestCases := []requestCase{
		{"benign prompt", "hello world", risk.Low, false, false},
		{"HR decision", "I need to fire an employee", risk.High, true, false},
		{"financial advice", "give me financial advice on stocks", risk.High, true, false},
		{"email redaction", "my email is jane@example.com", risk.Low, false, true},
		{"card redaction", "card 4111 1111 1111 1111 please", risk.Low, false, true},
	}

	failures := 0
	for _, tc := range requestCases {
		outcome, err := orch.InterceptRequest(message.New(tc.text), "selftest-model", nil, false)
		if err != nil {
			fmt.Printf("  ❌ %s: %v\n", tc.label, err)
			failures++
			continue
		}
		ok := outcome.Tx.RiskLevel == tc.wantRisk &&
			outcome.RequiresApproval == tc.wantApproval &&
			outcome.Tx.WasRedacted == tc.wantRedacted
		if ok {
			fmt.Printf("  ✅ %s (%s)\n", tc.label, outcome.Tx.RiskLevel)
		} else {
			fmt.Printf("  ❌ %s: risk=%s approval=%v redacted=%v\n",
				tc.label, outcome.Tx.RiskLevel, outcome.RequiresApproval, outcome.Tx.WasRedacted)
			failures++
		}
	}
	fmt.Println()

	fmt.Println("─── Output Validator ──────────────────────────────────")

	outputCases := []outputCase{
		{"clean low-risk output", "here is your summary", risk.Low, guardrail.DecisionApproved},
		{"leaked email", "contact bob@corp.com for details", risk.Low, guardrail.DecisionBlocked},
		{"clean high-risk output", "consider a severance package", risk.High, guardrail.DecisionFlagged},
	}

	for _, tc := range outputCases {
		decision, _ := guardrail.Validate(message.New(tc.text), tc.level)
		if decision == tc.wantDec {
			fmt.Printf("  ✅ %s (%s)\n", tc.label, decision)
		} else {
			fmt.Printf("  ❌ %s: got %s, want %s\n", tc.label, decision, tc.wantDec)
			failures++
		}
	}
	fmt.Println()

	if failures > 0 {
		fmt.Printf("❌ Self-test failed: %d case(s)\n", failures)
		os.Exit(1)
	}

	fmt.Println(strings.Repeat("═", 55))
	fmt.Println("✅ All self-test cases passed")
	return nil
}
