package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/gzhole/modelgate/internal/guardrail"
	"github.com/gzhole/modelgate/internal/message"
	"github.com/gzhole/modelgate/internal/risk"
	"github.com/spf13/cobra"
)

var scanRiskLevel string

var scanOutputCmd = &cobra.Command{
	Use:   "scan-output <text>",
	Short: "Run the output validator against response text",
	Long: `Run ModelGate's output validator standalone against a piece of model
output. Useful for checking what the response phase would decide without
driving a full transaction.

Example:
  modelgate scan-output "Here is the summary you asked for"
  modelgate scan-output --risk HIGH "The diagnosis suggests..."`,
	Args: cobra.MinimumNArgs(1),
	RunE: scanOutputCommand,
}

func init() {
	scanOutputCmd.Flags().StringVar(&scanRiskLevel, "risk", "LOW", "Risk level carried from the request phase (LOW, MEDIUM, HIGH, CRITICAL)")
	rootCmd.AddCommand(scanOutputCmd)
}

func scanOutputCommand(cmd *cobra.Command, args []string) error {
	level, err := risk.ParseLevel(scanRiskLevel)
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	decision, reason := guardrail.Validate(message.New(text), level)

	fmt.Printf("Decision: %s\n", decision)
	if reason != "" {
		fmt.Printf("Reason:   %s\n", reason)
	}

	if decision == guardrail.DecisionBlocked {
		os.Exit(1)
	}
	return nil
}
