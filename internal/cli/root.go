package cli

import (
	"github.com/spf13/cobra"
)

var (
	policyPath string
	logPath    string
)

var rootCmd = &cobra.Command{
	Use:   "modelgate",
	Short: "ModelGate - Governance interception layer for AI assistants",
	Long: `ModelGate sits between a command-line AI assistant and its model
backend. Every outbound prompt is redacted and risk-classified before it
reaches the model; every response is checked for policy violations; and
each transaction leaves one immutable audit record.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&policyPath, "policy", "", "Path to policy YAML file (default: ~/.modelgate/policy.yaml)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "Path to audit log file (default: ~/.modelgate/audit.jsonl)")
}

func Execute() error {
	return rootCmd.Execute()
}
