package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/gzhole/modelgate/internal/approval"
	"github.com/gzhole/modelgate/internal/audit"
	"github.com/gzhole/modelgate/internal/config"
	"github.com/gzhole/modelgate/internal/message"
	"github.com/gzhole/modelgate/internal/pipeline"
	"github.com/gzhole/modelgate/internal/policy"
	"github.com/spf13/cobra"
)

var (
	checkModel      string
	checkUser       string
	checkPreApprove bool
)

var checkCmd = &cobra.Command{
	Use:   "check <text>",
	Short: "Run a prompt through the request-phase pipeline",
	Long: `Run a one-off prompt through ModelGate's request pipeline: redaction,
risk classification, and the policy gate. Prints the redacted text and the
gate decision. When the policy requires human approval, the interactive
prompt is shown.

Example:
  modelgate check "Summarize the Q3 report"
  modelgate check --model gpt-4 "My email is a@b.com, financial advice please"`,
	Args: cobra.MinimumNArgs(1),
	RunE: checkCommand,
}

func init() {
	checkCmd.Flags().StringVar(&checkModel, "model", "default", "Target model identifier")
	checkCmd.Flags().StringVar(&checkUser, "user", "", "User identifier (default: current user)")
	checkCmd.Flags().BoolVar(&checkPreApprove, "approve", false, "Pre-grant approval for high-risk requests")
	rootCmd.AddCommand(checkCmd)
}

func checkCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(policyPath, logPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pol, err := policy.Load(cfg.PolicyPath)
	if err != nil {
		return fmt.Errorf("failed to load policy: %w", err)
	}

	sink, err := audit.NewFileSink(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer sink.Close()

	userID := cfg.UserID
	if checkUser != "" {
		userID = checkUser
	}

	orch := pipeline.New(pol, buildSink(sink, cfg), userID)

	msg := message.New(strings.Join(args, " "))
	outcome, err := orch.InterceptRequest(msg, checkModel, nil, checkPreApprove)
	if err != nil {
		return fmt.Errorf("audit trail unavailable: %w", err)
	}

	if outcome.RequiresApproval {
		result := approval.Ask(approval.Prompt{
			RiskLevel:     outcome.Tx.RiskLevel.String(),
			RiskCategory:  outcome.Tx.RiskCategory,
			Justification: outcome.Tx.Justification,
		})
		if !result.Approved {
			fmt.Fprintln(os.Stderr, "\n❌ Request denied")
			fmt.Fprintf(os.Stderr, "   %s (user action: %s)\n", outcome.Reason, result.UserAction)
			os.Exit(1)
		}
		outcome, err = orch.InterceptRequest(msg, checkModel, nil, true)
		if err != nil {
			return fmt.Errorf("audit trail unavailable: %w", err)
		}
	}

	printRequestOutcome(outcome)

	if !outcome.Proceed {
		os.Exit(1)
	}
	return nil
}

func printRequestOutcome(outcome *pipeline.RequestOutcome) {
	tx := outcome.Tx

	fmt.Printf("Transaction:   %s\n", tx.ID)
	fmt.Printf("Risk level:    %s\n", tx.RiskLevel)
	fmt.Printf("Risk category: %s\n", tx.RiskCategory)
	if tx.WasRedacted {
		fmt.Printf("Redacted text: %s\n", tx.RedactedInput.JoinedText(" "))
	}
	if tx.Justification != "" {
		fmt.Printf("Justification: %s\n", tx.Justification)
	}

	if outcome.Proceed {
		fmt.Println("\n✅ Request admitted - safe to send to the model")
	} else {
		fmt.Printf("\n❌ BLOCKED: %s\n", outcome.Reason)
	}
}

func buildSink(primary audit.Sink, cfg *config.Config) audit.Sink {
	if cfg.ExportURL == "" {
		return primary
	}
	return audit.WithExport(primary, audit.NewHTTPExporter(cfg.ExportURL))
}
