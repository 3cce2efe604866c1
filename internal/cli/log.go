package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/gzhole/modelgate/internal/audit"
	"github.com/gzhole/modelgate/internal/config"
	"github.com/spf13/cobra"
)

var (
	logFilterDecision string
	logFilterRisk     string
	logLast           int
	logSummary        bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View and filter the audit log",
	Long: `View the ModelGate audit log with filtering and summary options.

Examples:
  modelgate log                            # Show all entries
  modelgate log --last 20                  # Show last 20 entries
  modelgate log --decision BLOCKED         # Show only blocked transactions
  modelgate log --risk HIGH                # Show only high-risk transactions
  modelgate log --summary                  # Show summary stats`,
	RunE: logCommand,
}

func init() {
	logCmd.Flags().StringVar(&logFilterDecision, "decision", "", "Filter by guardrail decision (APPROVED, BLOCKED, FLAGGED_FOR_REVIEW)")
	logCmd.Flags().StringVar(&logFilterRisk, "risk", "", "Filter by risk level (LOW, MEDIUM, HIGH, CRITICAL)")
	logCmd.Flags().IntVar(&logLast, "last", 0, "Show last N entries")
	logCmd.Flags().BoolVar(&logSummary, "summary", false, "Show summary statistics")
	rootCmd.AddCommand(logCmd)
}

func logCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(policyPath, logPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	entries, err := audit.ReadEntries(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("failed to read audit log: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No audit log entries found.")
		return nil
	}

	filtered := filterEntries(entries)

	if logLast > 0 && logLast < len(filtered) {
		filtered = filtered[len(filtered)-logLast:]
	}

	if logSummary {
		printSummary(entries)
		return nil
	}

	printEntries(filtered)
	return nil
}

func filterEntries(entries []audit.Entry) []audit.Entry {
	if logFilterDecision == "" && logFilterRisk == "" {
		return entries
	}

	var filtered []audit.Entry
	for _, e := range entries {
		if logFilterDecision != "" && !strings.EqualFold(e.GuardrailDecision, logFilterDecision) {
			continue
		}
		if logFilterRisk != "" && !strings.EqualFold(e.RiskLevel.String(), logFilterRisk) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

func printEntries(entries []audit.Entry) {
	for _, e := range entries {
		ts := formatTimestamp(e.Timestamp)
		icon := decisionIcon(e.GuardrailDecision)

		fmt.Printf("%s %s [%s] %s/%s model=%s\n", icon, ts, e.RequestID, e.RiskLevel, e.RiskCategory, e.ModelVersion)
		if e.Justification != "" {
			fmt.Printf("     Justification: %s\n", e.Justification)
		}
		fmt.Printf("     User: %s   Output: %s\n", e.UserID, e.Output)
		fmt.Println()
	}
}

func printSummary(all []audit.Entry) {
	counts := map[string]int{}
	highRisk := 0

	for _, e := range all {
		counts[e.GuardrailDecision]++
		if e.RiskLevel.String() == "HIGH" || e.RiskLevel.String() == "CRITICAL" {
			highRisk++
		}
	}

	fmt.Println("═══════════════════════════════════════════")
	fmt.Println("  ModelGate Audit Summary")
	fmt.Println("═══════════════════════════════════════════")
	fmt.Printf("  Total transactions:  %d\n", len(all))
	fmt.Printf("  APPROVED:            %d\n", counts["APPROVED"])
	fmt.Printf("  BLOCKED:             %d\n", counts["BLOCKED"])
	fmt.Printf("  FLAGGED_FOR_REVIEW:  %d\n", counts["FLAGGED_FOR_REVIEW"])
	fmt.Printf("  High risk:           %d\n", highRisk)
	fmt.Println("═══════════════════════════════════════════")

	if len(all) > 0 {
		fmt.Printf("  First entry:         %s\n", formatTimestamp(all[0].Timestamp))
		fmt.Printf("  Last entry:          %s\n", formatTimestamp(all[len(all)-1].Timestamp))
	}

	blocked := []audit.Entry{}
	for _, e := range all {
		if e.GuardrailDecision == "BLOCKED" {
			blocked = append(blocked, e)
		}
	}
	if len(blocked) > 0 {
		fmt.Println()
		fmt.Println("  Blocked transactions:")
		limit := len(blocked)
		if limit > 10 {
			limit = 10
		}
		for _, e := range blocked[len(blocked)-limit:] {
			fmt.Printf("    %s %s (%s)\n", formatTimestamp(e.Timestamp), e.RequestID, e.RiskCategory)
		}
	}

	fmt.Println()
}

func decisionIcon(decision string) string {
	switch decision {
	case "BLOCKED":
		return "🛑"
	case "FLAGGED_FOR_REVIEW":
		return "🔍"
	case "APPROVED":
		return "✅"
	default:
		return "❓"
	}
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
