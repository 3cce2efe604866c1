package cli

import (
	"fmt"
	"os"

	"github.com/gzhole/modelgate/internal/audit"
	"github.com/gzhole/modelgate/internal/config"
	"github.com/gzhole/modelgate/internal/policy"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show ModelGate status — policy, audit log, export endpoint",
	RunE:  statusCommand,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func statusCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(policyPath, logPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("═══════════════════════════════════════════════════════")
	fmt.Println("  ModelGate Status")
	fmt.Println("═══════════════════════════════════════════════════════")
	fmt.Println()

	binPath, err := os.Executable()
	if err != nil {
		binPath = "unknown"
	}
	fmt.Printf("  Binary:    %s (%s)\n", binPath, Version)
	fmt.Printf("  Config:    %s\n", cfg.ConfigDir)
	fmt.Printf("  User:      %s\n", cfg.UserID)
	fmt.Println()

	fmt.Println("─── Policy ────────────────────────────────────────────")
	pol, err := policy.Load(cfg.PolicyPath)
	if err != nil {
		fmt.Printf("  ⚠  Policy file unreadable: %v\n", err)
	} else {
		if _, statErr := os.Stat(cfg.PolicyPath); os.IsNotExist(statErr) {
			fmt.Printf("  ⬚  %s not found - using defaults\n", cfg.PolicyPath)
		} else {
			fmt.Printf("  ✅ %s (version %s)\n", cfg.PolicyPath, pol.Version)
		}
		fmt.Printf("     PII redaction:          %v\n", pol.PIIRedaction)
		fmt.Printf("     Block high risk:        %v\n", pol.BlockHighRisk)
		fmt.Printf("     Approval for high risk: %v\n", pol.RequireApprovalHighRisk)
	}
	fmt.Println()

	fmt.Println("─── Audit Log ─────────────────────────────────────────")
	info, err := os.Stat(cfg.LogPath)
	if err != nil {
		fmt.Printf("  ⬚  %s not created yet\n", cfg.LogPath)
	} else {
		entries, _ := audit.ReadEntries(cfg.LogPath)
		fmt.Printf("  ✅ %s (%d bytes, %d entries)\n", cfg.LogPath, info.Size(), len(entries))
	}
	fmt.Println()

	fmt.Println("─── Secondary Export ──────────────────────────────────")
	if cfg.ExportURL == "" {
		fmt.Printf("  ⬚  Disabled (set %s to enable)\n", config.ExportURLEnv)
	} else {
		fmt.Printf("  ✅ %s\n", cfg.ExportURL)
	}
	fmt.Println()

	return nil
}
