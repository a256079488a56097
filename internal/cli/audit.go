package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/one-front/airesume/pkg/models"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run and track compliance audits",
}

var auditCreateCmd = &cobra.Command{
	Use:   "create <audit-type>",
	Short: "Create a new audit with its checklist",
	Long: `Create an audit of the given type. Types: compliance_audit,
risk_assessment, data_quality_audit, security_audit,
performance_audit, documentation_audit.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Audits == nil {
			return fmt.Errorf("audit ledger not initialized")
		}

		auditor, _ := cmd.Flags().GetString("auditor")
		scope, _ := cmd.Flags().GetString("scope")
		id, err := Audits.CreateAudit(models.AuditType(args[0]), auditor, scope)
		if err != nil {
			return fmt.Errorf("creating audit: %w", err)
		}
		fmt.Printf("Audit %s created.\n", id)
		return nil
	},
}

var auditStartCmd = &cobra.Command{
	Use:   "start <audit-id>",
	Short: "Move an audit to in-progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Audits == nil {
			return fmt.Errorf("audit ledger not initialized")
		}
		if err := Audits.StartAudit(args[0]); err != nil {
			return fmt.Errorf("starting audit: %w", err)
		}
		fmt.Printf("Audit %s started.\n", args[0])
		return nil
	},
}

var auditCheckCmd = &cobra.Command{
	Use:   "check <audit-id> <item-id> <status>",
	Short: "Record a checklist item result",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Audits == nil {
			return fmt.Errorf("audit ledger not initialized")
		}

		evidence, _ := cmd.Flags().GetString("evidence")
		notes, _ := cmd.Flags().GetString("notes")
		if err := Audits.CompleteChecklistItem(args[0], args[1], models.ChecklistStatus(args[2]), evidence, notes); err != nil {
			return fmt.Errorf("recording checklist item: %w", err)
		}
		fmt.Printf("Checklist item %s marked %s.\n", args[1], args[2])
		return nil
	},
}

var auditCompleteCmd = &cobra.Command{
	Use:   "complete <audit-id>",
	Short: "Complete an audit and compute its result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Audits == nil {
			return fmt.Errorf("audit ledger not initialized")
		}

		recommendations, _ := cmd.Flags().GetStringSlice("recommendation")
		if err := Audits.CompleteAudit(args[0], recommendations); err != nil {
			return fmt.Errorf("completing audit: %w", err)
		}

		if report, ok := Audits.Audit(args[0]); ok {
			fmt.Printf("Audit %s completed: %s", args[0], report.Result)
			if report.OverallScore != nil {
				fmt.Printf(" (score %.2f)", *report.OverallScore)
			}
			fmt.Println()
		}
		return nil
	},
}

var auditSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the audit ledger summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Audits == nil {
			return fmt.Errorf("audit ledger not initialized")
		}
		return printJSON(Audits.Summary())
	},
}

func init() {
	auditCreateCmd.Flags().String("auditor", "", "Who performs the audit")
	auditCreateCmd.Flags().String("scope", "", "Audit scope description")
	auditCheckCmd.Flags().String("evidence", "", "Evidence reference")
	auditCheckCmd.Flags().String("notes", "", "Item notes")
	auditCompleteCmd.Flags().StringSlice("recommendation", nil, "Recommendation (repeatable)")

	auditCmd.AddCommand(auditCreateCmd)
	auditCmd.AddCommand(auditStartCmd)
	auditCmd.AddCommand(auditCheckCmd)
	auditCmd.AddCommand(auditCompleteCmd)
	auditCmd.AddCommand(auditSummaryCmd)
	rootCmd.AddCommand(auditCmd)
}
