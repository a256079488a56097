package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/one-front/airesume/pkg/models"
)

var governanceCmd = &cobra.Command{
	Use:   "governance",
	Short: "Track data quality and governance compliance",
}

var governanceAssessCmd = &cobra.Command{
	Use:   "assess <data-category>",
	Short: "Record a data quality assessment",
	Long: `Record a quality assessment for one data category. Categories:
personal_info, work_experience, skills, education, references,
user_queries, ai_responses.

Scores are given as four values between 0 and 1 for completeness,
accuracy, consistency, and timeliness.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Governance == nil {
			return fmt.Errorf("governance ledger not initialized")
		}

		assessor, _ := cmd.Flags().GetString("assessor")
		completeness, _ := cmd.Flags().GetFloat64("completeness")
		accuracy, _ := cmd.Flags().GetFloat64("accuracy")
		consistency, _ := cmd.Flags().GetFloat64("consistency")
		timeliness, _ := cmd.Flags().GetFloat64("timeliness")
		issues, _ := cmd.Flags().GetStringSlice("issue")
		remediations, _ := cmd.Flags().GetStringSlice("remediation")

		id, err := Governance.AssessQuality(models.DataCategory(args[0]), assessor,
			completeness, accuracy, consistency, timeliness, issues, remediations)
		if err != nil {
			return fmt.Errorf("recording quality assessment: %w", err)
		}
		fmt.Printf("Assessment %s recorded.\n", id)
		return nil
	},
}

var governanceQualityCmd = &cobra.Command{
	Use:   "quality",
	Short: "Print the data quality summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Governance == nil {
			return fmt.Errorf("governance ledger not initialized")
		}
		return printJSON(Governance.QualitySummary())
	},
}

var governanceStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the overall governance compliance status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Governance == nil {
			return fmt.Errorf("governance ledger not initialized")
		}

		status := Governance.ComplianceStatus()
		if status.OverallCompliance {
			fmt.Println("Governance status: compliant")
		} else {
			fmt.Println("Governance status: NOT compliant")
		}
		for indicator, ok := range status.ComplianceIndicators {
			mark := "ok"
			if !ok {
				mark = "FAIL"
			}
			fmt.Printf("  %-28s %s\n", indicator+":", mark)
		}
		return nil
	},
}

func init() {
	governanceAssessCmd.Flags().String("assessor", "", "Who performed the assessment")
	governanceAssessCmd.Flags().Float64("completeness", 0, "Completeness score (0-1)")
	governanceAssessCmd.Flags().Float64("accuracy", 0, "Accuracy score (0-1)")
	governanceAssessCmd.Flags().Float64("consistency", 0, "Consistency score (0-1)")
	governanceAssessCmd.Flags().Float64("timeliness", 0, "Timeliness score (0-1)")
	governanceAssessCmd.Flags().StringSlice("issue", nil, "Identified issue (repeatable)")
	governanceAssessCmd.Flags().StringSlice("remediation", nil, "Remediation action (repeatable)")

	governanceCmd.AddCommand(governanceAssessCmd)
	governanceCmd.AddCommand(governanceQualityCmd)
	governanceCmd.AddCommand(governanceStatusCmd)
	rootCmd.AddCommand(governanceCmd)
}
