package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/one-front/airesume/pkg/models"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run conformity assessments",
}

var assessCreateCmd = &cobra.Command{
	Use:   "create <assessment-type>",
	Short: "Create a conformity assessment",
	Long: `Create an assessment of the given type. Types: self_assessment,
third_party_assessment, regulatory_assessment,
certification_assessment.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Assessments == nil {
			return fmt.Errorf("assessment ledger not initialized")
		}

		assessor, _ := cmd.Flags().GetString("assessor")
		id, err := Assessments.CreateAssessment(models.AssessmentType(args[0]), assessor)
		if err != nil {
			return fmt.Errorf("creating assessment: %w", err)
		}
		fmt.Printf("Assessment %s created.\n", id)
		return nil
	},
}

var assessStartCmd = &cobra.Command{
	Use:   "start <assessment-id>",
	Short: "Move an assessment to in-progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Assessments == nil {
			return fmt.Errorf("assessment ledger not initialized")
		}
		if err := Assessments.StartAssessment(args[0]); err != nil {
			return fmt.Errorf("starting assessment: %w", err)
		}
		fmt.Printf("Assessment %s started.\n", args[0])
		return nil
	},
}

var assessScoreCmd = &cobra.Command{
	Use:   "score <assessment-id> <criteria-id> <score>",
	Short: "Record a criteria result",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Assessments == nil {
			return fmt.Errorf("assessment ledger not initialized")
		}

		var score float64
		if _, err := fmt.Sscanf(args[2], "%f", &score); err != nil {
			return fmt.Errorf("invalid score %q", args[2])
		}

		evidence, _ := cmd.Flags().GetString("evidence")
		notes, _ := cmd.Flags().GetString("notes")
		recommendations, _ := cmd.Flags().GetStringSlice("recommendation")
		if err := Assessments.UpdateCriteriaResult(args[0], args[1], score, evidence, notes, recommendations); err != nil {
			return fmt.Errorf("recording criteria result: %w", err)
		}
		fmt.Printf("Criteria %s scored %.2f.\n", args[1], score)
		return nil
	},
}

var assessCompleteCmd = &cobra.Command{
	Use:   "complete <assessment-id>",
	Short: "Complete an assessment and compute its outcome",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Assessments == nil {
			return fmt.Errorf("assessment ledger not initialized")
		}

		findings, _ := cmd.Flags().GetStringSlice("finding")
		recommendations, _ := cmd.Flags().GetStringSlice("recommendation")
		if err := Assessments.CompleteAssessment(args[0], findings, recommendations); err != nil {
			return fmt.Errorf("completing assessment: %w", err)
		}
		fmt.Printf("Assessment %s completed.\n", args[0])
		return nil
	},
}

var assessReadinessCmd = &cobra.Command{
	Use:   "readiness",
	Short: "Print certification readiness based on the latest assessment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Assessments == nil {
			return fmt.Errorf("assessment ledger not initialized")
		}
		return printJSON(Assessments.CertificationReadiness())
	},
}

var assessSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the assessment ledger summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Assessments == nil {
			return fmt.Errorf("assessment ledger not initialized")
		}
		return printJSON(Assessments.Summary())
	},
}

func init() {
	assessCreateCmd.Flags().String("assessor", "", "Who performs the assessment")
	assessScoreCmd.Flags().String("evidence", "", "Evidence reference")
	assessScoreCmd.Flags().String("notes", "", "Result notes")
	assessScoreCmd.Flags().StringSlice("recommendation", nil, "Recommendation (repeatable)")
	assessCompleteCmd.Flags().StringSlice("finding", nil, "Finding (repeatable)")
	assessCompleteCmd.Flags().StringSlice("recommendation", nil, "Recommendation (repeatable)")

	assessCmd.AddCommand(assessCreateCmd)
	assessCmd.AddCommand(assessStartCmd)
	assessCmd.AddCommand(assessScoreCmd)
	assessCmd.AddCommand(assessCompleteCmd)
	assessCmd.AddCommand(assessReadinessCmd)
	assessCmd.AddCommand(assessSummaryCmd)
	rootCmd.AddCommand(assessCmd)
}
