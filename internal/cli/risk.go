package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/one-front/airesume/pkg/models"
)

var (
	riskImpact      string
	riskLikelihood  string
	riskMitigations []string
	riskOwner       string
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Manage the risk register",
}

var riskAddCmd = &cobra.Command{
	Use:   "add <category> <description>",
	Short: "Identify a new risk",
	Long: `Record a new risk in the register. Categories: accuracy, bias,
privacy, security, transparency, human_oversight, data_quality,
system_reliability.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Risks == nil {
			return fmt.Errorf("risk register not initialized")
		}

		category := models.RiskCategory(args[0])
		description := strings.Join(args[1:], " ")
		id, err := Risks.IdentifyRisk(category, description, riskImpact, riskLikelihood, riskMitigations, riskOwner)
		if err != nil {
			return fmt.Errorf("identifying risk: %w", err)
		}

		fmt.Printf("Risk %s recorded.\n", id)
		return nil
	},
}

var riskAssessCmd = &cobra.Command{
	Use:   "assess <risk-id> <level>",
	Short: "Record a risk assessment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Risks == nil {
			return fmt.Errorf("risk register not initialized")
		}

		assessor, _ := cmd.Flags().GetString("assessor")
		effectiveness, _ := cmd.Flags().GetString("effectiveness")
		notes, _ := cmd.Flags().GetString("notes")

		if err := Risks.AssessRisk(args[0], assessor, models.RiskLevel(args[1]), effectiveness, notes); err != nil {
			return fmt.Errorf("assessing risk: %w", err)
		}
		fmt.Printf("Risk %s assessed as %s.\n", args[0], args[1])
		return nil
	},
}

var riskStatusCmd = &cobra.Command{
	Use:   "status <risk-id> <status>",
	Short: "Update a risk's lifecycle status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Risks == nil {
			return fmt.Errorf("risk register not initialized")
		}

		if err := Risks.UpdateStatus(args[0], models.RiskStatus(args[1])); err != nil {
			return fmt.Errorf("updating risk status: %w", err)
		}
		fmt.Printf("Risk %s is now %s.\n", args[0], args[1])
		return nil
	},
}

var riskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List high-priority risks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Risks == nil {
			return fmt.Errorf("risk register not initialized")
		}

		risks := Risks.HighPriorityRisks()
		if len(risks) == 0 {
			fmt.Println("No high-priority risks.")
			return nil
		}

		fmt.Printf("%d high-priority risk(s):\n\n", len(risks))
		for _, risk := range risks {
			fmt.Printf("  %s [%s/%s] %s (%s)\n", risk.ID, risk.Level, risk.Status, risk.Description, risk.Category)
		}
		return nil
	},
}

var riskSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the risk register summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Risks == nil {
			return fmt.Errorf("risk register not initialized")
		}
		return printJSON(Risks.Summary())
	},
}

// printJSON renders a value as indented JSON on stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	riskAddCmd.Flags().StringVar(&riskImpact, "impact", "", "Impact description")
	riskAddCmd.Flags().StringVar(&riskLikelihood, "likelihood", "", "Likelihood description")
	riskAddCmd.Flags().StringSliceVar(&riskMitigations, "mitigation", nil, "Mitigation measure (repeatable)")
	riskAddCmd.Flags().StringVar(&riskOwner, "owner", "", "Risk owner")

	riskAssessCmd.Flags().String("assessor", "", "Who performed the assessment")
	riskAssessCmd.Flags().String("effectiveness", "", "Mitigation effectiveness")
	riskAssessCmd.Flags().String("notes", "", "Assessment notes")

	riskCmd.AddCommand(riskAddCmd)
	riskCmd.AddCommand(riskAssessCmd)
	riskCmd.AddCommand(riskStatusCmd)
	riskCmd.AddCommand(riskListCmd)
	riskCmd.AddCommand(riskSummaryCmd)
	rootCmd.AddCommand(riskCmd)
}
