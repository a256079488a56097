package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/one-front/airesume/pkg/models"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run compliance validations against the rule set",
}

var validateCreateCmd = &cobra.Command{
	Use:   "create <validation-type>",
	Short: "Create a compliance validation",
	Long: `Create a validation of the given type. Types: automated_validation,
manual_validation, third_party_validation, regulatory_validation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Validations == nil {
			return fmt.Errorf("validation ledger not initialized")
		}

		validator, _ := cmd.Flags().GetString("validator")
		id, err := Validations.CreateValidation(models.ValidationType(args[0]), validator)
		if err != nil {
			return fmt.Errorf("creating validation: %w", err)
		}
		fmt.Printf("Validation %s created.\n", id)
		return nil
	},
}

var validateRunCmd = &cobra.Command{
	Use:   "run <validation-id>",
	Short: "Run all automated checks for a validation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Validations == nil {
			return fmt.Errorf("validation ledger not initialized")
		}

		if err := Validations.StartValidation(args[0]); err != nil {
			return fmt.Errorf("starting validation: %w", err)
		}
		if err := Validations.RunAutomatedChecks(args[0]); err != nil {
			return fmt.Errorf("running automated checks: %w", err)
		}

		if validation, ok := Validations.Validation(args[0]); ok {
			passed, failed := 0, 0
			for _, result := range validation.ValidationResults {
				switch result.Status {
				case models.ValidationPassed:
					passed++
				case models.ValidationFailed:
					failed++
				}
			}
			fmt.Printf("Automated checks done: %d passed, %d failed.\n", passed, failed)
		}
		return nil
	},
}

var validateCompleteCmd = &cobra.Command{
	Use:   "complete <validation-id>",
	Short: "Complete a validation and compute its outcome",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Validations == nil {
			return fmt.Errorf("validation ledger not initialized")
		}

		findings, _ := cmd.Flags().GetStringSlice("finding")
		recommendations, _ := cmd.Flags().GetStringSlice("recommendation")
		if err := Validations.CompleteValidation(args[0], findings, recommendations); err != nil {
			return fmt.Errorf("completing validation: %w", err)
		}
		fmt.Printf("Validation %s completed.\n", args[0])
		return nil
	},
}

var validateArticlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "Print validation status grouped by regulation article",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Validations == nil {
			return fmt.Errorf("validation ledger not initialized")
		}
		return printJSON(Validations.StatusByArticle())
	},
}

var validateSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the validation ledger summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Validations == nil {
			return fmt.Errorf("validation ledger not initialized")
		}
		return printJSON(Validations.Summary())
	},
}

func init() {
	validateCreateCmd.Flags().String("validator", "", "Who performs the validation")
	validateCompleteCmd.Flags().StringSlice("finding", nil, "Finding (repeatable)")
	validateCompleteCmd.Flags().StringSlice("recommendation", nil, "Recommendation (repeatable)")

	validateCmd.AddCommand(validateCreateCmd)
	validateCmd.AddCommand(validateRunCmd)
	validateCmd.AddCommand(validateCompleteCmd)
	validateCmd.AddCommand(validateArticlesCmd)
	validateCmd.AddCommand(validateSummaryCmd)
	rootCmd.AddCommand(validateCmd)
}
