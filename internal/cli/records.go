package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/one-front/airesume/pkg/models"
)

var (
	recordsUser  string
	recordsLimit int
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Inspect the record-keeping ledger",
}

var recordsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent user interactions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Records == nil {
			return fmt.Errorf("record keeper not initialized")
		}

		history := Records.InteractionHistory(recordsUser, recordsLimit)
		if len(history) == 0 {
			fmt.Println("No interactions recorded.")
			return nil
		}

		for _, record := range history {
			query, _ := record.InputData["query"].(string)
			fmt.Printf("  %s  %s  [%s]\n", record.Timestamp, record.ID, record.AIModelUsed)
			fmt.Printf("      %s\n", query)
		}
		return nil
	},
}

var recordsListCmd = &cobra.Command{
	Use:   "list <record-type>",
	Short: "List records of a given type",
	Long: `List ledger records by type. Types: system_operation,
user_interaction, ai_decision, human_oversight, risk_assessment,
data_processing, incident, compliance_audit.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Records == nil {
			return fmt.Errorf("record keeper not initialized")
		}

		records := Records.RecordsByType(models.RecordType(args[0]))
		if len(records) == 0 {
			fmt.Printf("No %s records.\n", args[0])
			return nil
		}

		for _, record := range records {
			fmt.Printf("  %s  %s  %s\n", record.Timestamp, record.ID, record.Action)
		}
		return nil
	},
}

var recordsArchiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive records older than the retention window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Records == nil {
			return fmt.Errorf("record keeper not initialized")
		}

		days, _ := cmd.Flags().GetInt("older-than")
		archived, err := Records.ArchiveOldRecords(days)
		if err != nil {
			return fmt.Errorf("archiving records: %w", err)
		}
		fmt.Printf("%d record(s) archived.\n", archived)
		return nil
	},
}

var recordsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the record-keeping summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Records == nil {
			return fmt.Errorf("record keeper not initialized")
		}
		return printJSON(Records.Summary())
	},
}

func init() {
	recordsHistoryCmd.Flags().StringVar(&recordsUser, "user", "", "Filter by user ID")
	recordsHistoryCmd.Flags().IntVar(&recordsLimit, "limit", 10, "Maximum interactions to show")
	recordsArchiveCmd.Flags().Int("older-than", 365, "Archive records older than this many days")

	recordsCmd.AddCommand(recordsHistoryCmd)
	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsArchiveCmd)
	recordsCmd.AddCommand(recordsSummaryCmd)
	rootCmd.AddCommand(recordsCmd)
}
