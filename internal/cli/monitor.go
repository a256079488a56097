package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/one-front/airesume/pkg/models"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Record compliance metrics and manage alerts",
}

var monitorRecordCmd = &cobra.Command{
	Use:   "record <metric-type> <value>",
	Short: "Record a compliance metric",
	Long: `Record one compliance metric observation. Types: risk_level,
data_quality, human_oversight, system_performance, compliance_score,
user_interaction.

Values outside the configured thresholds raise an alert.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Monitor == nil {
			return fmt.Errorf("compliance monitor not initialized")
		}

		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid metric value %q", args[1])
		}

		id, err := Monitor.RecordMetric(models.MetricType(args[0]), value, nil)
		if err != nil {
			return fmt.Errorf("recording metric: %w", err)
		}
		fmt.Printf("Metric %s recorded.\n", id)
		return nil
	},
}

var monitorAlertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "List active compliance alerts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Monitor == nil {
			return fmt.Errorf("compliance monitor not initialized")
		}

		alerts := Monitor.ActiveAlerts()
		if len(alerts) == 0 {
			fmt.Println("No active compliance alerts.")
			return nil
		}

		fmt.Printf("%d active alert(s):\n\n", len(alerts))
		for _, alert := range alerts {
			fmt.Printf("  %s [%s] %s\n", alert.ID, strings.ToUpper(string(alert.Level)), alert.Title)
			fmt.Printf("      %s\n", alert.Description)
		}
		return nil
	},
}

var monitorAckCmd = &cobra.Command{
	Use:   "ack <alert-id> <assignee>",
	Short: "Acknowledge an active alert",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Monitor == nil {
			return fmt.Errorf("compliance monitor not initialized")
		}
		if err := Monitor.AcknowledgeAlert(args[0], args[1]); err != nil {
			return fmt.Errorf("acknowledging alert: %w", err)
		}
		fmt.Printf("Alert %s acknowledged by %s.\n", args[0], args[1])
		return nil
	},
}

var monitorResolveCmd = &cobra.Command{
	Use:   "resolve <alert-id>",
	Short: "Resolve an alert",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Monitor == nil {
			return fmt.Errorf("compliance monitor not initialized")
		}

		notes, _ := cmd.Flags().GetString("notes")
		if err := Monitor.ResolveAlert(args[0], notes); err != nil {
			return fmt.Errorf("resolving alert: %w", err)
		}
		fmt.Printf("Alert %s resolved.\n", args[0])
		return nil
	},
}

var monitorReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a compliance report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Monitor == nil {
			return fmt.Errorf("compliance monitor not initialized")
		}

		days, _ := cmd.Flags().GetInt("period")
		report, err := Monitor.GenerateReport(days)
		if err != nil {
			return fmt.Errorf("generating report: %w", err)
		}
		return printJSON(report)
	},
}

var monitorMetricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show recent metric statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Monitor == nil {
			return fmt.Errorf("compliance monitor not initialized")
		}

		hours, _ := cmd.Flags().GetInt("window")
		summary := Monitor.MetricsSummary(time.Duration(hours) * time.Hour)
		if len(summary) == 0 {
			fmt.Println("No metrics in the window.")
			return nil
		}
		return printJSON(summary)
	},
}

func init() {
	monitorResolveCmd.Flags().String("notes", "", "Resolution notes")
	monitorReportCmd.Flags().Int("period", 30, "Reporting period in days")
	monitorMetricsCmd.Flags().Int("window", 24, "Metrics window in hours")

	monitorCmd.AddCommand(monitorRecordCmd)
	monitorCmd.AddCommand(monitorAlertsCmd)
	monitorCmd.AddCommand(monitorAckCmd)
	monitorCmd.AddCommand(monitorResolveCmd)
	monitorCmd.AddCommand(monitorReportCmd)
	monitorCmd.AddCommand(monitorMetricsCmd)
	rootCmd.AddCommand(monitorCmd)
}
