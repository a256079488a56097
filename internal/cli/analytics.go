package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/one-front/airesume/internal/ledger"
	"github.com/one-front/airesume/pkg/models"
)

var analyticsRange string

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Record and analyze performance metrics",
}

var analyticsRecordCmd = &cobra.Command{
	Use:   "record <category> <name> <value>",
	Short: "Record a performance metric",
	Long: `Record one performance metric observation. Categories:
system_performance, user_experience, compliance_metrics, risk_metrics,
data_quality, human_oversight.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Analytics == nil {
			return fmt.Errorf("performance analytics not initialized")
		}

		value, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid metric value %q", args[2])
		}

		unit, _ := cmd.Flags().GetString("unit")
		id, err := Analytics.RecordMetric(models.MetricCategory(args[0]), args[1], value, unit, nil)
		if err != nil {
			return fmt.Errorf("recording metric: %w", err)
		}
		fmt.Printf("Metric %s recorded.\n", id)
		return nil
	},
}

var analyticsTrendCmd = &cobra.Command{
	Use:   "trend <metric-name>",
	Short: "Analyze the trend of one metric",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Analytics == nil {
			return fmt.Errorf("performance analytics not initialized")
		}

		trend := Analytics.AnalyzeTrend(args[0], ledger.TimeRange(analyticsRange))
		fmt.Printf("%s over the last %s: %s (strength %.2f, %s significance, change %.1f%%)\n",
			args[0], analyticsRange, trend.TrendDirection, trend.TrendStrength, trend.Significance, trend.ChangePercentage)
		return nil
	},
}

var analyticsReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate an analytics report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Analytics == nil {
			return fmt.Errorf("performance analytics not initialized")
		}

		report, err := Analytics.GenerateReport(ledger.TimeRange(analyticsRange))
		if err != nil {
			return fmt.Errorf("generating report: %w", err)
		}
		return printJSON(report)
	},
}

var analyticsDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print headline KPIs for recent metrics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Analytics == nil {
			return fmt.Errorf("performance analytics not initialized")
		}
		return printJSON(Analytics.DashboardMetrics())
	},
}

func init() {
	analyticsRecordCmd.Flags().String("unit", "", "Metric unit (ms, percent, score)")
	analyticsCmd.PersistentFlags().StringVar(&analyticsRange, "range", "day", "Time range (hour, day, week, month, quarter, year)")

	analyticsCmd.AddCommand(analyticsRecordCmd)
	analyticsCmd.AddCommand(analyticsTrendCmd)
	analyticsCmd.AddCommand(analyticsReportCmd)
	analyticsCmd.AddCommand(analyticsDashboardCmd)
	rootCmd.AddCommand(analyticsCmd)
}
