package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "airesume",
	Short: "AI Resume - chat with a resume through pluggable LLM backends",
	Long: `AI Resume (airesume) is a resume chat application backed by a
compliance record-keeping system.

It answers questions about a candidate's resume through OpenRouter,
OpenAI, or a local Ollama instance, and maintains append-only ledgers
for interactions, risks, audits, assessments, and certification
evidence.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("airesume %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
