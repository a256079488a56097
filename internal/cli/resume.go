package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Inspect, search, and publish the loaded resume",
}

var resumeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the loaded resume",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Resume == nil {
			return fmt.Errorf("resume service not initialized")
		}

		data := Resume.FullResume()
		fmt.Printf("%s — %s\n", data.Personal.Name, data.Personal.Title)
		if data.Personal.Location != "" {
			fmt.Printf("%s\n", data.Personal.Location)
		}
		fmt.Printf("\n%s\n", data.Personal.Summary)
		fmt.Printf("\nSource: %s\n", ResumeSource)

		fmt.Printf("\nExperience (%d):\n", len(data.Experience))
		for _, exp := range data.Experience {
			fmt.Printf("  %s at %s (%s)\n", exp.Position, exp.Company, exp.Duration)
		}

		if len(data.Skills) > 0 {
			categories := make([]string, 0, len(data.Skills))
			for category := range data.Skills {
				categories = append(categories, category)
			}
			sort.Strings(categories)

			fmt.Println("\nSkills:")
			for _, category := range categories {
				fmt.Printf("  %-24s %s\n", category+":", strings.Join(data.Skills[category], ", "))
			}
		}

		return nil
	},
}

var resumeSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the resume for matching content",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Resume == nil {
			return fmt.Errorf("resume service not initialized")
		}

		query := strings.Join(args, " ")
		results := Resume.Search(query)
		if len(results) == 0 {
			fmt.Printf("No matches for %q.\n", query)
			return nil
		}

		fmt.Printf("%d match(es) for %q:\n\n", len(results), query)
		for _, result := range results {
			switch result.Type {
			case "experience":
				fmt.Printf("  [experience] %s at %s: %s\n", result.Position, result.Company, result.Match)
			case "skill":
				fmt.Printf("  [skill] %s (%s)\n", result.Skill, result.Category)
			case "project":
				fmt.Printf("  [project] %s: %s\n", result.Name, result.Match)
			default:
				fmt.Printf("  [%s] %s\n", result.Type, result.Match)
			}
		}
		return nil
	},
}

var resumeMatchCmd = &cobra.Command{
	Use:   "match <job description>",
	Short: "Score the resume against a job description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Resume == nil {
			return fmt.Errorf("resume service not initialized")
		}

		match := Resume.AnalyzeJobMatch(strings.Join(args, " "))
		data, err := json.MarshalIndent(match, "", "  ")
		if err != nil {
			return fmt.Errorf("formatting job match: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

var resumeUploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Publish the local resume file as a GitHub gist",
	Long: `Upload the local resume JSON from the data directory to a GitHub
gist. The gist identifiers are saved so later uploads update the same
gist instead of creating a new one.

Requires a GitHub token with the gist scope, from config or the
GITHUB_TOKEN environment variable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if GistUploader == nil {
			return fmt.Errorf("gist uploader not initialized (set a github token)")
		}

		info, err := GistUploader.Upload(cmd.Context())
		if err != nil {
			return fmt.Errorf("uploading resume: %w", err)
		}

		fmt.Println("Resume published.")
		fmt.Printf("  Gist ID:  %s\n", info.GistID)
		fmt.Printf("  Gist URL: %s\n", info.HTMLURL)
		fmt.Printf("  Raw URL:  %s\n", info.RawURL)
		return nil
	},
}

func init() {
	resumeCmd.AddCommand(resumeShowCmd)
	resumeCmd.AddCommand(resumeSearchCmd)
	resumeCmd.AddCommand(resumeMatchCmd)
	resumeCmd.AddCommand(resumeUploadCmd)
	rootCmd.AddCommand(resumeCmd)
}
