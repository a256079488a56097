package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/one-front/airesume/pkg/models"
)

var certifyCmd = &cobra.Command{
	Use:   "certify",
	Short: "Prepare certification applications and documents",
}

var certifyApplyCmd = &cobra.Command{
	Use:   "apply <certification-type> <applicant>",
	Short: "Create a certification application",
	Long: `Create an application of the given type. Types: ce_marking,
conformity_assessment, third_party_certification, self_declaration.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Certification == nil {
			return fmt.Errorf("certification ledger not initialized")
		}

		body, _ := cmd.Flags().GetString("regulatory-body")
		email, _ := cmd.Flags().GetString("contact-email")
		contact := map[string]string{}
		if email != "" {
			contact["email"] = email
		}

		id, err := Certification.CreateApplication(models.CertificationType(args[0]), args[1], body, contact)
		if err != nil {
			return fmt.Errorf("creating application: %w", err)
		}
		fmt.Printf("Application %s created.\n", id)
		return nil
	},
}

var certifyDocCmd = &cobra.Command{
	Use:   "doc <document-id> <action>",
	Short: "Advance a certification document (update, review, approve)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Certification == nil {
			return fmt.Errorf("certification ledger not initialized")
		}

		documentID, action := args[0], args[1]
		switch action {
		case "update":
			content, _ := cmd.Flags().GetString("content")
			version, _ := cmd.Flags().GetString("doc-version")
			if err := Certification.UpdateDocument(documentID, content, version); err != nil {
				return fmt.Errorf("updating document: %w", err)
			}
		case "review":
			if err := Certification.SubmitForReview(documentID); err != nil {
				return fmt.Errorf("submitting document for review: %w", err)
			}
		case "approve":
			if err := Certification.ApproveDocument(documentID); err != nil {
				return fmt.Errorf("approving document: %w", err)
			}
		default:
			return fmt.Errorf("unknown action %q (use update, review, or approve)", action)
		}

		if doc, ok := Certification.Document(documentID); ok {
			fmt.Printf("Document %s is now %s (v%s).\n", doc.ID, doc.Status, doc.Version)
		}
		return nil
	},
}

var certifySubmitCmd = &cobra.Command{
	Use:   "submit <application-id>",
	Short: "Submit an application once every document is approved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Certification == nil {
			return fmt.Errorf("certification ledger not initialized")
		}
		if err := Certification.SubmitApplication(args[0]); err != nil {
			return fmt.Errorf("submitting application: %w", err)
		}
		fmt.Printf("Application %s submitted.\n", args[0])
		return nil
	},
}

var certifyReadinessCmd = &cobra.Command{
	Use:   "readiness",
	Short: "Show document approval progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Certification == nil {
			return fmt.Errorf("certification ledger not initialized")
		}

		readiness := Certification.Readiness()
		fmt.Printf("Readiness: %.0f%% (%d/%d documents approved)\n",
			readiness.ReadinessPercentage, readiness.ApprovedDocuments, readiness.TotalRequiredDocuments)

		titles := make([]string, 0, len(readiness.DocumentStatus))
		for title := range readiness.DocumentStatus {
			titles = append(titles, title)
		}
		sort.Strings(titles)
		for _, title := range titles {
			state := readiness.DocumentStatus[title]
			fmt.Printf("  %-32s %-12s v%s\n", title, state.Status, state.Version)
		}
		return nil
	},
}

var certifyPackageCmd = &cobra.Command{
	Use:   "package <application-id>",
	Short: "Export the submission package for an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Certification == nil {
			return fmt.Errorf("certification ledger not initialized")
		}

		pkg, err := Certification.Package(args[0])
		if err != nil {
			return fmt.Errorf("building package: %w", err)
		}
		return printJSON(pkg)
	},
}

func init() {
	certifyApplyCmd.Flags().String("regulatory-body", "", "Receiving regulatory body")
	certifyApplyCmd.Flags().String("contact-email", "", "Applicant contact email")
	certifyDocCmd.Flags().String("content", "", "Document content for update")
	certifyDocCmd.Flags().String("doc-version", "", "Explicit version for update (defaults to a minor bump)")

	certifyCmd.AddCommand(certifyApplyCmd)
	certifyCmd.AddCommand(certifyDocCmd)
	certifyCmd.AddCommand(certifySubmitCmd)
	certifyCmd.AddCommand(certifyReadinessCmd)
	certifyCmd.AddCommand(certifyPackageCmd)
	rootCmd.AddCommand(certifyCmd)
}
