package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/one-front/airesume/internal/chat"
	"github.com/one-front/airesume/internal/llm"
)

var (
	chatProvider string
	chatModel    string
	chatKey      string
)

var (
	promptStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Chat with the resume through an LLM backend",
	Long: `Start an interactive chat session about the loaded resume, or answer
a single question when one is given as an argument.

Every turn is logged to the interaction ledger. Inside the session,
/reset starts a new session, /providers lists reachable backends, and
/quit exits.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Dispatcher == nil || Resume == nil || Records == nil || Config == nil {
			return fmt.Errorf("chat services not initialized")
		}

		settings := resolveChatSettings()
		controller := chat.NewController(Dispatcher, Resume, Records, EventLog, Config.UserID)
		ctx := cmd.Context()

		if len(args) == 1 {
			fmt.Println(assistantStyle.Render(controller.ProcessTurn(ctx, args[0], settings)))
			return nil
		}

		return runChatREPL(ctx, controller, settings)
	},
}

// resolveChatSettings merges flags over the loaded configuration.
func resolveChatSettings() chat.Settings {
	provider := llm.Provider(chatProvider)
	if chatProvider == "" {
		provider = llm.Provider(Config.DefaultProvider)
	}

	model := chatModel
	credential := chatKey
	switch provider {
	case llm.ProviderOpenRouter:
		if model == "" {
			model = Config.OpenRouter.Model
		}
		if credential == "" {
			credential = Config.OpenRouter.APIKey
		}
	case llm.ProviderOpenAI:
		if model == "" {
			model = Config.OpenAI.Model
		}
		if credential == "" {
			credential = Config.OpenAI.APIKey
		}
	case llm.ProviderOllama:
		if model == "" {
			model = Config.Ollama.Model
		}
	}

	return chat.Settings{Provider: provider, Model: model, Credential: credential}
}

func runChatREPL(ctx context.Context, controller *chat.Controller, settings chat.Settings) error {
	fmt.Printf("%s  %s\n",
		promptStyle.Render("AI Resume Chat"),
		infoStyle.Render(fmt.Sprintf("(%s / %s, session %s)", settings.Provider, settings.Model, controller.SessionID())))
	fmt.Println(infoStyle.Render("Ask about the resume. /reset, /providers, /quit"))
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print(promptStyle.Render("you> "))
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch input {
		case "/quit", "/exit":
			return nil
		case "/reset":
			controller.Reset()
			fmt.Println(infoStyle.Render("Session reset: " + controller.SessionID()))
			continue
		case "/providers":
			for _, p := range Dispatcher.AvailableProviders(ctx) {
				fmt.Println("  " + string(p))
			}
			continue
		}

		response := controller.ProcessTurn(ctx, input, settings)
		fmt.Println(assistantStyle.Render(response))
		fmt.Println()
	}

	return scanner.Err()
}

func init() {
	chatCmd.Flags().StringVar(&chatProvider, "provider", "", "LLM provider (openrouter, openai, ollama)")
	chatCmd.Flags().StringVar(&chatModel, "model", "", "Model name (defaults to the provider's configured model)")
	chatCmd.Flags().StringVar(&chatKey, "key", "", "API key (defaults to config or environment)")
	rootCmd.AddCommand(chatCmd)
}
