package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/serenelab/serene/internal/serene"
	"github.com/serenelab/serene/internal/serene/support"
	"github.com/spf13/cobra"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the assistant in the terminal",
	Long: `Start an interactive conversation with the assistant in the terminal.

If a message is provided as an argument, a single turn is run and the
program exits. Otherwise an interactive loop starts.

Interactive commands:
  /clear    clear the conversation (the system prompt is kept)
  /breathe  print a short guided breathing exercise
  /suggest  print coping suggestions for your last message
  /quit     exit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		provider, err := newProvider(cfg, "")
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: provider unavailable: %v\n", err)
			provider = nil
		}

		params, err := cfg.Params()
		if err != nil {
			return fmt.Errorf("invalid model configuration: %w", err)
		}

		conv := serene.NewConversation(cfg.SystemPrompt(), cfg.Greeting())
		router := serene.NewRouter(serene.RouterConfig{
			Matcher:          serene.NewMatcher(),
			Provider:         provider,
			Params:           params,
			MaxHistoryTurns:  cfg.MaxHistoryTurns,
			CrisisReply:      cfg.CrisisReply(),
			UnavailableReply: cfg.UnavailableReply(),
			ApologyReply:     cfg.ApologyReply(),
		})

		out := cmd.OutOrStdout()

		// One-shot mode
		if len(args) > 0 {
			reply, kind := router.HandleTurn(cmd.Context(), conv, strings.Join(args, " "))
			printReply(out, reply, kind)
			return nil
		}

		// Interactive mode
		fmt.Fprintf(out, "%s\n\n%s\n\n", cfg.AppTitle, cfg.Greeting())
		fmt.Fprintln(out, "Type /quit to exit, /clear to start over, /breathe or /suggest for exercises.")

		var lastInput string
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Fprint(out, "\n> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			switch line {
			case "/quit", "/exit":
				return nil
			case "/clear":
				conv.Reset(cfg.ResetGreeting())
				fmt.Fprintf(out, "\n%s\n", cfg.ResetGreeting())
				continue
			case "/breathe":
				fmt.Fprintf(out, "\n%s\n", support.BreathingExercise())
				continue
			case "/suggest":
				for _, s := range support.Suggestions(lastInput) {
					fmt.Fprintf(out, "- %s\n", s)
				}
				continue
			}

			lastInput = line
			reply, kind := router.HandleTurn(cmd.Context(), conv, line)
			printReply(out, reply, kind)
		}
		return scanner.Err()
	},
}

func printReply(out io.Writer, reply string, kind serene.ReplyKind) {
	if kind == serene.ReplyCrisis {
		fmt.Fprintf(out, "\n*** SAFETY NOTICE ***\n%s\n", reply)
		return
	}
	fmt.Fprintf(out, "\n%s\n", reply)
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
