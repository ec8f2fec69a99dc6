package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"loanportal/internal/config"
	"loanportal/internal/service"
)

func NewChatCommand(svc *ServiceFlags) *cobra.Command {
	greeting := config.DefaultGreeting

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the loan assistant; type 'exit' to leave",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			chat, err := service.NewChatSession(ctx, uuid.NewString(), svc.Client(), nil, greeting)
			if err != nil {
				return errors.WithMessage(err, "couldn't start chat")
			}

			transcript, err := chat.Transcript(ctx)
			if err != nil {
				return err
			}
			for _, msg := range transcript {
				fmt.Fprintf(out, "assistant> %s\n", msg.Content)
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "you> ")
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}

				line := scanner.Text()
				switch strings.TrimSpace(line) {
				case "exit", "quit":
					return nil
				}

				sent, err := chat.Ask(ctx, line)
				if err != nil {
					return err
				}
				if !sent {
					continue
				}

				transcript, err := chat.Transcript(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "assistant> %s\n", transcript[len(transcript)-1].Content)
			}
		},
	}

	cmd.Flags().StringVar(&greeting, "greeting", greeting, "First assistant message of the session")

	return cmd
}
