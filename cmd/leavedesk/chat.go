package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"leavedesk/internal/logging"
	"leavedesk/internal/session"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Run an interactive chat session in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer logging.CloseAll()

			orch, cleanup, err := buildOrchestrator(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			in := bufio.NewScanner(os.Stdin)
			sessionID := uuid.NewString()

			fmt.Println("=== Leave Management Chatbot ===")
			fmt.Println("Commands: 'quit' to exit, 'info' to update your details, 'sessions' to view all sessions")
			fmt.Println()

			if fields, ok := promptUserInfo(in); ok {
				orch.Store().GetOrCreate(sessionID).Overwrite(fields)
			}

			for {
				fmt.Print("You: ")
				if !in.Scan() {
					return in.Err()
				}
				line := strings.TrimSpace(in.Text())
				if line == "" {
					continue
				}

				switch strings.ToLower(line) {
				case "quit", "exit":
					fmt.Println("Goodbye!")
					return nil
				case "info":
					if fields, ok := promptUserInfo(in); ok {
						orch.Store().GetOrCreate(sessionID).Overwrite(fields)
						fmt.Println("Details updated.")
					}
					continue
				case "sessions":
					printSessions(orch.Store())
					continue
				}

				result := orch.Invoke(context.Background(), sessionID, line, session.Fields{})
				if result.Status != "success" {
					fmt.Printf("Assistant: %s\n(error: %s)\n\n", result.Reply, result.Error)
					continue
				}
				fmt.Printf("Assistant: %s\n\n", result.Reply)
			}
		},
	}
}

// promptUserInfo asks for the employee ID and name; both may be skipped.
func promptUserInfo(in *bufio.Scanner) (session.Fields, bool) {
	fmt.Print("Enter your Employee ID (e.g., EMP001), or press Enter to skip: ")
	if !in.Scan() {
		return session.Fields{}, false
	}
	employeeID := strings.TrimSpace(in.Text())

	fmt.Print("Enter your name, or press Enter to skip: ")
	if !in.Scan() {
		return session.Fields{}, false
	}
	name := strings.TrimSpace(in.Text())

	if employeeID == "" && name == "" {
		return session.Fields{}, false
	}
	return session.Fields{EmployeeID: employeeID, Name: name}, true
}

func printSessions(store *session.Store) {
	sessions := store.List()
	if len(sessions) == 0 {
		fmt.Println("No active sessions.")
		return
	}
	fmt.Printf("%d active session(s):\n", len(sessions))
	for _, s := range sessions {
		fmt.Printf("- %s: %s (%d turns)\n", s.ID(), s.Context(), s.HistoryLen())
	}
	fmt.Println()
}
