package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskzen/taskzen/internal/apiclient"
	"github.com/taskzen/taskzen/internal/board"
	"github.com/taskzen/taskzen/internal/config"
	"github.com/taskzen/taskzen/internal/models"
	"golang.org/x/term"
)

var errNotLoggedIn = errors.New("not logged in or session expired, run `taskzen login`")

func loginCmd(opts *globalOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = promptPassword(cmd); err != nil {
					return err
				}
			}

			client := opts.client()
			if _, err := client.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			user, err := client.Me(cmd.Context())
			if err != nil {
				return cliError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.Name, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func logoutCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the token and forget it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().Logout(cmd.Context()); err != nil {
				return cliError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func whoamiCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := opts.client().Me(cmd.Context())
			if err != nil {
				return cliError(err)
			}
			renderUser(cmd.OutOrStdout(), user)
			return nil
		},
	}
}

func boardCmd(opts *globalOptions, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show your board: assigned, in progress and completed tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := opts.client()
			viewer, err := client.Me(cmd.Context())
			if err != nil {
				return cliError(err)
			}
			tasks, err := client.ListTasks(cmd.Context())
			if err != nil {
				return cliError(err)
			}

			today := time.Now().In(cfg.Location())
			return renderBoard(cmd.OutOrStdout(), board.Project(tasks, viewer, today), viewer)
		},
	}
}

func backlogCmd(opts *globalOptions, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "backlog",
		Short: "List overdue tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := opts.client().ListTasks(cmd.Context())
			if err != nil {
				return cliError(err)
			}

			today := time.Now().In(cfg.Location())
			return renderTasks(cmd.OutOrStdout(), board.Backlog(tasks, today), models.User{})
		},
	}
}

// promptPassword reads a password from stdin, without echo when stdin is a
// terminal.
func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func cliError(err error) error {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		return errNotLoggedIn
	}
	return err
}
