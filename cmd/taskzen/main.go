package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/taskzen/taskzen/internal/apiclient"
	"github.com/taskzen/taskzen/internal/config"
)

var Version = "dev"

type globalOptions struct {
	apiURL      string
	sessionPath string
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "taskzen",
		Short:         "Terminal client for the Taskzen task board",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultSession, err := apiclient.DefaultSessionPath()
	if err != nil {
		defaultSession = ".taskzen-token.json"
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", cfg.APIURL, "Task API base URL")
	root.PersistentFlags().StringVar(&opts.sessionPath, "session", defaultSession, "Where the login token is kept")

	root.AddCommand(loginCmd(opts))
	root.AddCommand(logoutCmd(opts))
	root.AddCommand(whoamiCmd(opts))
	root.AddCommand(boardCmd(opts, cfg))
	root.AddCommand(backlogCmd(opts, cfg))

	return root
}

func (o *globalOptions) client() *apiclient.Client {
	return apiclient.New(o.apiURL, apiclient.NewFileSession(o.sessionPath))
}
