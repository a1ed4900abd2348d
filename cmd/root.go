package cmd

import (
	"github.com/spf13/cobra"

	"course-agent/config"
	"course-agent/pkg/api"
)

func Root(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "course-agent",
		Short:         "command line client for the course platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		upload(cfg),
		course(cfg),
		certificate(cfg),
		payment(cfg),
		session(cfg),
		watch(cfg),
		catalogCmd(),
		agent(cfg),
	)
	return rootCmd
}

func newAPIClient(cfg *config.Config) (*api.Client, error) {
	return api.New(cfg.API.BaseURL, api.WithToken(cfg.API.Token))
}
