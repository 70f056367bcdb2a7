package main

import (
	"context"

	"todo-htmx/configs"
	protocol "todo-htmx/protocal"

	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	env        string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "todo",
		Short:         "Todo list server",
		Long:          `Serves the todo JSON API under /api and the htmx views under /.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(opts)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "./configs", "directory holding config.yaml")
	root.PersistentFlags().StringVarP(&opts.env, "env", "e", "", "the environment to use (merges config.<env>.yaml)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(opts)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply the schema of the configured store and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configs.Load(opts.configPath, opts.env)
			if err != nil {
				return err
			}
			protocol.ConfigureLogging(cfg.App)
			return protocol.Migrate(contextOf(cmd), cfg)
		},
	})
	return root
}

func serve(opts *options) error {
	cfg, err := configs.Load(opts.configPath, opts.env)
	if err != nil {
		return err
	}
	return protocol.ServeHTTP(cfg)
}

// contextOf returns the command context, falling back to Background
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
