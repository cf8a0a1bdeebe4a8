package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/ssmdoc/model/graph"
)

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "ssmdoc",
		Short:         "Build automation documents and render their control flow graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.configURL, "config", "", "config file (JSON or YAML)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&a.trailing, "trailing", "", "trailing edge policy: drop or end")
	root.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "location relative URLs are resolved against")
	root.PersistentFlags().StringVar(&a.registry, "registry-url", "", "document registry location (default "+defaultRegistryURL+")")

	root.AddCommand(
		newBuildCommand(a),
		newGraphCommand(a),
		newInspectCommand(),
		newSyncCommand(a),
		newPublishCommand(a),
		newRunCommand(a),
	)
	return root
}

func newBuildCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Assemble the configured documents and write their JSON and DOT artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := a.service(cmd)
			if err != nil {
				return err
			}
			artifacts, err := srv.Build(cmd.Context())
			for _, artifact := range artifacts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", artifact.Name, artifact.DocumentURL, artifact.GraphURL)
			}
			return err
		},
	}
}

func newGraphCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "graph <document>",
		Short: "Print the DOT graph of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := a.service(cmd)
			if err != nil {
				return err
			}
			dot, err := srv.Graph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), dot)
			return err
		},
	}
}

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.dot>",
		Short: "Summarise a rendered graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := afs.New().DownloadWithURL(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			parsed, err := graph.Parse(data)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}
			return writeSummary(cmd.OutOrStdout(), parsed)
		},
	}
}

func newSyncCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Register built documents and apply the configured sharing permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := a.service(cmd)
			if err != nil {
				return err
			}
			changes, err := srv.Sync(cmd.Context())
			for _, change := range changes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", change.Name, change.Action, change.LatestVersion)
			}
			if err != nil {
				return err
			}
			permissions, err := srv.SyncPermissions(cmd.Context())
			for _, permission := range permissions {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tshared=%v\tunshared=%v\n", permission.Name, permission.Shared, permission.Unshared)
			}
			return err
		},
	}
}

func newPublishCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Copy build artifacts into the configured bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := a.service(cmd)
			if err != nil {
				return err
			}
			assets, err := srv.Publish(cmd.Context())
			for _, asset := range assets {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", asset.URL, asset.ContentType)
			}
			return err
		},
	}
}

func newRunCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Build, register, share and publish the configured documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := a.service(cmd)
			if err != nil {
				return err
			}
			report, err := srv.Run(cmd.Context())
			if report != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "built: %d, synced: %d, permissions: %d, published: %d\n",
					len(report.Artifacts), len(report.Documents), len(report.Permissions), len(report.Assets))
			}
			return err
		},
	}
}
