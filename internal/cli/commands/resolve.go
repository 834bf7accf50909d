package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MSubhan6/open-moniker-sub000/catalog"
	"github.com/MSubhan6/open-moniker-sub000/internal/cli/config"
	"github.com/MSubhan6/open-moniker-sub000/internal/loader"
	"github.com/MSubhan6/open-moniker-sub000/resolver"
)

// NewResolveCommand creates the resolve command
func NewResolveCommand() *cobra.Command {
	var catalogPath, domainsPath string

	cmd := &cobra.Command{
		Use:   "resolve <moniker>",
		Short: "Resolve a moniker against the catalog and print the descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := offlineResolver(catalogPath, domainsPath)
			if err != nil {
				return err
			}
			resolution, err := res.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(resolution, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog YAML file (default from config)")
	cmd.Flags().StringVar(&domainsPath, "domains", "", "domains YAML file (default from config)")
	return cmd
}

// NewDescribeCommand creates the describe command
func NewDescribeCommand() *cobra.Command {
	var catalogPath, domainsPath string

	cmd := &cobra.Command{
		Use:   "describe <moniker>",
		Short: "Show catalog metadata and ownership for a moniker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := offlineResolver(catalogPath, domainsPath)
			if err != nil {
				return err
			}
			desc, err := res.Describe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(desc, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog YAML file (default from config)")
	cmd.Flags().StringVar(&domainsPath, "domains", "", "domains YAML file (default from config)")
	return cmd
}

// offlineResolver builds a cache-less resolver from catalog files, for
// one-shot CLI invocations.
func offlineResolver(catalogPath, domainsPath string) (*resolver.Resolver, error) {
	if catalogPath == "" || domainsPath == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if catalogPath == "" {
			catalogPath = cfg.Catalog.Path
		}
		if domainsPath == "" {
			domainsPath = cfg.Catalog.DomainsPath
		}
	}

	nodes, err := loader.LoadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}
	registry := catalog.NewRegistry()
	if _, err := registry.AtomicReplace(nodes); err != nil {
		return nil, err
	}

	var opts []resolver.Option
	if domainsPath != "" {
		domains, err := loader.LoadDomains(domainsPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, resolver.WithDomains(domains))
	}
	return resolver.New(registry, opts...), nil
}
