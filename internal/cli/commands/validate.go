package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MSubhan6/open-moniker-sub000/catalog"
	"github.com/MSubhan6/open-moniker-sub000/internal/loader"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	var domainsPath string

	cmd := &cobra.Command{
		Use:   "validate <catalog.yml>",
		Short: "Validate a catalog file without loading it into a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := loader.LoadCatalog(args[0])
			if err != nil {
				color.Red("✗ %v", err)
				return err
			}

			registry := catalog.NewRegistry()
			if _, err := registry.AtomicReplace(nodes); err != nil {
				color.Red("✗ %v", err)
				return err
			}

			bindings := 0
			policies := 0
			for _, node := range nodes {
				if node.SourceBinding != nil {
					bindings++
				}
				if node.AccessPolicy != nil {
					policies++
				}
			}

			if domainsPath != "" {
				domains, err := loader.LoadDomains(domainsPath)
				if err != nil {
					color.Red("✗ %v", err)
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "domains: %d\n", len(domains))
			}

			color.Green("✓ catalog is valid")
			fmt.Fprintf(cmd.OutOrStdout(), "nodes: %d\nsource bindings: %d\naccess policies: %d\n",
				len(nodes), bindings, policies)
			return nil
		},
	}

	cmd.Flags().StringVar(&domainsPath, "domains", "", "domains YAML file to validate alongside")
	return cmd
}
