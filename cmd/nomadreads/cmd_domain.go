package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nomadreads/nomadreads-server/internal/domain/recommendation"
)

func newDomainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domain [country-or-locale]",
		Short: "Show which storefront a country or locale maps to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all, _ := cmd.Flags().GetBool("all"); all {
				for _, domain := range recommendation.RetailerDomains() {
					fmt.Fprintln(cmd.OutOrStdout(), domain)
				}
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("a country or locale is required unless --all is set")
			}
			country := recommendation.ResolveCountry(args[0], "")
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", country, recommendation.RetailerDomain(country))
			return nil
		},
	}
	cmd.Flags().Bool("all", false, "List every storefront host")
	return cmd
}
