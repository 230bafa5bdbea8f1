package main

import (
	"fmt"

	"github.com/primitivehl/whitelist-checker/whitelist"
	"github.com/spf13/cobra"
)

func listCmd(opts *rootOptions) *cobra.Command {
	var countOnly bool

	c := &cobra.Command{
		Use:   "list",
		Short: "Print the combined eligibility list, sorted and deduplicated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.logger(cmd)
			loader, err := opts.loader(logger)
			if err != nil {
				return err
			}

			addrs, err := loader.LoadEligibleAddresses(cmd.Context())
			if err != nil {
				return err
			}
			set := whitelist.NewSet(addrs)

			out := cmd.OutOrStdout()
			if countOnly {
				fmt.Fprintf(out, "%d entries, %d unique, fingerprint %016x\n", len(addrs), set.Len(), set.Fingerprint())
				return nil
			}
			for _, addr := range set.Sorted() {
				fmt.Fprintln(out, addr)
			}
			return nil
		},
	}

	c.Flags().BoolVarP(&countOnly, "count", "c", false, "print only entry counts and the list fingerprint")
	return c
}
