package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/primitivehl/whitelist-checker/checker"
	"github.com/primitivehl/whitelist-checker/whitelist"
	"github.com/spf13/cobra"
)

var errNotEligible = errors.New("address is not eligible")

func checkCmd(opts *rootOptions) *cobra.Command {
	var strict bool

	c := &cobra.Command{
		Use:   "check <address>...",
		Short: "Check one or more addresses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger(cmd)
			loader, err := opts.loader(logger)
			if err != nil {
				return err
			}

			chk := checker.New(checker.Config{Logger: logger, Loader: loader})
			defer chk.Close()

			out := cmd.OutOrStdout()
			missing := 0
			for _, arg := range args {
				res := chk.Check(cmd.Context(), arg)
				switch res.Status {
				case checker.StatusMember, checker.StatusNotMember:
					fmt.Fprintf(out, "%s\t%s\n", whitelist.ChecksumAddress(res.Address), res.Status)
					if res.Status == checker.StatusNotMember {
						missing++
					}
				case checker.StatusLoadFailure:
					return errors.New(res.Error)
				default:
					fmt.Fprintf(out, "%s\t%s\t%s\n", arg, res.Status, res.Error)
					missing++
				}
			}

			if strict && missing > 0 {
				return errors.Wrapf(errNotEligible, "%d of %d", missing, len(args))
			}
			return nil
		},
	}

	c.Flags().BoolVar(&strict, "strict", false, "exit with an error unless every address is eligible")
	return c
}
