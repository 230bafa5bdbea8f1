package main

import (
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"github.com/primitivehl/whitelist-checker/adapters/localfile"
	"github.com/primitivehl/whitelist-checker/adapters/webfile"
	"github.com/primitivehl/whitelist-checker/whitelist"
	"github.com/spf13/cobra"
)

var errNoSources = errors.New("at least one --source or --file is required")

type rootOptions struct {
	sources  []string
	files    []string
	timeout  time.Duration
	maxBytes int64
	debug    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "checkaddr",
		Short:        "Check Ethereum addresses against hosted eligibility lists",
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringSliceVarP(&opts.sources, "source", "s", nil, "URL of an eligibility list (repeatable)")
	cmd.PersistentFlags().StringSliceVarP(&opts.files, "file", "f", nil, "local eligibility list file (repeatable)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "timeout for fetching a single list")
	cmd.PersistentFlags().Int64Var(&opts.maxBytes, "max-bytes", webfile.DefaultMaxBodySize, "largest accepted list download in bytes")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "print debug output")

	cmd.AddCommand(checkCmd(opts))
	cmd.AddCommand(listCmd(opts))
	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) log.Logger {
	level := log.LevelWarn
	if o.debug {
		level = log.LevelDebug
	}
	return log.NewLogger(log.NewTerminalHandlerWithLevel(cmd.ErrOrStderr(), level, false))
}

// loader reads URLs first, then local files, in flag order.
func (o *rootOptions) loader(logger log.Logger) (*whitelist.Loader, error) {
	if len(o.sources) == 0 && len(o.files) == 0 {
		return nil, errNoSources
	}
	sources := make([]whitelist.Source, 0, len(o.sources)+len(o.files))
	for _, u := range o.sources {
		sources = append(sources, webfile.NewFetcher(u, o.timeout).WithMaxBodySize(o.maxBytes))
	}
	for _, p := range o.files {
		sources = append(sources, localfile.NewReader(p))
	}
	return whitelist.NewLoader(logger, sources...), nil
}
