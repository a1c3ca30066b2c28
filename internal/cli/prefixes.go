package cli

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kvanhoose/ripestat"
	"github.com/kvanhoose/ripestat/internal/report"
)

var (
	prefixesStart    string
	prefixesEnd      string
	prefixesMinPeers int
)

var prefixesCmd = &cobra.Command{
	Use:   "prefixes <asn>",
	Short: "List prefixes announced by an ASN",
	Long: `Lists every prefix the ASN announced during the query window, one
per line. The window defaults to the service's own, reaching back to
the earliest data available.

Examples:
  ripestat prefixes AS3333
  ripestat prefixes 3333 --starttime 2021-01-01 --min-peers-seeing 10`,
	Args: cobra.ExactArgs(1),
	RunE: runPrefixes,
}

func init() {
	prefixesCmd.Flags().StringVar(&prefixesStart, "starttime", "", "start of the query window (YYYY-MM-DD)")
	prefixesCmd.Flags().StringVar(&prefixesEnd, "endtime", "", "end of the query window (YYYY-MM-DD)")
	prefixesCmd.Flags().IntVar(&prefixesMinPeers, "min-peers-seeing", 0, "drop prefixes seen by fewer full-feed peers")
}

func runPrefixes(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	asn, err := parseASNArg(args[0])
	if err != nil {
		exitWithCode(ExitInvalidInput, err.Error())
		return nil
	}

	opts := &ripestat.AnnouncedPrefixesOptions{MinPeersSeeing: prefixesMinPeers}
	if prefixesStart != "" {
		if opts.StartTime, err = parseTimeFlag(prefixesStart); err != nil {
			exitWithCode(ExitInvalidInput, err.Error())
			return nil
		}
	}
	if prefixesEnd != "" {
		if opts.EndTime, err = parseTimeFlag(prefixesEnd); err != nil {
			exitWithCode(ExitInvalidInput, err.Error())
			return nil
		}
	}

	client, err := newClient()
	if err != nil {
		exitWithCode(ExitInvalidInput, err.Error())
		return nil
	}

	announced, err := client.AnnouncedPrefixes(ctx, asn, opts)
	if err != nil {
		exitWithCode(ExitRequestFailed, errors.WithMessage(err, "fetch announced prefixes").Error())
		return nil
	}

	return emit(report.NewPrefixesReport(announced))
}
