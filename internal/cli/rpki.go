package cli

import (
	"context"
	"net/netip"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kvanhoose/ripestat"
	"github.com/kvanhoose/ripestat/internal/batch"
	"github.com/kvanhoose/ripestat/internal/report"
)

var (
	rpkiPrefix      string
	rpkiConcurrency int
)

var rpkiCmd = &cobra.Command{
	Use:   "rpki <asn>",
	Short: "Validate announced prefixes against published ROAs",
	Long: `Validates BGP announcements against the RPKI.

With --prefix, the single origin/prefix pair is validated. Without it,
the ASN's currently announced prefixes are fetched first and every one
is validated concurrently.

Examples:
  ripestat rpki AS3333
  ripestat rpki 3333 --prefix 193.0.0.0/21
  ripestat rpki 3333 --concurrency 8 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runRPKI,
}

func init() {
	rpkiCmd.Flags().StringVar(&rpkiPrefix, "prefix", "", "validate a single prefix instead of the full sweep")
	rpkiCmd.Flags().IntVar(&rpkiConcurrency, "concurrency", batch.DefaultConcurrency, "parallel validation limit (max 8)")
}

func runRPKI(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	asn, err := parseASNArg(args[0])
	if err != nil {
		exitWithCode(ExitInvalidInput, err.Error())
		return nil
	}

	client, err := newClient()
	if err != nil {
		exitWithCode(ExitInvalidInput, err.Error())
		return nil
	}

	// Single pair validation
	if rpkiPrefix != "" {
		prefix, err := ripestat.ParsePrefix(rpkiPrefix, false)
		if err != nil {
			exitWithCode(ExitInvalidInput, err.Error())
			return nil
		}

		status, err := client.RPKIValidationStatus(ctx, asn, prefix)
		if err != nil {
			exitWithCode(ExitRequestFailed, errors.WithMessage(err, "rpki validation").Error())
			return nil
		}
		return emit(report.NewRPKIReport(status))
	}

	// Sweep every currently announced prefix
	announced, err := client.AnnouncedPrefixes(ctx, asn, nil)
	if err != nil {
		exitWithCode(ExitRequestFailed, errors.WithMessage(err, "fetch announced prefixes").Error())
		return nil
	}

	prefixes := make([]netip.Prefix, 0, len(announced.Prefixes))
	for _, p := range announced.Prefixes {
		prefixes = append(prefixes, p.Prefix)
	}

	validator := batch.NewValidator(client, rpkiConcurrency)
	return emit(validator.ValidateAll(ctx, asn, prefixes))
}
