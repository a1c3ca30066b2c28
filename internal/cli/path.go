package cli

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kvanhoose/ripestat/internal/report"
)

var pathCmd = &cobra.Command{
	Use:   "path <prefix|ip>",
	Short: "Show BGP paths seen by the RIS route collectors",
	Long: `Shows how the RIS route collectors currently reach an address or
prefix: for every collector, each peer's AS path to the resource.

Examples:
  ripestat path 140.78.0.0/16
  ripestat path 193.0.6.139 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runPath,
}

func runPath(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	resource, err := parseResourceArg(args[0])
	if err != nil {
		exitWithCode(ExitInvalidInput, err.Error())
		return nil
	}
	if _, ok := resource.ASN(); ok {
		exitWithCode(ExitInvalidInput, "path takes an IP address or prefix, not an ASN")
		return nil
	}

	client, err := newClient()
	if err != nil {
		exitWithCode(ExitInvalidInput, err.Error())
		return nil
	}

	lg, err := client.LookingGlass(ctx, resource)
	if err != nil {
		exitWithCode(ExitRequestFailed, errors.WithMessage(err, "looking glass").Error())
		return nil
	}

	return emit(report.NewPathReport(resource.String(), lg))
}
