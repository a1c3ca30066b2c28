package cli

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kvanhoose/ripestat/internal/report"
)

var whatsMyIPCmd = &cobra.Command{
	Use:   "whatsmyip",
	Short: "Show the public IP address of this machine",
	Long: `Asks the service which address this request arrived from and prints
it.

Examples:
  ripestat whatsmyip
  ripestat whatsmyip --json`,
	Args: cobra.NoArgs,
	RunE: runWhatsMyIP,
}

func runWhatsMyIP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := newClient()
	if err != nil {
		exitWithCode(ExitInvalidInput, err.Error())
		return nil
	}

	result, err := client.WhatsMyIP(ctx)
	if err != nil {
		exitWithCode(ExitRequestFailed, errors.WithMessage(err, "whatsmyip").Error())
		return nil
	}

	return emit(report.NewIPReport(result))
}
