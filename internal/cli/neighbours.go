package cli

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kvanhoose/ripestat"
	"github.com/kvanhoose/ripestat/internal/report"
)

var neighboursLOD int

var neighboursCmd = &cobra.Command{
	Use:   "neighbours <asn>",
	Short: "Show the BGP neighbours of an ASN",
	Long: `Shows the ASNs observed adjacent to the given ASN in RIS paths,
grouped by position (left, right, uncertain). Level of detail 1 adds
peer counts and example paths per neighbour.

Examples:
  ripestat neighbours AS1853
  ripestat neighbours 1853 --lod 1`,
	Args: cobra.ExactArgs(1),
	RunE: runNeighbours,
}

func init() {
	neighboursCmd.Flags().IntVar(&neighboursLOD, "lod", 0, "level of detail (0 or 1)")
}

func runNeighbours(cmd *cobra.Command, args []string) error {
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

	neighbours, err := client.ASNNeighbours(ctx, asn, &ripestat.ASNNeighboursOptions{LOD: neighboursLOD})
	if err != nil {
		var verr *ripestat.ValidationError
		if errors.As(err, &verr) {
			exitWithCode(ExitInvalidInput, verr.Error())
			return nil
		}
		exitWithCode(ExitRequestFailed, errors.WithMessage(err, "fetch neighbours").Error())
		return nil
	}

	return emit(report.NewNeighboursReport(neighbours))
}
