// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kvanhoose/ripestat"
	"github.com/kvanhoose/ripestat/internal/report"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags
var (
	sourceApp   string
	timeoutFlag time.Duration
	jsonOutput  bool
	noColor     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ripestat",
	Short: "RIPEstat lookups for BGP routing and registry data",
	Long: `ripestat queries the RIPEstat Data API for routing and registry
information about ASNs, IP addresses, and prefixes.

Examples:
  ripestat prefixes AS3333             # prefixes announced by an ASN
  ripestat rpki AS3333                 # RPKI-validate every announced prefix
  ripestat path 140.78.0.0/16          # BGP paths seen by the RIS collectors
  ripestat neighbours AS1205 --lod 1   # neighbour ASNs with path details
  ripestat whatsmyip                   # your public IP as the API sees it

Data comes live from RIPEstat; every command needs network access.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&sourceApp, "sourceapp", "ripestat-cli", "sourceapp tag sent with every request")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", ripestat.DefaultTimeout, "HTTP request timeout")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")

	// Add subcommands
	rootCmd.AddCommand(rpkiCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(prefixesCmd)
	rootCmd.AddCommand(neighboursCmd)
	rootCmd.AddCommand(whatsMyIPCmd)
	rootCmd.AddCommand(versionCmd)
}

// ExitCode constants
const (
	ExitSuccess       = 0
	ExitInvalidInput  = 2
	ExitRequestFailed = 3
)

func exitWithCode(code int, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}

// newClient builds the API client from the global flags.
func newClient() (*ripestat.Client, error) {
	return ripestat.NewClient(
		ripestat.WithSourceApp(sourceApp),
		ripestat.WithTimeout(timeoutFlag),
	)
}

// emit renders a report honoring the --json and --no-color flags.
func emit(r report.Report) error {
	if jsonOutput {
		jsonStr, err := r.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Println(jsonStr)
		return nil
	}
	fmt.Println(r.FormatText(useColor()))
	return nil
}

// useColor reports whether text output should be painted.
func useColor() bool {
	return !noColor && report.IsTerminal()
}

// stripASPrefix drops a leading AS from an ASN argument, so AS3333 and
// 3333 both work.
func stripASPrefix(arg string) string {
	s := strings.TrimSpace(arg)
	if len(s) > 2 && strings.EqualFold(s[:2], "as") {
		if _, err := ripestat.ParseASN(s[2:]); err == nil {
			return s[2:]
		}
	}
	return s
}

// parseASNArg parses an ASN argument, tolerating an AS prefix.
func parseASNArg(arg string) (uint32, error) {
	return ripestat.ParseASN(stripASPrefix(arg))
}

// parseResourceArg classifies an ASN, address, or prefix argument.
func parseResourceArg(arg string) (ripestat.Resource, error) {
	return ripestat.ParseResource(stripASPrefix(arg))
}

// parseTimeFlag accepts a full timestamp or a bare date.
func parseTimeFlag(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS", s)
	}
	return t, nil
}
