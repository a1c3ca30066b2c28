// Package report renders data-call results for the command line.
package report

import (
	"encoding/json"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/kvanhoose/ripestat"
)

// Report is one renderable command result.
type Report interface {
	FormatText(color bool) string
	FormatJSON() (string, error)
}

// SGR codes used by the text renderers.
const (
	sgrBold         uint8 = 1
	sgrBrightRed    uint8 = 91
	sgrBrightGreen  uint8 = 92
	sgrBrightYellow uint8 = 93
)

// paint wraps text in the given SGR codes when color is on.
func paint(color bool, text string, codes ...uint8) string {
	if !color || len(codes) == 0 {
		return text
	}
	parts := make([]string, len(codes))
	for i := range codes {
		parts[i] = strconv.Itoa(int(codes[i]))
	}
	return "\x1b[" + strings.Join(parts, ";") + "m" + text + "\x1b[0m"
}

// IsTerminal reports whether stdout is a terminal. Color output
// defaults on for terminals and off for pipes.
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// RPKIReport is the validation outcome for one origin/prefix pair.
type RPKIReport struct {
	Prefix   string `json:"prefix"`
	Origin   uint32 `json:"origin"`
	Status   string `json:"status"`
	ROACount int    `json:"roa_count"`
	Error    string `json:"error,omitempty"`
}

// NewRPKIReport builds the report for one validation result.
func NewRPKIReport(status *ripestat.RPKIValidationStatus) *RPKIReport {
	return &RPKIReport{
		Prefix:   status.Prefix.String(),
		Origin:   status.Resource,
		Status:   string(status.Status),
		ROACount: len(status.ValidatingROAs),
	}
}

// RPKIError builds an error entry for a pair whose validation call
// failed.
func RPKIError(origin uint32, prefix netip.Prefix, err error) *RPKIReport {
	return &RPKIReport{
		Prefix: prefix.String(),
		Origin: origin,
		Error:  err.Error(),
	}
}

// FormatText formats the result as tab-separated text.
func (r *RPKIReport) FormatText(color bool) string {
	if r.Error != "" {
		return fmt.Sprintf("%s\tAS%d\t%s", r.Prefix, r.Origin,
			paint(color, "ERROR: "+r.Error, sgrBrightRed))
	}

	status := r.Status
	switch {
	case status == "valid":
		status = paint(color, status, sgrBold, sgrBrightGreen)
	case strings.HasPrefix(status, "invalid"):
		status = paint(color, status, sgrBold, sgrBrightRed)
	default:
		status = paint(color, status, sgrBrightYellow)
	}

	return fmt.Sprintf("%s\tAS%d\t%s\t%d", r.Prefix, r.Origin, status, r.ROACount)
}

// FormatJSON formats the result as JSON.
func (r *RPKIReport) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Sweep collects the per-prefix results of a validation run.
type Sweep struct {
	Results []*RPKIReport
}

// FormatText formats the sweep as text, one line per prefix.
func (s *Sweep) FormatText(color bool) string {
	lines := make([]string, 0, len(s.Results))
	for _, r := range s.Results {
		lines = append(lines, r.FormatText(color))
	}
	return strings.Join(lines, "\n")
}

// FormatJSON formats the sweep as a JSON array.
func (s *Sweep) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(s.Results, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// PeerPath is one peer's route to the queried prefix.
type PeerPath struct {
	Peer   string `json:"peer"`
	Origin uint32 `json:"asn_origin"`
	Path   string `json:"as_path"`
}

// CollectorPaths groups peer routes per route collector.
type CollectorPaths struct {
	RRC      string     `json:"rrc"`
	Location string     `json:"location"`
	Peers    []PeerPath `json:"peers"`
}

// PathReport is the RIS view of one resource across the collectors.
type PathReport struct {
	Resource   string           `json:"resource"`
	Collectors []CollectorPaths `json:"collectors"`
}

// NewPathReport builds the report for a looking-glass result.
func NewPathReport(resource string, lg *ripestat.LookingGlass) *PathReport {
	report := &PathReport{
		Resource:   resource,
		Collectors: make([]CollectorPaths, 0, len(lg.RRCs)),
	}

	for _, rrc := range lg.RRCs {
		collector := CollectorPaths{
			RRC:      rrc.RRC,
			Location: rrc.Location,
			Peers:    make([]PeerPath, 0, len(rrc.Peers)),
		}
		for _, peer := range rrc.Peers {
			hops := make([]string, 0, len(peer.ASPath))
			for _, hop := range peer.ASPath {
				hops = append(hops, strconv.FormatUint(uint64(hop), 10))
			}
			collector.Peers = append(collector.Peers, PeerPath{
				Peer:   peer.Peer.String(),
				Origin: peer.ASNOrigin,
				Path:   strings.Join(hops, " "),
			})
		}
		report.Collectors = append(report.Collectors, collector)
	}

	return report
}

// FormatText formats the report with one header line per collector and
// one indented line per peer.
func (p *PathReport) FormatText(color bool) string {
	var b strings.Builder
	for i, collector := range p.Collectors {
		if i > 0 {
			b.WriteByte('\n')
		}
		header := fmt.Sprintf("%s\t%s", collector.RRC, collector.Location)
		b.WriteString(paint(color, header, sgrBold))
		for _, peer := range collector.Peers {
			b.WriteByte('\n')
			fmt.Fprintf(&b, "  %s\tAS%d\t%s", peer.Peer, peer.Origin, peer.Path)
		}
	}
	return b.String()
}

// FormatJSON formats the report as JSON.
func (p *PathReport) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// PrefixesReport lists the prefixes announced by an ASN.
type PrefixesReport struct {
	ASN      uint32   `json:"asn"`
	Prefixes []string `json:"prefixes"`
}

// NewPrefixesReport builds the report for an announced-prefixes result.
func NewPrefixesReport(prefixes *ripestat.AnnouncedPrefixes) *PrefixesReport {
	report := &PrefixesReport{
		ASN:      prefixes.Resource,
		Prefixes: make([]string, 0, len(prefixes.Prefixes)),
	}
	for _, p := range prefixes.Prefixes {
		report.Prefixes = append(report.Prefixes, p.Prefix.String())
	}
	return report
}

// FormatText formats the report as text, one prefix per line.
func (p *PrefixesReport) FormatText(color bool) string {
	return strings.Join(p.Prefixes, "\n")
}

// FormatJSON formats the report as JSON.
func (p *PrefixesReport) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Neighbour is one row of a neighbours listing.
type Neighbour struct {
	ASN      uint32 `json:"asn"`
	Position string `json:"position"`
	V4Peers  int    `json:"v4_peers,omitempty"`
	V6Peers  int    `json:"v6_peers,omitempty"`
	Paths    int    `json:"paths,omitempty"`
}

// NeighboursReport lists the observed neighbours of an ASN.
type NeighboursReport struct {
	ASN        uint32                   `json:"asn"`
	Counts     ripestat.NeighbourCounts `json:"counts"`
	Neighbours []Neighbour              `json:"neighbours"`
}

// NewNeighboursReport builds the report for an asn-neighbours result.
func NewNeighboursReport(neighbours *ripestat.ASNNeighbours) *NeighboursReport {
	report := &NeighboursReport{
		ASN:        neighbours.Resource,
		Counts:     neighbours.Counts,
		Neighbours: make([]Neighbour, 0, len(neighbours.Neighbours)),
	}
	for _, n := range neighbours.Neighbours {
		row := Neighbour{ASN: n.ASN, Position: n.Position}
		if n.Details != nil {
			row.V4Peers = n.Details.PeerCount.V4
			row.V6Peers = n.Details.PeerCount.V6
			row.Paths = n.Details.PathCount
		}
		report.Neighbours = append(report.Neighbours, row)
	}
	return report
}

// FormatText formats the report as tab-separated text, one neighbour
// per line, with a summary line at the end.
func (n *NeighboursReport) FormatText(color bool) string {
	var b strings.Builder
	for _, row := range n.Neighbours {
		fmt.Fprintf(&b, "AS%d\t%s", row.ASN, row.Position)
		if row.Paths > 0 || row.V4Peers > 0 || row.V6Peers > 0 {
			fmt.Fprintf(&b, "\t%d\t%d\t%d", row.V4Peers, row.V6Peers, row.Paths)
		}
		b.WriteByte('\n')
	}

	summary := fmt.Sprintf("left %d, right %d, uncertain %d, unique %d",
		n.Counts.Left, n.Counts.Right, n.Counts.Uncertain, n.Counts.Unique)
	b.WriteString(paint(color, summary, sgrBold))
	return b.String()
}

// FormatJSON formats the report as JSON.
func (n *NeighboursReport) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// IPReport is the caller's public address.
type IPReport struct {
	IP string `json:"ip"`
}

// NewIPReport builds the report for a whats-my-ip result.
func NewIPReport(result *ripestat.WhatsMyIP) *IPReport {
	return &IPReport{IP: result.IP.String()}
}

// FormatText formats the report as the bare address.
func (i *IPReport) FormatText(color bool) string {
	return i.IP
}

// FormatJSON formats the report as JSON.
func (i *IPReport) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
