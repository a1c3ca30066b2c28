package ripestat

import (
	"context"
	"encoding/json"
	"net/netip"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	risPeersPath    = "ris-peers"
	risPeersVersion = "1.0"
)

// RISPeersOptions narrows a ris-peers query.
type RISPeersOptions struct {
	// QueryTime selects the point in time to report on. Zero means the
	// latest available data point.
	QueryTime time.Time
}

// RISPeer is one peering session a route collector maintains.
type RISPeer struct {
	ASN           uint32
	IP            netip.Addr
	V4PrefixCount int
	V6PrefixCount int
}

// RISPeers is the decoded ris-peers response: the peers of every route
// collector, keyed by uppercase collector code.
type RISPeers struct {
	Peers        map[string][]RISPeer
	QueryTime    time.Time
	EarliestTime time.Time
	LatestTime   time.Time
	Envelope     *Envelope
}

// Collector returns the peers of one collector, case-insensitively.
func (r *RISPeers) Collector(code string) ([]RISPeer, bool) {
	peers, ok := r.Peers[strings.ToUpper(code)]
	return peers, ok
}

// Collectors lists the collector codes in sorted order.
func (r *RISPeers) Collectors() []string {
	codes := make([]string, 0, len(r.Peers))
	for code := range r.Peers {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// All returns every peer across all collectors, grouped by collector in
// sorted code order.
func (r *RISPeers) All() []RISPeer {
	var peers []RISPeer
	for _, code := range r.Collectors() {
		peers = append(peers, r.Peers[code]...)
	}
	return peers
}

// RISPeers returns the peers of all RIS route collectors at a point in
// time.
func (c *Client) RISPeers(ctx context.Context, opts *RISPeersOptions) (*RISPeers, error) {
	params := url.Values{}
	params.Set("preferred_version", risPeersVersion)

	if opts != nil && !opts.QueryTime.IsZero() {
		params.Set("query_time", isoTime(opts.QueryTime))
	}

	env, err := c.get(ctx, risPeersPath, params)
	if err != nil {
		return nil, err
	}
	return decodeRISPeers(env)
}

type risPeerData struct {
	ASN           json.RawMessage `json:"asn"`
	IP            string          `json:"ip"`
	V4PrefixCount int             `json:"v4_prefix_count"`
	V6PrefixCount int             `json:"v6_prefix_count"`
}

type risPeersData struct {
	Peers        map[string][]risPeerData `json:"peers"`
	LatestTime   string                   `json:"latest_time"`
	EarliestTime string                   `json:"earliest_time"`
	Parameters   struct {
		QueryTime string `json:"query_time"`
	} `json:"parameters"`
}

func decodeRISPeers(env *Envelope) (*RISPeers, error) {
	var data risPeersData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, decodeError(env, risPeersPath, err)
	}

	result := &RISPeers{
		Peers:    make(map[string][]RISPeer, len(data.Peers)),
		Envelope: env,
	}

	var err error
	if result.QueryTime, err = parseTime(data.Parameters.QueryTime); err != nil {
		return nil, decodeError(env, risPeersPath, err)
	}
	if result.EarliestTime, err = parseTime(data.EarliestTime); err != nil {
		return nil, decodeError(env, risPeersPath, err)
	}
	if result.LatestTime, err = parseTime(data.LatestTime); err != nil {
		return nil, decodeError(env, risPeersPath, err)
	}

	for code, rawPeers := range data.Peers {
		peers := make([]RISPeer, 0, len(rawPeers))
		for _, p := range rawPeers {
			asn, err := asnFromJSON(p.ASN)
			if err != nil {
				return nil, decodeError(env, risPeersPath, err)
			}
			ip, err := ParseAddr(p.IP)
			if err != nil {
				return nil, decodeError(env, risPeersPath, err)
			}
			peers = append(peers, RISPeer{
				ASN:           asn,
				IP:            ip,
				V4PrefixCount: p.V4PrefixCount,
				V6PrefixCount: p.V6PrefixCount,
			})
		}
		result.Peers[strings.ToUpper(code)] = peers
	}

	return result, nil
}
