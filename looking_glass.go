package ripestat

import (
	"context"
	"encoding/json"
	"net/netip"
	"net/url"
	"strings"
	"time"
)

const (
	lookingGlassPath    = "looking-glass"
	lookingGlassVersion = "2.1"
)

// LookingGlassPeer is one BGP peer's view of the queried prefix at a
// route collector.
type LookingGlassPeer struct {
	ASNOrigin   uint32
	ASPath      []uint32
	Community   []string
	LastUpdated time.Time
	Prefix      netip.Prefix
	Peer        netip.Addr
	Origin      string
	NextHop     netip.Addr
	LatestTime  time.Time
}

// RRC is one route collector with the peers it contributed.
type RRC struct {
	RRC      string
	Location string
	Peers    []LookingGlassPeer
}

// LookingGlass is the decoded looking-glass response: the queried
// resource as currently seen by every RIS route collector.
type LookingGlass struct {
	RRCs       []RRC
	QueryTime  time.Time
	LatestTime time.Time
	Envelope   *Envelope

	byRRC map[string]int
}

// Collector looks up one route collector by code. The lookup is
// case-insensitive; codes are normalized to uppercase.
func (lg *LookingGlass) Collector(code string) (RRC, bool) {
	i, ok := lg.byRRC[strings.ToUpper(code)]
	if !ok {
		return RRC{}, false
	}
	return lg.RRCs[i], true
}

// Peers returns the peers of every collector in one flat list.
func (lg *LookingGlass) Peers() []LookingGlassPeer {
	var peers []LookingGlassPeer
	for _, rrc := range lg.RRCs {
		peers = append(peers, rrc.Peers...)
	}
	return peers
}

// LookingGlass returns the current RIS view of an address or prefix.
func (c *Client) LookingGlass(ctx context.Context, resource Resource) (*LookingGlass, error) {
	if resource.IsZero() {
		return nil, validationErrorf("resource", "missing")
	}
	if _, ok := resource.ASN(); ok {
		return nil, validationErrorf("resource", "must be an IP address or prefix")
	}

	params := url.Values{}
	params.Set("preferred_version", lookingGlassVersion)
	params.Set("resource", resource.String())

	env, err := c.get(ctx, lookingGlassPath, params)
	if err != nil {
		return nil, err
	}
	return decodeLookingGlass(env)
}

type lookingGlassPeerData struct {
	ASNOrigin   json.RawMessage `json:"asn_origin"`
	ASPath      string          `json:"as_path"`
	Community   string          `json:"community"`
	LastUpdated string          `json:"last_updated"`
	Prefix      string          `json:"prefix"`
	Peer        string          `json:"peer"`
	Origin      string          `json:"origin"`
	NextHop     string          `json:"next_hop"`
	LatestTime  string          `json:"latest_time"`
}

type lookingGlassData struct {
	RRCs []struct {
		RRC      string                 `json:"rrc"`
		Location string                 `json:"location"`
		Peers    []lookingGlassPeerData `json:"peers"`
	} `json:"rrcs"`
	QueryTime  string `json:"query_time"`
	LatestTime string `json:"latest_time"`
}

func decodeLookingGlass(env *Envelope) (*LookingGlass, error) {
	var data lookingGlassData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, decodeError(env, lookingGlassPath, err)
	}

	result := &LookingGlass{
		RRCs:     make([]RRC, 0, len(data.RRCs)),
		Envelope: env,
		byRRC:    make(map[string]int, len(data.RRCs)),
	}

	var err error
	if result.QueryTime, err = parseTime(data.QueryTime); err != nil {
		return nil, decodeError(env, lookingGlassPath, err)
	}
	if result.LatestTime, err = parseTime(data.LatestTime); err != nil {
		return nil, decodeError(env, lookingGlassPath, err)
	}

	for _, rrc := range data.RRCs {
		peers := make([]LookingGlassPeer, 0, len(rrc.Peers))
		for _, p := range rrc.Peers {
			peer, err := decodeLookingGlassPeer(p)
			if err != nil {
				return nil, decodeError(env, lookingGlassPath, err)
			}
			peers = append(peers, peer)
		}

		result.byRRC[strings.ToUpper(rrc.RRC)] = len(result.RRCs)
		result.RRCs = append(result.RRCs, RRC{
			RRC:      rrc.RRC,
			Location: rrc.Location,
			Peers:    peers,
		})
	}

	return result, nil
}

func decodeLookingGlassPeer(p lookingGlassPeerData) (LookingGlassPeer, error) {
	var peer LookingGlassPeer
	var err error

	if peer.ASNOrigin, err = asnFromJSON(p.ASNOrigin); err != nil {
		return peer, err
	}
	if peer.ASPath, err = asPathFromString(p.ASPath); err != nil {
		return peer, err
	}
	peer.Community = strings.Fields(p.Community)
	if peer.LastUpdated, err = parseTime(p.LastUpdated); err != nil {
		return peer, err
	}
	if peer.Prefix, err = ParsePrefix(p.Prefix, false); err != nil {
		return peer, err
	}
	if peer.Peer, err = ParseAddr(p.Peer); err != nil {
		return peer, err
	}
	peer.Origin = p.Origin
	if peer.NextHop, err = ParseAddr(p.NextHop); err != nil {
		return peer, err
	}
	if peer.LatestTime, err = parseTime(p.LatestTime); err != nil {
		return peer, err
	}

	return peer, nil
}
