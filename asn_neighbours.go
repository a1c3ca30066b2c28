package ripestat

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"
)

const (
	asnNeighboursPath    = "asn-neighbours"
	asnNeighboursVersion = "4.1"
)

// ASNNeighboursOptions narrows an asn-neighbours query.
type ASNNeighboursOptions struct {
	// LOD selects the level of detail: 0 for the bare neighbour list,
	// 1 to include per-path details. Anything else is rejected.
	LOD int

	// QueryTime selects the point in time to report on. Zero means the
	// latest available data point.
	QueryTime time.Time
}

// PathLocation is a collector location an AS path was seen at.
type PathLocation struct {
	Location  string `json:"location"`
	PeerCount int    `json:"peer_count"`
}

// PathLocations groups path sightings per IP version.
type PathLocations struct {
	V4 []PathLocation `json:"v4"`
	V6 []PathLocation `json:"v6"`
}

// NeighbourPath is one observed AS path the neighbour relation was
// derived from.
type NeighbourPath struct {
	Path      []uint32
	Locations PathLocations
}

// PeerCount summarizes peers per IP version.
type PeerCount struct {
	V4 int `json:"v4"`
	V6 int `json:"v6"`
}

// NeighbourDetails is the per-neighbour detail block, present only at
// level of detail 1.
type NeighbourDetails struct {
	PeerCount PeerCount
	PathCount int
	Paths     []NeighbourPath
}

// ASNNeighbour is one neighbour observed next to the queried ASN. The
// position is upstream-determined: left, right, or uncertain.
type ASNNeighbour struct {
	ASN      uint32
	Position string
	Details  *NeighbourDetails
}

// NeighbourCounts totals the neighbours by position.
type NeighbourCounts struct {
	Left      int `json:"left"`
	Right     int `json:"right"`
	Uncertain int `json:"uncertain"`
	Unique    int `json:"unique"`
}

// ASNNeighbours is the decoded asn-neighbours response.
type ASNNeighbours struct {
	Resource     uint32
	Neighbours   []ASNNeighbour
	Counts       NeighbourCounts
	LOD          int
	QueryTime    time.Time
	EarliestTime time.Time
	LatestTime   time.Time
	Envelope     *Envelope
}

// ASNNeighbours returns the network neighbours observed for an ASN.
func (c *Client) ASNNeighbours(ctx context.Context, asn uint32, opts *ASNNeighboursOptions) (*ASNNeighbours, error) {
	params := url.Values{}
	params.Set("preferred_version", asnNeighboursVersion)
	params.Set("resource", strconv.FormatUint(uint64(asn), 10))
	params.Set("lod", "0")

	if opts != nil {
		if opts.LOD != 0 && opts.LOD != 1 {
			return nil, validationErrorf("lod", "%d: must be 0 or 1", opts.LOD)
		}
		params.Set("lod", strconv.Itoa(opts.LOD))
		if !opts.QueryTime.IsZero() {
			params.Set("query_time", isoTime(opts.QueryTime))
		}
	}

	env, err := c.get(ctx, asnNeighboursPath, params)
	if err != nil {
		return nil, err
	}
	return decodeASNNeighbours(env)
}

type asnNeighboursData struct {
	Neighbours []struct {
		ASN      json.RawMessage `json:"asn"`
		Position string          `json:"position"`
		Details  *struct {
			PeerCount PeerCount `json:"peer_count"`
			PathCount int       `json:"path_count"`
			Paths     []struct {
				Path      string        `json:"path"`
				Locations PathLocations `json:"locations"`
			} `json:"paths"`
		} `json:"details"`
	} `json:"neighbours"`
	NeighbourCounts NeighbourCounts `json:"neighbour_counts"`
	Resource        string          `json:"resource"`
	LOD             int             `json:"lod"`
	QueryTime       string          `json:"query_time"`
	EarliestTime    string          `json:"earliest_time"`
	LatestTime      string          `json:"latest_time"`
}

func decodeASNNeighbours(env *Envelope) (*ASNNeighbours, error) {
	var data asnNeighboursData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, decodeError(env, asnNeighboursPath, err)
	}

	resource, err := ParseASN(data.Resource)
	if err != nil {
		return nil, decodeError(env, asnNeighboursPath, err)
	}

	result := &ASNNeighbours{
		Resource:   resource,
		Neighbours: make([]ASNNeighbour, 0, len(data.Neighbours)),
		Counts:     data.NeighbourCounts,
		LOD:        data.LOD,
		Envelope:   env,
	}

	if result.QueryTime, err = parseTime(data.QueryTime); err != nil {
		return nil, decodeError(env, asnNeighboursPath, err)
	}
	if result.EarliestTime, err = parseTime(data.EarliestTime); err != nil {
		return nil, decodeError(env, asnNeighboursPath, err)
	}
	if result.LatestTime, err = parseTime(data.LatestTime); err != nil {
		return nil, decodeError(env, asnNeighboursPath, err)
	}

	for _, n := range data.Neighbours {
		asn, err := asnFromJSON(n.ASN)
		if err != nil {
			return nil, decodeError(env, asnNeighboursPath, err)
		}

		neighbour := ASNNeighbour{ASN: asn, Position: n.Position}

		// The detail block only exists at lod 1.
		if n.Details != nil {
			details := &NeighbourDetails{
				PeerCount: n.Details.PeerCount,
				PathCount: n.Details.PathCount,
				Paths:     make([]NeighbourPath, 0, len(n.Details.Paths)),
			}
			for _, p := range n.Details.Paths {
				path, err := asPathFromString(p.Path)
				if err != nil {
					return nil, decodeError(env, asnNeighboursPath, err)
				}
				details.Paths = append(details.Paths, NeighbourPath{
					Path:      path,
					Locations: p.Locations,
				})
			}
			neighbour.Details = details
		}

		result.Neighbours = append(result.Neighbours, neighbour)
	}

	return result, nil
}
