package ripestat

import (
	"context"
	"encoding/json"
	"net/netip"
	"net/url"
	"strconv"
	"time"
)

const (
	routingHistoryPath    = "routing-history"
	routingHistoryVersion = "2.3"
)

// RoutingHistoryOptions narrows a routing-history query. Zero values
// fall back to the service defaults.
type RoutingHistoryOptions struct {
	// StartTime and EndTime bound the observation window.
	StartTime time.Time
	EndTime   time.Time

	// MinPeers drops segments seen by fewer full-feed RIS peers.
	MinPeers int

	// MaxRows soft-limits the number of returned routes.
	MaxRows int

	// IncludeFirstHop reports "origin firsthop" pairs instead of bare
	// origins.
	IncludeFirstHop bool

	// NormaliseVisibility adds a visibility ratio to every timeline.
	NormaliseVisibility bool
}

// RouteTimeline is a period during which a route was visible, with the
// number of full-feed peers seeing it. Visibility is only populated
// when the query asked for normalisation.
type RouteTimeline struct {
	StartTime       time.Time
	EndTime         time.Time
	FullPeersSeeing float64
	Visibility      float64
}

// PrefixHistory is one prefix's announcement periods under an origin.
type PrefixHistory struct {
	Prefix    netip.Prefix
	Timelines []RouteTimeline
}

// OriginHistory groups announced prefixes by origin. The origin stays a
// string because with IncludeFirstHop it may be an "origin firsthop"
// pair rather than a single ASN.
type OriginHistory struct {
	Origin   string
	Prefixes []PrefixHistory
}

// MaxFFPeers is the RIS full-table peer ceiling per IP version.
type MaxFFPeers struct {
	V4 int `json:"v4"`
	V6 int `json:"v6"`
}

// RoutingHistory is the decoded routing-history response.
type RoutingHistory struct {
	Resource         Resource
	ByOrigin         []OriginHistory
	QueryStartTime   time.Time
	QueryEndTime     time.Time
	TimeGranularity  int
	LatestMaxFFPeers MaxFFPeers
	Envelope         *Envelope
}

// Origins lists the origin labels present in the response, in order.
func (h *RoutingHistory) Origins() []string {
	origins := make([]string, 0, len(h.ByOrigin))
	for _, o := range h.ByOrigin {
		origins = append(origins, o.Origin)
	}
	return origins
}

// RoutingHistory returns the announcement history of an ASN or prefix.
func (c *Client) RoutingHistory(ctx context.Context, resource Resource, opts *RoutingHistoryOptions) (*RoutingHistory, error) {
	if resource.IsZero() {
		return nil, validationErrorf("resource", "missing")
	}

	params := url.Values{}
	params.Set("preferred_version", routingHistoryVersion)
	params.Set("resource", resource.String())

	if opts != nil {
		if !opts.StartTime.IsZero() {
			params.Set("starttime", isoTime(opts.StartTime))
		}
		if !opts.EndTime.IsZero() {
			params.Set("endtime", isoTime(opts.EndTime))
		}
		if opts.MinPeers > 0 {
			params.Set("min_peers", strconv.Itoa(opts.MinPeers))
		}
		if opts.MaxRows > 0 {
			params.Set("max_rows", strconv.Itoa(opts.MaxRows))
		}
		if opts.IncludeFirstHop {
			params.Set("include_first_hop", "true")
		}
		if opts.NormaliseVisibility {
			params.Set("normalise_visibility", "true")
		}
	}

	env, err := c.get(ctx, routingHistoryPath, params)
	if err != nil {
		return nil, err
	}
	return decodeRoutingHistory(env)
}

type routingHistoryData struct {
	ByOrigin []struct {
		Origin   string `json:"origin"`
		Prefixes []struct {
			Prefix    string `json:"prefix"`
			Timelines []struct {
				StartTime       string  `json:"starttime"`
				EndTime         string  `json:"endtime"`
				FullPeersSeeing float64 `json:"full_peers_seeing"`
				Visibility      float64 `json:"visibility"`
			} `json:"timelines"`
		} `json:"prefixes"`
	} `json:"by_origin"`
	Resource         string     `json:"resource"`
	QueryStartTime   string     `json:"query_starttime"`
	QueryEndTime     string     `json:"query_endtime"`
	TimeGranularity  int        `json:"time_granularity"`
	LatestMaxFFPeers MaxFFPeers `json:"latest_max_ff_peers"`
}

func decodeRoutingHistory(env *Envelope) (*RoutingHistory, error) {
	var data routingHistoryData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, decodeError(env, routingHistoryPath, err)
	}

	resource, err := ParseResource(data.Resource)
	if err != nil {
		return nil, decodeError(env, routingHistoryPath, err)
	}

	result := &RoutingHistory{
		Resource:         resource,
		ByOrigin:         make([]OriginHistory, 0, len(data.ByOrigin)),
		TimeGranularity:  data.TimeGranularity,
		LatestMaxFFPeers: data.LatestMaxFFPeers,
		Envelope:         env,
	}

	if result.QueryStartTime, err = parseTime(data.QueryStartTime); err != nil {
		return nil, decodeError(env, routingHistoryPath, err)
	}
	if result.QueryEndTime, err = parseTime(data.QueryEndTime); err != nil {
		return nil, decodeError(env, routingHistoryPath, err)
	}

	for _, origin := range data.ByOrigin {
		prefixes := make([]PrefixHistory, 0, len(origin.Prefixes))
		for _, p := range origin.Prefixes {
			prefix, err := ParsePrefix(p.Prefix, false)
			if err != nil {
				return nil, decodeError(env, routingHistoryPath, err)
			}

			timelines := make([]RouteTimeline, 0, len(p.Timelines))
			for _, tl := range p.Timelines {
				start, err := parseTime(tl.StartTime)
				if err != nil {
					return nil, decodeError(env, routingHistoryPath, err)
				}
				end, err := parseTime(tl.EndTime)
				if err != nil {
					return nil, decodeError(env, routingHistoryPath, err)
				}
				timelines = append(timelines, RouteTimeline{
					StartTime:       start,
					EndTime:         end,
					FullPeersSeeing: tl.FullPeersSeeing,
					Visibility:      tl.Visibility,
				})
			}

			prefixes = append(prefixes, PrefixHistory{Prefix: prefix, Timelines: timelines})
		}

		result.ByOrigin = append(result.ByOrigin, OriginHistory{
			Origin:   origin.Origin,
			Prefixes: prefixes,
		})
	}

	return result, nil
}
