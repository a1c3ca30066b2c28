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
	announcedPrefixesPath    = "announced-prefixes"
	announcedPrefixesVersion = "1.2"
)

// AnnouncedPrefixesOptions narrows an announced-prefixes query. Zero
// values fall back to the service defaults.
type AnnouncedPrefixesOptions struct {
	// StartTime and EndTime bound the observation window.
	StartTime time.Time
	EndTime   time.Time

	// MinPeersSeeing drops prefixes seen by fewer full-feed RIS peers.
	MinPeersSeeing int
}

// Timeline is a contiguous period during which an observed fact held.
type Timeline struct {
	StartTime time.Time
	EndTime   time.Time
}

// AnnouncedPrefix is one prefix announced by the queried ASN, with the
// periods it was visible in. Timeline order is as received.
type AnnouncedPrefix struct {
	Prefix    netip.Prefix
	Timelines []Timeline
}

// AnnouncedPrefixes is the decoded announced-prefixes response.
type AnnouncedPrefixes struct {
	Resource       uint32
	Prefixes       []AnnouncedPrefix
	QueryStartTime time.Time
	QueryEndTime   time.Time
	EarliestTime   time.Time
	LatestTime     time.Time
	Envelope       *Envelope
}

// AnnouncedPrefixes returns all prefixes announced by an ASN during the
// query window.
func (c *Client) AnnouncedPrefixes(ctx context.Context, asn uint32, opts *AnnouncedPrefixesOptions) (*AnnouncedPrefixes, error) {
	params := url.Values{}
	params.Set("preferred_version", announcedPrefixesVersion)
	params.Set("resource", strconv.FormatUint(uint64(asn), 10))

	if opts != nil {
		if !opts.StartTime.IsZero() {
			params.Set("starttime", isoTime(opts.StartTime))
		}
		if !opts.EndTime.IsZero() {
			params.Set("endtime", isoTime(opts.EndTime))
		}
		if opts.MinPeersSeeing > 0 {
			params.Set("min_peers_seeing", strconv.Itoa(opts.MinPeersSeeing))
		}
	}

	env, err := c.get(ctx, announcedPrefixesPath, params)
	if err != nil {
		return nil, err
	}
	return decodeAnnouncedPrefixes(env)
}

type announcedPrefixesData struct {
	Prefixes []struct {
		Prefix    string `json:"prefix"`
		Timelines []struct {
			StartTime string `json:"starttime"`
			EndTime   string `json:"endtime"`
		} `json:"timelines"`
	} `json:"prefixes"`
	QueryStartTime string `json:"query_starttime"`
	QueryEndTime   string `json:"query_endtime"`
	Resource       string `json:"resource"`
	EarliestTime   string `json:"earliest_time"`
	LatestTime     string `json:"latest_time"`
}

func decodeAnnouncedPrefixes(env *Envelope) (*AnnouncedPrefixes, error) {
	var data announcedPrefixesData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, decodeError(env, announcedPrefixesPath, err)
	}

	resource, err := ParseASN(data.Resource)
	if err != nil {
		return nil, decodeError(env, announcedPrefixesPath, err)
	}

	result := &AnnouncedPrefixes{
		Resource: resource,
		Prefixes: make([]AnnouncedPrefix, 0, len(data.Prefixes)),
		Envelope: env,
	}

	for _, p := range data.Prefixes {
		prefix, err := ParsePrefix(p.Prefix, false)
		if err != nil {
			return nil, decodeError(env, announcedPrefixesPath, err)
		}

		timelines := make([]Timeline, 0, len(p.Timelines))
		for _, tl := range p.Timelines {
			start, err := parseTime(tl.StartTime)
			if err != nil {
				return nil, decodeError(env, announcedPrefixesPath, err)
			}
			end, err := parseTime(tl.EndTime)
			if err != nil {
				return nil, decodeError(env, announcedPrefixesPath, err)
			}
			timelines = append(timelines, Timeline{StartTime: start, EndTime: end})
		}

		result.Prefixes = append(result.Prefixes, AnnouncedPrefix{Prefix: prefix, Timelines: timelines})
	}

	if result.QueryStartTime, err = parseTime(data.QueryStartTime); err != nil {
		return nil, decodeError(env, announcedPrefixesPath, err)
	}
	if result.QueryEndTime, err = parseTime(data.QueryEndTime); err != nil {
		return nil, decodeError(env, announcedPrefixesPath, err)
	}
	if result.EarliestTime, err = parseTime(data.EarliestTime); err != nil {
		return nil, decodeError(env, announcedPrefixesPath, err)
	}
	if result.LatestTime, err = parseTime(data.LatestTime); err != nil {
		return nil, decodeError(env, announcedPrefixesPath, err)
	}

	return result, nil
}
