package ripestat

import (
	"context"
	"encoding/json"
	"net/netip"
	"net/url"
)

const (
	networkInfoPath    = "network-info"
	networkInfoVersion = "1.0"
)

// NetworkInfo is the decoded network-info response: the prefix an
// address belongs to and the ASNs announcing it.
type NetworkInfo struct {
	ASNs     []uint32
	Prefix   netip.Prefix
	Envelope *Envelope
}

// NetworkInfo returns the announced prefix and origin ASNs for a single
// IP address.
func (c *Client) NetworkInfo(ctx context.Context, addr netip.Addr) (*NetworkInfo, error) {
	if !addr.IsValid() {
		return nil, validationErrorf("address", "missing")
	}

	params := url.Values{}
	params.Set("preferred_version", networkInfoVersion)
	params.Set("resource", addr.String())

	env, err := c.get(ctx, networkInfoPath, params)
	if err != nil {
		return nil, err
	}
	return decodeNetworkInfo(env)
}

type networkInfoData struct {
	ASNs   []json.RawMessage `json:"asns"`
	Prefix string            `json:"prefix"`
}

func decodeNetworkInfo(env *Envelope) (*NetworkInfo, error) {
	var data networkInfoData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, decodeError(env, networkInfoPath, err)
	}

	prefix, err := ParsePrefix(data.Prefix, false)
	if err != nil {
		return nil, decodeError(env, networkInfoPath, err)
	}

	asns := make([]uint32, 0, len(data.ASNs))
	for _, raw := range data.ASNs {
		asn, err := asnFromJSON(raw)
		if err != nil {
			return nil, decodeError(env, networkInfoPath, err)
		}
		asns = append(asns, asn)
	}

	return &NetworkInfo{
		ASNs:     asns,
		Prefix:   prefix,
		Envelope: env,
	}, nil
}
