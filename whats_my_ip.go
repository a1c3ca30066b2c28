package ripestat

import (
	"context"
	"encoding/json"
	"net/netip"
	"net/url"
)

const (
	whatsMyIPPath    = "whats-my-ip"
	whatsMyIPVersion = "0.1"
)

// WhatsMyIP is the decoded whats-my-ip response: the address the API
// saw the request arrive from.
type WhatsMyIP struct {
	IP       netip.Addr
	Envelope *Envelope
}

// String returns the address in its canonical text form.
func (w *WhatsMyIP) String() string {
	return w.IP.String()
}

// WhatsMyIP returns the caller's public IP address as seen by the API.
func (c *Client) WhatsMyIP(ctx context.Context) (*WhatsMyIP, error) {
	params := url.Values{}
	params.Set("preferred_version", whatsMyIPVersion)

	env, err := c.get(ctx, whatsMyIPPath, params)
	if err != nil {
		return nil, err
	}
	return decodeWhatsMyIP(env)
}

type whatsMyIPData struct {
	IP string `json:"ip"`
}

func decodeWhatsMyIP(env *Envelope) (*WhatsMyIP, error) {
	var data whatsMyIPData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, decodeError(env, whatsMyIPPath, err)
	}

	ip, err := ParseAddr(data.IP)
	if err != nil {
		return nil, decodeError(env, whatsMyIPPath, err)
	}

	return &WhatsMyIP{IP: ip, Envelope: env}, nil
}
