package ripestat

import (
	"context"
	"encoding/json"
	"net/netip"
	"net/url"
	"time"
)

const (
	addressSpaceHierarchyPath    = "address-space-hierarchy"
	addressSpaceHierarchyVersion = "1.3"
)

// Inetnum is one registry object in the address-space hierarchy. Field
// names follow the RPSL attribute keys the registry uses; attributes
// absent from an object stay empty.
type Inetnum struct {
	Inetnum      string `json:"inetnum"`
	Inet6num     string `json:"inet6num"`
	Netname      string `json:"netname"`
	Descr        string `json:"descr"`
	Org          string `json:"org"`
	Remarks      string `json:"remarks"`
	Country      string `json:"country"`
	AdminC       string `json:"admin-c"`
	TechC        string `json:"tech-c"`
	Status       string `json:"status"`
	MntBy        string `json:"mnt-by"`
	MntRoutes    string `json:"mnt-routes"`
	MntLower     string `json:"mnt-lower"`
	MntDomains   string `json:"mnt-domains"`
	Created      string `json:"created"`
	LastModified string `json:"last-modified"`
	Source       string `json:"source"`
}

// Block returns the object's range attribute, whichever address family
// it belongs to.
func (i Inetnum) Block() string {
	if i.Inetnum != "" {
		return i.Inetnum
	}
	return i.Inet6num
}

// Prefixes expands the object's range into its covering CIDR set.
func (i Inetnum) Prefixes() ([]netip.Prefix, error) {
	return ParseAddrRange(i.Block())
}

// AddressSpaceHierarchy is the decoded address-space-hierarchy
// response: the registry objects at, below, and above a prefix.
type AddressSpaceHierarchy struct {
	RIR          string
	Resource     netip.Prefix
	Exact        []Inetnum
	MoreSpecific []Inetnum
	LessSpecific []Inetnum
	QueryTime    time.Time
	Envelope     *Envelope
}

// AddressSpaceHierarchy returns the registry objects surrounding a
// prefix in the address-space tree.
func (c *Client) AddressSpaceHierarchy(ctx context.Context, prefix netip.Prefix) (*AddressSpaceHierarchy, error) {
	if !prefix.IsValid() {
		return nil, validationErrorf("prefix", "missing")
	}

	params := url.Values{}
	params.Set("preferred_version", addressSpaceHierarchyVersion)
	params.Set("resource", prefix.String())

	env, err := c.get(ctx, addressSpaceHierarchyPath, params)
	if err != nil {
		return nil, err
	}
	return decodeAddressSpaceHierarchy(env)
}

type addressSpaceHierarchyData struct {
	RIR          string    `json:"rir"`
	Resource     string    `json:"resource"`
	Exact        []Inetnum `json:"exact"`
	MoreSpecific []Inetnum `json:"more_specific"`
	LessSpecific []Inetnum `json:"less_specific"`
	QueryTime    string    `json:"query_time"`
}

func decodeAddressSpaceHierarchy(env *Envelope) (*AddressSpaceHierarchy, error) {
	var data addressSpaceHierarchyData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, decodeError(env, addressSpaceHierarchyPath, err)
	}

	resource, err := ParsePrefix(data.Resource, false)
	if err != nil {
		return nil, decodeError(env, addressSpaceHierarchyPath, err)
	}
	queryTime, err := parseTime(data.QueryTime)
	if err != nil {
		return nil, decodeError(env, addressSpaceHierarchyPath, err)
	}

	return &AddressSpaceHierarchy{
		RIR:          data.RIR,
		Resource:     resource,
		Exact:        data.Exact,
		MoreSpecific: data.MoreSpecific,
		LessSpecific: data.LessSpecific,
		QueryTime:    queryTime,
		Envelope:     env,
	}, nil
}
