package ripestat

import (
	"context"
	"encoding/json"
	"net/url"
	"time"
)

const (
	abuseContactFinderPath    = "abuse-contact-finder"
	abuseContactFinderVersion = "1.2"
)

// AbuseContact is one contact entry attached to a resource.
type AbuseContact struct {
	Description string `json:"description"`
	Email       string `json:"email"`
	Key         string `json:"key"`
}

// RemarkedObject points at a registry object carrying abuse-related
// remarks.
type RemarkedObject struct {
	Type string `json:"type"`
	Link string `json:"link"`
}

// AntiAbuseContacts groups every contact source found for a resource.
// When a dedicated abuse-c contact exists the other lists stay empty.
type AntiAbuseContacts struct {
	AbuseC             []AbuseContact   `json:"abuse_c"`
	Emails             []AbuseContact   `json:"emails"`
	ExtractedEmails    []AbuseContact   `json:"extracted_emails"`
	ObjectsWithRemarks []RemarkedObject `json:"objects_with_remarks"`
}

// Blocklist is one blocklist source with its entry count.
type Blocklist struct {
	List    string `json:"list"`
	Entries int    `json:"entries"`
}

// GlobalNetworkInfo describes special-purpose registry context for the
// resource, e.g. private address space.
type GlobalNetworkInfo struct {
	Description string `json:"description"`
	Name        string `json:"name"`
	Source      string `json:"source"`
	SourceURL   string `json:"source_url"`
}

// HolderInfo is the matching autnum or inet(6)num holder: the netname
// or as-name, and the registry resource it maps to.
type HolderInfo struct {
	Name     string `json:"name"`
	Resource string `json:"resource"`
}

// AbuseContactFinder is the decoded abuse-contact-finder response.
// MoreSpecifics and LessSpecifics keep the service's raw block
// notation; ParseAddrRange turns an entry into CIDR form.
type AbuseContactFinder struct {
	Resource          Resource
	Authorities       []string
	BlocklistInfo     []Blocklist
	GlobalNetworkInfo GlobalNetworkInfo
	AntiAbuseContacts AntiAbuseContacts
	HolderInfo        HolderInfo
	SpecialResources  []string
	MoreSpecifics     []string
	LessSpecifics     []string
	QueryTime         time.Time
	Envelope          *Envelope
}

// AbuseContactFinder returns abuse contact information for an ASN,
// address, or prefix. The information is registry-sourced and may be
// incomplete.
func (c *Client) AbuseContactFinder(ctx context.Context, resource Resource) (*AbuseContactFinder, error) {
	if resource.IsZero() {
		return nil, validationErrorf("resource", "missing")
	}

	params := url.Values{}
	params.Set("preferred_version", abuseContactFinderVersion)
	params.Set("resource", resource.String())

	env, err := c.get(ctx, abuseContactFinderPath, params)
	if err != nil {
		return nil, err
	}
	return decodeAbuseContactFinder(env)
}

type abuseContactFinderData struct {
	QueryTime         string            `json:"query_time"`
	Resource          string            `json:"resource"`
	Authorities       []string          `json:"authorities"`
	BlocklistInfo     []Blocklist       `json:"blocklist_info"`
	GlobalNetworkInfo GlobalNetworkInfo `json:"global_network_info"`
	AntiAbuseContacts AntiAbuseContacts `json:"anti_abuse_contacts"`
	HolderInfo        HolderInfo        `json:"holder_info"`
	SpecialResources  []string          `json:"special_resources"`
	MoreSpecifics     []string          `json:"more_specifics"`
	LessSpecifics     []string          `json:"less_specifics"`
}

func decodeAbuseContactFinder(env *Envelope) (*AbuseContactFinder, error) {
	var data abuseContactFinderData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, decodeError(env, abuseContactFinderPath, err)
	}

	resource, err := ParseResource(data.Resource)
	if err != nil {
		return nil, decodeError(env, abuseContactFinderPath, err)
	}
	queryTime, err := parseTime(data.QueryTime)
	if err != nil {
		return nil, decodeError(env, abuseContactFinderPath, err)
	}

	return &AbuseContactFinder{
		Resource:          resource,
		Authorities:       data.Authorities,
		BlocklistInfo:     data.BlocklistInfo,
		GlobalNetworkInfo: data.GlobalNetworkInfo,
		AntiAbuseContacts: data.AntiAbuseContacts,
		HolderInfo:        data.HolderInfo,
		SpecialResources:  data.SpecialResources,
		MoreSpecifics:     data.MoreSpecifics,
		LessSpecifics:     data.LessSpecifics,
		QueryTime:         queryTime,
		Envelope:          env,
	}, nil
}
