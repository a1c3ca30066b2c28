package ripestat

import (
	"context"
	"encoding/json"
	"net/netip"
	"net/url"
	"strconv"
)

const (
	rpkiValidationStatusPath    = "rpki-validation"
	rpkiValidationStatusVersion = "0.2"
)

// RPKIValidity classifies a route against the published ROAs.
type RPKIValidity string

// Validity states returned by the rpki-validation data call.
const (
	RPKIValid         RPKIValidity = "valid"
	RPKIInvalidASN    RPKIValidity = "invalid_asn"
	RPKIInvalidLength RPKIValidity = "invalid_length"
	RPKIUnknown       RPKIValidity = "unknown"
)

// ROA is one Route Origin Authorization considered during validation.
type ROA struct {
	Origin    uint32
	Prefix    netip.Prefix
	Validity  RPKIValidity
	Source    string
	MaxLength int
}

// RPKIValidationStatus is the decoded rpki-validation response for one
// origin/prefix pair.
type RPKIValidationStatus struct {
	Resource       uint32
	Prefix         netip.Prefix
	Status         RPKIValidity
	Validator      string
	ValidatingROAs []ROA
	Envelope       *Envelope
}

// RPKIValidationStatus validates an announcement of prefix by asn
// against the ROAs the RPKI validator has seen.
func (c *Client) RPKIValidationStatus(ctx context.Context, asn uint32, prefix netip.Prefix) (*RPKIValidationStatus, error) {
	if !prefix.IsValid() {
		return nil, validationErrorf("prefix", "missing")
	}

	params := url.Values{}
	params.Set("preferred_version", rpkiValidationStatusVersion)
	params.Set("resource", strconv.FormatUint(uint64(asn), 10))
	params.Set("prefix", prefix.String())

	env, err := c.get(ctx, rpkiValidationStatusPath, params)
	if err != nil {
		return nil, err
	}
	return decodeRPKIValidationStatus(env)
}

type rpkiValidationStatusData struct {
	ValidatingROAs []struct {
		Origin    json.RawMessage `json:"origin"`
		Prefix    string          `json:"prefix"`
		Validity  string          `json:"validity"`
		Source    string          `json:"source"`
		MaxLength int             `json:"max_length"`
	} `json:"validating_roas"`
	Status    string `json:"status"`
	Validator string `json:"validator"`
	Resource  string `json:"resource"`
	Prefix    string `json:"prefix"`
}

func decodeRPKIValidationStatus(env *Envelope) (*RPKIValidationStatus, error) {
	var data rpkiValidationStatusData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, decodeError(env, rpkiValidationStatusPath, err)
	}

	resource, err := ParseASN(data.Resource)
	if err != nil {
		return nil, decodeError(env, rpkiValidationStatusPath, err)
	}
	prefix, err := ParsePrefix(data.Prefix, false)
	if err != nil {
		return nil, decodeError(env, rpkiValidationStatusPath, err)
	}

	result := &RPKIValidationStatus{
		Resource:       resource,
		Prefix:         prefix,
		Status:         RPKIValidity(data.Status),
		Validator:      data.Validator,
		ValidatingROAs: make([]ROA, 0, len(data.ValidatingROAs)),
		Envelope:       env,
	}

	for _, roa := range data.ValidatingROAs {
		origin, err := asnFromJSON(roa.Origin)
		if err != nil {
			return nil, decodeError(env, rpkiValidationStatusPath, err)
		}
		roaPrefix, err := ParsePrefix(roa.Prefix, false)
		if err != nil {
			return nil, decodeError(env, rpkiValidationStatusPath, err)
		}
		result.ValidatingROAs = append(result.ValidatingROAs, ROA{
			Origin:    origin,
			Prefix:    roaPrefix,
			Validity:  RPKIValidity(roa.Validity),
			Source:    roa.Source,
			MaxLength: roa.MaxLength,
		})
	}

	return result, nil
}
