package ripestat

import (
	"encoding/json"
	"fmt"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/BourgeoisBear/range2cidr"
)

// asnMax is the largest assignable 32-bit autonomous system number.
const asnMax = 4294967295

// ParseASN parses a decimal autonomous system number.
func ParseASN(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, validationErrorf("asn", "%q is not an integer between 0 and %d", s, uint64(asnMax))
	}
	return uint32(n), nil
}

// ValidateASN checks that n falls within the 32-bit ASN window. It
// exists for callers holding wider integer types; values already typed
// uint32 need no check.
func ValidateASN(n int64) (uint32, error) {
	if n < 0 || n > asnMax {
		return 0, validationErrorf("asn", "%d is not between 0 and %d", n, uint64(asnMax))
	}
	return uint32(n), nil
}

// ParseAddr parses a bare IPv4 or IPv6 address. Anything carrying a
// prefix length or a zone is rejected.
func ParseAddr(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, validationErrorf("address", "%q is not an IP address", s)
	}
	if addr.Zone() != "" {
		return netip.Addr{}, validationErrorf("address", "%q carries a zone", s)
	}
	return addr, nil
}

// ParsePrefix parses a CIDR prefix. With strict set, host bits beyond
// the prefix length must be zero; without it they are masked away. The
// returned prefix is always at its network boundary.
func ParsePrefix(s string, strict bool) (netip.Prefix, error) {
	p, err := netip.ParsePrefix(s)
	if err != nil {
		return netip.Prefix{}, validationErrorf("network", "%q is not an IP network", s)
	}
	masked := p.Masked()
	if strict && p.Addr() != masked.Addr() {
		return netip.Prefix{}, validationErrorf("network", "%q has host bits set", s)
	}
	return masked, nil
}

// ParseAddrRange decodes the address-block notations the service emits:
// a bare CIDR prefix, or a "first-last" range (with or without spaces
// around the dash), which is deaggregated into its minimal covering
// CIDR set.
func ParseAddrRange(s string) ([]netip.Prefix, error) {
	s = strings.TrimSpace(s)

	first, last, found := strings.Cut(s, "-")
	if !found {
		p, err := ParsePrefix(s, false)
		if err != nil {
			return nil, err
		}
		return []netip.Prefix{p}, nil
	}

	lo, err := ParseAddr(strings.TrimSpace(first))
	if err != nil {
		return nil, err
	}
	hi, err := ParseAddr(strings.TrimSpace(last))
	if err != nil {
		return nil, err
	}

	prefixes, err := range2cidr.Deaggregate(lo, hi)
	if err != nil {
		return nil, validationErrorf("range", "%q: %v", s, err)
	}
	return prefixes, nil
}

// isoFormat is the second-precision ISO-8601 layout the service speaks,
// both in query parameters and in response timestamps.
const isoFormat = "2006-01-02T15:04:05"

// isoTime renders t in the query-parameter form.
func isoTime(t time.Time) string {
	return t.Format(isoFormat)
}

// parseTime decodes a service timestamp. Fractional seconds and an
// explicit zone are tolerated on input.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(isoFormat, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}

// asnFromJSON decodes an ASN field the service emits as either a JSON
// number or a quoted string, depending on the data call.
func asnFromJSON(raw json.RawMessage) (uint32, error) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	return ParseASN(s)
}

// asPathFromString splits a space-delimited AS path into its ordered
// hop sequence.
func asPathFromString(s string) ([]uint32, error) {
	fields := strings.Fields(s)
	path := make([]uint32, 0, len(fields))
	for _, hop := range fields {
		n, err := ParseASN(hop)
		if err != nil {
			return nil, fmt.Errorf("AS path hop %q: not an ASN", hop)
		}
		path = append(path, n)
	}
	return path, nil
}
