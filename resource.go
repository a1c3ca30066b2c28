package ripestat

import (
	"net/netip"
	"strconv"
)

// ResourceKind identifies the concrete variant held by a Resource.
type ResourceKind int

// Resource variants, in classification order.
const (
	KindASN ResourceKind = iota + 1
	KindAddr
	KindPrefix
)

// Resource is the polymorphic query argument several data calls accept:
// an autonomous system number, a single IP address, or an IP network.
// Once classified, a Resource keeps its variant for good.
type Resource struct {
	kind   ResourceKind
	asn    uint32
	addr   netip.Addr
	prefix netip.Prefix
}

// ASN wraps an autonomous system number as a Resource.
func ASN(n uint32) Resource {
	return Resource{kind: KindASN, asn: n}
}

// Addr wraps a single IP address as a Resource.
func Addr(a netip.Addr) Resource {
	return Resource{kind: KindAddr, addr: a}
}

// Prefix wraps an IP network as a Resource.
func Prefix(p netip.Prefix) Resource {
	return Resource{kind: KindPrefix, prefix: p}
}

// ParseResource classifies s as an ASN, then an IP address, then an IP
// network; the first parse that succeeds decides the variant. The order
// matters: a purely numeric string is always taken as an ASN.
func ParseResource(s string) (Resource, error) {
	if n, err := ParseASN(s); err == nil {
		return ASN(n), nil
	}
	if a, err := ParseAddr(s); err == nil {
		return Addr(a), nil
	}
	if p, err := ParsePrefix(s, false); err == nil {
		return Prefix(p), nil
	}
	return Resource{}, validationErrorf("resource", "%q: expected ASN, IP address, or IP network", s)
}

// Kind reports the classified variant, or zero for an empty Resource.
func (r Resource) Kind() ResourceKind { return r.kind }

// IsZero reports whether r holds no value.
func (r Resource) IsZero() bool { return r.kind == 0 }

// ASN returns the ASN variant's value.
func (r Resource) ASN() (uint32, bool) {
	return r.asn, r.kind == KindASN
}

// Addr returns the address variant's value.
func (r Resource) Addr() (netip.Addr, bool) {
	return r.addr, r.kind == KindAddr
}

// Prefix returns the network variant's value.
func (r Resource) Prefix() (netip.Prefix, bool) {
	return r.prefix, r.kind == KindPrefix
}

// String renders the wire form used as the resource query parameter.
func (r Resource) String() string {
	switch r.kind {
	case KindASN:
		return strconv.FormatUint(uint64(r.asn), 10)
	case KindAddr:
		return r.addr.String()
	case KindPrefix:
		return r.prefix.String()
	}
	return ""
}
