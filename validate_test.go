package ripestat

import (
	"encoding/json"
	"errors"
	"net/netip"
	"testing"
	"time"
)

func TestParseASN(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"0", 0, false},
		{"3333", 3333, false},
		{"4294967295", 4294967295, false},
		{"4294967296", 0, true},
		{"-1", 0, true},
		{"AS3333", 0, true},
		{"3333.5", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseASN(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseASN(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseASN(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseASN(%q) = %d, expected %d", tt.in, got, tt.want)
		}
	}
}

func TestParseASNErrorType(t *testing.T) {
	_, err := ParseASN("not-a-number")
	if err == nil {
		t.Fatal("Expected error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Error type = %T, expected *ValidationError", err)
	}
}

func TestValidateASN(t *testing.T) {
	if _, err := ValidateASN(3333); err != nil {
		t.Errorf("ValidateASN(3333) failed: %v", err)
	}
	if _, err := ValidateASN(4294967295); err != nil {
		t.Errorf("ValidateASN(4294967295) failed: %v", err)
	}
	if _, err := ValidateASN(-1); err == nil {
		t.Error("ValidateASN(-1): expected error")
	}
	if _, err := ValidateASN(4294967296); err == nil {
		t.Error("ValidateASN(4294967296): expected error")
	}
}

func TestParseAddr(t *testing.T) {
	addr, err := ParseAddr("193.0.6.139")
	if err != nil {
		t.Fatalf("ParseAddr failed: %v", err)
	}
	if addr != netip.MustParseAddr("193.0.6.139") {
		t.Errorf("Addr = %s, expected 193.0.6.139", addr)
	}

	addr, err = ParseAddr("2001:67c:2e8::1")
	if err != nil {
		t.Fatalf("ParseAddr failed: %v", err)
	}
	if !addr.Is6() {
		t.Errorf("Addr = %s, expected IPv6", addr)
	}

	for _, bad := range []string{"193.0.6.139/32", "fe80::1%eth0", "example.com", ""} {
		if _, err := ParseAddr(bad); err == nil {
			t.Errorf("ParseAddr(%q): expected error", bad)
		}
	}
}

func TestParsePrefix(t *testing.T) {
	p, err := ParsePrefix("193.0.0.0/21", false)
	if err != nil {
		t.Fatalf("ParsePrefix failed: %v", err)
	}
	if p != netip.MustParsePrefix("193.0.0.0/21") {
		t.Errorf("Prefix = %s, expected 193.0.0.0/21", p)
	}

	// Host bits are masked away when strict is off.
	p, err = ParsePrefix("193.0.6.139/21", false)
	if err != nil {
		t.Fatalf("ParsePrefix failed: %v", err)
	}
	if p != netip.MustParsePrefix("193.0.0.0/21") {
		t.Errorf("Prefix = %s, expected 193.0.0.0/21", p)
	}

	// With strict set, host bits are an error.
	if _, err := ParsePrefix("193.0.6.139/21", true); err == nil {
		t.Error("Expected error for host bits in strict mode")
	}
	if _, err := ParsePrefix("193.0.0.0/21", true); err != nil {
		t.Errorf("ParsePrefix strict failed on clean prefix: %v", err)
	}

	if _, err := ParsePrefix("193.0.0.0", false); err == nil {
		t.Error("Expected error for bare address")
	}
	if _, err := ParsePrefix("193.0.0.0/33", false); err == nil {
		t.Error("Expected error for out-of-range length")
	}
}

func TestParseAddrRange(t *testing.T) {
	// Bare CIDR passes through.
	prefixes, err := ParseAddrRange("193.0.0.0/16")
	if err != nil {
		t.Fatalf("ParseAddrRange failed: %v", err)
	}
	if len(prefixes) != 1 || prefixes[0] != netip.MustParsePrefix("193.0.0.0/16") {
		t.Errorf("Prefixes = %v, expected [193.0.0.0/16]", prefixes)
	}

	// A CIDR-aligned range collapses to one prefix.
	prefixes, err = ParseAddrRange("193.0.18.0-193.0.21.255")
	if err != nil {
		t.Fatalf("ParseAddrRange failed: %v", err)
	}
	want := []netip.Prefix{
		netip.MustParsePrefix("193.0.18.0/23"),
		netip.MustParsePrefix("193.0.20.0/23"),
	}
	if len(prefixes) != len(want) {
		t.Fatalf("Prefix count = %d, expected %d: %v", len(prefixes), len(want), prefixes)
	}
	for i := range want {
		if prefixes[i] != want[i] {
			t.Errorf("Prefixes[%d] = %s, expected %s", i, prefixes[i], want[i])
		}
	}

	// Spaces around the dash are fine; registry objects carry them.
	prefixes, err = ParseAddrRange("193.0.0.0 - 193.0.7.255")
	if err != nil {
		t.Fatalf("ParseAddrRange failed: %v", err)
	}
	if len(prefixes) != 1 || prefixes[0] != netip.MustParsePrefix("193.0.0.0/21") {
		t.Errorf("Prefixes = %v, expected [193.0.0.0/21]", prefixes)
	}

	for _, bad := range []string{"193.0.0.0-", "-193.0.0.0", "193.0.0.0-example", ""} {
		if _, err := ParseAddrRange(bad); err == nil {
			t.Errorf("ParseAddrRange(%q): expected error", bad)
		}
	}
}

func TestParseTime(t *testing.T) {
	// The second-precision form used in query parameters.
	got, err := parseTime("2021-04-14T16:00:00")
	if err != nil {
		t.Fatalf("parseTime failed: %v", err)
	}
	want := time.Date(2021, 4, 14, 16, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Time = %v, expected %v", got, want)
	}

	// Envelope timestamps carry fractional seconds.
	got, err = parseTime("2021-04-14T14:16:02.142290")
	if err != nil {
		t.Fatalf("parseTime failed: %v", err)
	}
	if got.Second() != 2 || got.Nanosecond() != 142290000 {
		t.Errorf("Time = %v, expected fractional seconds preserved", got)
	}

	// Registry timestamps carry an explicit zone.
	got, err = parseTime("2003-03-17T12:15:57Z")
	if err != nil {
		t.Fatalf("parseTime failed: %v", err)
	}
	if got.Year() != 2003 || got.Hour() != 12 {
		t.Errorf("Time = %v, expected 2003-03-17T12:15:57Z", got)
	}

	if _, err := parseTime("yesterday"); err == nil {
		t.Error("Expected error for unparseable time")
	}
}

func TestISOTimeRoundTrip(t *testing.T) {
	in := "2011-12-12T16:00:00"
	parsed, err := parseTime(in)
	if err != nil {
		t.Fatalf("parseTime failed: %v", err)
	}
	if out := isoTime(parsed); out != in {
		t.Errorf("isoTime = %s, expected %s", out, in)
	}
}

func TestASNFromJSON(t *testing.T) {
	// The service emits ASNs as numbers in some calls and quoted
	// strings in others.
	got, err := asnFromJSON(json.RawMessage(`3333`))
	if err != nil {
		t.Fatalf("asnFromJSON failed: %v", err)
	}
	if got != 3333 {
		t.Errorf("ASN = %d, expected 3333", got)
	}

	got, err = asnFromJSON(json.RawMessage(`"13041"`))
	if err != nil {
		t.Fatalf("asnFromJSON failed: %v", err)
	}
	if got != 13041 {
		t.Errorf("ASN = %d, expected 13041", got)
	}

	if _, err := asnFromJSON(json.RawMessage(`"AS3333"`)); err == nil {
		t.Error("Expected error for prefixed ASN")
	}
}

func TestASPathFromString(t *testing.T) {
	path, err := asPathFromString("34854 6939 1853 1853 1205")
	if err != nil {
		t.Fatalf("asPathFromString failed: %v", err)
	}
	want := []uint32{34854, 6939, 1853, 1853, 1205}
	if len(path) != len(want) {
		t.Fatalf("Path length = %d, expected %d", len(path), len(want))
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("Path[%d] = %d, expected %d", i, path[i], want[i])
		}
	}

	if _, err := asPathFromString("34854 foo 1205"); err == nil {
		t.Error("Expected error for non-numeric hop")
	}
}
