package report

import (
	"encoding/json"
	"net/netip"
	"strings"
	"testing"
)

func TestRPKIReportFormatText(t *testing.T) {
	result := &RPKIReport{
		Prefix:   "193.0.0.0/21",
		Origin:   3333,
		Status:   "valid",
		ROACount: 1,
	}

	text := result.FormatText(false)

	parts := strings.Split(text, "\t")
	if len(parts) != 4 {
		t.Errorf("Expected 4 tab-separated parts, got %d", len(parts))
	}
	if parts[0] != "193.0.0.0/21" {
		t.Errorf("Prefix = %s, expected 193.0.0.0/21", parts[0])
	}
	if parts[1] != "AS3333" {
		t.Errorf("Origin = %s, expected AS3333", parts[1])
	}
	if parts[2] != "valid" {
		t.Errorf("Status = %s, expected valid", parts[2])
	}
	if parts[3] != "1" {
		t.Errorf("ROACount = %s, expected 1", parts[3])
	}
}

func TestRPKIReportFormatTextColor(t *testing.T) {
	result := &RPKIReport{Prefix: "193.0.0.0/21", Origin: 3333, Status: "valid"}

	text := result.FormatText(true)
	if !strings.Contains(text, "\x1b[1;92mvalid\x1b[0m") {
		t.Errorf("Valid status should be painted green and bold, got %q", text)
	}

	result.Status = "invalid_asn"
	text = result.FormatText(true)
	if !strings.Contains(text, "\x1b[1;91minvalid_asn\x1b[0m") {
		t.Errorf("Invalid status should be painted red and bold, got %q", text)
	}

	result.Status = "unknown"
	text = result.FormatText(true)
	if !strings.Contains(text, "\x1b[93munknown\x1b[0m") {
		t.Errorf("Unknown status should be painted yellow, got %q", text)
	}
}

func TestRPKIReportFormatTextError(t *testing.T) {
	result := RPKIError(3333, netip.MustParsePrefix("193.0.0.0/21"), &testError{"request timed out"})

	text := result.FormatText(false)
	if !strings.Contains(text, "ERROR:") {
		t.Error("Error result should contain ERROR:")
	}
	if !strings.Contains(text, "request timed out") {
		t.Error("Error result should contain the error message")
	}
}

func TestRPKIReportFormatJSON(t *testing.T) {
	result := &RPKIReport{
		Prefix:   "193.0.0.0/21",
		Origin:   3333,
		Status:   "valid",
		ROACount: 1,
	}

	jsonStr, err := result.FormatJSON()
	if err != nil {
		t.Fatalf("FormatJSON failed: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if parsed["prefix"] != "193.0.0.0/21" {
		t.Errorf("prefix = %v, expected 193.0.0.0/21", parsed["prefix"])
	}
	if parsed["status"] != "valid" {
		t.Errorf("status = %v, expected valid", parsed["status"])
	}
	if _, ok := parsed["error"]; ok {
		t.Error("error key should be omitted when empty")
	}
}

func TestSweepFormatText(t *testing.T) {
	sweep := &Sweep{
		Results: []*RPKIReport{
			{Prefix: "193.0.0.0/21", Origin: 3333, Status: "valid", ROACount: 1},
			{Prefix: "193.0.10.0/23", Origin: 3333, Status: "unknown"},
		},
	}

	text := sweep.FormatText(false)
	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "193.0.0.0/21") {
		t.Error("First line should contain the first prefix")
	}
	if !strings.Contains(lines[1], "193.0.10.0/23") {
		t.Error("Second line should contain the second prefix")
	}
}

func TestSweepFormatJSON(t *testing.T) {
	sweep := &Sweep{
		Results: []*RPKIReport{
			{Prefix: "193.0.0.0/21", Origin: 3333, Status: "valid", ROACount: 1},
		},
	}

	jsonStr, err := sweep.FormatJSON()
	if err != nil {
		t.Fatalf("FormatJSON failed: %v", err)
	}

	var parsed []map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		t.Fatalf("Invalid JSON array: %v", err)
	}
	if len(parsed) != 1 {
		t.Errorf("Expected 1 result, got %d", len(parsed))
	}
}

func TestPathReportFormatText(t *testing.T) {
	report := &PathReport{
		Resource: "140.78.0.0/16",
		Collectors: []CollectorPaths{
			{
				RRC:      "RRC00",
				Location: "Amsterdam, Netherlands",
				Peers: []PeerPath{
					{Peer: "2.56.11.1", Origin: 1205, Path: "34854 6939 1853 1853 1205"},
				},
			},
		},
	}

	text := report.FormatText(false)
	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "RRC00") {
		t.Errorf("Header = %q, expected to start with RRC00", lines[0])
	}
	if !strings.Contains(lines[1], "34854 6939 1853 1853 1205") {
		t.Errorf("Peer line = %q, expected the AS path", lines[1])
	}

	colored := report.FormatText(true)
	if !strings.Contains(colored, "\x1b[1mRRC00") {
		t.Error("Collector header should be painted bold")
	}
}

func TestPrefixesReportFormatText(t *testing.T) {
	report := &PrefixesReport{
		ASN:      3333,
		Prefixes: []string{"193.0.10.0/23", "193.0.0.0/21"},
	}

	text := report.FormatText(false)
	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "193.0.10.0/23" {
		t.Errorf("First line = %s, expected 193.0.10.0/23", lines[0])
	}
}

func TestNeighboursReportFormatText(t *testing.T) {
	report := &NeighboursReport{
		ASN: 1205,
		Neighbours: []Neighbour{
			{ASN: 1853, Position: "left", V4Peers: 288, Paths: 81},
			{ASN: 6939, Position: "uncertain"},
		},
	}
	report.Counts.Left = 1
	report.Counts.Uncertain = 1
	report.Counts.Unique = 2

	text := report.FormatText(false)
	lines := strings.Split(text, "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "AS1853\tleft") {
		t.Errorf("First line = %q, expected AS1853 left", lines[0])
	}
	if !strings.Contains(lines[0], "81") {
		t.Error("Detailed neighbour line should contain the path count")
	}
	if lines[1] != "AS6939\tuncertain" {
		t.Errorf("Second line = %q, expected bare AS6939 uncertain", lines[1])
	}
	if !strings.Contains(lines[2], "unique 2") {
		t.Errorf("Summary = %q, expected the unique count", lines[2])
	}
}

func TestIPReportFormat(t *testing.T) {
	report := &IPReport{IP: "f17d:36e:9d3b:4b39:b3c4:44a:b2b1:45e1"}

	if report.FormatText(false) != report.IP {
		t.Errorf("FormatText = %s, expected the bare address", report.FormatText(false))
	}

	jsonStr, err := report.FormatJSON()
	if err != nil {
		t.Fatalf("FormatJSON failed: %v", err)
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if parsed["ip"] != report.IP {
		t.Errorf("ip = %v, expected %s", parsed["ip"], report.IP)
	}
}

func TestPaintDisabled(t *testing.T) {
	if paint(false, "text", sgrBold) != "text" {
		t.Error("paint should pass text through when color is off")
	}
	if paint(true, "text") != "text" {
		t.Error("paint should pass text through without codes")
	}
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}
