package ripestat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const asnNeighboursFixture = `{
	"messages": [],
	"see_also": [],
	"version": "4.1",
	"data_call_status": "supported - connecting to Ursa",
	"cached": false,
	"data": {
		"query_time": "2011-12-01T08:00:00",
		"neighbours": [
			{
				"asn": 1853,
				"position": "left",
				"details": {
					"peer_count": {"v4": 288, "v6": 0},
					"path_count": 81,
					"paths": [
						{
							"path": "1103 20965 1853 1205",
							"locations": {
								"v4": [{"location": "rrc03", "peer_count": 3}],
								"v6": []
							}
						}
					]
				}
			}
		],
		"neighbour_counts": {"left": 1, "right": 0, "uncertain": 1, "unique": 2},
		"resource": "1205",
		"lod": 1,
		"latest_time": "2021-04-22T00:00:00",
		"earliest_time": "2014-07-01T00:00:00"
	},
	"query_id": "20210422200440-eff7ae1f-de59-4dfd-bd45-26ddb220ca38",
	"process_time": 26,
	"server_id": "app121",
	"build_version": "live.2021.4.19.159",
	"status": "ok",
	"status_code": 200,
	"time": "2021-04-22T20:04:40.611329"
}`

func TestASNNeighbours(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/asn-neighbours/data.json" {
			t.Errorf("Path = %s, expected /asn-neighbours/data.json", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("resource") != "1205" {
			t.Errorf("resource = %s, expected 1205", q.Get("resource"))
		}
		if q.Get("lod") != "1" {
			t.Errorf("lod = %s, expected 1", q.Get("lod"))
		}
		fmt.Fprint(w, asnNeighboursFixture)
	}))
	defer server.Close()

	client, err := NewClient(WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	result, err := client.ASNNeighbours(context.Background(), 1205, &ASNNeighboursOptions{LOD: 1})
	if err != nil {
		t.Fatalf("ASNNeighbours failed: %v", err)
	}

	if result.Resource != 1205 {
		t.Errorf("Resource = %d, expected 1205", result.Resource)
	}
	if result.LOD != 1 {
		t.Errorf("LOD = %d, expected 1", result.LOD)
	}
	if len(result.Neighbours) != 1 {
		t.Fatalf("Neighbour count = %d, expected 1", len(result.Neighbours))
	}

	n := result.Neighbours[0]
	if n.ASN != 1853 {
		t.Errorf("ASN = %d, expected 1853", n.ASN)
	}
	if n.Position != "left" {
		t.Errorf("Position = %s, expected left", n.Position)
	}
	if n.Details == nil {
		t.Fatal("Details missing at lod 1")
	}
	if n.Details.PeerCount.V4 != 288 || n.Details.PeerCount.V6 != 0 {
		t.Errorf("PeerCount = %+v, expected v4 288, v6 0", n.Details.PeerCount)
	}
	if n.Details.PathCount != 81 {
		t.Errorf("PathCount = %d, expected 81", n.Details.PathCount)
	}
	if len(n.Details.Paths) != 1 {
		t.Fatalf("Path count = %d, expected 1", len(n.Details.Paths))
	}

	path := n.Details.Paths[0]
	wantPath := []uint32{1103, 20965, 1853, 1205}
	if len(path.Path) != len(wantPath) {
		t.Fatalf("Path length = %d, expected %d", len(path.Path), len(wantPath))
	}
	for i := range wantPath {
		if path.Path[i] != wantPath[i] {
			t.Errorf("Path[%d] = %d, expected %d", i, path.Path[i], wantPath[i])
		}
	}
	if len(path.Locations.V4) != 1 || path.Locations.V4[0].Location != "rrc03" {
		t.Errorf("Locations.V4 = %v, expected [{rrc03 3}]", path.Locations.V4)
	}
	if path.Locations.V4[0].PeerCount != 3 {
		t.Errorf("Location peer count = %d, expected 3", path.Locations.V4[0].PeerCount)
	}

	if result.Counts.Left != 1 || result.Counts.Right != 0 || result.Counts.Uncertain != 1 || result.Counts.Unique != 2 {
		t.Errorf("Counts = %+v, expected left 1, right 0, uncertain 1, unique 2", result.Counts)
	}
	if !result.QueryTime.Equal(time.Date(2011, 12, 1, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("QueryTime = %v, expected 2011-12-01T08:00:00", result.QueryTime)
	}
	if !result.EarliestTime.Equal(time.Date(2014, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("EarliestTime = %v, expected 2014-07-01T00:00:00", result.EarliestTime)
	}
}

func TestASNNeighboursDefaultLOD(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lod") != "0" {
			t.Errorf("lod = %s, expected 0", r.URL.Query().Get("lod"))
		}
		fmt.Fprint(w, asnNeighboursFixture)
	}))
	defer server.Close()

	client, err := NewClient(WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if _, err := client.ASNNeighbours(context.Background(), 1205, nil); err != nil {
		t.Fatalf("ASNNeighbours failed: %v", err)
	}
}

func TestASNNeighboursInvalidLOD(t *testing.T) {
	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	_, err = client.ASNNeighbours(context.Background(), 1205, &ASNNeighboursOptions{LOD: 2})
	if err == nil {
		t.Fatal("Expected error for lod 2")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Error type = %T, expected *ValidationError", err)
	}
}

func TestASNNeighboursQueryTime(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query_time") != "2011-12-01T08:00:00" {
			t.Errorf("query_time = %s, expected 2011-12-01T08:00:00", r.URL.Query().Get("query_time"))
		}
		fmt.Fprint(w, asnNeighboursFixture)
	}))
	defer server.Close()

	client, err := NewClient(WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	opts := &ASNNeighboursOptions{QueryTime: time.Date(2011, 12, 1, 8, 0, 0, 0, time.UTC)}
	if _, err := client.ASNNeighbours(context.Background(), 1205, opts); err != nil {
		t.Fatalf("ASNNeighbours failed: %v", err)
	}
}
