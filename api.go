package ripestat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Envelope is the outer wrapper every data call answers with. The data
// payload stays opaque here; each endpoint mapper owns its shape.
type Envelope struct {
	Status         string          `json:"status"`
	StatusCode     int             `json:"status_code"`
	Data           json.RawMessage `json:"data"`
	Messages       [][]string      `json:"messages"`
	SeeAlso        []interface{}   `json:"see_also"`
	Version        string          `json:"version"`
	DataCallName   string          `json:"data_call_name"`
	DataCallStatus string          `json:"data_call_status"`
	Cached         bool            `json:"cached"`
	QueryID        string          `json:"query_id"`
	ProcessTime    int             `json:"process_time"`
	ServerID       string          `json:"server_id"`
	BuildVersion   string          `json:"build_version"`
	Time           string          `json:"time"`

	// URL is the full request URL the envelope was fetched from.
	URL string `json:"-"`
}

// ResponseTime decodes the envelope's response timestamp.
func (e *Envelope) ResponseTime() (time.Time, error) {
	return parseTime(e.Time)
}

// get performs one blocking GET against a data-call path. Session
// parameters are merged into a copy of params; the caller's map is
// never touched. No retries: a failed call surfaces immediately and
// the caller owns any retry policy.
func (c *Client) get(ctx context.Context, path string, params url.Values) (*Envelope, error) {
	merged := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			merged.Add(k, v)
		}
	}
	if c.sourceApp != "" {
		merged.Set("sourceapp", c.sourceApp)
	}
	if c.dataOverloadLimit != "" {
		merged.Set("data_overload_limit", c.dataOverloadLimit)
	}

	fullURL := fmt.Sprintf("%s/%s/data.json?%s", c.baseURL, path, merged.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, &RequestError{URL: fullURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{URL: fullURL, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{
			URL: fullURL,
			Err: fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &ResponseError{URL: fullURL, Reason: "decode envelope", Err: err}
	}
	env.URL = fullURL

	// The envelope's own status code is authoritative: anything but 200
	// is an upstream-reported failure, including a missing field.
	if env.StatusCode != http.StatusOK {
		return nil, &ResponseError{
			URL:        fullURL,
			Status:     env.Status,
			StatusCode: env.StatusCode,
			Messages:   env.Messages,
		}
	}

	return &env, nil
}
