// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package epic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the public EPIC host. Both the API and the image archive
// live beneath it.
const DefaultBaseURL = "https://epic.gsfc.nasa.gov"

// Client is a minimal EPIC API client. The zero value is not usable, use
// NewClient.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
}

// options holds optional overrides for NewClient.
type options struct {
	baseURL   string
	http      *http.Client
	timeout   time.Duration
	userAgent string
}

// Option customizes a Client.
type Option func(*options)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithHTTPClient injects the http.Client used for all requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.http = c }
}

// WithTimeout sets a per-request timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// NewClient constructs a Client. Without options it talks to DefaultBaseURL
// with no timeout.
func NewClient(opts ...Option) *Client {
	o := options{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}

	hc := o.http
	if hc == nil {
		hc = &http.Client{}
	}
	if o.timeout > 0 {
		c := *hc
		c.Timeout = o.timeout
		hc = &c
	}

	return &Client{
		baseURL:   strings.TrimRight(o.baseURL, "/"),
		http:      hc,
		userAgent: o.userAgent,
	}
}

// BaseURL returns the host the client talks to. It is also the archive base
// for ArchiveURL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient exposes the underlying http.Client so archive downloads share
// its transport and timeout.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// All returns the raw JSON array of every record for typ.
func (c *Client) All(ctx context.Context, typ string) ([]byte, error) {
	if !ValidType(typ) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, typ)
	}
	doc, err := c.get(ctx, fmt.Sprintf("%s/api/%s/all", c.baseURL, url.PathEscape(typ)))
	if err != nil {
		return nil, err
	}
	return doc.Bytes(), nil
}

// LatestDate returns the most recent capture date (YYYY-MM-DD) available for
// typ. It is the upper bound for date selection.
func (c *Client) LatestDate(ctx context.Context, typ string) (string, error) {
	raw, err := c.All(ctx, typ)
	if err != nil {
		return "", err
	}

	result := gjson.ParseBytes(raw)
	if !result.IsArray() {
		return "", &ParseError{Value: truncate(string(raw), 64), Err: fmt.Errorf("expected a JSON array")}
	}

	// Only the date matters here so skip decoding the rest of each record.
	var dates []string
	result.ForEach(func(_, value gjson.Result) bool {
		dates = append(dates, value.Get("date").String())
		return true
	})
	log.Debugf("%s: scanned %d records for max date", typ, len(dates))

	return MaxDate(dates...)
}

// Images returns the records captured on date for typ, in the order the API
// returned them.
func (c *Client) Images(ctx context.Context, typ, date string) ([]Record, error) {
	if !ValidType(typ) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, typ)
	}
	if !ValidDate(date) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	doc, err := c.get(ctx, fmt.Sprintf("%s/api/%s/date/%s", c.baseURL, url.PathEscape(typ), date))
	if err != nil {
		return nil, err
	}

	var records []Record
	if err := json.Unmarshal(doc.Bytes(), &records); err != nil {
		return nil, fmt.Errorf("failed to decode records for %s/%s: %w", typ, date, err)
	}
	if records == nil {
		records = []Record{}
	}

	return records, nil
}

// get issues a GET and returns the body. Any non-2xx status is a
// NetworkError.
func (c *Client) get(ctx context.Context, u string) (bytes.Buffer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return bytes.Buffer{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log.Debugf("GET %s", u)
	resp, err := c.http.Do(req)
	if err != nil {
		return bytes.Buffer{}, &NetworkError{Method: http.MethodGet, URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return bytes.Buffer{}, &NetworkError{
			Method:     http.MethodGet,
			URL:        u,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return bytes.Buffer{}, &NetworkError{Method: http.MethodGet, URL: u, StatusCode: resp.StatusCode, Err: err}
	}

	return doc, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + ".."
}
