package reportapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/oksasatya/digital-user-report/pkg/metrics"
)

// Endpoint names an upstream report. Local routes reuse the same name.
type Endpoint string

const (
	DigitalUsersLocal        Endpoint = "usuarios-digitales-local"
	AffiliationPhotos        Endpoint = "afiliaciones-fotos"
	AffiliationsOverTime     Endpoint = "afiliaciones-por-tiempo"
	AffiliationAttemptReport Endpoint = "reporte-intentos-afiliaciones-nuevo"
	AttemptMetrics           Endpoint = "metricas-intentos-nuevo"
	Retries                  Endpoint = "reintentos"
)

// Endpoints lists every proxied report
var Endpoints = []Endpoint{
	DigitalUsersLocal,
	AffiliationPhotos,
	AffiliationsOverTime,
	AffiliationAttemptReport,
	AttemptMetrics,
	Retries,
}

// Envelope is the upstream response shape. Data is kept raw; it is passed through untouched.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Total   *int            `json:"total,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// UpstreamError carries a failed upstream response
type UpstreamError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("report api http error (%d): %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch calls GET {base}/api/{endpoint}?{params}
func (c *Client) Fetch(ctx context.Context, endpoint Endpoint, params url.Values) (*Envelope, error) {
	u := c.baseURL + "/api/" + string(endpoint)
	if enc := params.Encode(); enc != "" {
		u += "?" + enc
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(string(endpoint), "error").Inc()
		return nil, err
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestsTotal.WithLabelValues(string(endpoint), strconv.Itoa(resp.StatusCode)).Inc()

	body, _ := io.ReadAll(resp.Body)

	// non-2xx -> error with status and body text
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Status: resp.Status, Body: strings.TrimSpace(string(body))}
	}

	var out Envelope
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = out.Message
		}
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Status: resp.Status, Body: msg}
	}
	if out.Total == nil {
		if n, ok := arrayLen(out.Data); ok {
			out.Total = &n
		}
	}
	return &out, nil
}

// arrayLen counts the elements of a JSON array without decoding them
func arrayLen(raw json.RawMessage) (int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return 0, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0, false
	}
	return len(items), true
}
