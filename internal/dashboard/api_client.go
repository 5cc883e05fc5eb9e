package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
)

// APIClient talks to the report service HTTP API
type APIClient struct {
	baseURL string
	token   string
	loc     *time.Location
	http    *http.Client
}

func NewAPIClient(baseURL, token string, loc *time.Location, timeout time.Duration) *APIClient {
	if loc == nil {
		loc = time.UTC
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		loc:     loc,
		http:    &http.Client{Timeout: timeout},
	}
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// APIError is a failed response of the report service
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func (c *APIClient) do(ctx context.Context, method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		}
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func (c *APIClient) FetchUsers(ctx context.Context, f Filter) ([]Row, error) {
	q := url.Values{}
	if f.From != "" {
		q.Set("fechaInicio", f.From)
	}
	if f.To != "" {
		q.Set("fechaFin", f.To)
	}
	path := "/api/usuarios-digitales"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	var views []entity.ProjectedUserView
	if err := c.do(ctx, http.MethodGet, path, nil, &views); err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(views))
	for _, v := range views {
		rows = append(rows, NewRow(v, c.loc))
	}
	return rows, nil
}

func (c *APIClient) ListReasons(ctx context.Context) (map[string]string, error) {
	out := map[string]string{}
	if err := c.do(ctx, http.MethodGet, "/api/motivos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) SaveReason(ctx context.Context, id entity.DigitalUserID, text string) error {
	body := map[string]string{"idUsuarioDigital": id.String(), "motivo": text}
	return c.do(ctx, http.MethodPost, "/api/motivos", body, nil)
}
