package webnotas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"webnotas/cmd/internal/domain/entity"
)

const (
	companiesPath = "/api/companies"
	jobsPath      = "/api/jobs"
	syncPath      = "/api/sync/"
	documentsPath = "/api/documents"
)

// Client talks to the WEBNOTAS upstream. Every call is a single attempt with
// no client-side timeout, the caller decides whether to retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call performs one request against path. A non-nil body is sent as JSON and,
// when out is non-nil, a successful response is decoded into it. Any failure is
// reported as a *RequestError.
func (c *Client) Call(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Message: err.Error(), Err: err}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return newTransportError(method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newTransportError(method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readErrorResponse(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{
			Message: MsgInvalidResponse,
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("decode %s %s: %w", method, path, err),
		}
	}
	return nil
}

// readErrorResponse never fails itself: a body that cannot be parsed maps to
// MsgUnexpected.
func readErrorResponse(resp *http.Response) *RequestError {
	reqErr := &RequestError{Status: resp.StatusCode}

	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		reqErr.Message = MsgUnexpected
		return reqErr
	}

	if envelope.Error == "" {
		reqErr.Message = MsgRequestFailed
		return reqErr
	}
	reqErr.Message = envelope.Error
	return reqErr
}

func (c *Client) ListCompanies(ctx context.Context) ([]entity.Company, error) {
	var companies []entity.Company
	if err := c.Call(ctx, http.MethodGet, companiesPath, nil, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

// CreateCompany posts the form fields as-is. The accepted field set is decided
// by the upstream.
func (c *Client) CreateCompany(ctx context.Context, fields map[string]string) (*entity.Company, error) {
	if fields == nil {
		fields = map[string]string{}
	}

	var company entity.Company
	if err := c.Call(ctx, http.MethodPost, companiesPath, fields, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

func (c *Client) ListJobs(ctx context.Context) ([]entity.Job, error) {
	var jobs []entity.Job
	if err := c.Call(ctx, http.MethodGet, jobsPath, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// RequestSync asks the upstream to start a sync. Only the status matters, the
// acknowledgment body is discarded.
func (c *Client) RequestSync(ctx context.Context, companyID entity.ID) error {
	path := syncPath + url.PathEscape(companyID.String())
	return c.Call(ctx, http.MethodPost, path, struct{}{}, nil)
}

func (c *Client) ListDocuments(ctx context.Context, companyID entity.ID) ([]entity.Document, error) {
	query := url.Values{"company_id": []string{companyID.String()}}
	path := documentsPath + "?" + query.Encode()

	var docs []entity.Document
	if err := c.Call(ctx, http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
