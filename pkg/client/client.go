// Package client implements the browser-facing activity view logic as a Go
// library: a thin HTTP API client plus the reconciliation pieces layered on
// top of it (visibility overlay, debounced search, clamped pagination and
// the verification workflow).
package client

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

	"github.com/rs/zerolog"
)

// Activity mirrors the wire representation of a daily exercise report.
type Activity struct {
	ID           uint         `json:"id"`
	Student      *StudentInfo `json:"student_id,omitempty"`
	ActivityType string       `json:"activity_type"`
	Count        int          `json:"count"`
	ImageURL     string       `json:"image_url"`
	ImageProofID string       `json:"image_proof_id,omitempty"`
	Status       string       `json:"status"`
	Notes        string       `json:"notes,omitempty"`
	VerifiedByID *uint        `json:"verified_by_id,omitempty"`
	VerifiedAt   *time.Time   `json:"verified_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// StudentInfo nests the submitting student inside activity payloads.
type StudentInfo struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	NIS       string `json:"nis,omitempty"`
	ClassName string `json:"class_name,omitempty"`
}

// Pagination mirrors the pagination block of list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"totalPages"`
}

// Filter narrows an activity list request.
type Filter struct {
	ClassID   uint
	StudentID uint
	Status    string
	Search    string
	Page      int
	PageSize  int
}

// Page is one fetched page of activities together with server pagination.
type Page struct {
	Items      []Activity
	Pagination Pagination
}

// SubmitInput carries a new activity report.
type SubmitInput struct {
	ActivityType string `json:"activity_type"`
	Count        int    `json:"count"`
	ImageURL     string `json:"image_url"`
	ImageProofID string `json:"image_proof_id,omitempty"`
}

// Client talks to the activity API. All mutating calls are issued exactly
// once; retries are left to the caller since verification and deletion are
// not idempotent.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	logger     zerolog.Logger
}

// Option customises client construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithToken sets the bearer token attached to every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger.With().Str("component", "api_client").Logger()
	}
}

// New constructs an API client rooted at baseURL (e.g. "https://host/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetToken replaces the bearer token after a login or refresh.
func (c *Client) SetToken(token string) {
	c.token = token
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination,omitempty"`
	Message    string          `json:"message,omitempty"`
}

// ListActivities fetches one filtered page of activities.
func (c *Client) ListActivities(ctx context.Context, filter Filter) (Page, error) {
	return c.listPath(ctx, "/activities", filter)
}

// ListPending fetches the reviewer queue, always scoped to pending reports.
func (c *Client) ListPending(ctx context.Context, filter Filter) (Page, error) {
	filter.Status = ""
	return c.listPath(ctx, "/activities/pending", filter)
}

func (c *Client) listPath(ctx context.Context, path string, filter Filter) (Page, error) {
	query := url.Values{}
	if filter.ClassID > 0 {
		query.Set("class_id", strconv.FormatUint(uint64(filter.ClassID), 10))
	}
	if filter.StudentID > 0 {
		query.Set("student_id", strconv.FormatUint(uint64(filter.StudentID), 10))
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		query.Set("limit", strconv.Itoa(filter.PageSize))
	}

	env, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return Page{}, err
	}

	var items []Activity
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &items); err != nil {
			return Page{}, fmt.Errorf("%w: malformed activity list: %v", ErrNetwork, err)
		}
	}

	page := Page{Items: items}
	if env.Pagination != nil {
		page.Pagination = *env.Pagination
	}
	if page.Pagination.TotalPages < 1 {
		page.Pagination.TotalPages = 1
	}

	return page, nil
}

// Submit creates a new activity report. Input is validated locally before
// any network call so obviously bad reports never reach the server.
func (c *Client) Submit(ctx context.Context, input SubmitInput) (Activity, error) {
	if err := validateSubmit(input); err != nil {
		return Activity{}, err
	}

	env, err := c.do(ctx, http.MethodPost, "/activities", nil, input)
	if err != nil {
		return Activity{}, err
	}

	return decodeActivity(env.Data)
}

// Verify records a reviewer decision for a pending activity. A terminal
// activity yields ErrInvalidTransition.
func (c *Client) Verify(ctx context.Context, activityID uint, decision string, notes string) (Activity, error) {
	if decision != StatusVerified && decision != StatusRejected {
		return Activity{}, fmt.Errorf("%w: decision must be verified or rejected", ErrValidation)
	}

	body := map[string]string{"status": decision, "notes": notes}
	path := fmt.Sprintf("/activities/%d/verify", activityID)

	env, err := c.do(ctx, http.MethodPut, path, nil, body)
	if err != nil {
		return Activity{}, err
	}

	return decodeActivity(env.Data)
}

// Delete removes an activity record server-side.
func (c *Client) Delete(ctx context.Context, activityID uint) error {
	path := fmt.Sprintf("/activities/%d", activityID)

	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)

	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (envelope, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return envelope{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return envelope{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return envelope{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return envelope{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 400 {
			return envelope{}, fmt.Errorf("%w: malformed response: %v", ErrNetwork, err)
		}
	}

	if resp.StatusCode >= 400 {
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Str("message", env.Message).
			Msg("request rejected")

		return envelope{}, newAPIError(resp.StatusCode, env.Message)
	}

	return env, nil
}

func decodeActivity(data json.RawMessage) (Activity, error) {
	var activity Activity
	if err := json.Unmarshal(data, &activity); err != nil {
		return Activity{}, fmt.Errorf("%w: malformed activity: %v", ErrNetwork, err)
	}

	return activity, nil
}

func validateSubmit(input SubmitInput) error {
	switch input.ActivityType {
	case ActivityPushup, ActivitySitup, ActivityBackup:
	default:
		return fmt.Errorf("%w: unknown activity type %q", ErrValidation, input.ActivityType)
	}

	if input.Count <= 0 {
		return fmt.Errorf("%w: count must be greater than zero", ErrValidation)
	}

	if strings.TrimSpace(input.ImageURL) == "" {
		return fmt.Errorf("%w: proof image is required", ErrValidation)
	}

	return nil
}
