package vanna

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Package vanna is a thin client for the external natural-language-to-SQL
// service. It is optional: when no base URL is configured the caller uses
// the local keyword dispatcher instead, and any error here makes the caller
// fall back deterministically — no retries.

// ErrNotConfigured is returned when no base URL is set.
var ErrNotConfigured = errors.New("vanna: base URL not configured")

// Answer is the service response for one question.
type Answer struct {
	Answer  string           `json:"answer"`
	SQL     string           `json:"sql"`
	Results []map[string]any `json:"results"`
}

type question struct {
	Question string `json:"question"`
}

// Client talks to a Vanna-compatible generate-sql endpoint.
type Client struct {
	http *resty.Client
}

// New builds a Client against the given base URL. An empty baseURL yields a
// client whose calls return ErrNotConfigured, which keeps the wiring in the
// chat service unconditional.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		return &Client{}
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetRetryCount(0),
	}
}

// Configured reports whether a base URL was provided.
func (c *Client) Configured() bool {
	return c.http != nil
}

// GenerateSQL asks the service to answer a natural-language question.
func (c *Client) GenerateSQL(ctx context.Context, q string) (*Answer, error) {
	if c.http == nil {
		return nil, ErrNotConfigured
	}
	var ans Answer
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(question{Question: q}).
		SetResult(&ans).
		Post("/generate-sql")
	if err != nil {
		return nil, fmt.Errorf("vanna request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("vanna status %d", resp.StatusCode())
	}
	return &ans, nil
}
