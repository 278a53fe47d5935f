package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout  = 10 * time.Second
	httpTimeoutEnvKey   = "SNAPVOTE_HTTP_TIMEOUT"
	adminPasswordEnvKey = "SNAPVOTE_ADMIN_PASSWORD"
)

// Client is a simple HTTP client for the snapvote API.
type Client struct {
	baseURL       string
	http          *http.Client
	sessionID     string
	adminPassword string
}

// NewClient creates a new API client. sessionID may be empty for
// operations that do not vote.
func NewClient(baseURL, sessionID string) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          &http.Client{Timeout: httpTimeoutFromEnv()},
		sessionID:     strings.TrimSpace(sessionID),
		adminPassword: strings.TrimSpace(os.Getenv(adminPasswordEnvKey)),
	}
}

// Ping checks whether the API server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *Client) GetInfo(ctx context.Context) (InfoResponse, error) {
	var resp InfoResponse
	err := c.do(ctx, http.MethodGet, "/v1/info", nil, nil, &resp)
	return resp, err
}

// Upload sends image bytes with an optional display name.
func (c *Client) Upload(ctx context.Context, displayName, filename string, content io.Reader) (ImageResponse, error) {
	var resp ImageResponse

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if displayName != "" {
		if err := mw.WriteField("display_name", displayName); err != nil {
			return resp, err
		}
	}
	part, err := mw.CreateFormFile("content", filename)
	if err != nil {
		return resp, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return resp, err
	}
	if err := mw.Close(); err != nil {
		return resp, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/images", &buf)
	if err != nil {
		return resp, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setSessionHeader(req)

	httpResp, err := c.http.Do(req)
	if err != nil {
		return resp, err
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode >= 400 {
		return resp, decodeError(httpResp)
	}
	err = json.NewDecoder(httpResp.Body).Decode(&resp)
	return resp, err
}

func (c *Client) ListImages(ctx context.Context) ([]ImageResponse, error) {
	var resp []ImageResponse
	err := c.do(ctx, http.MethodGet, "/v1/images", nil, nil, &resp)
	return resp, err
}

func (c *Client) GetImage(ctx context.Context, id string) (ImageResponse, error) {
	var resp ImageResponse
	err := c.do(ctx, http.MethodGet, "/v1/images/"+url.PathEscape(id), nil, nil, &resp)
	return resp, err
}

// ImageContent streams the raw image bytes to w.
func (c *Client) ImageContent(ctx context.Context, id string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/images/"+url.PathEscape(id)+"/content", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	_, err = io.Copy(w, resp.Body)
	return err
}

func (c *Client) Vote(ctx context.Context, id string) (VoteResponse, error) {
	var resp VoteResponse
	err := c.do(ctx, http.MethodPost, "/v1/images/"+url.PathEscape(id)+"/vote", nil, nil, &resp)
	return resp, err
}

func (c *Client) HasVoted(ctx context.Context, id string) (VotedResponse, error) {
	var resp VotedResponse
	err := c.do(ctx, http.MethodGet, "/v1/images/"+url.PathEscape(id)+"/voted", nil, nil, &resp)
	return resp, err
}

func (c *Client) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var resp []LeaderboardEntry
	err := c.do(ctx, http.MethodGet, "/v1/leaderboard", query, nil, &resp)
	return resp, err
}

func (c *Client) NewSession(ctx context.Context) (SessionResponse, error) {
	var resp SessionResponse
	err := c.do(ctx, http.MethodPost, "/v1/sessions", nil, nil, &resp)
	return resp, err
}

func (c *Client) Export(ctx context.Context) (ExportResponse, error) {
	var resp ExportResponse
	err := c.do(ctx, http.MethodGet, "/v1/export", nil, nil, &resp)
	return resp, err
}

// Reset wipes all images and votes. confirm must be true; the server
// rejects unconfirmed resets.
func (c *Client) Reset(ctx context.Context, confirm bool) (ResetResponse, error) {
	var resp ResetResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/admin/reset", nil)
	if err != nil {
		return resp, err
	}
	if confirm {
		req.Header.Set("X-Confirm", "true")
	}
	if c.adminPassword != "" {
		req.Header.Set("X-Admin-Password", c.adminPassword)
	}
	c.setSessionHeader(req)

	httpResp, err := c.http.Do(req)
	if err != nil {
		return resp, err
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode >= 400 {
		return resp, decodeError(httpResp)
	}
	err = json.NewDecoder(httpResp.Body).Decode(&resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setSessionHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		return &APIError{
			Status:    resp.StatusCode,
			Code:      errResp.Code,
			ErrorCode: errResp.ErrorCode,
			Message:   errResp.Error,
		}
	}
	return fmt.Errorf("api error: %s", resp.Status)
}

func (c *Client) setSessionHeader(req *http.Request) {
	if c.sessionID == "" || req == nil {
		return
	}
	req.Header.Set("X-Session-ID", c.sessionID)
}

func httpTimeoutFromEnv() time.Duration {
	value := strings.TrimSpace(os.Getenv(httpTimeoutEnvKey))
	if value == "" {
		return defaultHTTPTimeout
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultHTTPTimeout
}
