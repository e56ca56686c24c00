// Package client talks to the shift block API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shiftblocks/internal/view"
)

const DefaultBaseURL = "http://localhost:8081"

type Client struct {
	HTTPClient *http.Client
	BaseURL    string
}

// Error is a non-2xx answer carrying the server's error envelope.
type Error struct {
	Status  int
	Code    string
	Message string
	Reason  string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error: status=%d", e.Status)
	}
	return fmt.Sprintf("api error: status=%d code=%s message=%s", e.Status, e.Code, e.Message)
}

// Code extracts the API error code from err, or "" if err is not an *Error.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

type CreateBlockRequest struct {
	Title    string `json:"title"`
	StartsAt string `json:"startsAt"`
	EndsAt   string `json:"endsAt"`
	Capacity int    `json:"capacity"`
	Notes    string `json:"notes,omitempty"`
}

func (c Client) ListBlocks(ctx context.Context) ([]view.Block, error) {
	var out view.List[view.Block]
	_, err := c.doJSON(ctx, http.MethodGet, "/v1/admin/blocks", nil, &out)
	return out.Items, err
}

func (c Client) CreateBlock(ctx context.Context, req CreateBlockRequest) (view.Block, error) {
	var out view.Block
	_, err := c.doJSON(ctx, http.MethodPost, "/v1/admin/blocks", req, &out)
	return out, err
}

func (c Client) CloseBlock(ctx context.Context, id string) (view.Block, error) {
	return c.blockAction(ctx, id, "close")
}

func (c Client) ReopenBlock(ctx context.Context, id string) (view.Block, error) {
	return c.blockAction(ctx, id, "reopen")
}

func (c Client) CancelBlock(ctx context.Context, id string) (view.Block, error) {
	return c.blockAction(ctx, id, "cancel")
}

func (c Client) blockAction(ctx context.Context, id, action string) (view.Block, error) {
	var out view.Block
	_, err := c.doJSON(ctx, http.MethodPost, "/v1/admin/blocks/"+url.PathEscape(id)+"/"+action, nil, &out)
	return out, err
}

func (c Client) ApproveBooking(ctx context.Context, id string) (view.Booking, error) {
	return c.bookingAction(ctx, id, "approve")
}

func (c Client) CancelBooking(ctx context.Context, id string) (view.Booking, error) {
	return c.bookingAction(ctx, id, "cancel")
}

func (c Client) bookingAction(ctx context.Context, id, action string) (view.Booking, error) {
	var out view.Booking
	_, err := c.doJSON(ctx, http.MethodPost, "/v1/admin/bookings/"+url.PathEscape(id)+"/"+action, nil, &out)
	return out, err
}

func (c Client) ListOpenBlocks(ctx context.Context) ([]view.Block, error) {
	var out view.List[view.Block]
	_, err := c.doJSON(ctx, http.MethodGet, "/v1/staff/blocks", nil, &out)
	return out.Items, err
}

func (c Client) RequestBooking(ctx context.Context, blockID, name, email string) (view.Booking, error) {
	body := map[string]string{"employeeName": name, "employeeEmail": email}
	var out view.Booking
	_, err := c.doJSON(ctx, http.MethodPost, "/v1/staff/blocks/"+url.PathEscape(blockID)+"/bookings", body, &out)
	return out, err
}

func (c Client) MyBookings(ctx context.Context, email string) ([]view.Booking, error) {
	var out view.List[view.Booking]
	q := url.Values{"email": {email}}
	_, err := c.doJSON(ctx, http.MethodGet, "/v1/staff/bookings?"+q.Encode(), nil, &out)
	return out.Items, err
}

func (c Client) doJSON(ctx context.Context, method, path string, reqBody any, respBody any) (int, error) {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 20 * time.Second}
	}
	base := strings.TrimRight(c.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	var body io.Reader
	if reqBody != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
			return 0, err
		}
		body = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode}
		var env struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
				Reason  string `json:"reason"`
			} `json:"error"`
		}
		if json.Unmarshal(b, &env) == nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			apiErr.Reason = env.Error.Reason
		}
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(b))
		}
		return resp.StatusCode, apiErr
	}

	if respBody != nil && len(b) > 0 {
		if err := json.Unmarshal(b, respBody); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w body=%s", err, string(b))
		}
	}
	return resp.StatusCode, nil
}
