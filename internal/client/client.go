// Package client is the HTTP client for the shop's report API.
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
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/marcus/tailor/internal/models"
	"golang.org/x/sync/singleflight"
)

// Sentinel errors for common HTTP error classes.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// RequestIDHeader carries a per-request id for server-side log correlation.
const RequestIDHeader = "X-Request-ID"

// Client is an HTTP client for the report API.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client

	measurements singleflight.Group
}

// New creates a new API client.
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// HealthResponse is the response from GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthCheck hits the /healthz endpoint to verify server reachability.
func (c *Client) HealthCheck(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doNoAuth(ctx, http.MethodGet, "/healthz", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Report methods ---

// FetchPendingSales returns one page of the pending sales report.
func (c *Client) FetchPendingSales(ctx context.Context, page, perPage int, search string) (*models.PendingPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	if search != "" {
		params.Set("search", search)
	}

	var resp models.PendingPage
	if err := c.do(ctx, http.MethodGet, "/v1/reports/pending-sales?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// statusUpdateRequest is the body for PATCH /v1/sales-order-items/{id}/status.
type statusUpdateRequest struct {
	StatusID models.Status `json:"status_id"`
}

// UpdateItemStatus changes the status of a sales order item.
func (c *Client) UpdateItemStatus(ctx context.Context, itemID string, status models.Status) error {
	path := fmt.Sprintf("/v1/sales-order-items/%s/status", url.PathEscape(itemID))
	return c.do(ctx, http.MethodPatch, path, statusUpdateRequest{StatusID: status}, nil)
}

// DeleteItem removes a sales order item.
func (c *Client) DeleteItem(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/sales-order-items/"+url.PathEscape(itemID), nil, nil)
}

// Measurements fetches the measurement sheet of an order line. Concurrent
// calls for the same line share one request.
func (c *Client) Measurements(ctx context.Context, orderID, itemID string) (*models.MeasurementSheet, error) {
	key := orderID + "/" + itemID
	v, err, _ := c.measurements.Do(key, func() (any, error) {
		path := fmt.Sprintf("/v1/sales-orders/%s/items/%s/measurements", url.PathEscape(orderID), url.PathEscape(itemID))
		var resp models.MeasurementMain
		if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, err
		}
		return flattenMeasurements(orderID, itemID, &resp), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.MeasurementSheet), nil
}

func flattenMeasurements(orderID, itemID string, m *models.MeasurementMain) *models.MeasurementSheet {
	sheet := &models.MeasurementSheet{
		OrderID:      orderID,
		ItemID:       itemID,
		Date:         m.MeasurementDate,
		Measurements: make([]models.Measurement, 0, len(m.Details)),
	}
	for _, d := range m.Details {
		sheet.Measurements = append(sheet.Measurements, models.Measurement{
			Name:     d.Master.Name,
			DataType: d.Master.DataType,
			Value:    d.Value,
		})
	}
	return sheet
}

// --- Profile methods ---

// Profile returns the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (*models.UserProfile, error) {
	var resp models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/v1/me/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProfile replaces the signed-in user's editable profile fields.
func (c *Client) UpdateProfile(ctx context.Context, p *models.UserProfile) (*models.UserProfile, error) {
	var resp models.UserProfile
	if err := c.do(ctx, http.MethodPut, "/v1/me/profile", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- HTTP helpers ---

// APIError is the standard error body from the server.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code
}

// do executes an authenticated HTTP request.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	return c.doRequest(ctx, method, path, body, result, true)
}

// doNoAuth executes an unauthenticated HTTP request.
func (c *Client) doNoAuth(ctx context.Context, method, path string, body, result any) error {
	return c.doRequest(ctx, method, path, body, result, false)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, result any, auth bool) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth && c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}

func decodeError(status int, body []byte) error {
	var apiErr APIError
	if json.Unmarshal(body, &apiErr) != nil || apiErr.Code == "" {
		switch status {
		case http.StatusUnauthorized:
			return ErrUnauthorized
		case http.StatusForbidden:
			return ErrForbidden
		case http.StatusNotFound:
			return ErrNotFound
		}
		return fmt.Errorf("HTTP %d: %s", status, string(body))
	}

	switch status {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, apiErr.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
	default:
		apiErr.Status = status
		return &apiErr
	}
}

// UserMessage returns a short, notification-sized description of err.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.Is(err, ErrUnauthorized):
		return "Not signed in: set api_token"
	case errors.Is(err, ErrForbidden):
		return "Not allowed"
	case errors.Is(err, ErrNotFound):
		return "Not found"
	default:
		return fallback
	}
}
