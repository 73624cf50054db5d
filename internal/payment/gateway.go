// Package payment is a thin HTTP client for the hosted payment gateway. One
// checkout attempt maps to one gateway session: the client creates a session
// from the cart's line items and later reads the session back to learn whether
// it was paid.
package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// LineItem is one purchasable line sent to the gateway. Amount is the unit
// price in minor currency units.
type LineItem struct {
	Name     string `json:"name"`
	Amount   int64  `json:"amount"`
	Quantity int    `json:"quantity"`
}

// Session is the gateway's view of one checkout attempt
type Session struct {
	ID            string `json:"id"`
	URL           string `json:"url"`            // Hosted payment page
	PaymentStatus string `json:"payment_status"` // "paid" once the customer paid
}

// sessionResponse wraps a session or a gateway-side error
type sessionResponse struct {
	Session
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client talks to the gateway's REST API
type Client struct {
	secretKey string
	apiURL    string
	http      *http.Client
}

// NewClient builds a gateway client for the given secret key and base URL
func NewClient(secretKey, apiURL string) *Client {
	return &Client{
		secretKey: secretKey,
		apiURL:    apiURL,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateSession asks the gateway for a new checkout session covering the given
// line items. The customer is redirected to successURL or cancelURL afterwards.
func (c *Client) CreateSession(lines []LineItem, successURL, cancelURL string) (*Session, error) {
	payload := map[string]any{
		"mode":        "payment",
		"currency":    "usd",
		"line_items":  lines,
		"success_url": successURL,
		"cancel_url":  cancelURL,
	}
	sess, err := c.do(http.MethodPost, c.apiURL+"/v1/checkout/sessions", payload)
	if err != nil {
		return nil, err
	}
	if sess.ID == "" {
		return nil, fmt.Errorf("gateway returned empty session id")
	}
	return sess, nil
}

// GetSession reads an existing session back, including its payment status
func (c *Client) GetSession(sessionID string) (*Session, error) {
	return c.do(http.MethodGet, c.apiURL+"/v1/checkout/sessions/"+sessionID, nil)
}

func (c *Client) do(method, url string, payload any) (*Session, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway API error (%d): %s", resp.StatusCode, string(raw))
	}

	var out sessionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %v", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("gateway error: %s", out.Error.Message)
	}
	return &out.Session, nil
}
