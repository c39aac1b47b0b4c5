package daraja

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"mboga/pkg/utils"
)

type Config struct {
	ShortCode      string
	Passkey        string
	ConsumerKey    string
	ConsumerSecret string
	// BaseURL is the Daraja API root, e.g. https://sandbox.safaricom.co.ke
	BaseURL string
	// CallbackURL is where the provider posts the stkCallback result.
	CallbackURL string
}

type Client struct {
	cfg        Config
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type STKPushRequest struct {
	// Phone must already be in international form (254XXXXXXXXX).
	Phone string
	// Amount in whole KES; the STK push API takes no decimals.
	Amount int64
	// AccountReference shows on the payer's statement, e.g. the order number.
	AccountReference string
	Description      string
}

type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// RejectionError is the provider turning down a push request synchronously,
// before any payment attempt reaches the subscriber's handset.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("daraja rejected stk push: %s", e.Message)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// Token returns a cached OAuth access token, fetching a fresh one when the
// cached token is within a minute of expiry.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-time.Minute)) {
		return c.accessToken, nil
	}

	url := c.cfg.BaseURL + "/oauth/v1/generate?grant_type=client_credentials"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.cfg.ConsumerKey + ":" + c.cfg.ConsumerSecret))
	req.Header.Set("Authorization", "Basic "+basic)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("daraja token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("daraja token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("daraja token request failed: status %d: %s", resp.StatusCode, string(body))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("daraja token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("daraja token response missing access_token")
	}

	ttl := 55 * time.Minute
	if secs, err := time.ParseDuration(tok.ExpiresIn + "s"); err == nil && secs > 0 {
		ttl = secs
	}
	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(ttl)
	return c.accessToken, nil
}

// Password derives the STK push request signature:
// base64(shortcode + passkey + timestamp).
func Password(shortCode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortCode + passkey + timestamp))
}

// STKPush sends a push-payment request. The returned CheckoutRequestID is the
// correlation id the provider echoes back in the asynchronous callback.
func (c *Client) STKPush(ctx context.Context, push STKPushRequest) (*STKPushResponse, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := utils.DarajaTimestamp(time.Now())
	payload := map[string]interface{}{
		"BusinessShortCode": c.cfg.ShortCode,
		"Password":          Password(c.cfg.ShortCode, c.cfg.Passkey, timestamp),
		"Timestamp":         timestamp,
		"TransactionType":   "CustomerPayBillOnline",
		"Amount":            push.Amount,
		"PartyA":            push.Phone,
		"PartyB":            c.cfg.ShortCode,
		"PhoneNumber":       push.Phone,
		"CallBackURL":       c.cfg.CallbackURL,
		"AccountReference":  push.AccountReference,
		"TransactionDesc":   push.Description,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := c.cfg.BaseURL + "/mpesa/stkpush/v1/processrequest"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("daraja stk push request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("daraja stk push response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &RejectionError{Message: errorMessage(body, resp.StatusCode)}
	}

	var pushResp STKPushResponse
	if err := json.Unmarshal(body, &pushResp); err != nil {
		return nil, fmt.Errorf("daraja stk push response: %w", err)
	}
	if pushResp.ResponseCode != "0" {
		return nil, &RejectionError{Message: pushResp.ResponseDescription}
	}
	if pushResp.CheckoutRequestID == "" {
		return nil, &RejectionError{Message: "response missing CheckoutRequestID"}
	}
	return &pushResp, nil
}

func errorMessage(body []byte, status int) string {
	var e struct {
		ErrorMessage string `json:"errorMessage"`
		ErrorCode    string `json:"errorCode"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.ErrorMessage != "" {
		return e.ErrorMessage
	}
	return fmt.Sprintf("status %d", status)
}
