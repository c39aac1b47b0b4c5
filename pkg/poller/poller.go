// Package poller implements the client side of the payment status protocol:
// a timed polling loop against the status endpoint that stops on the first
// terminal status or on its own timeout. Server-side state stays
// authoritative; a client that gives up rolls nothing back.
package poller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrTimeout means no terminal status arrived within the polling budget.
	// The payment may still settle or fail server-side afterwards; the user
	// should verify against their M-Pesa messages.
	ErrTimeout = errors.New("payment polling timed out")

	// ErrUnknownPayment means the status endpoint kept returning not-found
	// past the grace window, so the id is treated as invalid rather than as
	// still-initializing.
	ErrUnknownPayment = errors.New("unknown payment reference")
)

const (
	DefaultInterval      = 3 * time.Second
	DefaultTimeout       = 90 * time.Second
	DefaultNotFoundGrace = 15 * time.Second
)

// Outcome is the terminal result of a polling run.
type Outcome struct {
	Status string
	Reason string
	// FinalOrder is the raw paid-order document, present only on "paid".
	FinalOrder json.RawMessage
}

type Poller struct {
	httpClient *http.Client
	baseURL    string
	token      string

	Interval time.Duration
	Timeout  time.Duration
	// NotFoundGrace is how long a not-found response still counts as
	// "status record not created yet" before the id is declared invalid.
	NotFoundGrace time.Duration
}

func New(baseURL, token string) *Poller {
	return &Poller{
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		baseURL:       baseURL,
		token:         token,
		Interval:      DefaultInterval,
		Timeout:       DefaultTimeout,
		NotFoundGrace: DefaultNotFoundGrace,
	}
}

// Wait polls until a terminal status, the timeout, or a poll error. One poll
// is in flight at a time; each ticker tick issues exactly one request. A
// transient network failure aborts the whole run rather than retrying.
func (p *Poller) Wait(ctx context.Context, checkoutRequestID string) (*Outcome, error) {
	ticker := time.NewTicker(p.Interval)
	deadline := time.NewTimer(p.Timeout)
	// Both timers stop together on every exit; neither may fire after the
	// loop has surfaced a result.
	defer ticker.Stop()
	defer deadline.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, ErrTimeout
		case <-ticker.C:
			status, found, err := p.poll(ctx, checkoutRequestID)
			if err != nil {
				return nil, err
			}
			if !found {
				if time.Since(start) > p.NotFoundGrace {
					return nil, ErrUnknownPayment
				}
				continue
			}

			switch status.Status {
			case "paid":
				return &Outcome{Status: status.Status, FinalOrder: status.FinalOrder}, nil
			case "failed", "cancelled":
				return &Outcome{Status: status.Status, Reason: status.Message}, nil
			default:
				// still pending, wait for the next tick
			}
		}
	}
}

type statusPayload struct {
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	FinalOrder json.RawMessage `json:"finalOrder"`
}

type statusEnvelope struct {
	Status  string        `json:"status"`
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Data    statusPayload `json:"data"`
}

func (p *Poller) poll(ctx context.Context, checkoutRequestID string) (*statusPayload, bool, error) {
	body, err := json.Marshal(map[string]string{"checkoutRequestID": checkoutRequestID})
	if err != nil {
		return nil, false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/getPaymentStatus", bytes.NewBuffer(body))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("status poll: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("status poll: unexpected status %d", resp.StatusCode)
	}

	var envelope statusEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, false, fmt.Errorf("status poll: decode response: %w", err)
	}
	return &envelope.Data, true, nil
}
