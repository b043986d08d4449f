// Package razorpay implements the payment gateway adapter against the
// Razorpay payment-links API. Every call is bounded by a hard timeout and
// failures are returned as classified results, never as panics or
// propagated transport errors.
package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net"
	"net/http"
	"time"

	"filingdesk/internal/config"
	"filingdesk/internal/domain"
	"filingdesk/internal/port"
)

const defaultTimeout = 10 * time.Second

type client struct {
	http     *http.Client
	baseURL  string
	keyID    string
	secret   string
	currency string
	timeout  time.Duration
}

// NewClient creates a Razorpay-backed PaymentGateway.
func NewClient(cfg *config.GatewayConfig) port.PaymentGateway {
	timeout := defaultTimeout
	if cfg.TimeoutSecs > 0 {
		timeout = time.Duration(cfg.TimeoutSecs) * time.Second
	}
	return &client{
		http:     &http.Client{Timeout: timeout},
		baseURL:  cfg.BaseURL,
		keyID:    cfg.KeyID,
		secret:   cfg.KeySecret,
		currency: cfg.Currency,
		timeout:  timeout,
	}
}

type linkRequest struct {
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Description string            `json:"description"`
	Customer    linkCustomer      `json:"customer"`
	Notes       map[string]string `json:"notes"`
}

type linkCustomer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type linkResponse struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	ShortURL string `json:"short_url"`
	Status   string `json:"status"`
}

// RequestLink issues a payment link for the document. The correlation
// notes carry the document and obligation IDs so the gateway side can
// deduplicate re-invocations.
func (c *client) RequestLink(ctx context.Context, req *port.PaymentLinkRequest) *port.PaymentLinkResult {
	currency := req.Currency
	if currency == "" {
		currency = c.currency
	}

	notes := map[string]string{
		"document_id": req.DocumentID.String(),
	}
	if req.ObligationID != nil {
		notes["obligation_id"] = req.ObligationID.String()
	}

	body, err := json.Marshal(linkRequest{
		// Razorpay amounts are in the smallest currency unit.
		Amount:      int64(math.Round(req.Amount * 100)),
		Currency:    currency,
		Description: req.Description,
		Customer:    linkCustomer{Name: req.CustomerName, Email: req.CustomerEmail},
		Notes:       notes,
	})
	if err != nil {
		return failure(domain.GatewayErrGateway, fmt.Sprintf("encoding request: %v", err))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/payment_links", bytes.NewReader(body))
	if err != nil {
		return failure(domain.GatewayErrNetwork, fmt.Sprintf("building request: %v", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.keyID, c.secret)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		kind := classify(err)
		log.Printf("razorpay.RequestLink: document %s: %s: %v", req.DocumentID, kind, err)
		return failure(kind, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return failure(domain.GatewayErrNetwork, fmt.Sprintf("reading response: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("razorpay.RequestLink: document %s: gateway returned %d", req.DocumentID, resp.StatusCode)
		return failure(domain.GatewayErrGateway, fmt.Sprintf("gateway returned %d", resp.StatusCode))
	}

	var link linkResponse
	if err := json.Unmarshal(respBody, &link); err != nil {
		return failure(domain.GatewayErrGateway, fmt.Sprintf("decoding response: %v", err))
	}

	return &port.PaymentLinkResult{
		Success:  true,
		LinkID:   link.ID,
		OrderID:  link.OrderID,
		ShortURL: link.ShortURL,
	}
}

func classify(err error) domain.GatewayErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.GatewayErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.GatewayErrTimeout
	}
	return domain.GatewayErrNetwork
}

func failure(kind domain.GatewayErrorKind, msg string) *port.PaymentLinkResult {
	return &port.PaymentLinkResult{Success: false, ErrorKind: kind, Message: msg}
}
