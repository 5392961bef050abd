// Package payment implements the payment-link collaborator client for the
// 4Geeks payments API.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/wuwei-shop/storefront/internal/domain"
	"github.com/wuwei-shop/storefront/internal/port"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL string
	token   string
	test    bool
	httpc   *http.Client
}

// NewClient builds a client for the payment-links API. test controls the
// collaborator's sandbox flag.
func NewClient(baseURL, token string, test bool) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		test:    test,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
}

var _ port.PaymentProvider = (*Client)(nil)

type createLinkRequest struct {
	Product   string   `json:"product"`
	Customers []string `json:"customers"`
	Test      bool     `json:"test"`
}

type createLinkResponse struct {
	Data struct {
		ID   string `json:"id"`
		Link string `json:"link"`
	} `json:"data"`
}

func (c *Client) CreatePaymentLink(ctx context.Context, productRef, _ string) (domain.PaymentLink, error) {
	body, err := json.Marshal(createLinkRequest{
		Product:   productRef,
		Customers: []string{},
		Test:      c.test,
	})
	if err != nil {
		return domain.PaymentLink{}, fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment-links/", bytes.NewReader(body))
	if err != nil {
		return domain.PaymentLink{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return domain.PaymentLink{}, &domain.CollaboratorError{Op: "fourgeeks.CreatePaymentLink", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.PaymentLink{}, &domain.CollaboratorError{
			Op:  "fourgeeks.CreatePaymentLink",
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var out createLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.PaymentLink{}, &domain.CollaboratorError{Op: "fourgeeks.CreatePaymentLink", Err: err}
	}

	return domain.PaymentLink{ID: out.Data.ID, URL: out.Data.Link}, nil
}
