package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"expomall/internal/domain"
)

// Client talks to the external storefront backend (stores and orders APIs).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type storeWire struct {
	ID            int             `json:"id"`
	DeliveryPrice json.RawMessage `json:"delivery_price"`
}

type createOrderResponse struct {
	Success bool                   `json:"success"`
	Order   map[string]interface{} `json:"order"`
	Invoice domain.Invoice         `json:"invoice"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Detail  string `json:"detail"`
}

// ListStores fetches the vendor listing. The backend serializes
// delivery_price inconsistently (number or numeric string); anything
// unparsable comes back as a nil DeliveryPrice for the caller to fall back on.
func (c *Client) ListStores(ctx context.Context) ([]domain.Store, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stores/", nil)
	if err != nil {
		return nil, fmt.Errorf("build stores request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call stores api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read stores response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stores api returned %d: %s", resp.StatusCode, backendMessage(body))
	}

	var wire []storeWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("decode stores response: %w", err)
	}

	stores := make([]domain.Store, 0, len(wire))
	for _, w := range wire {
		stores = append(stores, domain.Store{
			ID:            w.ID,
			DeliveryPrice: parsePrice(w.DeliveryPrice),
		})
	}
	return stores, nil
}

// CreateOrder submits one order draft. Non-2xx responses surface the
// backend's human-readable message verbatim.
func (c *Client) CreateOrder(ctx context.Context, draft domain.OrderDraft) (*domain.PlacedOrder, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("marshal order draft: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders/create/", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call orders api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read order response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("order creation failed: %s", backendMessage(body))
	}

	var created createOrderResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	if !created.Success {
		return nil, fmt.Errorf("order creation failed: %s", backendMessage(body))
	}

	return &domain.PlacedOrder{Order: created.Order, Invoice: created.Invoice}, nil
}

// parsePrice resolves a delivery_price that may arrive as a bare number or a
// numeric string. Only absent, null or unparsable values come back nil; a
// parsable zero is a real price (free delivery), not a missing one.
func parsePrice(raw json.RawMessage) *decimal.Decimal {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// backendMessage extracts a human-readable message from an error payload,
// falling back to the raw body.
func backendMessage(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		for _, msg := range []string{er.Message, er.Error, er.Detail} {
			if strings.TrimSpace(msg) != "" {
				return msg
			}
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return "захиалга үүсгэхэд алдаа гарлаа"
}
