package domain

import "github.com/shopspring/decimal"

// Contact is the customer-entered checkout form. Phone is the local 8-digit
// format; validation happens in the order builder before any network call.
type Contact struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// OrderItem is one line of an order-creation request, in the backend's wire
// shape. OptionID serializes as null when no option was selected.
type OrderItem struct {
	ProductID int             `json:"product_id"`
	OptionID  *int            `json:"option_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderDraft is a normalized order-creation request for the external orders
// API. Drafts are derived immediately before submission and never stored.
type OrderDraft struct {
	StoreID         int             `json:"store_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAddress string          `json:"customer_address"`
	Items           []OrderItem     `json:"items"`
	DeliveryPrice   decimal.Decimal `json:"delivery_price"`
	Notes           string          `json:"notes,omitempty"`
}

// Invoice is the payment payload returned by the backend on order creation.
// The service passes it through for display and never interprets it.
type Invoice struct {
	InvoiceID  string        `json:"invoice_id"`
	InvoiceURL string        `json:"invoice_url"`
	QRCode     string        `json:"qr_code"`
	QRImage    string        `json:"qr_image,omitempty"`
	URLs       []InvoiceLink `json:"urls,omitempty"`
}

// InvoiceLink is one payment deep link (bank app etc.) inside an Invoice.
type InvoiceLink struct {
	Name        string `json:"name"`
	Link        string `json:"link"`
	Logo        string `json:"logo,omitempty"`
	Description string `json:"description,omitempty"`
}

// PlacedOrder pairs the backend's created order with its invoice.
type PlacedOrder struct {
	Order   map[string]interface{} `json:"order"`
	Invoice Invoice                `json:"invoice"`
}
