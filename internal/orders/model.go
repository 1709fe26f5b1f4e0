package orders

import (
	"time"

	"github.com/craftcollective/craft-market/pkg/enums"
)

// Order is a placed checkout. Items snapshot product data at checkout time.
type Order struct {
	ID            string            `json:"id"`
	CustomerID    string            `json:"customerId"`
	CustomerName  string            `json:"customerName"`
	CreatedAt     time.Time         `json:"createdAt"`
	PaymentMethod string            `json:"paymentMethod"`
	Subtotal      float64           `json:"subtotal"`
	ServiceFee    float64           `json:"serviceFee"`
	Total         float64           `json:"total"`
	Notes         string            `json:"notes"`
	Items         []Item            `json:"items"`
	Status        enums.OrderStatus `json:"status"`
}

// Item is one order line.
type Item struct {
	ProductID      string         `json:"productId"`
	Name           string         `json:"name"`
	VendorID       string         `json:"vendorId"`
	Price          float64        `json:"price"`
	Quantity       int            `json:"quantity"`
	Customizations map[string]any `json:"customizations"`
	LineTotal      float64        `json:"lineTotal"`
}
