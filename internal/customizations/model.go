package customizations

import (
	"time"

	"github.com/craftcollective/craft-market/pkg/enums"
)

// Request is a buyer's ask for a bespoke variant of a product. Budget is nil when
// the buyer did not state one.
type Request struct {
	ID         string                    `json:"id"`
	CustomerID string                    `json:"customerId"`
	ProductID  string                    `json:"productId"`
	VendorID   string                    `json:"vendorId"`
	Details    string                    `json:"details"`
	Budget     *float64                  `json:"budget"`
	CreatedAt  time.Time                 `json:"createdAt"`
	Status     enums.CustomizationStatus `json:"status"`
}

// CreateInput carries validated request fields.
type CreateInput struct {
	ProductID string
	VendorID  string
	Details   string
	Budget    *float64
}
