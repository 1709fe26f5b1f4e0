package orders

const (
	MaxItems    = 20
	MaxQuantity = 10
	MaxNotesLen = 280

	DefaultPaymentMethod = "card"
)

// Customer identifies who is checking out.
type Customer struct {
	ID   string
	Name string
}

// CheckoutItem is one validated cart line.
type CheckoutItem struct {
	ProductID      string
	Quantity       int
	Customizations map[string]any
}

// CheckoutInput carries the validated cart.
type CheckoutInput struct {
	Items         []CheckoutItem
	PaymentMethod string
	Notes         string
}
