package enums

// OrderStatus is set once when an order is placed.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
)

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}
