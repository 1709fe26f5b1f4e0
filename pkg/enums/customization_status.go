package enums

// CustomizationStatus is set once when a customization request is submitted.
type CustomizationStatus string

const (
	CustomizationStatusNew CustomizationStatus = "new"
)

// String implements fmt.Stringer.
func (c CustomizationStatus) String() string {
	return string(c)
}
