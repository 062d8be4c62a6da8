package models

// Messages returned by model validation. They are surfaced verbatim to
// GraphQL callers.
const (
	MsgInvalidPhone     = "Invalid phone format. Use formats like +1234567890 or 123-456-7890."
	MsgPriceNotPositive = "Price must be positive."
	MsgNegativeStock    = "Stock cannot be negative."
	MsgPricePlaces      = "Ensure that there are no more than 2 decimal places."
	MsgPriceDigits      = "Ensure that there are no more than 8 digits before the decimal point."
)

// ValidationError is returned from a model's Validate (and therefore from
// any gorm save) when a field breaks a record invariant.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
