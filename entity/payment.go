package entity

// PaymentCancelledCode is the provider's code for a checkout abandoned by
// the customer. It is the only provider failure that is not an error from
// the customer's point of view.
const PaymentCancelledCode = "PAYMENT_CANCELLED"

type PaymentCustomer struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

// PaymentRequest is the payload for the payment provider. The provider is
// an opaque collaborator; only this contract is consumed.
type PaymentRequest struct {
	ChannelKey string          `json:"channel_key"`
	StoreID    string          `json:"store_id"`
	PaymentID  string          `json:"payment_id"`
	OrderID    string          `json:"order_id"`
	Amount     int             `json:"amount"`
	OrderName  string          `json:"order_name"`
	Customer   PaymentCustomer `json:"customer"`
	Method     string          `json:"method"`
	Currency   string          `json:"currency"`
}

// PaymentResult carries either a provider error code or the payment ID of
// a provider-side success. Exactly one of Code and PaymentID is set.
type PaymentResult struct {
	PaymentID string `json:"payment_id,omitempty"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
}

func (r PaymentResult) Cancelled() bool {
	return r.Code == PaymentCancelledCode
}

// BookingResult is the backend's response to a successful booking.
type BookingResult struct {
	ReservationID string `json:"reservation_id"`
	Message       string `json:"message,omitempty"`
}
