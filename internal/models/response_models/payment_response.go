package response_models

type InitiatePaymentResponse struct {
	CheckoutRequestID string `json:"checkoutRequestID"`
}

// PaymentStatusResponse is what the polling client sees. FinalOrder is only
// populated once the status is paid, so a confirmation page needs no second
// round trip.
type PaymentStatusResponse struct {
	Status     string         `json:"status"`
	Message    string         `json:"message,omitempty"`
	FinalOrder *OrderResponse `json:"finalOrder,omitempty"`
}

// CallbackAck is the provider-level acknowledgement. Daraja retries the
// callback unless it gets ResultCode 0 back, regardless of business outcome.
type CallbackAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}
