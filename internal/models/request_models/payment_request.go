package request_models

// OrderDetails is the client's order snapshot submitted at checkout. It is
// held verbatim in the pending-payment store until the provider callback
// settles or rejects the push payment.
type OrderDetails struct {
	OrderNumber     string             `json:"orderNumber" binding:"required"`
	CustomerName    string             `json:"customerName" binding:"required"`
	CustomerPhone   string             `json:"customerPhone"`
	DeliveryAddress string             `json:"deliveryAddress" binding:"required"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryFee     int64              `json:"deliveryFee"`
}

type OrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Price     int64  `json:"price" binding:"required,min=1"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Unit      string `json:"unit"`
}

type InitiateMpesaRequest struct {
	Phone  string       `json:"phone" binding:"required"`
	Amount int64        `json:"amount" binding:"required,min=1"`
	Order  OrderDetails `json:"orderDetails" binding:"required"`
	// UnpaidOrderID references a pre-existing unpaid order being paid off;
	// empty for a fresh M-Pesa checkout.
	UnpaidOrderID string `json:"unpaidOrderId"`
}

type PaymentStatusRequest struct {
	CheckoutRequestID string `json:"checkoutRequestID" binding:"required"`
}

// StkCallbackEnvelope matches Daraja's nested stkCallback webhook body.
type StkCallbackEnvelope struct {
	Body struct {
		StkCallback StkCallback `json:"stkCallback"`
	} `json:"Body"`
}

type StkCallback struct {
	MerchantRequestID string            `json:"MerchantRequestID"`
	CheckoutRequestID string            `json:"CheckoutRequestID"`
	ResultCode        int               `json:"ResultCode"`
	ResultDesc        string            `json:"ResultDesc"`
	CallbackMetadata  *CallbackMetadata `json:"CallbackMetadata"`
}

type CallbackMetadata struct {
	Item []CallbackItem `json:"Item"`
}

type CallbackItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value"`
}
