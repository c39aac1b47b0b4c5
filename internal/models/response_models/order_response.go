package response_models

type OrderItemResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Unit      string `json:"unit"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	CustomerName    string              `json:"customerName"`
	CustomerPhone   string              `json:"customerPhone"`
	DeliveryAddress string              `json:"deliveryAddress"`
	Items           []OrderItemResponse `json:"items"`
	Subtotal        int64               `json:"subtotal"`
	DeliveryFee     int64               `json:"deliveryFee"`
	Total           int64               `json:"total"`
	PaymentMethod   string              `json:"paymentMethod"`
	MpesaReceipt    string              `json:"mpesaReceipt,omitempty"`
	Paid            bool                `json:"paid"`
}

type OrderListResponse struct {
	Paid   []OrderResponse `json:"paid"`
	Unpaid []OrderResponse `json:"unpaid"`
}

// DuplicateOrderResponse reports an order number visible in both stores,
// which a crash between paid-insert and unpaid-delete can leave behind.
type DuplicateOrderResponse struct {
	OrderNumber   string `json:"orderNumber"`
	PaidOrderID   string `json:"paidOrderId"`
	UnpaidOrderID string `json:"unpaidOrderId"`
}
