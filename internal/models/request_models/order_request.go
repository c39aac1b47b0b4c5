package request_models

type SubmitOrderRequest struct {
	CustomerName    string             `json:"customerName" binding:"required"`
	CustomerPhone   string             `json:"customerPhone" binding:"required"`
	DeliveryAddress string             `json:"deliveryAddress" binding:"required"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod   string             `json:"paymentMethod" binding:"required,oneof=mpesa on-delivery"`
}
