package db_models

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentMethod string

const (
	MethodMpesa      PaymentMethod = "mpesa"
	MethodOnDelivery PaymentMethod = "on-delivery"
)

// ReceiptPending is stored on a paid order when the provider callback carried
// no receipt number. The payment still counts; only the reference is missing.
const ReceiptPending = "N/A"

type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	// PriceMinor is the unit price in minor units (whole KES for M-Pesa).
	PriceMinor int64  `json:"price_minor"`
	Quantity   int    `json:"quantity"`
	Unit       string `json:"unit"`
}

// UnpaidOrder holds orders awaiting settlement: pay-on-delivery orders and
// M-Pesa orders whose push payment has not been confirmed yet.
type UnpaidOrder struct {
	BaseModel
	OrderNumber      string    `gorm:"uniqueIndex;not null"`
	AccountID        uuid.UUID `gorm:"index"`
	CustomerName     string
	CustomerPhone    string
	DeliveryAddress  string
	Items            datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	SubtotalMinor    int64
	DeliveryFeeMinor int64
	TotalMinor       int64
	PaymentMethod    PaymentMethod `gorm:"index"`
}

// PaidOrder is the durable record of a settled order. A given logical order
// lives in exactly one of unpaid_orders / paid_orders at a time; the move is
// insert-here-then-delete-there, so readers must treat a paid row as
// authoritative if both are momentarily visible.
type PaidOrder struct {
	BaseModel
	OrderNumber      string    `gorm:"uniqueIndex;not null"`
	AccountID        uuid.UUID `gorm:"index"`
	CustomerName     string
	CustomerPhone    string
	DeliveryAddress  string
	Items            datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	SubtotalMinor    int64
	DeliveryFeeMinor int64
	TotalMinor       int64
	PaymentMethod    PaymentMethod `gorm:"index"`
	MpesaReceipt     string        `gorm:"index"`
	// CheckoutRequestID links the row back to the push-payment attempt that
	// settled it, so the status poll can return the full order.
	CheckoutRequestID string `gorm:"index"`
}

func MarshalItems(items []OrderItem) datatypes.JSON {
	raw, _ := json.Marshal(items)
	return raw
}

func UnmarshalItems(raw datatypes.JSON) ([]OrderItem, error) {
	var items []OrderItem
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}
