package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"mboga/internal/models/db_models"
	"mboga/internal/models/request_models"
	"mboga/internal/models/response_models"
	"mboga/internal/repositories"
	"mboga/pkg/daraja"
	mem "mboga/pkg/memcache"
	"mboga/pkg/utils"
)

// StkPusher is the slice of the Daraja client the payment service needs.
type StkPusher interface {
	STKPush(ctx context.Context, push daraja.STKPushRequest) (*daraja.STKPushResponse, error)
}

type PaymentServiceInterface interface {
	// InitiateMpesa pushes a payment request to the subscriber's handset and
	// returns the provider's CheckoutRequestID for the client to poll with.
	InitiateMpesa(ctx context.Context, accountID string, req request_models.InitiateMpesaRequest) (string, error)

	// HandleCallback reconciles the provider's asynchronous result against
	// the pending-payment store. Must tolerate duplicate deliveries and
	// unknown correlation ids; both resolve as a no-op.
	HandleCallback(ctx context.Context, cb request_models.StkCallback) error

	GetStatus(ctx context.Context, checkoutRequestID string) (*response_models.PaymentStatusResponse, error)
}

type PaymentService struct {
	orders   repositories.OrderRepositoryInterface
	pending  mem.PendingPaymentStore
	statuses mem.PaymentStatusStore
	pusher   StkPusher
}

func NewPaymentService(
	orders repositories.OrderRepositoryInterface,
	pending mem.PendingPaymentStore,
	statuses mem.PaymentStatusStore,
	pusher StkPusher,
) PaymentServiceInterface {
	return &PaymentService{
		orders:   orders,
		pending:  pending,
		statuses: statuses,
		pusher:   pusher,
	}
}

func (p *PaymentService) InitiateMpesa(ctx context.Context, accountID string, req request_models.InitiateMpesaRequest) (string, error) {
	phone, err := utils.NormalizeMsisdn(req.Phone)
	if err != nil {
		return "", err
	}

	resp, err := p.pusher.STKPush(ctx, daraja.STKPushRequest{
		Phone:            phone,
		Amount:           req.Amount,
		AccountReference: req.Order.OrderNumber,
		Description:      "Grocery order " + req.Order.OrderNumber,
	})
	if err != nil {
		if rej, ok := err.(*daraja.RejectionError); ok {
			return "", &utils.ProviderError{Message: rej.Message}
		}
		return "", fmt.Errorf("stk push: %w", err)
	}

	// Pending record and pollable status are written together; the client
	// only learns the id after both exist.
	p.pending.Put(resp.CheckoutRequestID, pendingOrderFromRequest(accountID, req))
	p.statuses.Create(resp.CheckoutRequestID, accountID)

	return resp.CheckoutRequestID, nil
}

func (p *PaymentService) HandleCallback(ctx context.Context, cb request_models.StkCallback) error {
	order, ok := p.pending.Get(cb.CheckoutRequestID)
	if !ok {
		// Already reaped or already handled by an earlier delivery. The
		// provider retries until acked, so unknown ids are expected.
		log.Printf("mpesa callback: no pending payment for %s, ignoring", cb.CheckoutRequestID)
		return nil
	}

	// Cleanup must run on every path out of this function, including a
	// store-write failure below. Delete reports false if a concurrent
	// duplicate got there first; that is fine.
	defer p.pending.Delete(cb.CheckoutRequestID)

	if cb.ResultCode != 0 {
		p.statuses.Resolve(cb.CheckoutRequestID, mem.StatusFailed, cb.ResultDesc)
		return nil
	}

	receipt := receiptFromMetadata(cb.CallbackMetadata)

	paid := paidOrderFromPending(order, receipt, cb.CheckoutRequestID)
	if err := p.orders.CreatePaid(ctx, paid); err != nil {
		return &utils.ReconciliationError{CheckoutRequestID: cb.CheckoutRequestID, Err: fmt.Errorf("insert paid order: %w", err)}
	}

	if order.UnpaidOrderID != "" {
		if err := p.orders.DeleteUnpaid(ctx, order.UnpaidOrderID); err != nil {
			// The paid row is already in; a stale unpaid row is a display
			// nuisance cleaned up by the duplicate sweep, but the failure
			// still surfaces to the log.
			return &utils.ReconciliationError{CheckoutRequestID: cb.CheckoutRequestID, Err: fmt.Errorf("delete unpaid order %s: %w", order.UnpaidOrderID, err)}
		}
	}

	p.statuses.Resolve(cb.CheckoutRequestID, mem.StatusPaid, "")
	return nil
}

func (p *PaymentService) GetStatus(ctx context.Context, checkoutRequestID string) (*response_models.PaymentStatusResponse, error) {
	rec, ok := p.statuses.Get(checkoutRequestID)
	if !ok {
		return nil, utils.ErrPaymentNotFound
	}

	resp := &response_models.PaymentStatusResponse{
		Status:  string(rec.Status),
		Message: rec.Reason,
	}

	if rec.Status == mem.StatusPaid {
		order, err := p.orders.GetPaidByCheckoutRequestID(ctx, checkoutRequestID)
		if err != nil {
			return nil, fmt.Errorf("%w: load paid order: %v", utils.ErrDatabaseError, err)
		}
		if order != nil {
			resp.FinalOrder = paidOrderResponse(order)
		}
	}

	return resp, nil
}

// receiptFromMetadata digs the receipt number out of the callback metadata
// list. A missing receipt is not worth failing the whole reconciliation over;
// the sentinel marks the row for manual follow-up.
func receiptFromMetadata(meta *request_models.CallbackMetadata) string {
	if meta == nil {
		return db_models.ReceiptPending
	}
	for _, item := range meta.Item {
		if item.Name != "MpesaReceiptNumber" {
			continue
		}
		if s, ok := item.Value.(string); ok && s != "" {
			return s
		}
	}
	return db_models.ReceiptPending
}

func pendingOrderFromRequest(accountID string, req request_models.InitiateMpesaRequest) mem.PendingOrder {
	items := make([]mem.PendingItem, 0, len(req.Order.Items))
	var subtotal int64
	for _, it := range req.Order.Items {
		items = append(items, mem.PendingItem{
			ProductID:  it.ProductID,
			Name:       it.Name,
			PriceMinor: it.Price,
			Quantity:   it.Quantity,
			Unit:       it.Unit,
		})
		subtotal += it.Price * int64(it.Quantity)
	}

	return mem.PendingOrder{
		OrderNumber:     req.Order.OrderNumber,
		AccountID:       accountID,
		CustomerName:    req.Order.CustomerName,
		CustomerPhone:   req.Order.CustomerPhone,
		DeliveryAddress: req.Order.DeliveryAddress,
		Items:           items,
		SubtotalMinor:   subtotal,
		DeliveryFee:     req.Order.DeliveryFee,
		TotalMinor:      subtotal + req.Order.DeliveryFee,
		UnpaidOrderID:   req.UnpaidOrderID,
	}
}

func paidOrderFromPending(order mem.PendingOrder, receipt, checkoutRequestID string) *db_models.PaidOrder {
	items := make([]db_models.OrderItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, db_models.OrderItem{
			ProductID:  it.ProductID,
			Name:       it.Name,
			PriceMinor: it.PriceMinor,
			Quantity:   it.Quantity,
			Unit:       it.Unit,
		})
	}

	accountID, _ := uuid.Parse(order.AccountID)

	return &db_models.PaidOrder{
		OrderNumber:       order.OrderNumber,
		AccountID:         accountID,
		CustomerName:      order.CustomerName,
		CustomerPhone:     order.CustomerPhone,
		DeliveryAddress:   order.DeliveryAddress,
		Items:             db_models.MarshalItems(items),
		SubtotalMinor:     order.SubtotalMinor,
		DeliveryFeeMinor:  order.DeliveryFee,
		TotalMinor:        order.TotalMinor,
		PaymentMethod:     db_models.MethodMpesa,
		MpesaReceipt:      receipt,
		CheckoutRequestID: checkoutRequestID,
	}
}
