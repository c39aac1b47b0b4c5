package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mboga/internal/models/db_models"
	"mboga/internal/models/request_models"
	"mboga/internal/models/response_models"
	"mboga/internal/repositories"
	"mboga/pkg/utils"
)

const orderNumberAttempts = 3

type OrderServiceInterface interface {
	// SubmitOrder records a checkout as an unpaid order: pay-on-delivery
	// orders stay unpaid until fulfilment, M-Pesa orders until the callback
	// settles them.
	SubmitOrder(ctx context.Context, accountID string, req request_models.SubmitOrderRequest) (*response_models.OrderResponse, error)

	ListOrders(ctx context.Context, accountID string) (*response_models.OrderListResponse, error)
	RemoveItem(ctx context.Context, accountID, orderID, productID string) (*response_models.OrderResponse, error)
	CancelOrder(ctx context.Context, accountID, orderID string) error

	// FindDuplicateOrders reports orders visible in both stores. Read-only:
	// cleanup of the stale unpaid rows stays a manual decision.
	FindDuplicateOrders(ctx context.Context) ([]response_models.DuplicateOrderResponse, error)
}

type OrderService struct {
	orders   repositories.OrderRepositoryInterface
	delivery DeliveryServiceInterface
}

func NewOrderService(orders repositories.OrderRepositoryInterface, delivery DeliveryServiceInterface) OrderServiceInterface {
	return &OrderService{
		orders:   orders,
		delivery: delivery,
	}
}

func (o *OrderService) SubmitOrder(ctx context.Context, accountID string, req request_models.SubmitOrderRequest) (*response_models.OrderResponse, error) {
	accID, err := uuid.Parse(accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad account id", utils.ErrValidation)
	}

	items := make([]db_models.OrderItem, 0, len(req.Items))
	var subtotal int64
	for _, it := range req.Items {
		items = append(items, db_models.OrderItem{
			ProductID:  it.ProductID,
			Name:       it.Name,
			PriceMinor: it.Price,
			Quantity:   it.Quantity,
			Unit:       it.Unit,
		})
		subtotal += it.Price * int64(it.Quantity)
	}

	_, fee := o.delivery.ResolveFee(req.DeliveryAddress)

	order := &db_models.UnpaidOrder{
		AccountID:        accID,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		DeliveryAddress:  req.DeliveryAddress,
		Items:            db_models.MarshalItems(items),
		SubtotalMinor:    subtotal,
		DeliveryFeeMinor: fee,
		TotalMinor:       subtotal + fee,
		PaymentMethod:    db_models.PaymentMethod(req.PaymentMethod),
	}

	// Timestamp-derived numbers collide under concurrent checkouts; the
	// unique index catches it and we regenerate.
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = generateOrderNumber()
		err = o.orders.CreateUnpaid(ctx, order)
		if err == nil {
			return unpaidOrderResponse(order), nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: create order: %v", utils.ErrDatabaseError, err)
		}
	}
	return nil, fmt.Errorf("%w: could not allocate a unique order number", utils.ErrDatabaseError)
}

func (o *OrderService) ListOrders(ctx context.Context, accountID string) (*response_models.OrderListResponse, error) {
	paid, err := o.orders.ListPaidByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: list paid orders: %v", utils.ErrDatabaseError, err)
	}
	unpaid, err := o.orders.ListUnpaidByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: list unpaid orders: %v", utils.ErrDatabaseError, err)
	}

	resp := &response_models.OrderListResponse{
		Paid:   make([]response_models.OrderResponse, 0, len(paid)),
		Unpaid: make([]response_models.OrderResponse, 0, len(unpaid)),
	}
	for i := range paid {
		resp.Paid = append(resp.Paid, *paidOrderResponse(&paid[i]))
	}
	for i := range unpaid {
		resp.Unpaid = append(resp.Unpaid, *unpaidOrderResponse(&unpaid[i]))
	}
	return resp, nil
}

func (o *OrderService) RemoveItem(ctx context.Context, accountID, orderID, productID string) (*response_models.OrderResponse, error) {
	order, err := o.getOwnedUnpaid(ctx, accountID, orderID)
	if err != nil {
		return nil, err
	}

	items, err := db_models.UnmarshalItems(order.Items)
	if err != nil {
		return nil, fmt.Errorf("%w: decode order items: %v", utils.ErrDatabaseError, err)
	}

	kept := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return nil, utils.ErrProductNotFound
	}

	// Removing the last item cancels the order outright.
	if len(kept) == 0 {
		if err := o.orders.DeleteUnpaid(ctx, orderID); err != nil {
			return nil, fmt.Errorf("%w: delete emptied order: %v", utils.ErrDatabaseError, err)
		}
		return nil, nil
	}

	var subtotal int64
	for _, it := range kept {
		subtotal += it.PriceMinor * int64(it.Quantity)
	}
	order.Items = db_models.MarshalItems(kept)
	order.SubtotalMinor = subtotal
	order.TotalMinor = subtotal + order.DeliveryFeeMinor

	if err := o.orders.SaveUnpaid(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: save order: %v", utils.ErrDatabaseError, err)
	}
	return unpaidOrderResponse(order), nil
}

func (o *OrderService) CancelOrder(ctx context.Context, accountID, orderID string) error {
	if _, err := o.getOwnedUnpaid(ctx, accountID, orderID); err != nil {
		return err
	}
	if err := o.orders.DeleteUnpaid(ctx, orderID); err != nil {
		return fmt.Errorf("%w: delete order: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

func (o *OrderService) FindDuplicateOrders(ctx context.Context) ([]response_models.DuplicateOrderResponse, error) {
	rows, err := o.orders.FindDuplicateOrderNumbers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: duplicate sweep: %v", utils.ErrDatabaseError, err)
	}
	dups := make([]response_models.DuplicateOrderResponse, 0, len(rows))
	for _, row := range rows {
		dups = append(dups, response_models.DuplicateOrderResponse{
			OrderNumber:   row.OrderNumber,
			PaidOrderID:   row.PaidOrderID,
			UnpaidOrderID: row.UnpaidOrderID,
		})
	}
	return dups, nil
}

func (o *OrderService) getOwnedUnpaid(ctx context.Context, accountID, orderID string) (*db_models.UnpaidOrder, error) {
	order, err := o.orders.GetUnpaidByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: load order: %v", utils.ErrDatabaseError, err)
	}
	// An order belonging to someone else looks the same as a missing one.
	if order == nil || order.AccountID.String() != accountID {
		return nil, utils.ErrOrderNotFound
	}
	return order, nil
}

func generateOrderNumber() string {
	return fmt.Sprintf("MBG-%06d%03d", time.Now().Unix()%1_000_000, rand.Intn(1000))
}

func unpaidOrderResponse(order *db_models.UnpaidOrder) *response_models.OrderResponse {
	items, _ := db_models.UnmarshalItems(order.Items)
	return &response_models.OrderResponse{
		ID:              order.ID.String(),
		OrderNumber:     order.OrderNumber,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		DeliveryAddress: order.DeliveryAddress,
		Items:           itemResponses(items),
		Subtotal:        order.SubtotalMinor,
		DeliveryFee:     order.DeliveryFeeMinor,
		Total:           order.TotalMinor,
		PaymentMethod:   string(order.PaymentMethod),
		Paid:            false,
	}
}

func paidOrderResponse(order *db_models.PaidOrder) *response_models.OrderResponse {
	items, _ := db_models.UnmarshalItems(order.Items)
	return &response_models.OrderResponse{
		ID:              order.ID.String(),
		OrderNumber:     order.OrderNumber,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		DeliveryAddress: order.DeliveryAddress,
		Items:           itemResponses(items),
		Subtotal:        order.SubtotalMinor,
		DeliveryFee:     order.DeliveryFeeMinor,
		Total:           order.TotalMinor,
		PaymentMethod:   string(order.PaymentMethod),
		MpesaReceipt:    order.MpesaReceipt,
		Paid:            true,
	}
}

func itemResponses(items []db_models.OrderItem) []response_models.OrderItemResponse {
	out := make([]response_models.OrderItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, response_models.OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.PriceMinor,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
		})
	}
	return out
}
