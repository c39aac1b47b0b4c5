package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mboga/internal/models/db_models"
	"mboga/internal/models/request_models"
	"mboga/internal/repositories"
	"mboga/pkg/utils"
)

func submitRequest() request_models.SubmitOrderRequest {
	return request_models.SubmitOrderRequest{
		CustomerName:    "Wanjiku Kamau",
		CustomerPhone:   "254712345678",
		DeliveryAddress: "Yaya Centre, Kilimani",
		Items: []request_models.OrderItemRequest{
			{ProductID: "p1", Name: "Sukuma Wiki", Price: 50, Quantity: 2, Unit: "bunch"},
			{ProductID: "p2", Name: "Maize Flour 2kg", Price: 200, Quantity: 1, Unit: "packet"},
		},
		PaymentMethod: "on-delivery",
	}
}

func storedUnpaidOrder(accountID uuid.UUID) *db_models.UnpaidOrder {
	order := &db_models.UnpaidOrder{
		OrderNumber:     "MBG-000001001",
		AccountID:       accountID,
		CustomerName:    "Wanjiku Kamau",
		DeliveryAddress: "Yaya Centre, Kilimani",
		Items: db_models.MarshalItems([]db_models.OrderItem{
			{ProductID: "p1", Name: "Sukuma Wiki", PriceMinor: 50, Quantity: 2, Unit: "bunch"},
			{ProductID: "p2", Name: "Maize Flour 2kg", PriceMinor: 200, Quantity: 1, Unit: "packet"},
		}),
		SubtotalMinor:    300,
		DeliveryFeeMinor: 150,
		TotalMinor:       450,
		PaymentMethod:    db_models.MethodOnDelivery,
	}
	order.ID = uuid.New()
	return order
}

func TestSubmitOrderComputesTotals(t *testing.T) {
	repo := &mockOrderRepository{}
	svc := NewOrderService(repo, NewDeliveryService())
	accountID := uuid.New()

	resp, err := svc.SubmitOrder(context.Background(), accountID.String(), submitRequest())
	if err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}

	if len(repo.unpaidInserts) != 1 {
		t.Fatalf("unpaid inserts = %d, want 1", len(repo.unpaidInserts))
	}
	stored := repo.unpaidInserts[0]
	if stored.SubtotalMinor != 300 {
		t.Errorf("subtotal = %d, want 300", stored.SubtotalMinor)
	}
	if stored.DeliveryFeeMinor != 150 {
		t.Errorf("delivery fee = %d, want 150 for a Kilimani address", stored.DeliveryFeeMinor)
	}
	if stored.TotalMinor != 450 {
		t.Errorf("total = %d, want 450", stored.TotalMinor)
	}
	if !strings.HasPrefix(stored.OrderNumber, "MBG-") {
		t.Errorf("order number = %q, want MBG- prefix", stored.OrderNumber)
	}
	if resp.Total != 450 || resp.Paid {
		t.Errorf("response = %+v, want unpaid with total 450", resp)
	}
}

func TestSubmitOrderRetriesOnDuplicateNumber(t *testing.T) {
	attempts := 0
	repo := &mockOrderRepository{
		CreateUnpaidFunc: func(ctx context.Context, order *db_models.UnpaidOrder) error {
			attempts++
			if attempts < 3 {
				return gorm.ErrDuplicatedKey
			}
			return nil
		},
	}
	svc := NewOrderService(repo, NewDeliveryService())

	if _, err := svc.SubmitOrder(context.Background(), uuid.New().String(), submitRequest()); err != nil {
		t.Fatalf("SubmitOrder should succeed on the third number: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestSubmitOrderGivesUpAfterRetries(t *testing.T) {
	attempts := 0
	repo := &mockOrderRepository{
		CreateUnpaidFunc: func(ctx context.Context, order *db_models.UnpaidOrder) error {
			attempts++
			return gorm.ErrDuplicatedKey
		},
	}
	svc := NewOrderService(repo, NewDeliveryService())

	_, err := svc.SubmitOrder(context.Background(), uuid.New().String(), submitRequest())
	if !errors.Is(err, utils.ErrDatabaseError) {
		t.Fatalf("err = %v, want ErrDatabaseError", err)
	}
	if attempts != orderNumberAttempts {
		t.Errorf("attempts = %d, want %d", attempts, orderNumberAttempts)
	}
}

func TestSubmitOrderDoesNotRetryOtherErrors(t *testing.T) {
	attempts := 0
	repo := &mockOrderRepository{
		CreateUnpaidFunc: func(ctx context.Context, order *db_models.UnpaidOrder) error {
			attempts++
			return errors.New("connection refused")
		},
	}
	svc := NewOrderService(repo, NewDeliveryService())

	if _, err := svc.SubmitOrder(context.Background(), uuid.New().String(), submitRequest()); !errors.Is(err, utils.ErrDatabaseError) {
		t.Fatalf("err = %v, want ErrDatabaseError", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d; only a duplicated key warrants a retry", attempts)
	}
}

func TestSubmitOrderRejectsBadAccountID(t *testing.T) {
	repo := &mockOrderRepository{}
	svc := NewOrderService(repo, NewDeliveryService())

	if _, err := svc.SubmitOrder(context.Background(), "not-a-uuid", submitRequest()); !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestRemoveItemRecomputesTotals(t *testing.T) {
	accountID := uuid.New()
	order := storedUnpaidOrder(accountID)
	repo := &mockOrderRepository{
		GetUnpaidFunc: func(ctx context.Context, id string) (*db_models.UnpaidOrder, error) {
			return order, nil
		},
	}
	svc := NewOrderService(repo, NewDeliveryService())

	resp, err := svc.RemoveItem(context.Background(), accountID.String(), order.ID.String(), "p2")
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}

	if len(repo.unpaidSaves) != 1 {
		t.Fatalf("saves = %d, want 1", len(repo.unpaidSaves))
	}
	if resp.Subtotal != 100 || resp.Total != 250 {
		t.Errorf("totals = %d/%d, want 100/250 after dropping the flour", resp.Subtotal, resp.Total)
	}
	if len(resp.Items) != 1 || resp.Items[0].ProductID != "p1" {
		t.Errorf("remaining items = %+v", resp.Items)
	}
}

func TestRemoveItemUnknownProduct(t *testing.T) {
	accountID := uuid.New()
	order := storedUnpaidOrder(accountID)
	repo := &mockOrderRepository{
		GetUnpaidFunc: func(ctx context.Context, id string) (*db_models.UnpaidOrder, error) {
			return order, nil
		},
	}
	svc := NewOrderService(repo, NewDeliveryService())

	if _, err := svc.RemoveItem(context.Background(), accountID.String(), order.ID.String(), "p99"); !errors.Is(err, utils.ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
	if len(repo.unpaidSaves) != 0 {
		t.Error("a failed removal must not write")
	}
}

func TestRemoveLastItemDeletesOrder(t *testing.T) {
	accountID := uuid.New()
	order := storedUnpaidOrder(accountID)
	order.Items = db_models.MarshalItems([]db_models.OrderItem{
		{ProductID: "p1", Name: "Sukuma Wiki", PriceMinor: 50, Quantity: 2},
	})
	repo := &mockOrderRepository{
		GetUnpaidFunc: func(ctx context.Context, id string) (*db_models.UnpaidOrder, error) {
			return order, nil
		},
	}
	svc := NewOrderService(repo, NewDeliveryService())

	resp, err := svc.RemoveItem(context.Background(), accountID.String(), order.ID.String(), "p1")
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if resp != nil {
		t.Errorf("emptied order should return no body, got %+v", resp)
	}
	if len(repo.unpaidDeletes) != 1 || repo.unpaidDeletes[0] != order.ID.String() {
		t.Errorf("deletes = %v, want the emptied order", repo.unpaidDeletes)
	}
}

func TestOrdersHiddenFromOtherAccounts(t *testing.T) {
	owner := uuid.New()
	order := storedUnpaidOrder(owner)
	repo := &mockOrderRepository{
		GetUnpaidFunc: func(ctx context.Context, id string) (*db_models.UnpaidOrder, error) {
			return order, nil
		},
	}
	svc := NewOrderService(repo, NewDeliveryService())
	stranger := uuid.New().String()

	if _, err := svc.RemoveItem(context.Background(), stranger, order.ID.String(), "p1"); !errors.Is(err, utils.ErrOrderNotFound) {
		t.Errorf("RemoveItem err = %v, want ErrOrderNotFound", err)
	}
	if err := svc.CancelOrder(context.Background(), stranger, order.ID.String()); !errors.Is(err, utils.ErrOrderNotFound) {
		t.Errorf("CancelOrder err = %v, want ErrOrderNotFound", err)
	}
	if len(repo.unpaidDeletes) != 0 {
		t.Error("a stranger must not delete the order")
	}
}

func TestListOrdersSplitsStores(t *testing.T) {
	accountID := uuid.New()
	unpaid := storedUnpaidOrder(accountID)
	paid := &db_models.PaidOrder{
		OrderNumber:   "MBG-000002002",
		AccountID:     accountID,
		TotalMinor:    900,
		PaymentMethod: db_models.MethodMpesa,
		MpesaReceipt:  "QHX12ABC34",
	}
	paid.ID = uuid.New()

	repo := &mockOrderRepository{
		ListUnpaidFunc: func(ctx context.Context, id string) ([]db_models.UnpaidOrder, error) {
			return []db_models.UnpaidOrder{*unpaid}, nil
		},
		ListPaidFunc: func(ctx context.Context, id string) ([]db_models.PaidOrder, error) {
			return []db_models.PaidOrder{*paid}, nil
		},
	}
	svc := NewOrderService(repo, NewDeliveryService())

	resp, err := svc.ListOrders(context.Background(), accountID.String())
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(resp.Paid) != 1 || len(resp.Unpaid) != 1 {
		t.Fatalf("paid/unpaid = %d/%d, want 1/1", len(resp.Paid), len(resp.Unpaid))
	}
	if !resp.Paid[0].Paid || resp.Paid[0].MpesaReceipt != "QHX12ABC34" {
		t.Errorf("paid entry = %+v", resp.Paid[0])
	}
	if resp.Unpaid[0].Paid {
		t.Error("unpaid entry flagged as paid")
	}
}

func TestFindDuplicateOrders(t *testing.T) {
	repo := &mockOrderRepository{
		FindDuplicateFunc: func(ctx context.Context) ([]repositories.DuplicateOrderRow, error) {
			return []repositories.DuplicateOrderRow{
				{OrderNumber: "MBG-000003003", PaidOrderID: "paid-1", UnpaidOrderID: "unpaid-1"},
			}, nil
		},
	}
	svc := NewOrderService(repo, NewDeliveryService())

	dups, err := svc.FindDuplicateOrders(context.Background())
	if err != nil {
		t.Fatalf("FindDuplicateOrders: %v", err)
	}
	if len(dups) != 1 || dups[0].OrderNumber != "MBG-000003003" {
		t.Errorf("duplicates = %+v", dups)
	}
}
