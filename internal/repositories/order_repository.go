package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mboga/internal/models/db_models"
)

type DuplicateOrderRow struct {
	OrderNumber   string
	PaidOrderID   string
	UnpaidOrderID string
}

type OrderRepositoryInterface interface {
	CreateUnpaid(ctx context.Context, order *db_models.UnpaidOrder) error
	CreatePaid(ctx context.Context, order *db_models.PaidOrder) error

	GetUnpaidByID(ctx context.Context, id string) (*db_models.UnpaidOrder, error)
	GetPaidByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*db_models.PaidOrder, error)

	ListUnpaidByAccount(ctx context.Context, accountID string) ([]db_models.UnpaidOrder, error)
	ListPaidByAccount(ctx context.Context, accountID string) ([]db_models.PaidOrder, error)

	SaveUnpaid(ctx context.Context, order *db_models.UnpaidOrder) error
	DeleteUnpaid(ctx context.Context, id string) error

	FindDuplicateOrderNumbers(ctx context.Context) ([]DuplicateOrderRow, error)
}

func NewOrderRepository(db *gorm.DB) OrderRepositoryInterface {
	return &OrderRepository{db: db}
}

type OrderRepository struct {
	db *gorm.DB
}

func (r *OrderRepository) CreateUnpaid(ctx context.Context, order *db_models.UnpaidOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderRepository) CreatePaid(ctx context.Context, order *db_models.PaidOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderRepository) GetUnpaidByID(ctx context.Context, id string) (*db_models.UnpaidOrder, error) {
	var order db_models.UnpaidOrder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) GetPaidByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*db_models.PaidOrder, error) {
	var order db_models.PaidOrder
	err := r.db.WithContext(ctx).Where("checkout_request_id = ?", checkoutRequestID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) ListUnpaidByAccount(ctx context.Context, accountID string) ([]db_models.UnpaidOrder, error) {
	var orders []db_models.UnpaidOrder
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) ListPaidByAccount(ctx context.Context, accountID string) ([]db_models.PaidOrder, error) {
	var orders []db_models.PaidOrder
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) SaveUnpaid(ctx context.Context, order *db_models.UnpaidOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// DeleteUnpaid removes the row outright. The unpaid/paid stores are disjoint
// by order, so a settled order must not linger as a soft-deleted unpaid row
// still holding the unique order number.
func (r *OrderRepository) DeleteUnpaid(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(&db_models.UnpaidOrder{}).Error
}

// FindDuplicateOrderNumbers reports order numbers present in both stores.
// A crash between paid-insert and unpaid-delete leaves such pairs behind;
// this sweep surfaces them for cleanup without deleting anything itself.
func (r *OrderRepository) FindDuplicateOrderNumbers(ctx context.Context) ([]DuplicateOrderRow, error) {
	var rows []DuplicateOrderRow
	err := r.db.WithContext(ctx).
		Table("paid_orders").
		Select("paid_orders.order_number AS order_number, paid_orders.id AS paid_order_id, unpaid_orders.id AS unpaid_order_id").
		Joins("JOIN unpaid_orders ON unpaid_orders.order_number = paid_orders.order_number").
		Where("paid_orders.deleted_at IS NULL AND unpaid_orders.deleted_at IS NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
