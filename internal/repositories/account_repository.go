package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mboga/internal/models/db_models"
)

type AccountRepositoryInterface interface {
	CreateAccount(ctx context.Context, account *db_models.Account) error
	GetAccountByEmail(ctx context.Context, email string) (*db_models.Account, error)
	GetAccountByID(ctx context.Context, id string) (*db_models.Account, error)
}

func NewAccountRepository(db *gorm.DB) AccountRepositoryInterface {
	return &AccountRepository{db: db}
}

type AccountRepository struct {
	db *gorm.DB
}

func (r *AccountRepository) CreateAccount(ctx context.Context, account *db_models.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *AccountRepository) GetAccountByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	var account db_models.Account
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) GetAccountByID(ctx context.Context, id string) (*db_models.Account, error) {
	var account db_models.Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}
