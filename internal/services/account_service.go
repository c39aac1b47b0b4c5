package services

import (
	"context"
	"fmt"

	"mboga/internal/models/db_models"
	"mboga/internal/models/request_models"
	"mboga/internal/models/response_models"
	"mboga/internal/repositories"
	"mboga/pkg/utils"
)

type AccountServiceInterface interface {
	Register(ctx context.Context, req request_models.SignUpRequest) (*response_models.AccountResponse, error)
	Login(ctx context.Context, req request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
}

type AccountService struct {
	accounts repositories.AccountRepositoryInterface
}

func NewAccountService(accounts repositories.AccountRepositoryInterface) AccountServiceInterface {
	return &AccountService{
		accounts: accounts,
	}
}

func (s *AccountService) Register(ctx context.Context, req request_models.SignUpRequest) (*response_models.AccountResponse, error) {
	existing, err := s.accounts.GetAccountByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup account: %v", utils.ErrDatabaseError, err)
	}
	if existing != nil {
		return nil, utils.ErrAccountExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account := &db_models.Account{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
	}
	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("%w: create account: %v", utils.ErrDatabaseError, err)
	}

	return &response_models.AccountResponse{
		ID:    account.ID.String(),
		Name:  account.Name,
		Email: account.Email,
		Phone: account.Phone,
	}, nil
}

func (s *AccountService) Login(ctx context.Context, req request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	account, err := s.accounts.GetAccountByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup account: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(account.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID)
	if err != nil {
		return nil, err
	}
	return &response_models.AccountLoginResponse{Token: token}, nil
}
