package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"mboga/internal/api/controllers"
	"mboga/internal/repositories"
	"mboga/internal/services"
)

var Module = fx.Provide(
	provideAccountRepository,
	provideAccountService,
	provideAccountController,
)

func provideAccountRepository(db *gorm.DB) repositories.AccountRepositoryInterface {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(accounts repositories.AccountRepositoryInterface) services.AccountServiceInterface {
	return services.NewAccountService(accounts)
}

func provideAccountController(accountService services.AccountServiceInterface) *controllers.AccountController {
	return controllers.NewAccountController(accountService)
}
