package order_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"mboga/internal/api/controllers"
	"mboga/internal/repositories"
	"mboga/internal/services"
)

var Module = fx.Provide(
	provideOrderRepository,
	provideDeliveryService,
	provideOrderService,
	provideOrderController,
)

func provideOrderRepository(db *gorm.DB) repositories.OrderRepositoryInterface {
	return repositories.NewOrderRepository(db)
}

func provideDeliveryService() services.DeliveryServiceInterface {
	return services.NewDeliveryService()
}

func provideOrderService(orders repositories.OrderRepositoryInterface, delivery services.DeliveryServiceInterface) services.OrderServiceInterface {
	return services.NewOrderService(orders, delivery)
}

func provideOrderController(orderService services.OrderServiceInterface) *controllers.OrderController {
	return controllers.NewOrderController(orderService)
}
