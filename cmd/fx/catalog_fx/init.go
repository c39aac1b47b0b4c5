package catalog_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"mboga/internal/api/controllers"
	"mboga/internal/repositories"
	"mboga/internal/services"
)

var Module = fx.Provide(
	provideProductRepository,
	provideCatalogService,
	provideCatalogController,
)

func provideProductRepository(db *gorm.DB) repositories.ProductRepositoryInterface {
	return repositories.NewProductRepository(db)
}

func provideCatalogService(products repositories.ProductRepositoryInterface) services.CatalogServiceInterface {
	return services.NewCatalogService(products)
}

func provideCatalogController(catalogService services.CatalogServiceInterface, deliveryService services.DeliveryServiceInterface) *controllers.CatalogController {
	return controllers.NewCatalogController(catalogService, deliveryService)
}
