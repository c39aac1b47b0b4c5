package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mboga/internal/models/response_models"
	"mboga/internal/services"
	"mboga/pkg/utils"
)

type CatalogController struct {
	catalogService  services.CatalogServiceInterface
	deliveryService services.DeliveryServiceInterface
}

func NewCatalogController(catalogService services.CatalogServiceInterface, deliveryService services.DeliveryServiceInterface) *CatalogController {
	return &CatalogController{
		catalogService:  catalogService,
		deliveryService: deliveryService,
	}
}

func (ct *CatalogController) ListProducts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
		return
	}

	products, err := ct.catalogService.GetAllProducts(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, products, "")
}

func (ct *CatalogController) GetProduct(c *gin.Context) {
	product, err := ct.catalogService.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, product, "")
}

func (ct *CatalogController) GetDeliveryFee(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		utils.RespondError(c, http.StatusBadRequest, "address query parameter is required")
		return
	}

	zone, fee := ct.deliveryService.ResolveFee(address)
	utils.RespondSuccess(c, response_models.DeliveryFeeResponse{Zone: zone, Fee: fee}, "")
}
