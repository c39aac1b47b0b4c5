package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mboga/internal/models/request_models"
	"mboga/internal/services"
	"mboga/pkg/utils"
)

type OrderController struct {
	orderService services.OrderServiceInterface
}

func NewOrderController(orderService services.OrderServiceInterface) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

func (o *OrderController) SubmitOrder(c *gin.Context) {
	var request request_models.SubmitOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	accountID := c.GetString("user_id")
	if accountID == "" {
		utils.RespondError(c, http.StatusUnauthorized, "user_id is required")
		return
	}

	order, err := o.orderService.SubmitOrder(c.Request.Context(), accountID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, order, "Order submitted")
}

func (o *OrderController) ListOrders(c *gin.Context) {
	accountID := c.GetString("user_id")
	if accountID == "" {
		utils.RespondError(c, http.StatusUnauthorized, "user_id is required")
		return
	}

	orders, err := o.orderService.ListOrders(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, orders, "")
}

// RemoveItem drops one product from an unpaid order and recomputes totals.
// Removing the last item cancels the order.
func (o *OrderController) RemoveItem(c *gin.Context) {
	accountID := c.GetString("user_id")
	if accountID == "" {
		utils.RespondError(c, http.StatusUnauthorized, "user_id is required")
		return
	}

	order, err := o.orderService.RemoveItem(c.Request.Context(), accountID, c.Param("id"), c.Param("productId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if order == nil {
		utils.RespondSuccess(c, nil, "Order cancelled: no items left")
		return
	}
	utils.RespondSuccess(c, order, "Item removed")
}

func (o *OrderController) CancelOrder(c *gin.Context) {
	accountID := c.GetString("user_id")
	if accountID == "" {
		utils.RespondError(c, http.StatusUnauthorized, "user_id is required")
		return
	}

	if err := o.orderService.CancelOrder(c.Request.Context(), accountID, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Order cancelled")
}

func (o *OrderController) ListDuplicateOrders(c *gin.Context) {
	dups, err := o.orderService.FindDuplicateOrders(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, dups, "")
}
