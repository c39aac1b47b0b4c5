package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mboga/internal/models/request_models"
	"mboga/internal/models/response_models"
	"mboga/internal/services"
	"mboga/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentServiceInterface
}

func NewPaymentController(paymentService services.PaymentServiceInterface) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// InitiateMpesaPayment starts an STK push for the submitted order and returns
// the CheckoutRequestID the client polls with.
func (p *PaymentController) InitiateMpesaPayment(c *gin.Context) {
	var request request_models.InitiateMpesaRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	accountID := c.GetString("user_id")
	if accountID == "" {
		utils.RespondError(c, http.StatusUnauthorized, "user_id is required")
		return
	}

	checkoutRequestID, err := p.paymentService.InitiateMpesa(c.Request.Context(), accountID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.InitiatePaymentResponse{
		CheckoutRequestID: checkoutRequestID,
	}, "Payment initiated, confirm on your phone")
}

// MpesaCallback receives Daraja's asynchronous result. The outer response is
// always an accept: the provider keeps retrying anything else, and a failed
// reconciliation here is our problem, not Safaricom's.
func (p *PaymentController) MpesaCallback(c *gin.Context) {
	ack := response_models.CallbackAck{ResultCode: 0, ResultDesc: "Accepted"}

	var envelope request_models.StkCallbackEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		log.Printf("mpesa callback: malformed payload: %v", err)
		c.JSON(http.StatusOK, ack)
		return
	}

	cb := envelope.Body.StkCallback
	if cb.CheckoutRequestID == "" {
		log.Printf("mpesa callback: payload missing CheckoutRequestID")
		c.JSON(http.StatusOK, ack)
		return
	}

	if err := p.paymentService.HandleCallback(c.Request.Context(), cb); err != nil {
		log.Printf("mpesa callback: %v", err)
	}
	c.JSON(http.StatusOK, ack)
}

// GetPaymentStatus is the poll endpoint. It never mutates; paid responses
// carry the final order so the client can render a confirmation directly.
func (p *PaymentController) GetPaymentStatus(c *gin.Context) {
	var request request_models.PaymentStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	status, err := p.paymentService.GetStatus(c.Request.Context(), request.CheckoutRequestID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, status, "")
}
