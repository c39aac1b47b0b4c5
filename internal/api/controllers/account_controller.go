package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mboga/internal/models/request_models"
	"mboga/internal/services"
	"mboga/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

func (a *AccountController) Register(c *gin.Context) {
	var request request_models.SignUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	account, err := a.accountService.Register(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "Account created")
}

func (a *AccountController) Login(c *gin.Context) {
	var request request_models.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	login, err := a.accountService.Login(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, login, "Logged in")
}
