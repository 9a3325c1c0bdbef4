package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"spendly-be/internal/models"
	"spendly-be/internal/repository"
	"spendly-be/internal/service"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register handles POST /api/v1/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	response, err := ac.authService.Register(&req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			respondError(c, http.StatusConflict, err.Error())
			return
		}
		log.Printf("Register failed: %v", err)
		respondInternal(c)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login handles POST /api/v1/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	response, err := ac.authService.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, err.Error())
			return
		}
		log.Printf("Login failed: %v", err)
		respondInternal(c)
		return
	}

	c.JSON(http.StatusOK, response)
}
