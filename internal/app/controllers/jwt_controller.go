package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/models"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/services"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/services/container"
	"github.com/vivekvardhan78/JalRakshak/internal/error/code"
	"github.com/vivekvardhan78/JalRakshak/internal/error/response"
)

// ErrorResponse documents the failure envelope for swagger.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AuthController handles login and citizen signup.
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController creates a new auth controller.
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"ops_admin"`
	Password string `json:"password" binding:"required" example:"Secret@123"`
}

// RegisterRequest is the citizen signup payload.
type RegisterRequest struct {
	Username string `json:"username" binding:"required" example:"ward7_citizen"`
	Password string `json:"password" binding:"required,min=6" example:"Secret@123"`
	Email    string `json:"email" binding:"required,email" example:"citizen@example.com"`
	Phone    string `json:"phone" example:"9876543210"`
}

// HandleAuthFunc returns a gin handler dispatching to the auth controller.
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "register":
			controller.Register()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// Login authenticates a user
// @Summary      Login
// @Description  Verify credentials and issue a JWT
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	result, err := jwtService.Login(strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserPasswordIncorrect, "login failed: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, result)
}

// Register creates a citizen account
// @Summary      Register
// @Description  Self-service citizen signup
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Account details"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /auth/register [post]
func (c *AuthController) Register() {
	var req RegisterRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	user := &models.User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Role:     models.RoleCitizen,
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.Register(user, req.Password); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserAlreadyExist, "registration failed: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	})
}
