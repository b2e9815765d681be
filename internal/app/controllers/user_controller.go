package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vivekvardhan78/JalRakshak/internal/app/middleware"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/models"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/services"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/services/container"
	"github.com/vivekvardhan78/JalRakshak/internal/error/code"
	"github.com/vivekvardhan78/JalRakshak/internal/error/response"
)

// UserController handles account management.
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController creates a new user controller.
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateUserRequest is the admin account-creation payload.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required" example:"field_staff_01"`
	Password string `json:"password" binding:"required,min=6" example:"Secret@123"`
	Email    string `json:"email" binding:"required,email" example:"staff@example.com"`
	Phone    string `json:"phone" example:"9876543210"`
	Role     string `json:"role" binding:"required,oneof=admin staff citizen" example:"staff"`
}

// UpdateUserRequest is the profile update payload.
type UpdateUserRequest struct {
	Email string `json:"email" binding:"omitempty,email" example:"staff@example.com"`
	Phone string `json:"phone" example:"9876543210"`
}

// ChangePasswordRequest is the password change payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// SetStatusRequest enables or disables an account.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active disabled" example:"disabled"`
}

// HandleUserFunc returns a gin handler dispatching to the user controller.
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "getUsers":
			controller.GetUsers()
		case "getUser":
			controller.GetUser()
		case "createUser":
			controller.CreateUser()
		case "updateUser":
			controller.UpdateUser()
		case "changePassword":
			controller.ChangePassword()
		case "setStatus":
			controller.SetStatus()
		case "deleteUser":
			controller.DeleteUser()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *UserController) userService() services.InterfaceUserService {
	return c.Container.GetService("user").(services.InterfaceUserService)
}

func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"phone":      user.Phone,
		"role":       user.Role,
		"status":     user.Status,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}
}

// GetUsers lists accounts
// @Summary      List users
// @Description  Paginated account list with an optional role filter
// @Tags         User
// @Produce      json
// @Param        page query int false "Page, default 1"
// @Param        page_size query int false "Page size, default 10"
// @Param        role query string false "Filter by role"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /users [get]
// @Security     BearerAuth
func (c *UserController) GetUsers() {
	query := bindPagination(c.Ctx)
	role := c.Ctx.Query("role")

	users, total, err := c.userService().GetUsers(query, role)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to list users: "+err.Error(), nil)
		return
	}

	payload := make([]gin.H, 0, len(users))
	for i := range users {
		payload = append(payload, userPayload(&users[i]))
	}

	response.Success(c.Ctx, pagePayload(payload, total, query))
}

// GetUser fetches one account
// @Summary      Get user
// @Tags         User
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
// @Security     BearerAuth
func (c *UserController) GetUser() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	user, err := c.userService().GetUserByID(id)
	if err != nil {
		response.NotFound(c.Ctx, "user not found")
		return
	}

	response.Success(c.Ctx, userPayload(user))
}

// CreateUser creates a staff or admin account
// @Summary      Create user
// @Description  Admin creates an account with any role
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "Account details"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /users [post]
// @Security     BearerAuth
func (c *UserController) CreateUser() {
	var req CreateUserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	user := &models.User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Role:     models.UserRole(req.Role),
	}

	if err := c.userService().Register(user, req.Password); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserAlreadyExist, "failed to create user: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, userPayload(user))
}

// UpdateUser updates profile fields
// @Summary      Update user
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        id path int true "User ID"
// @Param        request body UpdateUserRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /users/{id} [put]
// @Security     BearerAuth
func (c *UserController) UpdateUser() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	updates := map[string]interface{}{}
	if req.Email != "" {
		updates["email"] = strings.TrimSpace(req.Email)
	}
	if req.Phone != "" {
		updates["phone"] = strings.TrimSpace(req.Phone)
	}

	user, err := c.userService().UpdateUser(id, updates)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to update user: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, userPayload(user))
}

// ChangePassword changes the caller's password
// @Summary      Change password
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body ChangePasswordRequest true "Old and new password"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /users/password [put]
// @Security     BearerAuth
func (c *UserController) ChangePassword() {
	var req ChangePasswordRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	if userID == 0 {
		response.Unauthorized(c.Ctx)
		return
	}

	if err := c.userService().ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserPasswordIncorrect, "failed to change password: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"changed": true})
}

// SetStatus enables or disables an account
// @Summary      Set account status
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        id path int true "User ID"
// @Param        request body SetStatusRequest true "New status"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /users/{id}/status [put]
// @Security     BearerAuth
func (c *UserController) SetStatus() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	user, err := c.userService().SetStatus(id, req.Status)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to set status: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, userPayload(user))
}

// DeleteUser removes an account
// @Summary      Delete user
// @Tags         User
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [delete]
// @Security     BearerAuth
func (c *UserController) DeleteUser() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	if err := c.userService().DeleteUser(id); err != nil {
		response.NotFound(c.Ctx, "user not found")
		return
	}

	response.Success(c.Ctx, gin.H{"deleted": true})
}

// pagePayload wraps one page of results in the uniform list envelope.
func pagePayload(data interface{}, total int64, query models.PaginationQuery) gin.H {
	return gin.H{
		"total":       total,
		"page":        query.Page,
		"page_size":   query.PageSize,
		"total_pages": (total + int64(query.PageSize) - 1) / int64(query.PageSize),
		"data":        data,
	}
}

// bindPagination reads page/page_size/desc query parameters.
func bindPagination(ctx *gin.Context) models.PaginationQuery {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	desc := ctx.DefaultQuery("desc", "true") == "true"

	query := models.PaginationQuery{Page: page, PageSize: pageSize, Desc: desc}
	query.Normalize()
	return query
}

// bindID parses the :id path parameter, writing the error response itself.
func bindID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(ctx, "invalid id parameter")
		return 0, false
	}
	return uint(id), true
}
