package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/vivekvardhan78/JalRakshak/internal/app/middleware"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/services"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/services/container"
	"github.com/vivekvardhan78/JalRakshak/internal/error/code"
	"github.com/vivekvardhan78/JalRakshak/internal/error/response"
)

// AlertController handles the alert lifecycle endpoints.
type AlertController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAlertController creates a new alert controller.
func NewAlertController(ctx *gin.Context, container *container.ServiceContainer) *AlertController {
	return &AlertController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAlertFunc returns a gin handler dispatching to the alert controller.
func HandleAlertFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAlertController(ctx, container)

		switch method {
		case "getAlerts":
			controller.GetAlerts()
		case "getAlert":
			controller.GetAlert()
		case "acknowledgeAlert":
			controller.AcknowledgeAlert()
		case "resolveAlert":
			controller.ResolveAlert()
		case "getAlertCounts":
			controller.GetAlertCounts()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *AlertController) alertService() services.InterfaceAlertService {
	return c.Container.GetService("alert").(services.InterfaceAlertService)
}

// GetAlerts lists alerts
// @Summary      List alerts
// @Tags         Alert
// @Produce      json
// @Param        page query int false "Page, default 1"
// @Param        page_size query int false "Page size, default 10"
// @Param        status query string false "Filter by status"
// @Param        severity query string false "Filter by severity"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /alerts [get]
// @Security     BearerAuth
func (c *AlertController) GetAlerts() {
	query := bindPagination(c.Ctx)
	status := c.Ctx.Query("status")
	severity := c.Ctx.Query("severity")

	alerts, total, err := c.alertService().GetAlerts(query, status, severity)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to list alerts: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, pagePayload(alerts, total, query))
}

// GetAlert fetches one alert
// @Summary      Get alert
// @Tags         Alert
// @Produce      json
// @Param        id path int true "Alert ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /alerts/{id} [get]
// @Security     BearerAuth
func (c *AlertController) GetAlert() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	alert, err := c.alertService().GetAlertByID(id)
	if err != nil {
		response.NotFound(c.Ctx, "alert not found")
		return
	}
	response.Success(c.Ctx, alert)
}

// AcknowledgeAlert marks an alert acknowledged
// @Summary      Acknowledge alert
// @Tags         Alert
// @Produce      json
// @Param        id path int true "Alert ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /alerts/{id}/acknowledge [put]
// @Security     BearerAuth
func (c *AlertController) AcknowledgeAlert() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	alert, err := c.alertService().Acknowledge(id, userID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrAlertAlreadyResolved, "failed to acknowledge alert: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, alert)
}

// ResolveAlert marks an alert resolved
// @Summary      Resolve alert
// @Tags         Alert
// @Produce      json
// @Param        id path int true "Alert ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /alerts/{id}/resolve [put]
// @Security     BearerAuth
func (c *AlertController) ResolveAlert() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	alert, err := c.alertService().Resolve(id, userID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrAlertAlreadyResolved, "failed to resolve alert: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, alert)
}

// GetAlertCounts returns unresolved alert counts per severity
// @Summary      Alert counts
// @Tags         Alert
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /alerts/counts [get]
// @Security     BearerAuth
func (c *AlertController) GetAlertCounts() {
	counts, err := c.alertService().CountsBySeverity()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to count alerts: "+err.Error(), nil)
		return
	}
	response.Success(c.Ctx, counts)
}
