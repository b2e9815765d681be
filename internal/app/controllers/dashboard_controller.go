package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/services"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/services/container"
	"github.com/vivekvardhan78/JalRakshak/internal/error/code"
	"github.com/vivekvardhan78/JalRakshak/internal/error/response"
)

// DashboardController serves the aggregated dashboard summary.
type DashboardController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDashboardController creates a new dashboard controller.
func NewDashboardController(ctx *gin.Context, container *container.ServiceContainer) *DashboardController {
	return &DashboardController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleDashboardFunc returns a gin handler dispatching to the dashboard
// controller.
func HandleDashboardFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDashboardController(ctx, container)

		switch method {
		case "getSummary":
			controller.GetSummary()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// GetSummary returns the dashboard summary
// @Summary      Dashboard summary
// @Description  Latest readings, alert counts and open work in one payload
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /dashboard/summary [get]
// @Security     BearerAuth
func (c *DashboardController) GetSummary() {
	dashboardService := c.Container.GetService("dashboard").(services.InterfaceDashboardService)
	summary, err := dashboardService.GetSummary()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to build summary: "+err.Error(), nil)
		return
	}
	response.Success(c.Ctx, summary)
}
