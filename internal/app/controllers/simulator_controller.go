package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/services"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/services/container"
	"github.com/vivekvardhan78/JalRakshak/internal/error/code"
	"github.com/vivekvardhan78/JalRakshak/internal/error/response"
)

// SimulatorController starts and stops the telemetry simulator.
type SimulatorController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewSimulatorController creates a new simulator controller.
func NewSimulatorController(ctx *gin.Context, container *container.ServiceContainer) *SimulatorController {
	return &SimulatorController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleSimulatorFunc returns a gin handler dispatching to the simulator
// controller.
func HandleSimulatorFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewSimulatorController(ctx, container)

		switch method {
		case "start":
			controller.Start()
		case "stop":
			controller.Stop()
		case "status":
			controller.Status()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *SimulatorController) simulatorService() services.InterfaceSimulatorService {
	return c.Container.GetService("simulator").(services.InterfaceSimulatorService)
}

// Start begins emitting synthetic readings
// @Summary      Start simulator
// @Tags         Simulator
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /simulator/start [post]
// @Security     BearerAuth
func (c *SimulatorController) Start() {
	if err := c.simulatorService().Start(); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to start simulator: "+err.Error(), nil)
		return
	}
	response.Success(c.Ctx, gin.H{"running": true})
}

// Stop halts synthetic readings
// @Summary      Stop simulator
// @Tags         Simulator
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /simulator/stop [post]
// @Security     BearerAuth
func (c *SimulatorController) Stop() {
	if err := c.simulatorService().Stop(); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to stop simulator: "+err.Error(), nil)
		return
	}
	response.Success(c.Ctx, gin.H{"running": false})
}

// Status reports whether the simulator is running
// @Summary      Simulator status
// @Tags         Simulator
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /simulator/status [get]
// @Security     BearerAuth
func (c *SimulatorController) Status() {
	response.Success(c.Ctx, gin.H{"running": c.simulatorService().IsRunning()})
}
