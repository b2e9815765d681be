package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/models"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/services"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/services/container"
	"github.com/vivekvardhan78/JalRakshak/internal/error/code"
	"github.com/vivekvardhan78/JalRakshak/internal/error/response"
)

// MaintenanceController handles scheduled field work items.
type MaintenanceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewMaintenanceController creates a new maintenance controller.
func NewMaintenanceController(ctx *gin.Context, container *container.ServiceContainer) *MaintenanceController {
	return &MaintenanceController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateTaskRequest schedules a work item.
type CreateTaskRequest struct {
	Title       string    `json:"title" binding:"required" example:"Replace valve V-23"`
	Description string    `json:"description"`
	TaskType    string    `json:"task_type" example:"pipe_repair"`
	Priority    string    `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	DueDate     time.Time `json:"due_date" binding:"required"`
	AssigneeID  *uint     `json:"assignee_id"`
	SensorID    *uint     `json:"sensor_id"`
}

// UpdateTaskRequest updates work item fields.
type UpdateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TaskType    string     `json:"task_type"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	Status      string     `json:"status" binding:"omitempty,oneof=scheduled in_progress completed cancelled"`
	DueDate     *time.Time `json:"due_date"`
	AssigneeID  *uint      `json:"assignee_id"`
	Notes       string     `json:"notes"`
}

// TaskNotesRequest carries the optional notes of a terminal transition.
type TaskNotesRequest struct {
	Notes string `json:"notes"`
}

// HandleMaintenanceFunc returns a gin handler dispatching to the maintenance
// controller.
func HandleMaintenanceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewMaintenanceController(ctx, container)

		switch method {
		case "createTask":
			controller.CreateTask()
		case "getTasks":
			controller.GetTasks()
		case "getTask":
			controller.GetTask()
		case "updateTask":
			controller.UpdateTask()
		case "completeTask":
			controller.CompleteTask()
		case "cancelTask":
			controller.CancelTask()
		case "deleteTask":
			controller.DeleteTask()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *MaintenanceController) maintenanceService() services.InterfaceMaintenanceService {
	return c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
}

// CreateTask schedules a work item
// @Summary      Create task
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        request body CreateTaskRequest true "Task details"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /tasks [post]
// @Security     BearerAuth
func (c *MaintenanceController) CreateTask() {
	var req CreateTaskRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	task := &models.MaintenanceTask{
		Title:       req.Title,
		Description: req.Description,
		TaskType:    req.TaskType,
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		AssigneeID:  req.AssigneeID,
		SensorID:    req.SensorID,
	}

	if err := c.maintenanceService().CreateTask(task); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to create task: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, task)
}

// GetTasks lists work items
// @Summary      List tasks
// @Tags         Maintenance
// @Produce      json
// @Param        page query int false "Page, default 1"
// @Param        page_size query int false "Page size, default 10"
// @Param        status query string false "Filter by status"
// @Param        priority query string false "Filter by priority"
// @Param        assignee_id query int false "Filter by assignee"
// @Param        overdue query bool false "Only overdue open tasks"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /tasks [get]
// @Security     BearerAuth
func (c *MaintenanceController) GetTasks() {
	query := bindPagination(c.Ctx)
	status := c.Ctx.Query("status")
	priority := c.Ctx.Query("priority")
	assigneeID, _ := strconv.ParseUint(c.Ctx.Query("assignee_id"), 10, 32)
	overdueOnly := c.Ctx.Query("overdue") == "true"

	tasks, total, err := c.maintenanceService().GetTasks(query, status, priority, uint(assigneeID), overdueOnly)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to list tasks: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, pagePayload(tasks, total, query))
}

// GetTask fetches one work item
// @Summary      Get task
// @Tags         Maintenance
// @Produce      json
// @Param        id path int true "Task ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /tasks/{id} [get]
// @Security     BearerAuth
func (c *MaintenanceController) GetTask() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	task, err := c.maintenanceService().GetTaskByID(id)
	if err != nil {
		response.NotFound(c.Ctx, "maintenance task not found")
		return
	}
	response.Success(c.Ctx, task)
}

// UpdateTask updates work item fields
// @Summary      Update task
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        id path int true "Task ID"
// @Param        request body UpdateTaskRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /tasks/{id} [put]
// @Security     BearerAuth
func (c *MaintenanceController) UpdateTask() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.TaskType != "" {
		updates["task_type"] = req.TaskType
	}
	if req.Priority != "" {
		updates["priority"] = req.Priority
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.AssigneeID != nil {
		updates["assignee_id"] = *req.AssigneeID
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}

	task, err := c.maintenanceService().UpdateTask(id, updates)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrTaskTransition, "failed to update task: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, task)
}

// CompleteTask marks a work item completed
// @Summary      Complete task
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        id path int true "Task ID"
// @Param        request body TaskNotesRequest false "Completion notes"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /tasks/{id}/complete [put]
// @Security     BearerAuth
func (c *MaintenanceController) CompleteTask() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	var req TaskNotesRequest
	c.Ctx.ShouldBindJSON(&req)

	task, err := c.maintenanceService().CompleteTask(id, req.Notes)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrTaskTransition, "failed to complete task: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, task)
}

// CancelTask cancels a work item
// @Summary      Cancel task
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        id path int true "Task ID"
// @Param        request body TaskNotesRequest false "Cancellation notes"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /tasks/{id}/cancel [put]
// @Security     BearerAuth
func (c *MaintenanceController) CancelTask() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	var req TaskNotesRequest
	c.Ctx.ShouldBindJSON(&req)

	task, err := c.maintenanceService().CancelTask(id, req.Notes)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrTaskTransition, "failed to cancel task: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, task)
}

// DeleteTask removes a work item
// @Summary      Delete task
// @Tags         Maintenance
// @Produce      json
// @Param        id path int true "Task ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /tasks/{id} [delete]
// @Security     BearerAuth
func (c *MaintenanceController) DeleteTask() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	if err := c.maintenanceService().DeleteTask(id); err != nil {
		response.NotFound(c.Ctx, "maintenance task not found")
		return
	}

	response.Success(c.Ctx, gin.H{"deleted": true})
}
