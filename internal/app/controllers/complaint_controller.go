package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vivekvardhan78/JalRakshak/internal/app/middleware"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/models"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/services"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/services/container"
	"github.com/vivekvardhan78/JalRakshak/internal/error/code"
	"github.com/vivekvardhan78/JalRakshak/internal/error/response"
)

// maxPhotoSize caps complaint photo uploads at 8 MiB.
const maxPhotoSize = 8 << 20

// ComplaintController handles citizen issue reports.
type ComplaintController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewComplaintController creates a new complaint controller.
func NewComplaintController(ctx *gin.Context, container *container.ServiceContainer) *ComplaintController {
	return &ComplaintController{
		Ctx:       ctx,
		Container: container,
	}
}

// AssignComplaintRequest assigns a complaint to staff.
type AssignComplaintRequest struct {
	AssigneeID uint `json:"assignee_id" binding:"required"`
}

// UpdateComplaintStatusRequest moves a complaint through its workflow.
type UpdateComplaintStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress resolved"`
	Note   string `json:"note"`
}

// HandleComplaintFunc returns a gin handler dispatching to the complaint
// controller.
func HandleComplaintFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewComplaintController(ctx, container)

		switch method {
		case "createComplaint":
			controller.CreateComplaint()
		case "getComplaints":
			controller.GetComplaints()
		case "getComplaint":
			controller.GetComplaint()
		case "assignComplaint":
			controller.AssignComplaint()
		case "updateStatus":
			controller.UpdateStatus()
		case "deleteComplaint":
			controller.DeleteComplaint()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *ComplaintController) complaintService() services.InterfaceComplaintService {
	return c.Container.GetService("complaint").(services.InterfaceComplaintService)
}

// CreateComplaint files a report
// @Summary      Create complaint
// @Description  File an issue report as multipart form data with an optional photo and GPS fix
// @Tags         Complaint
// @Accept       multipart/form-data
// @Produce      json
// @Param        title formData string true "Title"
// @Param        description formData string false "Description"
// @Param        category formData string false "Category"
// @Param        latitude formData number false "Latitude"
// @Param        longitude formData number false "Longitude"
// @Param        photo formData file false "Photo"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /complaints [post]
// @Security     BearerAuth
func (c *ComplaintController) CreateComplaint() {
	title := c.Ctx.PostForm("title")
	if title == "" {
		response.ParamError(c.Ctx, "title is required")
		return
	}

	reporterID := middleware.CurrentUserID(c.Ctx)
	if reporterID == 0 {
		response.Unauthorized(c.Ctx)
		return
	}

	complaint := &models.Complaint{
		Title:       title,
		Description: c.Ctx.PostForm("description"),
		Category:    models.ComplaintCategory(c.Ctx.PostForm("category")),
		ReporterID:  reporterID,
	}

	if lat, err := strconv.ParseFloat(c.Ctx.PostForm("latitude"), 64); err == nil {
		if lng, err := strconv.ParseFloat(c.Ctx.PostForm("longitude"), 64); err == nil {
			complaint.Latitude = &lat
			complaint.Longitude = &lng
		}
	}

	svc := c.complaintService()
	if err := svc.CreateComplaint(complaint); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to create complaint: "+err.Error(), nil)
		return
	}

	// The photo is uploaded after the row exists so its object key can
	// carry the complaint ID.
	if header, err := c.Ctx.FormFile("photo"); err == nil {
		if header.Size > maxPhotoSize {
			response.FailWithMessage(c.Ctx, code.ErrPhotoUpload, "photo exceeds the size limit", gin.H{"complaint": complaint})
			return
		}

		file, err := header.Open()
		if err != nil {
			response.FailWithMessage(c.Ctx, code.ErrPhotoUpload, "failed to read photo: "+err.Error(), gin.H{"complaint": complaint})
			return
		}
		defer file.Close()

		updated, err := svc.AttachPhoto(c.Ctx.Request.Context(), complaint.ID, header.Header.Get("Content-Type"), file)
		if err != nil {
			response.FailWithMessage(c.Ctx, code.ErrPhotoUpload, "photo upload failed: "+err.Error(), gin.H{"complaint": complaint})
			return
		}
		complaint = updated
	}

	response.Success(c.Ctx, complaint)
}

// GetComplaints lists reports
// @Summary      List complaints
// @Description  Staff see all complaints; citizens see only their own
// @Tags         Complaint
// @Produce      json
// @Param        page query int false "Page, default 1"
// @Param        page_size query int false "Page size, default 10"
// @Param        status query string false "Filter by status"
// @Param        category query string false "Filter by category"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /complaints [get]
// @Security     BearerAuth
func (c *ComplaintController) GetComplaints() {
	query := bindPagination(c.Ctx)
	status := c.Ctx.Query("status")
	category := c.Ctx.Query("category")

	var reporterID uint
	if middleware.CurrentUserRole(c.Ctx) == "citizen" {
		reporterID = middleware.CurrentUserID(c.Ctx)
	}

	complaints, total, err := c.complaintService().GetComplaints(query, status, category, reporterID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to list complaints: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, pagePayload(complaints, total, query))
}

// GetComplaint fetches one report
// @Summary      Get complaint
// @Tags         Complaint
// @Produce      json
// @Param        id path int true "Complaint ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /complaints/{id} [get]
// @Security     BearerAuth
func (c *ComplaintController) GetComplaint() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	complaint, err := c.complaintService().GetComplaintByID(id)
	if err != nil {
		response.NotFound(c.Ctx, "complaint not found")
		return
	}

	// Citizens may only read their own reports.
	if middleware.CurrentUserRole(c.Ctx) == "citizen" && complaint.ReporterID != middleware.CurrentUserID(c.Ctx) {
		response.NotFound(c.Ctx, "complaint not found")
		return
	}

	response.Success(c.Ctx, complaint)
}

// AssignComplaint assigns a report to staff
// @Summary      Assign complaint
// @Tags         Complaint
// @Accept       json
// @Produce      json
// @Param        id path int true "Complaint ID"
// @Param        request body AssignComplaintRequest true "Assignee"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /complaints/{id}/assign [put]
// @Security     BearerAuth
func (c *ComplaintController) AssignComplaint() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	var req AssignComplaintRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	complaint, err := c.complaintService().AssignComplaint(id, req.AssigneeID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to assign complaint: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, complaint)
}

// UpdateStatus moves a report through its workflow
// @Summary      Update complaint status
// @Tags         Complaint
// @Accept       json
// @Produce      json
// @Param        id path int true "Complaint ID"
// @Param        request body UpdateComplaintStatusRequest true "Target status"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /complaints/{id}/status [put]
// @Security     BearerAuth
func (c *ComplaintController) UpdateStatus() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	var req UpdateComplaintStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	complaint, err := c.complaintService().UpdateStatus(id, models.ComplaintStatus(req.Status), req.Note)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrComplaintTransition, "failed to update status: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, complaint)
}

// DeleteComplaint removes a report
// @Summary      Delete complaint
// @Tags         Complaint
// @Produce      json
// @Param        id path int true "Complaint ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /complaints/{id} [delete]
// @Security     BearerAuth
func (c *ComplaintController) DeleteComplaint() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	if err := c.complaintService().DeleteComplaint(id); err != nil {
		response.NotFound(c.Ctx, "complaint not found")
		return
	}

	response.Success(c.Ctx, gin.H{"deleted": true})
}
