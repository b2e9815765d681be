package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/models"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/services"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/services/container"
	"github.com/vivekvardhan78/JalRakshak/internal/error/code"
	"github.com/vivekvardhan78/JalRakshak/internal/error/response"
)

// SensorController handles monitoring stations and their readings.
type SensorController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewSensorController creates a new sensor controller.
func NewSensorController(ctx *gin.Context, container *container.ServiceContainer) *SensorController {
	return &SensorController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateSensorRequest registers a station.
type CreateSensorRequest struct {
	Code      string  `json:"code" binding:"required" example:"WTP-NORTH-01"`
	Name      string  `json:"name" binding:"required" example:"North plant outflow"`
	Type      string  `json:"type" binding:"required,oneof=flow pressure temperature ph turbidity quality" example:"flow"`
	Location  string  `json:"location" example:"North treatment plant"`
	Latitude  float64 `json:"latitude" example:"17.4065"`
	Longitude float64 `json:"longitude" example:"78.4772"`
}

// UpdateSensorRequest updates station metadata.
type UpdateSensorRequest struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Status    string   `json:"status" binding:"omitempty,oneof=active inactive fault"`
}

// StoreReadingRequest submits one measurement. Value is a pointer so a
// legitimate reading of 0 passes the required check.
type StoreReadingRequest struct {
	Value      *float64   `json:"value" binding:"required"`
	Type       string     `json:"type" binding:"omitempty,oneof=flow pressure temperature ph turbidity quality"`
	Unit       string     `json:"unit"`
	RecordedAt *time.Time `json:"recorded_at"`
}

// HandleSensorFunc returns a gin handler dispatching to the sensor controller.
func HandleSensorFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewSensorController(ctx, container)

		switch method {
		case "getSensors":
			controller.GetSensors()
		case "getSensor":
			controller.GetSensor()
		case "createSensor":
			controller.CreateSensor()
		case "updateSensor":
			controller.UpdateSensor()
		case "deleteSensor":
			controller.DeleteSensor()
		case "storeReading":
			controller.StoreReading()
		case "getReadings":
			controller.GetReadings()
		case "getLatestReadings":
			controller.GetLatestReadings()
		case "exportReadings":
			controller.ExportReadings()
		case "purgeReadings":
			controller.PurgeReadings()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *SensorController) sensorService() services.InterfaceSensorService {
	return c.Container.GetService("sensor").(services.InterfaceSensorService)
}

// GetSensors lists stations
// @Summary      List sensors
// @Tags         Sensor
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /sensors [get]
// @Security     BearerAuth
func (c *SensorController) GetSensors() {
	sensors, err := c.sensorService().GetAllSensors()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to list sensors: "+err.Error(), nil)
		return
	}
	response.Success(c.Ctx, sensors)
}

// GetSensor fetches one station
// @Summary      Get sensor
// @Tags         Sensor
// @Produce      json
// @Param        id path int true "Sensor ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /sensors/{id} [get]
// @Security     BearerAuth
func (c *SensorController) GetSensor() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	sensor, err := c.sensorService().GetSensorByID(id)
	if err != nil {
		response.NotFound(c.Ctx, "sensor not found")
		return
	}
	response.Success(c.Ctx, sensor)
}

// CreateSensor registers a station
// @Summary      Create sensor
// @Tags         Sensor
// @Accept       json
// @Produce      json
// @Param        request body CreateSensorRequest true "Station details"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /sensors [post]
// @Security     BearerAuth
func (c *SensorController) CreateSensor() {
	var req CreateSensorRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	sensor := &models.Sensor{
		Code:      req.Code,
		Name:      req.Name,
		Type:      models.SensorType(req.Type),
		Location:  req.Location,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	if err := c.sensorService().CreateSensor(sensor); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrSensorAlreadyExist, "failed to create sensor: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, sensor)
}

// UpdateSensor updates station metadata
// @Summary      Update sensor
// @Tags         Sensor
// @Accept       json
// @Produce      json
// @Param        id path int true "Sensor ID"
// @Param        request body UpdateSensorRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /sensors/{id} [put]
// @Security     BearerAuth
func (c *SensorController) UpdateSensor() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	var req UpdateSensorRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	updates := map[string]interface{}{}
	if req.Code != "" {
		updates["code"] = req.Code
	}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	sensor, err := c.sensorService().UpdateSensor(id, updates)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to update sensor: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, sensor)
}

// DeleteSensor removes a station
// @Summary      Delete sensor
// @Tags         Sensor
// @Produce      json
// @Param        id path int true "Sensor ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /sensors/{id} [delete]
// @Security     BearerAuth
func (c *SensorController) DeleteSensor() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	if err := c.sensorService().DeleteSensor(id); err != nil {
		response.NotFound(c.Ctx, "sensor not found")
		return
	}

	response.Success(c.Ctx, gin.H{"deleted": true})
}

// StoreReading submits a reading over HTTP
// @Summary      Submit reading
// @Description  Store one measurement; it is evaluated against thresholds and broadcast
// @Tags         Sensor
// @Accept       json
// @Produce      json
// @Param        id path int true "Sensor ID"
// @Param        request body StoreReadingRequest true "Measurement"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /sensors/{id}/readings [post]
// @Security     BearerAuth
func (c *SensorController) StoreReading() {
	id, ok := bindID(c.Ctx)
	if !ok {
		return
	}

	var req StoreReadingRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	reading := &models.SensorReading{
		SensorID: id,
		Type:     models.SensorType(req.Type),
		Value:    *req.Value,
		Unit:     req.Unit,
	}
	if req.RecordedAt != nil {
		reading.RecordedAt = *req.RecordedAt
	}

	alerts, err := c.sensorService().StoreReading(reading)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrReadingInvalid, "reading rejected: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"reading": reading,
		"alerts":  alerts,
	})
}

// GetReadings lists readings
// @Summary      List readings
// @Tags         Sensor
// @Produce      json
// @Param        page query int false "Page, default 1"
// @Param        page_size query int false "Page size, default 10"
// @Param        sensor_id query int false "Filter by sensor"
// @Param        type query string false "Filter by sensor type"
// @Param        from query string false "RFC3339 start of range"
// @Param        to query string false "RFC3339 end of range"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /readings [get]
// @Security     BearerAuth
func (c *SensorController) GetReadings() {
	query := bindPagination(c.Ctx)
	sensorID, _ := strconv.ParseUint(c.Ctx.Query("sensor_id"), 10, 32)
	sensorType := c.Ctx.Query("type")
	from, to := bindTimeRange(c.Ctx)

	readings, total, err := c.sensorService().GetReadings(query, uint(sensorID), sensorType, from, to)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to list readings: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, pagePayload(readings, total, query))
}

// GetLatestReadings returns the newest reading per station
// @Summary      Latest readings
// @Tags         Sensor
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /readings/latest [get]
// @Security     BearerAuth
func (c *SensorController) GetLatestReadings() {
	latest, err := c.sensorService().GetLatestReadings()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to fetch latest readings: "+err.Error(), nil)
		return
	}
	response.Success(c.Ctx, latest)
}

// ExportReadings downloads readings as CSV
// @Summary      Export readings
// @Description  Download readings as a CSV file
// @Tags         Sensor
// @Produce      text/csv
// @Param        sensor_id query int false "Filter by sensor"
// @Param        from query string false "RFC3339 start of range"
// @Param        to query string false "RFC3339 end of range"
// @Success      200  {string}  string
// @Failure      500  {object}  ErrorResponse
// @Router       /readings/export [get]
// @Security     BearerAuth
func (c *SensorController) ExportReadings() {
	sensorID, _ := strconv.ParseUint(c.Ctx.Query("sensor_id"), 10, 32)
	from, to := bindTimeRange(c.Ctx)

	data, err := c.sensorService().ExportReadingsCSV(uint(sensorID), from, to)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to export readings: "+err.Error(), nil)
		return
	}

	filename := fmt.Sprintf("readings-%s.csv", time.Now().Format("20060102-150405"))
	c.Ctx.Header("Content-Disposition", "attachment; filename="+filename)
	c.Ctx.Data(200, "text/csv", data)
}

// PurgeReadings deletes readings recorded before a cutoff
// @Summary      Purge readings
// @Description  Delete all readings recorded before the given RFC3339 cutoff
// @Tags         Sensor
// @Produce      json
// @Param        before query string true "RFC3339 cutoff"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /readings [delete]
// @Security     BearerAuth
func (c *SensorController) PurgeReadings() {
	cutoff, err := time.Parse(time.RFC3339, c.Ctx.Query("before"))
	if err != nil {
		response.ParamError(c.Ctx, "before must be an RFC3339 timestamp")
		return
	}

	deleted, err := c.sensorService().DeleteReadingsBefore(cutoff)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to purge readings: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"deleted": deleted})
}

// bindTimeRange reads optional RFC3339 from/to query parameters.
func bindTimeRange(ctx *gin.Context) (*time.Time, *time.Time) {
	var from, to *time.Time
	if raw := ctx.Query("from"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			from = &t
		}
	}
	if raw := ctx.Query("to"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			to = &t
		}
	}
	return from, to
}
