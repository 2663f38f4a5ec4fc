package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniplan/internal/app/models/dto"
	"github.com/yigit/uniplan/internal/app/services"
	"github.com/yigit/uniplan/internal/middleware"
	"github.com/yigit/uniplan/internal/pkg/helpers"
)

// ScheduleController handles schedule-related operations
type ScheduleController struct {
	scheduleService services.ScheduleService
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(scheduleService services.ScheduleService) *ScheduleController {
	return &ScheduleController{
		scheduleService: scheduleService,
	}
}

// parseScheduleID reads the schedule id path parameter. A response has
// already been written when ok is false.
func parseScheduleID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid schedule ID")
		errorDetail = errorDetail.WithDetails("Schedule ID must be a valid positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// CreateSchedule handles schedule creation
// @Summary Create a new schedule
// @Description Creates a draft schedule for an academic year and semester. At most one non-deleted schedule may exist per (academicYear, semester, department).
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateScheduleRequest true "Schedule information"
// @Success 201 {object} dto.APIResponse{data=dto.ScheduleResponse} "Schedule created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "A schedule already exists for this term"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules [post]
func (c *ScheduleController) CreateSchedule(ctx *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid schedule data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	startDate, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	endDate, err := helpers.ParseDate(req.EndDate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	schedule, err := c.scheduleService.CreateSchedule(ctx, req.AcademicYear, req.Semester, req.Name, req.Description, startDate, endDate, req.DepartmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewScheduleResponse(schedule)))
}

// GetScheduleByID retrieves a schedule with its sessions
// @Summary Get schedule by ID
// @Description Retrieves a specific schedule and its course sessions
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse} "Schedule retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid schedule ID"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/{id} [get]
func (c *ScheduleController) GetScheduleByID(ctx *gin.Context) {
	id, ok := parseScheduleID(ctx)
	if !ok {
		return
	}

	schedule, err := c.scheduleService.GetSchedule(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewScheduleResponse(schedule)))
}

// GetAllSchedules retrieves all schedules
// @Summary List schedules
// @Description Retrieves all non-deleted schedules without their sessions
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ScheduleResponse} "Schedules retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules [get]
func (c *ScheduleController) GetAllSchedules(ctx *gin.Context) {
	schedules, err := c.scheduleService.GetAllSchedules(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ScheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		responses = append(responses, dto.NewScheduleResponse(schedule))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responses))
}

// AddSession places a course session into a schedule
// @Summary Add a course session
// @Description Validates the placement and runs the conflict check against every current session; the session is appended only when no instructor or classroom double-booking is found.
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Param request body dto.AddSessionRequest true "Session placement"
// @Success 201 {object} dto.APIResponse{data=dto.SessionResponse} "Session added successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid placement data"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Failure 409 {object} dto.ErrorResponse "Placement conflicts with an existing session"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/{id}/sessions [post]
func (c *ScheduleController) AddSession(ctx *gin.Context) {
	id, ok := parseScheduleID(ctx)
	if !ok {
		return
	}

	var req dto.AddSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid session data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session, err := c.scheduleService.AddSession(ctx, id, services.AddSessionInput{
		CourseID:     req.CourseID,
		InstructorID: req.InstructorID,
		ClassroomID:  req.ClassroomID,
		DayOfWeek:    req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		SessionType:  req.SessionType,
		WeekNumber:   req.WeekNumber,
		Notes:        req.Notes,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewSessionResponse(session)))
}

// RemoveSession removes a course session from a schedule
// @Summary Remove a course session
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Param sessionId path string true "Session ID"
// @Success 204 "Session removed successfully"
// @Failure 404 {object} dto.ErrorResponse "Schedule or session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/{id}/sessions/{sessionId} [delete]
func (c *ScheduleController) RemoveSession(ctx *gin.Context) {
	id, ok := parseScheduleID(ctx)
	if !ok {
		return
	}

	if err := c.scheduleService.RemoveSession(ctx, id, ctx.Param("sessionId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// CheckConflicts audits a schedule for double-bookings
// @Summary Audit schedule conflicts
// @Description Compares every pair of sessions and returns the complete conflict list. Read-only; nothing is resolved automatically.
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ConflictResponse} "Conflicts retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/{id}/conflicts [get]
func (c *ScheduleController) CheckConflicts(ctx *gin.Context) {
	id, ok := parseScheduleID(ctx)
	if !ok {
		return
	}

	conflicts, err := c.scheduleService.CheckAllConflicts(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewConflictResponses(conflicts)))
}

// Activate moves a draft schedule into the active state
// @Summary Activate a schedule
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse} "Schedule activated"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Failure 409 {object} dto.ErrorResponse "Schedule is not a draft"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/{id}/activate [post]
func (c *ScheduleController) Activate(ctx *gin.Context) {
	id, ok := parseScheduleID(ctx)
	if !ok {
		return
	}

	schedule, err := c.scheduleService.Activate(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewScheduleResponse(schedule)))
}

// Publish moves an active schedule into the published state
// @Summary Publish a schedule
// @Description Publishes an active schedule, recording the authenticated user as the publisher.
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse} "Schedule published"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Failure 409 {object} dto.ErrorResponse "Schedule is not active"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/{id}/publish [post]
func (c *ScheduleController) Publish(ctx *gin.Context) {
	id, ok := parseScheduleID(ctx)
	if !ok {
		return
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Missing user identity")))
		return
	}

	schedule, err := c.scheduleService.Publish(ctx, id, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewScheduleResponse(schedule)))
}

// Cancel cancels a draft or active schedule
// @Summary Cancel a schedule
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse} "Schedule cancelled"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Failure 409 {object} dto.ErrorResponse "Schedule is already published"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/{id}/cancel [post]
func (c *ScheduleController) Cancel(ctx *gin.Context) {
	id, ok := parseScheduleID(ctx)
	if !ok {
		return
	}

	schedule, err := c.scheduleService.Cancel(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewScheduleResponse(schedule)))
}

// UpdateSchedule updates schedule metadata
// @Summary Update schedule metadata
// @Description Changes the descriptive fields only. Status transitions have dedicated endpoints.
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Param request body dto.UpdateScheduleRequest true "Updated schedule metadata"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse} "Schedule updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/{id} [put]
func (c *ScheduleController) UpdateSchedule(ctx *gin.Context) {
	id, ok := parseScheduleID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid schedule data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	startDate, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	endDate, err := helpers.ParseDate(req.EndDate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	schedule, err := c.scheduleService.UpdateMetadata(ctx, id, req.Name, req.Description, startDate, endDate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewScheduleResponse(schedule)))
}

// DeleteSchedule soft-deletes a schedule
// @Summary Delete a schedule
// @Description Marks the schedule as deleted without erasing it. Sessions are kept but hidden.
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Success 204 "Schedule deleted"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/{id} [delete]
func (c *ScheduleController) DeleteSchedule(ctx *gin.Context) {
	id, ok := parseScheduleID(ctx)
	if !ok {
		return
	}

	if err := c.scheduleService.DeleteSchedule(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// RestoreSchedule restores a soft-deleted schedule
// @Summary Restore a schedule
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Success 204 "Schedule restored"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Failure 409 {object} dto.ErrorResponse "Another schedule exists for the same term"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/{id}/restore [post]
func (c *ScheduleController) RestoreSchedule(ctx *gin.Context) {
	id, ok := parseScheduleID(ctx)
	if !ok {
		return
	}

	if err := c.scheduleService.RestoreSchedule(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
