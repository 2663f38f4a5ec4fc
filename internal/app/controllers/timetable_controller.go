package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniplan/internal/app/models/dto"
	"github.com/yigit/uniplan/internal/app/services"
	"github.com/yigit/uniplan/internal/middleware"
)

// TimetableController serves read-side timetable views
type TimetableController struct {
	timetableService services.TimetableService
}

// NewTimetableController creates a new TimetableController
func NewTimetableController(timetableService services.TimetableService) *TimetableController {
	return &TimetableController{
		timetableService: timetableService,
	}
}

// GetClassroomTimetable lists all sessions for a classroom
// @Summary Classroom timetable
// @Description Retrieves all sessions placed in a classroom across non-deleted schedules, ordered by day and start time.
// @Tags timetables
// @Produce json
// @Security BearerAuth
// @Param classroomId path int true "Classroom ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.SessionResponse} "Timetable retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid classroom ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /timetables/classrooms/{classroomId} [get]
func (c *TimetableController) GetClassroomTimetable(ctx *gin.Context) {
	classroomID, err := strconv.ParseInt(ctx.Param("classroomId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid classroom ID")
		errorDetail = errorDetail.WithDetails("Classroom ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	sessions, err := c.timetableService.GetClassroomTimetable(ctx, classroomID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewSessionResponses(sessions)))
}

// GetInstructorTimetable lists all sessions for an instructor
// @Summary Instructor timetable
// @Description Retrieves all sessions taught by an instructor across non-deleted schedules, ordered by day and start time.
// @Tags timetables
// @Produce json
// @Security BearerAuth
// @Param instructorId path int true "Instructor ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.SessionResponse} "Timetable retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid instructor ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /timetables/instructors/{instructorId} [get]
func (c *TimetableController) GetInstructorTimetable(ctx *gin.Context) {
	instructorID, err := strconv.ParseInt(ctx.Param("instructorId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid instructor ID")
		errorDetail = errorDetail.WithDetails("Instructor ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	sessions, err := c.timetableService.GetInstructorTimetable(ctx, instructorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewSessionResponses(sessions)))
}
