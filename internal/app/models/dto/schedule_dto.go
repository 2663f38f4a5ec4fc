package dto

import (
	"time"

	"github.com/yigit/uniplan/internal/app/models"
)

// CreateScheduleRequest is the payload for creating a schedule
type CreateScheduleRequest struct {
	AcademicYear string  `json:"academicYear" binding:"required" example:"2024-2025"`
	Semester     int     `json:"semester" binding:"required,min=1,max=2" example:"1"`
	Name         string  `json:"name" binding:"required" example:"CS Fall Term"`
	Description  *string `json:"description,omitempty"`
	StartDate    string  `json:"startDate" binding:"required" example:"2024-09-16"`
	EndDate      string  `json:"endDate" binding:"required" example:"2025-01-17"`
	DepartmentID *int64  `json:"departmentId,omitempty" example:"3"`
}

// UpdateScheduleRequest is the payload for updating schedule metadata.
// The status cannot be changed here; transitions have dedicated endpoints.
type UpdateScheduleRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
	StartDate   string  `json:"startDate" binding:"required" example:"2024-09-16"`
	EndDate     string  `json:"endDate" binding:"required" example:"2025-01-17"`
}

// AddSessionRequest is the payload for placing a course session
type AddSessionRequest struct {
	CourseID     int64  `json:"courseId" binding:"required" example:"101"`
	InstructorID *int64 `json:"instructorId,omitempty" example:"12"`
	ClassroomID  int64  `json:"classroomId" binding:"required" example:"7"`
	DayOfWeek    string `json:"dayOfWeek" binding:"required" example:"monday"`
	StartTime    string `json:"startTime" binding:"required" example:"09:00"`
	EndTime      string `json:"endTime" binding:"required" example:"10:50"`
	SessionType  string `json:"sessionType" binding:"required" example:"lecture"`
	WeekNumber   *int   `json:"weekNumber,omitempty" example:"1"`
	Notes        string `json:"notes,omitempty"`
}

// SessionResponse is the representation of a course session
type SessionResponse struct {
	ID           string `json:"id"`
	ScheduleID   int64  `json:"scheduleId"`
	CourseID     int64  `json:"courseId"`
	InstructorID *int64 `json:"instructorId,omitempty"`
	ClassroomID  int64  `json:"classroomId"`
	DayOfWeek    string `json:"dayOfWeek"`
	StartTime    string `json:"startTime" example:"09:00"`
	EndTime      string `json:"endTime" example:"10:50"`
	SessionType  string `json:"sessionType"`
	WeekNumber   *int   `json:"weekNumber,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// ScheduleResponse is the representation of a schedule
type ScheduleResponse struct {
	ID           int64             `json:"id"`
	AcademicYear string            `json:"academicYear"`
	Semester     int               `json:"semester"`
	Name         string            `json:"name"`
	Description  *string           `json:"description,omitempty"`
	StartDate    string            `json:"startDate"`
	EndDate      string            `json:"endDate"`
	DepartmentID *int64            `json:"departmentId,omitempty"`
	Status       string            `json:"status"`
	PublishedBy  *int64            `json:"publishedBy,omitempty"`
	PublishedAt  *time.Time        `json:"publishedAt,omitempty"`
	Sessions     []SessionResponse `json:"sessions,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// ConflictResponse describes one double-booking found by the conflict audit
type ConflictResponse struct {
	SessionID      string `json:"sessionId"`
	OtherSessionID string `json:"otherSessionId"`
	Type           string `json:"type" example:"instructor"`
	Message        string `json:"message"`
}

// NewSessionResponse maps a course session to its response shape
func NewSessionResponse(session *models.CourseSession) SessionResponse {
	return SessionResponse{
		ID:           session.ID,
		ScheduleID:   session.ScheduleID,
		CourseID:     session.CourseID,
		InstructorID: session.InstructorID,
		ClassroomID:  session.ClassroomID,
		DayOfWeek:    string(session.DayOfWeek),
		StartTime:    session.TimeSlot.StartClock(),
		EndTime:      session.TimeSlot.EndClock(),
		SessionType:  string(session.SessionType),
		WeekNumber:   session.WeekNumber,
		Notes:        session.Notes,
	}
}

// NewSessionResponses maps a session list to response shapes
func NewSessionResponses(sessions []*models.CourseSession) []SessionResponse {
	responses := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, NewSessionResponse(session))
	}
	return responses
}

// NewScheduleResponse maps a schedule to its response shape
func NewScheduleResponse(schedule *models.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:           schedule.ID,
		AcademicYear: schedule.AcademicYear,
		Semester:     schedule.Semester,
		Name:         schedule.Name,
		Description:  schedule.Description,
		StartDate:    schedule.StartDate.Format("2006-01-02"),
		EndDate:      schedule.EndDate.Format("2006-01-02"),
		DepartmentID: schedule.DepartmentID,
		Status:       string(schedule.Status),
		PublishedBy:  schedule.PublishedBy,
		PublishedAt:  schedule.PublishedAt,
		Sessions:     NewSessionResponses(schedule.Sessions),
		CreatedAt:    schedule.CreatedAt,
		UpdatedAt:    schedule.UpdatedAt,
	}
}

// NewConflictResponses maps audit results to response shapes
func NewConflictResponses(conflicts []models.SessionConflict) []ConflictResponse {
	responses := make([]ConflictResponse, 0, len(conflicts))
	for _, conflict := range conflicts {
		responses = append(responses, ConflictResponse{
			SessionID:      conflict.SessionID,
			OtherSessionID: conflict.OtherSessionID,
			Type:           string(conflict.Type),
			Message:        conflict.Message,
		})
	}
	return responses
}
