package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/uniplan/internal/app/controllers"
	"github.com/yigit/uniplan/internal/app/models"
	"github.com/yigit/uniplan/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	scheduleController *controllers.ScheduleController,
	timetableController *controllers.TimetableController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Schedule routes: reads for every authenticated user, mutations only
	// for admins and schedulers
	schedules := authenticated.Group("/schedules")
	{
		schedules.GET("", scheduleController.GetAllSchedules)
		schedules.GET("/:id", scheduleController.GetScheduleByID)
		schedules.GET("/:id/conflicts", scheduleController.CheckConflicts)

		schedulesProtected := schedules.Group("")
		schedulesProtected.Use(authMiddleware.RoleRequired(string(models.RoleAdmin), string(models.RoleScheduler)))
		{
			schedulesProtected.POST("", scheduleController.CreateSchedule)
			schedulesProtected.PUT("/:id", scheduleController.UpdateSchedule)
			schedulesProtected.DELETE("/:id", scheduleController.DeleteSchedule)
			schedulesProtected.POST("/:id/restore", scheduleController.RestoreSchedule)

			// Status transitions
			schedulesProtected.POST("/:id/activate", scheduleController.Activate)
			schedulesProtected.POST("/:id/publish", scheduleController.Publish)
			schedulesProtected.POST("/:id/cancel", scheduleController.Cancel)

			// Session placements
			schedulesProtected.POST("/:id/sessions", scheduleController.AddSession)
			schedulesProtected.DELETE("/:id/sessions/:sessionId", scheduleController.RemoveSession)
		}
	}

	// Timetable views (read-only)
	timetables := authenticated.Group("/timetables")
	{
		timetables.GET("/classrooms/:classroomId", timetableController.GetClassroomTimetable)
		timetables.GET("/instructors/:instructorId", timetableController.GetInstructorTimetable)
	}
}
