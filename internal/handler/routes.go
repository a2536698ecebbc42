package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-timetable-api/internal/middleware"
	"github.com/noah-isme/campus-timetable-api/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth       *AuthHandler
	Timetables *TimetableHandler
	Exams      *ExamHandler
	Courses    *CourseHandler
	Professors *ProfessorHandler
	Students   *StudentHandler
	Rooms      *RoomHandler
	Slots      *SlotHandler
	Imports    *ImportHandler
	Exports    *ExportHandler
}

// Register mounts all routes under the given prefix. Reads are open;
// mutations require an admin bearer token.
func Register(r *gin.Engine, prefix string, h Handlers, auth *service.AuthService) {
	api := r.Group(prefix)
	admin := middleware.AdminOnly(auth)

	api.POST("/auth/login", h.Auth.Login)

	api.GET("/timetables", h.Timetables.List)
	api.POST("/timetables", admin, h.Timetables.Create)
	api.GET("/timetables/:id", h.Timetables.Get)
	api.DELETE("/timetables/:id", admin, h.Timetables.Delete)
	api.POST("/timetables/:id/generate", admin, h.Timetables.Generate)
	api.POST("/timetables/:id/reschedule", admin, h.Timetables.Reschedule)
	api.POST("/timetables/:id/optimize", admin, h.Timetables.Optimize)
	api.DELETE("/timetables/:id/sessions", admin, h.Timetables.Clear)
	api.GET("/timetables/:id/data", h.Timetables.Data)
	api.GET("/timetables/:id/statistics", h.Timetables.Statistics)
	api.GET("/timetables/:id/conflicts", h.Timetables.Conflicts)
	api.POST("/timetables/:id/calendar-sync", admin, h.Timetables.SyncCalendar)
	api.GET("/timetables/:id/export/csv", h.Exports.TimetableCSV)
	api.GET("/timetables/:id/export/pdf", h.Exports.TimetablePDF)
	api.GET("/sections", h.Timetables.Sections)

	api.POST("/exams/generate", admin, h.Exams.Generate)
	api.GET("/exams", h.Exams.List)
	api.GET("/exams/:id/allocations", h.Exams.Allocations)
	api.POST("/exams/:id/seating", admin, h.Exams.Seating)
	api.GET("/exams/:id/seating", h.Exams.SeatingChart)
	api.GET("/exams/:id/seating/export/pdf", h.Exports.SeatingPDF)
	api.POST("/exams/:id/invigilation", admin, h.Exams.Invigilation)
	api.GET("/exams/:id/invigilation", h.Exams.Duties)

	api.GET("/courses", h.Courses.List)
	api.POST("/courses", admin, h.Courses.Create)
	api.GET("/courses/:id", h.Courses.Get)
	api.PUT("/courses/:id", admin, h.Courses.Update)
	api.DELETE("/courses/:id", admin, h.Courses.Delete)
	api.GET("/courses/:id/enrollments", h.Courses.EnrolledStudents)
	api.POST("/courses/:id/enrollments", admin, h.Courses.Enroll)
	api.DELETE("/courses/:id/enrollments/:studentId", admin, h.Courses.Unenroll)

	api.GET("/professors", h.Professors.List)
	api.POST("/professors", admin, h.Professors.Create)
	api.PUT("/professors/:id", admin, h.Professors.Update)
	api.DELETE("/professors/:id", admin, h.Professors.Delete)
	api.GET("/professors/:id/availability", h.Professors.Availability)
	api.PUT("/professors/:id/availability", admin, h.Professors.ReplaceAvailability)

	api.GET("/students", h.Students.List)
	api.POST("/students", admin, h.Students.Create)
	api.PUT("/students/:id", admin, h.Students.Update)
	api.DELETE("/students/:id", admin, h.Students.Delete)

	api.GET("/rooms", h.Rooms.List)
	api.POST("/rooms", admin, h.Rooms.Create)
	api.PUT("/rooms/:id", admin, h.Rooms.Update)
	api.DELETE("/rooms/:id", admin, h.Rooms.Delete)
	api.GET("/rooms/:id/availability", h.Rooms.Availability)
	api.PUT("/rooms/:id/availability", admin, h.Rooms.ReplaceAvailability)

	api.GET("/slots", h.Slots.List)
	api.POST("/slots", admin, h.Slots.Create)
	api.PUT("/slots/:id", admin, h.Slots.Update)
	api.DELETE("/slots/:id", admin, h.Slots.Delete)
	api.GET("/blackouts", h.Slots.Blackouts)
	api.POST("/blackouts", admin, h.Slots.CreateBlackout)
	api.DELETE("/blackouts/:id", admin, h.Slots.DeleteBlackout)

	api.POST("/import/courses", admin, h.Imports.Courses)
	api.POST("/import/professors", admin, h.Imports.Professors)
	api.POST("/import/students", admin, h.Imports.Students)
	api.POST("/import/rooms", admin, h.Imports.Rooms)
}
