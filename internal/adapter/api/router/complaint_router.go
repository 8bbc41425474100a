package router

import (
	"github.com/labstack/echo/v4"

	"civicport/internal/adapter/api/handler"
	"civicport/internal/adapter/api/middleware"
)

func SetupComplaintRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	complaintHandler := handler.GetComplaintHandler()

	complaints := e.Group("/v1/complaints")
	complaints.Use(authMiddleware.Authenticate)
	complaints.GET("/me", complaintHandler.ListOwn)
	complaints.GET("/:id", complaintHandler.GetByID)

	staff := e.Group("/v1/admin/complaints")
	staff.Use(authMiddleware.Authenticate)
	staff.Use(roleMiddleware.StaffOnly)
	staff.GET("", complaintHandler.ListAll)
	staff.GET("/stats", complaintHandler.Stats)
	staff.PATCH("/:id/status", complaintHandler.UpdateStatus)

	admin := e.Group("/v1/admin/complaints")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(roleMiddleware.AdminOnly)
	admin.PATCH("/:id/assign", complaintHandler.Assign)
}
