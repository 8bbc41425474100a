package router

import (
	"github.com/labstack/echo/v4"

	"civicport/internal/adapter/api/middleware"
	"civicport/internal/infrastructure/ratelimit"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	roleMiddleware *middleware.RoleMiddleware,
	submitLimiter *ratelimit.SubmissionLimiter,
) {
	SetupHealthRouter(e)
	SetupAuthRouter(e)
	SetupUserRouter(e, authMiddleware, roleMiddleware)
	SetupComplaintRouter(e, authMiddleware, roleMiddleware)
	SetupWizardRouter(e, authMiddleware, submitLimiter)
}
