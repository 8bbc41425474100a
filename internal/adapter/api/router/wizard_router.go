package router

import (
	"github.com/labstack/echo/v4"

	"civicport/internal/adapter/api/handler"
	"civicport/internal/adapter/api/middleware"
	"civicport/internal/infrastructure/ratelimit"
)

func SetupWizardRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, submitLimiter *ratelimit.SubmissionLimiter) {
	wizardHandler := handler.GetWizardHandler()

	wiz := e.Group("/v1/wizard")
	wiz.Use(authMiddleware.Authenticate)

	wiz.POST("", wizardHandler.Start)
	wiz.GET("", wizardHandler.GetState)
	wiz.DELETE("", wizardHandler.Discard)

	wiz.PUT("/basic-info", wizardHandler.SetBasicInfo)
	wiz.PUT("/details", wizardHandler.SetDetails)
	wiz.PUT("/location", wizardHandler.SetLocation)
	wiz.POST("/media", wizardHandler.AttachMedia)

	wiz.POST("/next", wizardHandler.Next)
	wiz.POST("/previous", wizardHandler.Previous)
	wiz.POST("/jump", wizardHandler.JumpTo)

	wiz.POST("/submit", wizardHandler.Submit, middleware.SubmitRateLimit(submitLimiter))
}
