package handler

import (
	"civicport/internal/domain/wizard"
	"civicport/internal/usecase"
)

var (
	authHandler      *AuthHandler
	userHandler      *UserHandler
	complaintHandler *ComplaintHandler
	wizardHandler    *WizardHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	complaintUseCase *usecase.ComplaintUseCase,
	submissionUseCase *usecase.SubmissionUseCase,
	wizardManager *wizard.Manager,
	maxUploadBytes int64,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	complaintHandler = NewComplaintHandler(complaintUseCase)
	wizardHandler = NewWizardHandler(wizardManager, submissionUseCase, maxUploadBytes)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetComplaintHandler() *ComplaintHandler {
	return complaintHandler
}

func GetWizardHandler() *WizardHandler {
	return wizardHandler
}
