package handler

import (
	"fmt"
	"io"

	"github.com/labstack/echo/v4"

	"civicport/internal/domain/entity"
	"civicport/internal/domain/wizard"
	"civicport/pkg/errors"
	"civicport/pkg/response"
)

// WizardHandler exposes the submission wizard over HTTP. Each
// authenticated user has at most one live wizard session.
type WizardHandler struct {
	manager        *wizard.Manager
	submitter      wizard.Submitter
	maxUploadBytes int64
}

func NewWizardHandler(manager *wizard.Manager, submitter wizard.Submitter, maxUploadBytes int64) *WizardHandler {
	return &WizardHandler{
		manager:        manager,
		submitter:      submitter,
		maxUploadBytes: maxUploadBytes,
	}
}

type attachmentView struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

type wizardStateView struct {
	ActiveStep      int              `json:"active_step"`
	StepTitle       string           `json:"step_title"`
	Steps           []string         `json:"steps"`
	ForwardLabel    string           `json:"forward_label"`
	PreviousEnabled bool             `json:"previous_enabled"`
	Title           string           `json:"title"`
	Category        string           `json:"category,omitempty"`
	Description     string           `json:"description"`
	Location        *wizard.Location `json:"location,omitempty"`
	Attachments     []attachmentView `json:"attachments"`
	SubmitError     string           `json:"submit_error,omitempty"`
	IsSubmitting    bool             `json:"is_submitting"`
}

func stateView(state wizard.State) wizardStateView {
	steps := make([]string, 0, wizard.StepCount)
	for s := wizard.Step(0); s < wizard.StepCount; s++ {
		steps = append(steps, s.Title())
	}

	forwardLabel := "Next"
	if state.ActiveStep == wizard.StepReview {
		forwardLabel = "Submit Complaint"
	}

	attachments := make([]attachmentView, 0, len(state.Attachments))
	for _, a := range state.Attachments {
		attachments = append(attachments, attachmentView{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Size:        len(a.Data),
		})
	}

	return wizardStateView{
		ActiveStep:      int(state.ActiveStep),
		StepTitle:       state.ActiveStep.Title(),
		Steps:           steps,
		ForwardLabel:    forwardLabel,
		PreviousEnabled: state.ActiveStep > wizard.StepBasicInfo,
		Title:           state.Title,
		Category:        string(state.Category),
		Description:     state.Description,
		Location:        state.Location,
		Attachments:     attachments,
		SubmitError:     state.SubmitError,
		IsSubmitting:    state.IsSubmitting,
	}
}

func (h *WizardHandler) session(c echo.Context) (*wizard.Controller, error) {
	uid := c.Get("uid").(string)
	ctrl, ok := h.manager.Get(uid)
	if !ok {
		return nil, errors.NotFound("Wizard session", nil)
	}
	return ctrl, nil
}

// Start opens a fresh wizard session, replacing any previous attempt.
func (h *WizardHandler) Start(c echo.Context) error {
	uid := c.Get("uid").(string)
	ctrl := h.manager.Start(uid, h.submitter)
	return response.Created(c, stateView(ctrl.Snapshot()))
}

func (h *WizardHandler) GetState(c echo.Context) error {
	ctrl, err := h.session(c)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stateView(ctrl.Snapshot()))
}

func (h *WizardHandler) Discard(c echo.Context) error {
	uid := c.Get("uid").(string)
	h.manager.Discard(uid)
	return response.Success(c, map[string]string{"message": "Wizard session discarded"})
}

type basicInfoRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

func (h *WizardHandler) SetBasicInfo(c echo.Context) error {
	ctrl, err := h.session(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req basicInfoRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if req.Category != "" && !entity.ComplaintCategory(req.Category).Valid() {
		return response.Error(c, errors.BadRequest("Invalid category", nil))
	}

	ctrl.SetBasicInfo(req.Title, entity.ComplaintCategory(req.Category))
	return response.Success(c, stateView(ctrl.Snapshot()))
}

type detailsRequest struct {
	Description string `json:"description"`
}

func (h *WizardHandler) SetDetails(c echo.Context) error {
	ctrl, err := h.session(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req detailsRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	ctrl.SetDescription(req.Description)
	return response.Success(c, stateView(ctrl.Snapshot()))
}

type locationRequest struct {
	Lat     *float64 `json:"lat" validate:"required,latitude"`
	Lng     *float64 `json:"lng" validate:"required,longitude"`
	Address string   `json:"address,omitempty"`
}

func (h *WizardHandler) SetLocation(c echo.Context) error {
	ctrl, err := h.session(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req locationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ctrl.SetLocation(&wizard.Location{
		Lat:     *req.Lat,
		Lng:     *req.Lng,
		Address: req.Address,
	})
	return response.Success(c, stateView(ctrl.Snapshot()))
}

// AttachMedia buffers one multipart file on the wizard state. Nothing
// reaches object storage until Submit.
func (h *WizardHandler) AttachMedia(c echo.Context) error {
	ctrl, err := h.session(c)
	if err != nil {
		return response.Error(c, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}
	if file.Size > h.maxUploadBytes {
		return response.Error(c, errors.BadRequest(
			fmt.Sprintf("File size exceeds maximum allowed (%dMB)", h.maxUploadBytes/(1024*1024)), nil))
	}

	contentType := file.Header.Get("Content-Type")
	if !isAllowedMediaType(contentType) {
		return response.Error(c, errors.BadRequest("File type not supported", nil))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}

	if err := ctrl.AddAttachment(wizard.Attachment{
		Filename:    file.Filename,
		ContentType: contentType,
		Data:        data,
	}); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stateView(ctrl.Snapshot()))
}

func (h *WizardHandler) Next(c echo.Context) error {
	ctrl, err := h.session(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := ctrl.Next(); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stateView(ctrl.Snapshot()))
}

func (h *WizardHandler) Previous(c echo.Context) error {
	ctrl, err := h.session(c)
	if err != nil {
		return response.Error(c, err)
	}

	ctrl.Previous()
	return response.Success(c, stateView(ctrl.Snapshot()))
}

type jumpRequest struct {
	Step int `json:"step"`
}

func (h *WizardHandler) JumpTo(c echo.Context) error {
	ctrl, err := h.session(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req jumpRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := ctrl.JumpTo(wizard.Step(req.Step)); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stateView(ctrl.Snapshot()))
}

// Submit runs the submission pipeline. On success the session is torn
// down and the new complaint returned for the confirmation view.
func (h *WizardHandler) Submit(c echo.Context) error {
	uid := c.Get("uid").(string)
	ctrl, err := h.session(c)
	if err != nil {
		return response.Error(c, err)
	}

	complaint, err := ctrl.Submit(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	h.manager.Discard(uid)
	return response.Created(c, map[string]interface{}{
		"tracking_id": complaint.ID,
		"complaint":   complaint,
	})
}

func isAllowedMediaType(contentType string) bool {
	allowedTypes := []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/gif",
		"video/mp4",
		"application/pdf",
	}

	for _, allowedType := range allowedTypes {
		if contentType == allowedType {
			return true
		}
	}
	return false
}
