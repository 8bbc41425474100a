package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"civicport/internal/domain/entity"
	"civicport/internal/domain/repository"
	"civicport/internal/usecase"
	"civicport/pkg/errors"
	"civicport/pkg/response"
)

type ComplaintHandler struct {
	complaintUseCase *usecase.ComplaintUseCase
}

func NewComplaintHandler(complaintUseCase *usecase.ComplaintUseCase) *ComplaintHandler {
	return &ComplaintHandler{
		complaintUseCase: complaintUseCase,
	}
}

// ListOwn serves the citizen tracking list.
func (h *ComplaintHandler) ListOwn(c echo.Context) error {
	uid := c.Get("uid").(string)

	complaints, err := h.complaintUseCase.ListOwn(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, complaints)
}

// ListAll serves the staff triage view with filtering and pagination.
func (h *ComplaintHandler) ListAll(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := repository.ComplaintFilter{
		Category: c.QueryParam("category"),
		Status:   c.QueryParam("status"),
		Search:   c.QueryParam("search"),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	complaints, total, err := h.complaintUseCase.ListAll(c.Request().Context(), filter)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, complaints, total, page, limit)
}

func (h *ComplaintHandler) GetByID(c echo.Context) error {
	uid := c.Get("uid").(string)

	id := c.Param("id")
	if id == "" {
		return response.Error(c, errors.BadRequest("Complaint ID is required", nil))
	}

	complaint, err := h.complaintUseCase.GetByID(c.Request().Context(), uid, id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, complaint)
}

type updateStatusRequest struct {
	Status  string `json:"status" validate:"required,oneof='Pending' 'In Progress' 'Resolved'"`
	Remarks string `json:"remarks,omitempty"`
}

func (h *ComplaintHandler) UpdateStatus(c echo.Context) error {
	uid := c.Get("uid").(string)

	id := c.Param("id")
	if id == "" {
		return response.Error(c, errors.BadRequest("Complaint ID is required", nil))
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	complaint, err := h.complaintUseCase.UpdateStatus(
		c.Request().Context(),
		uid,
		id,
		entity.ComplaintStatus(req.Status),
		req.Remarks,
	)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, complaint)
}

type assignRequest struct {
	StaffID string `json:"staff_id" validate:"required"`
}

func (h *ComplaintHandler) Assign(c echo.Context) error {
	uid := c.Get("uid").(string)

	id := c.Param("id")
	if id == "" {
		return response.Error(c, errors.BadRequest("Complaint ID is required", nil))
	}

	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	complaint, err := h.complaintUseCase.AssignStaff(c.Request().Context(), uid, id, req.StaffID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, complaint)
}

func (h *ComplaintHandler) Stats(c echo.Context) error {
	stats, err := h.complaintUseCase.Stats(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stats)
}
