package usecase

import (
	"context"
	"math"
	"time"

	"civicport/internal/domain/entity"
	"civicport/internal/domain/repository"
	"civicport/pkg/errors"
	"civicport/pkg/logger"
)

type ComplaintUseCase struct {
	complaintRepo repository.ComplaintRepository
	userRepo      repository.UserRepository
	log           *logger.Logger
}

func NewComplaintUseCase(
	complaintRepo repository.ComplaintRepository,
	userRepo repository.UserRepository,
	log *logger.Logger,
) *ComplaintUseCase {
	return &ComplaintUseCase{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		log:           log,
	}
}

// ComplaintDetail is a complaint joined with submitter and assignee
// profile summaries for the triage views.
type ComplaintDetail struct {
	*entity.Complaint
	Submitter *entity.ProfileSummary `json:"submitter,omitempty"`
	Assignee  *entity.ProfileSummary `json:"assignee,omitempty"`
}

type DashboardStats struct {
	Total          int64 `json:"total"`
	Pending        int64 `json:"pending"`
	InProgress     int64 `json:"in_progress"`
	Resolved       int64 `json:"resolved"`
	ResolutionRate int   `json:"resolution_rate"`
}

// ListOwn is the citizen-facing tracking list: the caller's complaints,
// newest first. Safe to refetch at any time.
func (uc *ComplaintUseCase) ListOwn(ctx context.Context, userID string) ([]*entity.Complaint, error) {
	complaints, err := uc.complaintRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.ReadModel("Failed to load your complaints", err)
	}
	return complaints, nil
}

// ListAll is the staff triage view: every complaint, newest first, with
// profile summaries joined in.
func (uc *ComplaintUseCase) ListAll(ctx context.Context, filter repository.ComplaintFilter) ([]*ComplaintDetail, int64, error) {
	complaints, total, err := uc.complaintRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, errors.ReadModel("Failed to load complaints", err)
	}

	details := make([]*ComplaintDetail, 0, len(complaints))
	for _, complaint := range complaints {
		details = append(details, uc.withProfiles(ctx, complaint))
	}
	return details, total, nil
}

func (uc *ComplaintUseCase) withProfiles(ctx context.Context, complaint *entity.Complaint) *ComplaintDetail {
	detail := &ComplaintDetail{Complaint: complaint}
	if submitter, err := uc.userRepo.GetByID(ctx, complaint.UserID); err == nil {
		detail.Submitter = submitter.Summary()
	}
	if complaint.AssignedTo != "" {
		if assignee, err := uc.userRepo.GetByID(ctx, complaint.AssignedTo); err == nil {
			detail.Assignee = assignee.Summary()
		}
	}
	return detail
}

// GetByID returns one complaint with history. Citizens may only read
// their own; staff and admins may read any.
func (uc *ComplaintUseCase) GetByID(ctx context.Context, requesterID, id string) (*ComplaintDetail, error) {
	complaint, err := uc.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if complaint.UserID != requesterID {
		requester, err := uc.userRepo.GetByID(ctx, requesterID)
		if err != nil || !requester.IsStaff() {
			return nil, errors.Forbidden("You do not have access to this complaint", nil)
		}
	}
	return uc.withProfiles(ctx, complaint), nil
}

// UpdateStatus performs the staff-side lifecycle transition. Only the
// forward path Pending -> In Progress -> Resolved is accepted, and every
// accepted transition is appended to the complaint history.
func (uc *ComplaintUseCase) UpdateStatus(ctx context.Context, actorID, id string, newStatus entity.ComplaintStatus, remarks string) (*entity.Complaint, error) {
	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, errors.Unauthorized("Unknown account", err)
	}
	if !actor.IsStaff() {
		return nil, errors.Forbidden("Only staff can update complaint status", nil)
	}
	if !newStatus.Valid() {
		return nil, errors.BadRequest("Invalid status", nil)
	}

	complaint, err := uc.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !complaint.Status.CanTransitionTo(newStatus) {
		return nil, errors.BadRequest("Status can only move forward from "+string(complaint.Status), nil)
	}

	change := entity.StatusChange{
		PreviousStatus: complaint.Status,
		NewStatus:      newStatus,
		Remarks:        remarks,
		UpdatedBy:      actorID,
		CreatedAt:      time.Now(),
	}
	if err := uc.complaintRepo.UpdateStatus(ctx, id, change); err != nil {
		return nil, errors.Internal("Failed to update complaint status", err)
	}

	complaint.Status = newStatus
	complaint.History = append(complaint.History, change)
	uc.log.Info("complaint %s moved %s -> %s by %s", id, change.PreviousStatus, newStatus, actorID)
	return complaint, nil
}

// AssignStaff sets the handling staff profile on a complaint. Admin only;
// the assignee must hold the staff role.
func (uc *ComplaintUseCase) AssignStaff(ctx context.Context, actorID, id, staffID string) (*entity.Complaint, error) {
	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, errors.Unauthorized("Unknown account", err)
	}
	if actor.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Only admins can assign complaints", nil)
	}

	assignee, err := uc.userRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, errors.NotFound("Staff profile", err)
	}
	if !assignee.IsStaff() {
		return nil, errors.BadRequest("Complaints can only be assigned to staff", nil)
	}

	if _, err := uc.complaintRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.complaintRepo.Assign(ctx, id, staffID); err != nil {
		return nil, errors.Internal("Failed to assign complaint", err)
	}
	return uc.complaintRepo.GetByID(ctx, id)
}

// Stats feeds the staff dashboard counters. The resolution rate is the
// nearest-integer percentage of resolved complaints, 0 for an empty set.
func (uc *ComplaintUseCase) Stats(ctx context.Context) (*DashboardStats, error) {
	counts, err := uc.complaintRepo.CountByStatus(ctx)
	if err != nil {
		return nil, errors.ReadModel("Failed to load complaint stats", err)
	}

	return &DashboardStats{
		Total:          counts.Total,
		Pending:        counts.Pending,
		InProgress:     counts.InProgress,
		Resolved:       counts.Resolved,
		ResolutionRate: ResolutionRate(counts.Resolved, counts.Total),
	}, nil
}

func ResolutionRate(resolved, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(resolved) / float64(total) * 100))
}
