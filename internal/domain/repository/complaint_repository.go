package repository

import (
	"context"

	"civicport/internal/domain/entity"
)

// ComplaintFilter narrows the staff triage listing. Search matches title
// and description client-side; result sets are small.
type ComplaintFilter struct {
	Category string
	Status   string
	Search   string
	Limit    int
	Offset   int
}

type StatusCounts struct {
	Total      int64
	Pending    int64
	InProgress int64
	Resolved   int64
}

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *entity.Complaint) error
	GetByID(ctx context.Context, id string) (*entity.Complaint, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Complaint, error)
	List(ctx context.Context, filter ComplaintFilter) ([]*entity.Complaint, int64, error)
	UpdateStatus(ctx context.Context, id string, change entity.StatusChange) error
	Assign(ctx context.Context, id, staffID string) error
	CountByStatus(ctx context.Context) (*StatusCounts, error)
}
