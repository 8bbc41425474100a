package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"civicport/internal/domain/entity"
	"civicport/internal/domain/repository"
	"civicport/pkg/errors"
)

type firestoreComplaintRepository struct {
	client *firestore.Client
}

func NewFirestoreComplaintRepository(client *firestore.Client) repository.ComplaintRepository {
	return &firestoreComplaintRepository{
		client: client,
	}
}

func (r *firestoreComplaintRepository) Create(ctx context.Context, complaint *entity.Complaint) error {
	if complaint.ID == "" {
		complaint.ID = uuid.New().String()
	}

	now := time.Now()
	complaint.CreatedAt = now
	complaint.UpdatedAt = now

	_, err := r.client.Collection("complaints").Doc(complaint.ID).Set(ctx, complaint)
	if err != nil {
		return errors.Internal("Failed to create complaint", err)
	}
	return nil
}

func (r *firestoreComplaintRepository) GetByID(ctx context.Context, id string) (*entity.Complaint, error) {
	doc, err := r.client.Collection("complaints").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Complaint", err)
		}
		return nil, errors.Internal("Failed to get complaint", err)
	}

	var complaint entity.Complaint
	if err := doc.DataTo(&complaint); err != nil {
		return nil, errors.Internal("Failed to parse complaint data", err)
	}
	return &complaint, nil
}

func (r *firestoreComplaintRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Complaint, error) {
	query := r.client.Collection("complaints").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	return collectComplaints(query.Documents(ctx))
}

func (r *firestoreComplaintRepository) List(ctx context.Context, filter repository.ComplaintFilter) ([]*entity.Complaint, int64, error) {
	query := r.client.Collection("complaints").Query
	if filter.Category != "" && filter.Category != "all" {
		query = query.Where("category", "==", filter.Category)
	}
	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status", "==", filter.Status)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	complaints, err := collectComplaints(query.Documents(ctx))
	if err != nil {
		return nil, 0, err
	}

	// Free-text search over title and description happens here; triage
	// result sets are small.
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		matched := complaints[:0]
		for _, c := range complaints {
			if strings.Contains(strings.ToLower(c.Title), needle) ||
				strings.Contains(strings.ToLower(c.Description), needle) {
				matched = append(matched, c)
			}
		}
		complaints = matched
	}

	total := int64(len(complaints))
	if filter.Offset > 0 {
		if filter.Offset >= len(complaints) {
			return []*entity.Complaint{}, total, nil
		}
		complaints = complaints[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(complaints) {
		complaints = complaints[:filter.Limit]
	}
	return complaints, total, nil
}

func (r *firestoreComplaintRepository) UpdateStatus(ctx context.Context, id string, change entity.StatusChange) error {
	_, err := r.client.Collection("complaints").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: change.NewStatus},
		{Path: "history", Value: firestore.ArrayUnion(change)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Complaint", err)
		}
		return errors.Internal("Failed to update complaint status", err)
	}
	return nil
}

func (r *firestoreComplaintRepository) Assign(ctx context.Context, id, staffID string) error {
	_, err := r.client.Collection("complaints").Doc(id).Update(ctx, []firestore.Update{
		{Path: "assignedTo", Value: staffID},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Complaint", err)
		}
		return errors.Internal("Failed to assign complaint", err)
	}
	return nil
}

func (r *firestoreComplaintRepository) CountByStatus(ctx context.Context) (*repository.StatusCounts, error) {
	iter := r.client.Collection("complaints").Select("status").Documents(ctx)
	defer iter.Stop()

	counts := &repository.StatusCounts{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to count complaints", err)
		}

		counts.Total++
		raw, _ := doc.DataAt("status")
		switch statusValue, _ := raw.(string); entity.ComplaintStatus(statusValue) {
		case entity.StatusPending:
			counts.Pending++
		case entity.StatusInProgress:
			counts.InProgress++
		case entity.StatusResolved:
			counts.Resolved++
		}
	}
	return counts, nil
}

func collectComplaints(iter *firestore.DocumentIterator) ([]*entity.Complaint, error) {
	defer iter.Stop()

	complaints := make([]*entity.Complaint, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to query complaints", err)
		}

		var complaint entity.Complaint
		if err := doc.DataTo(&complaint); err != nil {
			return nil, errors.Internal("Failed to parse complaint data", err)
		}
		complaints = append(complaints, &complaint)
	}
	return complaints, nil
}
