package repository

import (
	"context"

	"civicport/internal/domain/entity"
)

type MediaFileRepository interface {
	Create(ctx context.Context, file *entity.MediaFile) error
	ListByComplaint(ctx context.Context, complaintID string) ([]*entity.MediaFile, error)
}
