package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"civicport/internal/domain/entity"
	"civicport/internal/domain/repository"
	"civicport/pkg/errors"
)

type firestoreMediaFileRepository struct {
	client *firestore.Client
}

func NewFirestoreMediaFileRepository(client *firestore.Client) repository.MediaFileRepository {
	return &firestoreMediaFileRepository{
		client: client,
	}
}

func (r *firestoreMediaFileRepository) Create(ctx context.Context, file *entity.MediaFile) error {
	if file.ID == "" {
		file.ID = uuid.New().String()
	}
	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("media_files").Doc(file.ID).Set(ctx, file)
	if err != nil {
		return errors.Internal("Failed to record media file", err)
	}
	return nil
}

func (r *firestoreMediaFileRepository) ListByComplaint(ctx context.Context, complaintID string) ([]*entity.MediaFile, error) {
	iter := r.client.Collection("media_files").
		Where("complaintId", "==", complaintID).
		Documents(ctx)
	defer iter.Stop()

	files := make([]*entity.MediaFile, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to query media files", err)
		}

		var file entity.MediaFile
		if err := doc.DataTo(&file); err != nil {
			return nil, errors.Internal("Failed to parse media file data", err)
		}
		files = append(files, &file)
	}
	return files, nil
}
