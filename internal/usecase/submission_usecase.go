package usecase

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"civicport/internal/domain/entity"
	"civicport/internal/domain/repository"
	"civicport/internal/domain/service"
	"civicport/internal/domain/wizard"
	"civicport/pkg/errors"
	"civicport/pkg/logger"
)

// SubmissionUseCase converts a completed wizard state into one persisted
// complaint: session check, sequential media uploads, single insert.
// Either the full record is created after all uploads succeed, or nothing
// is created.
type SubmissionUseCase struct {
	complaintRepo repository.ComplaintRepository
	mediaRepo     repository.MediaFileRepository
	authClient    AuthClient
	storage       service.MediaStorage
	log           *logger.Logger
}

func NewSubmissionUseCase(
	complaintRepo repository.ComplaintRepository,
	mediaRepo repository.MediaFileRepository,
	authClient AuthClient,
	storage service.MediaStorage,
	log *logger.Logger,
) *SubmissionUseCase {
	return &SubmissionUseCase{
		complaintRepo: complaintRepo,
		mediaRepo:     mediaRepo,
		authClient:    authClient,
		storage:       storage,
		log:           log,
	}
}

func (uc *SubmissionUseCase) Submit(ctx context.Context, userID string, state *wizard.State) (*entity.Complaint, error) {
	if userID == "" {
		return nil, errors.AuthenticationRequired(nil)
	}
	if err := uc.authClient.GetUser(ctx, userID); err != nil {
		return nil, errors.AuthenticationRequired(err)
	}

	// Uploads run in the order files were added and fail fast. Objects
	// already uploaded in this attempt are not rolled back; cleanup is an
	// external maintenance sweep.
	results := make([]*service.UploadResult, 0, len(state.Attachments))
	mediaURLs := make([]string, 0, len(state.Attachments))
	for _, attachment := range state.Attachments {
		objectName := objectNameFor(userID, attachment)
		result, err := uc.storage.Upload(ctx, bytes.NewReader(attachment.Data), attachment.ContentType, objectName)
		if err != nil {
			uc.log.Error("media upload failed for user %s: %v", userID, err)
			return nil, errors.MediaUploadFailed(fmt.Sprintf("Failed to upload %s: %v", attachment.Filename, err), err)
		}
		results = append(results, result)
		mediaURLs = append(mediaURLs, result.URL)
	}

	complaint := &entity.Complaint{
		UserID:      userID,
		Title:       strings.TrimSpace(state.Title),
		Category:    state.Category,
		Description: strings.TrimSpace(state.Description),
		Status:      entity.StatusPending,
	}
	if len(mediaURLs) > 0 {
		complaint.MediaURLs = mediaURLs
	}
	if state.Location != nil {
		lat, lng := state.Location.Lat, state.Location.Lng
		complaint.LocationLat = &lat
		complaint.LocationLng = &lng
	}

	if err := uc.complaintRepo.Create(ctx, complaint); err != nil {
		uc.log.Error("complaint insert failed for user %s: %v", userID, err)
		return nil, errors.ComplaintCreationFailed(fmt.Sprintf("Failed to create complaint: %v", err), err)
	}

	// Media metadata is recorded best-effort once the complaint id exists;
	// losing a record never fails the submission.
	for i, result := range results {
		media := &entity.MediaFile{
			ID:          uuid.New().String(),
			URL:         result.URL,
			ObjectName:  result.ObjectName,
			ComplaintID: complaint.ID,
			UploadedBy:  userID,
			Filename:    state.Attachments[i].Filename,
			ContentType: state.Attachments[i].ContentType,
			Size:        result.Size,
			CreatedAt:   time.Now(),
		}
		if err := uc.mediaRepo.Create(ctx, media); err != nil {
			uc.log.Warn("failed to record media metadata for %s: %v", result.ObjectName, err)
		}
	}

	uc.log.Info("complaint %s created by user %s (%d attachments)", complaint.ID, userID, len(mediaURLs))
	return complaint, nil
}

// objectNameFor namespaces the object by uploader and makes the name
// collision-resistant while preserving the original extension.
func objectNameFor(userID string, a wizard.Attachment) string {
	ext := strings.ToLower(filepath.Ext(a.Filename))
	if ext == "" {
		ext = extensionForContentType(a.ContentType)
	}
	return fmt.Sprintf("complaints/%s/%d-%s%s", userID, time.Now().UnixMilli(), uuid.New().String(), ext)
}

func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "video/mp4":
		return ".mp4"
	case "application/pdf":
		return ".pdf"
	}
	return ".bin"
}
