package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicport/internal/domain/entity"
	"civicport/internal/domain/wizard"
	"civicport/pkg/errors"
)

func completedState() *wizard.State {
	return &wizard.State{
		ActiveStep:  wizard.StepReview,
		Title:       "Pothole on Elm Street",
		Category:    entity.CategoryRoad,
		Description: "Large pothole near the intersection, growing every week.",
	}
}

func newSubmissionFixture(storage *fakeStorage) (*SubmissionUseCase, *fakeComplaintRepo, *fakeMediaRepo) {
	complaintRepo := newFakeComplaintRepo()
	mediaRepo := &fakeMediaRepo{}
	auth := &fakeAuthClient{knownUsers: map[string]bool{"user-1": true}}
	uc := NewSubmissionUseCase(complaintRepo, mediaRepo, auth, storage, testLogger())
	return uc, complaintRepo, mediaRepo
}

func TestSubmitCreatesComplaintWithMedia(t *testing.T) {
	storage := &fakeStorage{}
	uc, complaintRepo, mediaRepo := newSubmissionFixture(storage)

	state := completedState()
	state.Attachments = []wizard.Attachment{
		{Filename: "pothole.jpg", ContentType: "image/jpeg", Data: []byte("photo-1")},
		{Filename: "closeup.png", ContentType: "image/png", Data: []byte("photo-2")},
	}

	complaint, err := uc.Submit(context.Background(), "user-1", state)
	require.NoError(t, err)
	require.NotNil(t, complaint)

	assert.NotEmpty(t, complaint.ID)
	assert.Equal(t, "user-1", complaint.UserID)
	assert.Equal(t, "Pothole on Elm Street", complaint.Title)
	assert.Equal(t, entity.CategoryRoad, complaint.Category)
	assert.Equal(t, entity.StatusPending, complaint.Status)
	assert.Len(t, complaint.MediaURLs, 2)

	require.Len(t, storage.uploads, 2)
	for _, objectName := range storage.uploads {
		assert.True(t, strings.HasPrefix(objectName, "complaints/user-1/"))
	}
	assert.True(t, strings.HasSuffix(storage.uploads[0], ".jpg"))
	assert.True(t, strings.HasSuffix(storage.uploads[1], ".png"))

	assert.Equal(t, 1, complaintRepo.createCalls)
	require.Len(t, mediaRepo.files, 2)
	for _, f := range mediaRepo.files {
		assert.Equal(t, complaint.ID, f.ComplaintID)
		assert.Equal(t, "user-1", f.UploadedBy)
	}
}

func TestSubmitWithoutAttachments(t *testing.T) {
	storage := &fakeStorage{}
	uc, _, _ := newSubmissionFixture(storage)

	complaint, err := uc.Submit(context.Background(), "user-1", completedState())
	require.NoError(t, err)

	assert.Nil(t, complaint.MediaURLs)
	assert.Empty(t, storage.uploads)
}

func TestSubmitMapsLocationPair(t *testing.T) {
	storage := &fakeStorage{}
	uc, _, _ := newSubmissionFixture(storage)

	state := completedState()
	state.Location = &wizard.Location{Lat: -6.2088, Lng: 106.8456, Address: "Jl. Sudirman"}

	complaint, err := uc.Submit(context.Background(), "user-1", state)
	require.NoError(t, err)

	require.True(t, complaint.HasLocation())
	assert.Equal(t, -6.2088, *complaint.LocationLat)
	assert.Equal(t, 106.8456, *complaint.LocationLng)
}

func TestSubmitRequiresSession(t *testing.T) {
	storage := &fakeStorage{}
	uc, complaintRepo, _ := newSubmissionFixture(storage)

	state := completedState()
	state.Attachments = []wizard.Attachment{
		{Filename: "pothole.jpg", ContentType: "image/jpeg", Data: []byte("photo")},
	}

	_, err := uc.Submit(context.Background(), "", state)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "AUTHENTICATION_REQUIRED"))

	_, err = uc.Submit(context.Background(), "expired-user", state)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "AUTHENTICATION_REQUIRED"))

	// No upload starts and nothing is inserted when the session check fails.
	assert.Empty(t, storage.uploads)
	assert.Equal(t, 0, complaintRepo.createCalls)
}

func TestSubmitUploadFailureAbortsBeforeInsert(t *testing.T) {
	storage := &fakeStorage{failAt: 2}
	uc, complaintRepo, _ := newSubmissionFixture(storage)

	state := completedState()
	state.Attachments = []wizard.Attachment{
		{Filename: "a.jpg", ContentType: "image/jpeg", Data: []byte("a")},
		{Filename: "b.jpg", ContentType: "image/jpeg", Data: []byte("b")},
		{Filename: "c.jpg", ContentType: "image/jpeg", Data: []byte("c")},
	}

	_, err := uc.Submit(context.Background(), "user-1", state)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "MEDIA_UPLOAD_FAILED"))

	// Fail fast: the third file is never attempted, and the complaint
	// record is never inserted. The first object stays orphaned in storage.
	assert.Len(t, storage.uploads, 1)
	assert.Equal(t, 0, complaintRepo.createCalls)
	assert.Empty(t, complaintRepo.complaints)
}

func TestSubmitInsertFailure(t *testing.T) {
	storage := &fakeStorage{}
	uc, complaintRepo, mediaRepo := newSubmissionFixture(storage)
	complaintRepo.createErr = fmt.Errorf("firestore unavailable")

	state := completedState()
	state.Attachments = []wizard.Attachment{
		{Filename: "a.jpg", ContentType: "image/jpeg", Data: []byte("a")},
	}

	_, err := uc.Submit(context.Background(), "user-1", state)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "COMPLAINT_CREATION_FAILED"))
	assert.Empty(t, complaintRepo.complaints)
	assert.Empty(t, mediaRepo.files, "metadata is only recorded for created complaints")
}

func TestObjectNameFallsBackToContentType(t *testing.T) {
	name := objectNameFor("user-1", wizard.Attachment{Filename: "evidence", ContentType: "application/pdf"})
	assert.True(t, strings.HasPrefix(name, "complaints/user-1/"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))

	name = objectNameFor("user-1", wizard.Attachment{Filename: "blob", ContentType: "application/octet-stream"})
	assert.True(t, strings.HasSuffix(name, ".bin"))
}
