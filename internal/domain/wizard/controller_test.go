package wizard

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicport/internal/domain/entity"
	"civicport/pkg/errors"
)

type fakeSubmitter struct {
	err      error
	calls    int
	lastSeen *State
}

func (f *fakeSubmitter) Submit(ctx context.Context, userID string, state *State) (*entity.Complaint, error) {
	f.calls++
	f.lastSeen = state
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Complaint{
		ID:       "c-1",
		UserID:   userID,
		Title:    state.Title,
		Category: state.Category,
		Status:   entity.StatusPending,
	}, nil
}

type fakeLocator struct {
	available bool
	loc       *Location
	err       error
}

func (f *fakeLocator) Available() bool { return f.available }

func (f *fakeLocator) Locate(ctx context.Context) (*Location, error) {
	return f.loc, f.err
}

// fillThroughLocation populates every gated field and walks the wizard to
// the review step.
func fillThroughLocation(t *testing.T, c *Controller) {
	t.Helper()
	c.SetBasicInfo("Pothole on Elm Street", entity.CategoryRoad)
	require.NoError(t, c.Next())
	c.SetDescription("Large pothole near the intersection.")
	require.NoError(t, c.Next())
	c.SetLocation(&Location{Lat: -6.2, Lng: 106.8})
	require.NoError(t, c.Next())
	require.Equal(t, StepReview, c.Snapshot().ActiveStep)
}

func TestNextBlocksOnEmptyBasicInfo(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		category entity.ComplaintCategory
	}{
		{"both missing", "", ""},
		{"title missing", "", entity.CategoryRoad},
		{"title whitespace only", "   ", entity.CategoryRoad},
		{"category missing", "Pothole", ""},
		{"category unknown", "Pothole", entity.ComplaintCategory("Parking")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController("user-1", &fakeSubmitter{})
			c.SetBasicInfo(tt.title, tt.category)

			err := c.Next()
			require.Error(t, err)

			snap := c.Snapshot()
			assert.Equal(t, StepBasicInfo, snap.ActiveStep)
			assert.NotEmpty(t, snap.SubmitError)
		})
	}
}

func TestNextGatesEachStep(t *testing.T) {
	c := NewController("user-1", &fakeSubmitter{})

	c.SetBasicInfo("Pothole on Elm Street", entity.CategoryRoad)
	require.NoError(t, c.Next())
	require.Equal(t, StepDetails, c.Snapshot().ActiveStep)

	err := c.Next()
	require.Error(t, err)
	assert.Equal(t, StepDetails, c.Snapshot().ActiveStep)

	c.SetDescription("Large pothole near the intersection.")
	require.NoError(t, c.Next())
	require.Equal(t, StepLocation, c.Snapshot().ActiveStep)

	err = c.Next()
	require.Error(t, err)
	assert.Equal(t, StepLocation, c.Snapshot().ActiveStep)

	c.SetLocation(&Location{Lat: -6.2, Lng: 106.8})
	require.NoError(t, c.Next())
	assert.Equal(t, StepReview, c.Snapshot().ActiveStep)

	// The review step has no gate and the step index never passes it.
	require.NoError(t, c.Next())
	assert.Equal(t, StepReview, c.Snapshot().ActiveStep)
}

func TestEditingClearsStepError(t *testing.T) {
	c := NewController("user-1", &fakeSubmitter{})

	require.Error(t, c.Next())
	assert.NotEmpty(t, c.Snapshot().SubmitError)

	c.SetBasicInfo("Pothole", entity.CategoryRoad)
	assert.Empty(t, c.Snapshot().SubmitError)
}

func TestPreviousIsNeverValidated(t *testing.T) {
	c := NewController("user-1", &fakeSubmitter{})
	fillThroughLocation(t, c)

	// Blank out a gated field, then walk all the way back. Back-navigation
	// must not care.
	c.SetBasicInfo("", "")
	c.Previous()
	assert.Equal(t, StepLocation, c.Snapshot().ActiveStep)
	c.Previous()
	assert.Equal(t, StepDetails, c.Snapshot().ActiveStep)
	c.Previous()
	assert.Equal(t, StepBasicInfo, c.Snapshot().ActiveStep)

	// Clamped at the first step.
	c.Previous()
	assert.Equal(t, StepBasicInfo, c.Snapshot().ActiveStep)
}

func TestJumpToOnlyBackward(t *testing.T) {
	c := NewController("user-1", &fakeSubmitter{})

	require.Error(t, c.JumpTo(StepLocation), "skipping ahead is rejected")
	require.Error(t, c.JumpTo(Step(7)))
	require.Error(t, c.JumpTo(Step(-1)))

	fillThroughLocation(t, c)

	require.NoError(t, c.JumpTo(StepBasicInfo))
	assert.Equal(t, StepBasicInfo, c.Snapshot().ActiveStep)
}

func TestAttachmentCap(t *testing.T) {
	c := NewController("user-1", &fakeSubmitter{})

	for i := 0; i < MaxAttachments; i++ {
		err := c.AddAttachment(Attachment{
			Filename:    fmt.Sprintf("photo-%d.jpg", i),
			ContentType: "image/jpeg",
			Data:        []byte("x"),
		})
		require.NoError(t, err)
	}

	err := c.AddAttachment(Attachment{Filename: "one-too-many.jpg", ContentType: "image/jpeg"})
	require.Error(t, err)
	assert.Len(t, c.Snapshot().Attachments, MaxAttachments)

	c.RemoveAttachment(1)
	assert.Len(t, c.Snapshot().Attachments, MaxAttachments-1)
	assert.Equal(t, "photo-0.jpg", c.Snapshot().Attachments[0].Filename)
	assert.Equal(t, "photo-2.jpg", c.Snapshot().Attachments[1].Filename)

	// Out-of-range removals are ignored.
	c.RemoveAttachment(9)
	c.RemoveAttachment(-1)
	assert.Len(t, c.Snapshot().Attachments, MaxAttachments-1)
}

func TestUseLocator(t *testing.T) {
	c := NewController("user-1", &fakeSubmitter{})

	require.NoError(t, c.UseLocator(context.Background(), nil))
	assert.Nil(t, c.Snapshot().Location)

	require.NoError(t, c.UseLocator(context.Background(), &fakeLocator{available: false}))
	assert.Nil(t, c.Snapshot().Location)

	err := c.UseLocator(context.Background(), &fakeLocator{available: true, err: fmt.Errorf("position unavailable")})
	require.Error(t, err)
	assert.Nil(t, c.Snapshot().Location, "a failing locator leaves the state untouched")

	require.NoError(t, c.UseLocator(context.Background(), &fakeLocator{
		available: true,
		loc:       &Location{Lat: -6.2, Lng: 106.8},
	}))
	require.NotNil(t, c.Snapshot().Location)
	assert.Equal(t, -6.2, c.Snapshot().Location.Lat)
}

func TestSubmitOnlyFromReview(t *testing.T) {
	submitter := &fakeSubmitter{}
	c := NewController("user-1", submitter)

	_, err := c.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, submitter.calls)
}

func TestSubmitSuccessDestroysState(t *testing.T) {
	submitter := &fakeSubmitter{}
	c := NewController("user-1", submitter)
	fillThroughLocation(t, c)
	require.NoError(t, c.AddAttachment(Attachment{Filename: "p.jpg", ContentType: "image/jpeg", Data: []byte("x")}))

	complaint, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, complaint)
	assert.Equal(t, "c-1", complaint.ID)
	assert.Equal(t, entity.StatusPending, complaint.Status)

	snap := c.Snapshot()
	assert.Equal(t, StepBasicInfo, snap.ActiveStep)
	assert.Empty(t, snap.Title)
	assert.Empty(t, snap.Description)
	assert.Nil(t, snap.Location)
	assert.Empty(t, snap.Attachments)
	assert.Empty(t, snap.SubmitError)
	assert.False(t, snap.IsSubmitting)
}

func TestSubmitFailurePreservesState(t *testing.T) {
	submitter := &fakeSubmitter{err: errors.MediaUploadFailed("Failed to upload p.jpg", nil)}
	c := NewController("user-1", submitter)
	fillThroughLocation(t, c)
	require.NoError(t, c.AddAttachment(Attachment{Filename: "p.jpg", ContentType: "image/jpeg", Data: []byte("x")}))

	_, err := c.Submit(context.Background())
	require.Error(t, err)

	// The user stays on review with everything they entered intact and a
	// displayable error; the controller is ready for a retry.
	snap := c.Snapshot()
	assert.Equal(t, StepReview, snap.ActiveStep)
	assert.Equal(t, "Pothole on Elm Street", snap.Title)
	assert.Len(t, snap.Attachments, 1)
	assert.Equal(t, "Failed to upload p.jpg", snap.SubmitError)
	assert.False(t, snap.IsSubmitting)

	submitter.err = nil
	complaint, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Pothole on Elm Street", complaint.Title)
}

func TestSubmitFailureWithOpaqueError(t *testing.T) {
	submitter := &fakeSubmitter{err: fmt.Errorf("connection reset")}
	c := NewController("user-1", submitter)
	fillThroughLocation(t, c)

	_, err := c.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Submission failed, please try again", c.Snapshot().SubmitError)
	assert.False(t, c.Snapshot().IsSubmitting)
}

func TestSubmitPassesACopyOfState(t *testing.T) {
	submitter := &fakeSubmitter{}
	c := NewController("user-1", submitter)
	fillThroughLocation(t, c)

	_, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, submitter.lastSeen)
	assert.Equal(t, "Pothole on Elm Street", submitter.lastSeen.Title)
	assert.True(t, submitter.lastSeen.IsSubmitting)
}

func TestManagerReplacesSession(t *testing.T) {
	m := NewManager()
	submitter := &fakeSubmitter{}

	_, ok := m.Get("user-1")
	assert.False(t, ok)

	first := m.Start("user-1", submitter)
	first.SetBasicInfo("Pothole", entity.CategoryRoad)

	second := m.Start("user-1", submitter)
	got, ok := m.Get("user-1")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Empty(t, got.Snapshot().Title, "restarting the wizard discards the old draft")

	m.Discard("user-1")
	_, ok = m.Get("user-1")
	assert.False(t, ok)
}

func TestStepTitles(t *testing.T) {
	assert.Equal(t, "Basic Info", StepBasicInfo.Title())
	assert.Equal(t, "Details", StepDetails.Title())
	assert.Equal(t, "Location", StepLocation.Title())
	assert.Equal(t, "Review", StepReview.Title())
	assert.Equal(t, "", Step(9).Title())
}
