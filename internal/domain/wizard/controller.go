package wizard

import (
	"context"
	"errors"
	"sync"

	"civicport/internal/domain/entity"
	apperrors "civicport/pkg/errors"
)

// Submitter turns a fully populated wizard state into a persisted
// complaint. It is the only side-effecting collaborator of the controller.
type Submitter interface {
	Submit(ctx context.Context, userID string, state *State) (*entity.Complaint, error)
}

// Locator is a capability-gated location helper (browser geolocation or
// similar). The wizard works without it and never blocks on it.
type Locator interface {
	Available() bool
	Locate(ctx context.Context) (*Location, error)
}

// Controller owns one State and is the only component that mutates
// ActiveStep. One controller serves one submission attempt.
type Controller struct {
	mu        sync.Mutex
	userID    string
	state     State
	submitter Submitter
}

func NewController(userID string, submitter Submitter) *Controller {
	return &Controller{
		userID:    userID,
		submitter: submitter,
	}
}

func (c *Controller) UserID() string {
	return c.userID
}

// Snapshot returns a copy of the current state for rendering.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.state
	snap.Attachments = append([]Attachment(nil), c.state.Attachments...)
	if c.state.Location != nil {
		loc := *c.state.Location
		snap.Location = &loc
	}
	return snap
}

func (c *Controller) SetBasicInfo(title string, category entity.ComplaintCategory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Title = title
	c.state.Category = category
	c.state.SubmitError = ""
}

func (c *Controller) SetDescription(description string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Description = description
	c.state.SubmitError = ""
}

func (c *Controller) SetLocation(loc *Location) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Location = loc
	c.state.SubmitError = ""
}

// UseLocator fills the location from an optional capability. An absent or
// failing locator leaves the state untouched; the user can still enter the
// location by hand.
func (c *Controller) UseLocator(ctx context.Context, locator Locator) error {
	if locator == nil || !locator.Available() {
		return nil
	}
	loc, err := locator.Locate(ctx)
	if err != nil || loc == nil {
		return err
	}
	c.SetLocation(loc)
	return nil
}

func (c *Controller) AddAttachment(a Attachment) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.state.Attachments) >= MaxAttachments {
		return apperrors.Validation("You can attach at most 3 files")
	}
	c.state.Attachments = append(c.state.Attachments, a)
	c.state.SubmitError = ""
	return nil
}

func (c *Controller) RemoveAttachment(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.state.Attachments) {
		return
	}
	c.state.Attachments = append(c.state.Attachments[:index], c.state.Attachments[index+1:]...)
	c.state.SubmitError = ""
}

// Next validates the active step. On failure the step does not change and
// the message is stored; on pass the error clears and the step advances,
// clamped to the review step.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if msg := RuleFor(c.state.ActiveStep)(&c.state); msg != "" {
		c.state.SubmitError = msg
		return apperrors.Validation(msg)
	}

	c.state.SubmitError = ""
	if c.state.ActiveStep < StepReview {
		c.state.ActiveStep++
	}
	return nil
}

// Previous always succeeds; back-navigation is never validated.
func (c *Controller) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SubmitError = ""
	if c.state.ActiveStep > StepBasicInfo {
		c.state.ActiveStep--
	}
}

// JumpTo allows direct selection of an already-visited step. Skipping
// ahead is rejected.
func (c *Controller) JumpTo(step Step) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !step.Valid() {
		return apperrors.Validation("Unknown step")
	}
	if step > c.state.ActiveStep {
		return apperrors.Validation("Complete the current step first")
	}
	c.state.SubmitError = ""
	c.state.ActiveStep = step
	return nil
}

// Submit delegates to the Submitter from the review step. On success the
// state is destroyed; on failure the user stays on review with the entered
// data intact and the error recorded. IsSubmitting is reset on every exit
// path.
func (c *Controller) Submit(ctx context.Context) (*entity.Complaint, error) {
	c.mu.Lock()
	if c.state.ActiveStep != StepReview {
		c.mu.Unlock()
		return nil, apperrors.Validation("Submission is only possible from the review step")
	}
	if c.state.IsSubmitting {
		c.mu.Unlock()
		return nil, apperrors.Validation("A submission is already in progress")
	}
	c.state.IsSubmitting = true
	c.state.SubmitError = ""
	attempt := c.state
	attempt.Attachments = append([]Attachment(nil), c.state.Attachments...)
	c.mu.Unlock()

	complaint, err := c.submitter.Submit(ctx, c.userID, &attempt)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsSubmitting = false
	if err != nil {
		c.state.SubmitError = userMessage(err)
		return nil, err
	}

	c.state = State{}
	return complaint, nil
}

func userMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Submission failed, please try again"
}
