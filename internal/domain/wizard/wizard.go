// Package wizard implements the step-gated complaint submission flow:
// four linear steps, per-step validation on forward navigation, free
// backward navigation, and a single all-or-nothing submission from the
// review step.
package wizard

import (
	"civicport/internal/domain/entity"
)

type Step int

const (
	StepBasicInfo Step = iota
	StepDetails
	StepLocation
	StepReview

	StepCount = 4
)

func (s Step) Title() string {
	switch s {
	case StepBasicInfo:
		return "Basic Info"
	case StepDetails:
		return "Details"
	case StepLocation:
		return "Location"
	case StepReview:
		return "Review"
	}
	return ""
}

func (s Step) Valid() bool {
	return s >= 0 && s < StepCount
}

// MaxAttachments caps the media a single complaint may carry.
const MaxAttachments = 3

type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// Attachment is a client-side file handle buffered until submission.
// Nothing is uploaded before Submit runs.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// State is the composite form state of one submission attempt. It is
// owned by exactly one Controller and destroyed on successful submission.
type State struct {
	ActiveStep   Step
	Title        string
	Category     entity.ComplaintCategory
	Description  string
	Location     *Location
	Attachments  []Attachment
	SubmitError  string
	IsSubmitting bool
}
