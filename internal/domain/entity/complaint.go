package entity

import (
	"time"
)

type ComplaintCategory string

const (
	CategoryRoad        ComplaintCategory = "Road"
	CategoryGarbage     ComplaintCategory = "Garbage"
	CategoryWater       ComplaintCategory = "Water"
	CategoryElectricity ComplaintCategory = "Electricity"
	CategoryProperty    ComplaintCategory = "Property"
	CategoryEnvironment ComplaintCategory = "Environment"
	CategoryOther       ComplaintCategory = "Other"
)

func Categories() []ComplaintCategory {
	return []ComplaintCategory{
		CategoryRoad,
		CategoryGarbage,
		CategoryWater,
		CategoryElectricity,
		CategoryProperty,
		CategoryEnvironment,
		CategoryOther,
	}
}

func (c ComplaintCategory) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "Pending"
	StatusInProgress ComplaintStatus = "In Progress"
	StatusResolved   ComplaintStatus = "Resolved"
)

func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// CanTransitionTo enforces the forward-only lifecycle
// Pending -> In Progress -> Resolved. A resolved complaint is final.
func (s ComplaintStatus) CanTransitionTo(next ComplaintStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusResolved
	}
	return false
}

// StatusChange is one append-only history record of a lifecycle step.
type StatusChange struct {
	PreviousStatus ComplaintStatus `json:"previous_status" firestore:"previousStatus"`
	NewStatus      ComplaintStatus `json:"new_status" firestore:"newStatus"`
	Remarks        string          `json:"remarks" firestore:"remarks"`
	UpdatedBy      string          `json:"updated_by" firestore:"updatedBy"`
	CreatedAt      time.Time       `json:"created_at" firestore:"createdAt"`
}

type Complaint struct {
	ID          string            `json:"id" firestore:"id"`
	UserID      string            `json:"user_id" firestore:"userId"`
	Title       string            `json:"title" firestore:"title"`
	Category    ComplaintCategory `json:"category" firestore:"category"`
	Description string            `json:"description" firestore:"description"`
	LocationLat *float64          `json:"location_lat" firestore:"locationLat"`
	LocationLng *float64          `json:"location_lng" firestore:"locationLng"`
	MediaURLs   []string          `json:"media_urls" firestore:"mediaUrls"`
	Status      ComplaintStatus   `json:"status" firestore:"status"`
	AssignedTo  string            `json:"assigned_to,omitempty" firestore:"assignedTo,omitempty"`
	History     []StatusChange    `json:"history,omitempty" firestore:"history"`
	CreatedAt   time.Time         `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time         `json:"updated_at" firestore:"updatedAt"`
}

// HasLocation reports whether both coordinates are present. The pair is
// all-or-nothing; a complaint never carries only one of them.
func (c *Complaint) HasLocation() bool {
	return c.LocationLat != nil && c.LocationLng != nil
}
