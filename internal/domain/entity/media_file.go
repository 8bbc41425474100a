package entity

import (
	"time"
)

// MediaFile records one uploaded complaint attachment. The record is
// written best-effort after the object lands in storage; losing it never
// fails a submission.
type MediaFile struct {
	ID          string    `json:"id" firestore:"id"`
	URL         string    `json:"url" firestore:"url"`
	ObjectName  string    `json:"object_name" firestore:"objectName"`
	ComplaintID string    `json:"complaint_id,omitempty" firestore:"complaintId,omitempty"`
	UploadedBy  string    `json:"uploaded_by" firestore:"uploadedBy"`
	Filename    string    `json:"filename" firestore:"filename"`
	ContentType string    `json:"content_type" firestore:"contentType"`
	Size        int64     `json:"size" firestore:"size"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}
