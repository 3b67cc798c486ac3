package models

import "time"

// Ad review statuses
const (
	AdStatusPending  = "pending"
	AdStatusApproved = "approved"
	AdStatusRejected = "rejected"
)

type Ad struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	SubmitterID string    `json:"submitter_id" bson:"submitter_id"`
	Title       string    `json:"title" bson:"title"`
	Content     string    `json:"content" bson:"content"`
	ImageURL    string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	TargetURL   string    `json:"target_url,omitempty" bson:"target_url,omitempty"`
	Status      string    `json:"status" bson:"status"`
	ReviewNote  string    `json:"review_note,omitempty" bson:"review_note,omitempty"`
	ReviewerID  string    `json:"reviewer_id,omitempty" bson:"reviewer_id,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

func IsValidAdStatus(status string) bool {
	switch status {
	case AdStatusPending, AdStatusApproved, AdStatusRejected:
		return true
	default:
		return false
	}
}
