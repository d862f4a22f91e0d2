package entity

import (
	"time"
)

// Feedback is a single customer feedback record. The ID is an opaque string:
// a Mongo ObjectID hex on the persistent path, a counter value on the
// in-memory path.
type Feedback struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	Rating       int       `json:"rating"`
	ReviewText   string    `json:"review_text"`
	CustomerName string    `json:"customer_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// FeedbackUpdate carries the mutable subset of a feedback record. Nil fields
// are left untouched.
type FeedbackUpdate struct {
	Rating     *int
	ReviewText *string
}

// FeedbackEvent is published to Kafka after a successful submit.
type FeedbackEvent struct {
	EventType  string    `json:"event_type"` // FEEDBACK_CREATED
	FeedbackID string    `json:"feedback_id"`
	ProductID  string    `json:"product_id"`
	Rating     int       `json:"rating"`
	Timestamp  time.Time `json:"timestamp"`
}
