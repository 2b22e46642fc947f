package models

import "time"

type Note struct {
	ID          string    `bson:"_id,omitempty" json:"id,omitempty"`
	ApplicantID string    `bson:"applicant_id" json:"applicantId"`
	UserID      string    `bson:"user_id" json:"userId"`
	Content     string    `bson:"content" json:"notes"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"` // last append
}
