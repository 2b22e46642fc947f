package models

import (
	"fmt"
	"strings"
	"time"
)

type RatingValue string

const (
	RatingUp      RatingValue = "up"
	RatingNeutral RatingValue = "neutral"
	RatingDown    RatingValue = "down"
)

var RatingValues = []RatingValue{RatingUp, RatingNeutral, RatingDown}

// ParseRatingValue accepts the three scale values, case-insensitively.
func ParseRatingValue(s string) (RatingValue, error) {
	v := RatingValue(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case RatingUp, RatingNeutral, RatingDown:
		return v, nil
	}
	return "", fmt.Errorf("invalid rating value %q", s)
}

type Rating struct {
	ID          string      `bson:"_id,omitempty" json:"id,omitempty"`
	ApplicantID string      `bson:"applicant_id" json:"applicantId"`
	UserID      string      `bson:"user_id" json:"userId"`
	Value       RatingValue `bson:"value" json:"value"`
	Timestamp   time.Time   `bson:"timestamp" json:"timestamp"`
}
