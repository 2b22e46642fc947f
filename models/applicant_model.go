package models

import "time"

type Applicant struct {
	ID              string    `bson:"_id,omitempty" json:"id,omitempty"`
	Name            string    `bson:"name" json:"name"`
	Email           string    `bson:"email" json:"email"`
	Major           string    `bson:"major" json:"major"`
	Year            string    `bson:"year" json:"year"`
	ProfilePhotoURL string    `bson:"profile_photo_url,omitempty" json:"profilePhotoUrl,omitempty"`
	ResumeURL       string    `bson:"resume_url,omitempty" json:"resumeUrl,omitempty"`
	PortfolioURL    string    `bson:"portfolio_url,omitempty" json:"portfolioUrl,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
}

// ApplicantPatch holds the fields of a partial update. Nil fields are left untouched.
type ApplicantPatch struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Major           *string `json:"major"`
	Year            *string `json:"year"`
	ProfilePhotoURL *string `json:"profilePhotoUrl"`
	ResumeURL       *string `json:"resumeUrl"`
	PortfolioURL    *string `json:"portfolioUrl"`
}

// Empty reports whether the patch changes nothing.
func (p ApplicantPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Major == nil && p.Year == nil &&
		p.ProfilePhotoURL == nil && p.ResumeURL == nil && p.PortfolioURL == nil
}
