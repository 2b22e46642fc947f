package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"rush-server/models"
	"rush-server/repository"
)

type RatingService struct {
	store   repository.Scoper
	ratings repository.RatingRepositoryInterface
	now     func() time.Time
}

func NewRatingService(store repository.Scoper, ratings repository.RatingRepositoryInterface) *RatingService {
	return &RatingService{store: store, ratings: ratings, now: time.Now}
}

type UpsertResult struct {
	Created []string `json:"created"`
	Updated []string `json:"updated"`
}

// CheckoutEntry is one rating from a checkout submission.
type CheckoutEntry struct {
	ApplicantID string
	Rating      string
}

func parseRatings(ratings map[string]string) (map[string]models.RatingValue, []string, error) {
	parsed := make(map[string]models.RatingValue, len(ratings))
	ids := make([]string, 0, len(ratings))
	for id, raw := range ratings {
		if strings.TrimSpace(id) == "" {
			return nil, nil, fmt.Errorf("%w: empty applicant id", ErrInvalidRating)
		}
		v, err := models.ParseRatingValue(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidRating, err)
		}
		parsed[id] = v
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return parsed, ids, nil
}

// UpsertRatings sets user's rating for each applicant, one round trip per entry.
// All values are checked before anything is written; a store failure stops the batch
// and earlier writes are kept.
func (s *RatingService) UpsertRatings(ctx context.Context, user models.SessionUser, ratings map[string]string) (UpsertResult, error) {
	result := UpsertResult{Created: []string{}, Updated: []string{}}
	if user.ID == "" {
		return result, ErrNotAuthenticated
	}
	parsed, ids, err := parseRatings(ratings)
	if err != nil {
		return result, err
	}

	err = s.store.Scoped(ctx, func(ctx context.Context) error {
		for i, applicantID := range ids {
			now := s.now().UTC()
			existing, err := s.ratings.FindRating(ctx, applicantID, user.ID)
			switch {
			case err == nil:
				if err := s.ratings.UpdateRatingValue(ctx, existing.ID, parsed[applicantID], now); err != nil {
					return &BatchError{Op: "upsert ratings", Key: applicantID, Committed: i, Err: err}
				}
				result.Updated = append(result.Updated, applicantID)
			case isNotFound(err):
				rating := models.Rating{
					ApplicantID: applicantID,
					UserID:      user.ID,
					Value:       parsed[applicantID],
					Timestamp:   now,
				}
				if _, err := s.ratings.CreateRating(ctx, rating); err != nil {
					return &BatchError{Op: "upsert ratings", Key: applicantID, Committed: i, Err: err}
				}
				result.Created = append(result.Created, applicantID)
			default:
				return &BatchError{Op: "upsert ratings", Key: applicantID, Committed: i, Err: err}
			}
		}
		return nil
	})
	return result, err
}

// Checkout writes all entries in a single bulk request, tagged with user and one timestamp.
func (s *RatingService) Checkout(ctx context.Context, user models.SessionUser, entries []CheckoutEntry) (int64, error) {
	if user.ID == "" {
		return 0, ErrNotAuthenticated
	}
	now := s.now().UTC()
	ratings := make([]models.Rating, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.ApplicantID) == "" {
			return 0, fmt.Errorf("%w: empty applicant id", ErrInvalidRating)
		}
		v, err := models.ParseRatingValue(e.Rating)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidRating, err)
		}
		ratings = append(ratings, models.Rating{
			ApplicantID: e.ApplicantID,
			UserID:      user.ID,
			Value:       v,
			Timestamp:   now,
		})
	}

	var written int64
	err := s.store.Scoped(ctx, func(ctx context.Context) error {
		var err error
		written, err = s.ratings.BulkUpsertRatings(ctx, ratings)
		return err
	})
	return written, err
}

// RatingsByUser maps applicant id to the user's current rating.
func (s *RatingService) RatingsByUser(ctx context.Context, userID string) (map[string]models.RatingValue, error) {
	out := map[string]models.RatingValue{}
	if userID == "" {
		return out, nil
	}
	err := s.store.Scoped(ctx, func(ctx context.Context) error {
		ratings, err := s.ratings.FindRatingsByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, r := range ratings {
			out[r.ApplicantID] = r.Value
		}
		return nil
	})
	return out, err
}
