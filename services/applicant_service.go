package service

import (
	"context"
	"strings"

	"rush-server/models"
	"rush-server/repository"
)

type ApplicantService struct {
	store      repository.Scoper
	applicants repository.ApplicantRepositoryInterface
}

func NewApplicantService(store repository.Scoper, applicants repository.ApplicantRepositoryInterface) *ApplicantService {
	return &ApplicantService{store: store, applicants: applicants}
}

func (s *ApplicantService) List(ctx context.Context, ids []string) ([]models.Applicant, error) {
	var applicants []models.Applicant
	err := s.store.Scoped(ctx, func(ctx context.Context) error {
		var err error
		applicants, err = s.applicants.FindApplicants(ctx, ids)
		return err
	})
	if applicants == nil {
		applicants = []models.Applicant{}
	}
	return applicants, err
}

func (s *ApplicantService) Create(ctx context.Context, applicant models.Applicant) (models.Applicant, error) {
	applicant.Name = strings.TrimSpace(applicant.Name)
	if applicant.Name == "" {
		return models.Applicant{}, ErrNameRequired
	}
	var created models.Applicant
	err := s.store.Scoped(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.applicants.CreateApplicant(ctx, applicant)
		return err
	})
	return created, err
}

func (s *ApplicantService) Update(ctx context.Context, id string, patch models.ApplicantPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return ErrNameRequired
	}
	return s.store.Scoped(ctx, func(ctx context.Context) error {
		return s.applicants.UpdateApplicant(ctx, id, patch)
	})
}

func (s *ApplicantService) Delete(ctx context.Context, id string) error {
	return s.store.Scoped(ctx, func(ctx context.Context) error {
		return s.applicants.DeleteApplicant(ctx, id)
	})
}

// FilterApplicants keeps applicants whose name or major contains term, ignoring case.
func FilterApplicants(applicants []models.Applicant, term string) []models.Applicant {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return applicants
	}
	out := make([]models.Applicant, 0, len(applicants))
	for _, a := range applicants {
		if strings.Contains(strings.ToLower(a.Name), term) || strings.Contains(strings.ToLower(a.Major), term) {
			out = append(out, a)
		}
	}
	return out
}

// SplitIDs accepts comma separated id lists, possibly repeated, and drops blanks and duplicates.
func SplitIDs(values ...string) []string {
	seen := map[string]bool{}
	var ids []string
	for _, v := range values {
		for _, id := range strings.Split(v, ",") {
			id = strings.TrimSpace(id)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
