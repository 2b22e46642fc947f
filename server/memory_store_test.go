package server

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"rush-server/models"
	"rush-server/repository"
)

type memoryStore struct {
	mu       sync.Mutex
	pingErr  error
	scopeErr error // returned by Scoped without running fn
	scopes   int

	applicants map[string]models.Applicant
	notes      []models.Note
	ratings    []models.Rating
	states     map[string]bool
	seq        int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{applicants: map[string]models.Applicant{}, states: map[string]bool{}}
}

func (s *memoryStore) Scoped(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	s.scopes++
	err := s.scopeErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return fn(ctx)
}

func (s *memoryStore) Ping(ctx context.Context) error { return s.pingErr }

func (s *memoryStore) nextID() string {
	s.seq++
	return fmt.Sprintf("%024x", s.seq)
}

func (s *memoryStore) addApplicant(name string) models.Applicant {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := models.Applicant{ID: s.nextID(), Name: name}
	s.applicants[a.ID] = a
	return a
}

type memoryApplicants struct{ *memoryStore }

func (m memoryApplicants) FindApplicants(ctx context.Context, ids []string) ([]models.Applicant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Applicant{}
	if len(ids) == 0 {
		for _, a := range m.applicants {
			out = append(out, a)
		}
	} else {
		for _, id := range ids {
			if a, ok := m.applicants[id]; ok {
				out = append(out, a)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m memoryApplicants) FindApplicantByID(ctx context.Context, id string) (models.Applicant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.applicants[id]
	if !ok {
		return models.Applicant{}, repository.ErrNotFound
	}
	return a, nil
}

func (m memoryApplicants) CreateApplicant(ctx context.Context, applicant models.Applicant) (models.Applicant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	applicant.ID = m.nextID()
	m.applicants[applicant.ID] = applicant
	return applicant, nil
}

func (m memoryApplicants) UpdateApplicant(ctx context.Context, id string, patch models.ApplicantPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.applicants[id]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.Major != nil {
		a.Major = *patch.Major
	}
	m.applicants[id] = a
	return nil
}

func (m memoryApplicants) DeleteApplicant(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.applicants[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.applicants, id)
	return nil
}

type memoryNotes struct{ *memoryStore }

func (m memoryNotes) FindNotes(ctx context.Context, userID string) ([]models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Note{}
	for _, n := range m.notes {
		if userID == "" || n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m memoryNotes) FindNoteForApplicant(ctx context.Context, applicantID, userID string) (models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notes {
		if n.ApplicantID == applicantID && (userID == "" || n.UserID == userID) {
			return n, nil
		}
	}
	return models.Note{}, repository.ErrNotFound
}

func (m memoryNotes) CreateNote(ctx context.Context, note models.Note) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	note.ID = m.nextID()
	m.notes = append(m.notes, note)
	return note.ID, nil
}

func (m memoryNotes) UpdateNoteContent(ctx context.Context, id, content string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.notes {
		if m.notes[i].ID == id {
			m.notes[i].Content = content
			m.notes[i].Timestamp = at
			return nil
		}
	}
	return repository.ErrNotFound
}

type memoryRatings struct{ *memoryStore }

func (m memoryRatings) FindRating(ctx context.Context, applicantID, userID string) (models.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.ratings {
		if r.ApplicantID == applicantID && r.UserID == userID {
			return r, nil
		}
	}
	return models.Rating{}, repository.ErrNotFound
}

func (m memoryRatings) FindRatingsByUser(ctx context.Context, userID string) ([]models.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Rating{}
	for _, r := range m.ratings {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m memoryRatings) CreateRating(ctx context.Context, rating models.Rating) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rating.ID = m.nextID()
	m.ratings = append(m.ratings, rating)
	return rating.ID, nil
}

func (m memoryRatings) UpdateRatingValue(ctx context.Context, id string, value models.RatingValue, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.ratings {
		if m.ratings[i].ID == id {
			m.ratings[i].Value = value
			m.ratings[i].Timestamp = at
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m memoryRatings) BulkUpsertRatings(ctx context.Context, ratings []models.Rating) (int64, error) {
	var written int64
	for _, r := range ratings {
		existing, err := m.FindRating(ctx, r.ApplicantID, r.UserID)
		switch {
		case err == nil:
			if existing.Value == r.Value {
				continue
			}
			if err := m.UpdateRatingValue(ctx, existing.ID, r.Value, r.Timestamp); err != nil {
				return written, err
			}
		case errors.Is(err, repository.ErrNotFound):
			if _, err := m.CreateRating(ctx, r); err != nil {
				return written, err
			}
		default:
			return written, err
		}
		written++
	}
	return written, nil
}

type memoryStates struct{ *memoryStore }

func (m memoryStates) SaveState(ctx context.Context, state string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[state] = true
	return nil
}

func (m memoryStates) ConsumeState(ctx context.Context, state string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ok := m.states[state]
	delete(m.states, state)
	return ok, nil
}
