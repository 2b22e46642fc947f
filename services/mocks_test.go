package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"rush-server/models"
	"rush-server/repository"
)

type passthroughStore struct {
	mu     sync.Mutex
	scopes int
}

func (s *passthroughStore) Scoped(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	s.scopes++
	s.mu.Unlock()
	return fn(ctx)
}

type mockNoteRepository struct {
	mu      sync.Mutex
	data    []models.Note
	nextID  int
	failOn  string // applicant id whose write fails
	findErr error
	writes  int
}

func (m *mockNoteRepository) FindNotes(ctx context.Context, userID string) ([]models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Note{}
	for _, n := range m.data {
		if userID == "" || n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNoteRepository) FindNoteForApplicant(ctx context.Context, applicantID, userID string) (models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return models.Note{}, m.findErr
	}
	for _, n := range m.data {
		if n.ApplicantID == applicantID && (userID == "" || n.UserID == userID) {
			return n, nil
		}
	}
	return models.Note{}, repository.ErrNotFound
}

func (m *mockNoteRepository) CreateNote(ctx context.Context, note models.Note) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if note.ApplicantID == m.failOn {
		return "", errors.New("write failed")
	}
	m.nextID++
	note.ID = fmt.Sprintf("n%d", m.nextID)
	m.data = append(m.data, note)
	m.writes++
	return note.ID, nil
}

func (m *mockNoteRepository) UpdateNoteContent(ctx context.Context, id, content string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.data {
		if m.data[i].ID == id {
			if m.data[i].ApplicantID == m.failOn {
				return errors.New("write failed")
			}
			m.data[i].Content = content
			m.data[i].Timestamp = at
			m.writes++
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockNoteRepository) forApplicant(applicantID string) []models.Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Note
	for _, n := range m.data {
		if n.ApplicantID == applicantID {
			out = append(out, n)
		}
	}
	return out
}

type mockRatingRepository struct {
	mu     sync.Mutex
	data   []models.Rating
	nextID int
	failOn string
	bulk   [][]models.Rating
}

func (m *mockRatingRepository) FindRating(ctx context.Context, applicantID, userID string) (models.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.data {
		if r.ApplicantID == applicantID && r.UserID == userID {
			return r, nil
		}
	}
	return models.Rating{}, repository.ErrNotFound
}

func (m *mockRatingRepository) FindRatingsByUser(ctx context.Context, userID string) ([]models.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Rating{}
	for _, r := range m.data {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRatingRepository) CreateRating(ctx context.Context, rating models.Rating) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rating.ApplicantID == m.failOn {
		return "", errors.New("write failed")
	}
	m.nextID++
	rating.ID = fmt.Sprintf("r%d", m.nextID)
	m.data = append(m.data, rating)
	return rating.ID, nil
}

func (m *mockRatingRepository) UpdateRatingValue(ctx context.Context, id string, value models.RatingValue, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.data {
		if m.data[i].ID == id {
			m.data[i].Value = value
			m.data[i].Timestamp = at
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockRatingRepository) BulkUpsertRatings(ctx context.Context, ratings []models.Rating) (int64, error) {
	m.mu.Lock()
	m.bulk = append(m.bulk, ratings)
	m.mu.Unlock()
	return int64(len(ratings)), nil
}

func (m *mockRatingRepository) count(applicantID, userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.data {
		if r.ApplicantID == applicantID && r.UserID == userID {
			n++
		}
	}
	return n
}

type mockApplicantRepository struct {
	data []models.Applicant
}

func (m *mockApplicantRepository) FindApplicants(ctx context.Context, ids []string) ([]models.Applicant, error) {
	if len(ids) == 0 {
		return m.data, nil
	}
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := []models.Applicant{}
	for _, a := range m.data {
		if want[a.ID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApplicantRepository) FindApplicantByID(ctx context.Context, id string) (models.Applicant, error) {
	for _, a := range m.data {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Applicant{}, repository.ErrNotFound
}

func (m *mockApplicantRepository) CreateApplicant(ctx context.Context, a models.Applicant) (models.Applicant, error) {
	a.ID = fmt.Sprintf("app%d", len(m.data)+1)
	m.data = append(m.data, a)
	return a, nil
}

func (m *mockApplicantRepository) UpdateApplicant(ctx context.Context, id string, patch models.ApplicantPatch) error {
	for i := range m.data {
		if m.data[i].ID == id {
			if patch.Name != nil {
				m.data[i].Name = *patch.Name
			}
			if patch.Major != nil {
				m.data[i].Major = *patch.Major
			}
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockApplicantRepository) DeleteApplicant(ctx context.Context, id string) error {
	for i := range m.data {
		if m.data[i].ID == id {
			m.data = append(m.data[:i], m.data[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type mockStateRepository struct {
	mu     sync.Mutex
	states map[string]bool
}

func newMockStateRepository() *mockStateRepository {
	return &mockStateRepository{states: map[string]bool{}}
}

func (m *mockStateRepository) SaveState(ctx context.Context, state string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[state] = true
	return nil
}

func (m *mockStateRepository) ConsumeState(ctx context.Context, state string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ok := m.states[state]
	delete(m.states, state)
	return ok, nil
}
