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

// NoteService merges submitted notes into the stored note history of each applicant.
type NoteService struct {
	store      repository.Scoper
	notes      repository.NoteRepositoryInterface
	applicants repository.ApplicantRepositoryInterface
	perUser    bool
	now        func() time.Time
}

func NewNoteService(store repository.Scoper, notes repository.NoteRepositoryInterface, applicants repository.ApplicantRepositoryInterface, perUser bool) *NoteService {
	return &NoteService{
		store:      store,
		notes:      notes,
		applicants: applicants,
		perUser:    perUser,
		now:        time.Now,
	}
}

type MergeResult struct {
	Created  []string `json:"created"`
	Appended []string `json:"appended"`
}

// FormatNoteEntry renders one attributed entry as stored in a note's content.
func FormatNoteEntry(author, text string) string {
	return fmt.Sprintf("%s: %s\n\n", author, text)
}

// MergeNotes appends each applicant's text to their existing note, or creates one.
// Entries are written one by one in applicant id order; the first failure stops the batch
// and earlier writes are kept.
func (s *NoteService) MergeNotes(ctx context.Context, author models.SessionUser, notes map[string]string) (MergeResult, error) {
	if author.ID == "" {
		return MergeResult{}, ErrNotAuthenticated
	}
	var result MergeResult
	err := s.store.Scoped(ctx, func(ctx context.Context) error {
		var err error
		result, err = s.merge(ctx, author, notes)
		return err
	})
	return result, err
}

// SubmitDiscussion parses a shared notes blob for the given applicants and merges the result.
func (s *NoteService) SubmitDiscussion(ctx context.Context, author models.SessionUser, applicantIDs []string, content string) (MergeResult, error) {
	if author.ID == "" {
		return MergeResult{}, ErrNotAuthenticated
	}
	if len(applicantIDs) == 0 || strings.TrimSpace(content) == "" {
		return MergeResult{}, ErrEmptyNotes
	}

	var result MergeResult
	err := s.store.Scoped(ctx, func(ctx context.Context) error {
		applicants, err := s.applicants.FindApplicants(ctx, applicantIDs)
		if err != nil {
			return fmt.Errorf("load applicants: %w", err)
		}
		notes := ParseMentions(content, applicants)
		if len(notes) == 0 {
			return ErrEmptyNotes
		}
		result, err = s.merge(ctx, author, notes)
		return err
	})
	return result, err
}

func (s *NoteService) merge(ctx context.Context, author models.SessionUser, notes map[string]string) (MergeResult, error) {
	result := MergeResult{Created: []string{}, Appended: []string{}}

	ids := make([]string, 0, len(notes))
	for id, text := range notes {
		if strings.TrimSpace(id) == "" || strings.TrimSpace(text) == "" {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return result, ErrEmptyNotes
	}
	sort.Strings(ids)

	scope := ""
	if s.perUser {
		scope = author.ID
	}

	committed := 0
	for _, applicantID := range ids {
		entry := FormatNoteEntry(author.DisplayName(), strings.TrimSpace(notes[applicantID]))
		now := s.now().UTC()

		existing, err := s.notes.FindNoteForApplicant(ctx, applicantID, scope)
		switch {
		case err == nil:
			if err := s.notes.UpdateNoteContent(ctx, existing.ID, existing.Content+entry, now); err != nil {
				return result, &BatchError{Op: "merge notes", Key: applicantID, Committed: committed, Err: err}
			}
			result.Appended = append(result.Appended, applicantID)
		case isNotFound(err):
			note := models.Note{
				ApplicantID: applicantID,
				UserID:      author.ID,
				Content:     entry,
				CreatedAt:   now,
				Timestamp:   now,
			}
			if _, err := s.notes.CreateNote(ctx, note); err != nil {
				return result, &BatchError{Op: "merge notes", Key: applicantID, Committed: committed, Err: err}
			}
			result.Created = append(result.Created, applicantID)
		default:
			return result, &BatchError{Op: "merge notes", Key: applicantID, Committed: committed, Err: err}
		}
		committed++
	}
	return result, nil
}

// ListNotes returns notes oldest first; mine restricts them to the given user.
func (s *NoteService) ListNotes(ctx context.Context, userID string, mine bool) ([]models.Note, error) {
	if mine && userID == "" {
		return nil, ErrNotAuthenticated
	}
	filter := ""
	if mine || (s.perUser && userID != "") {
		filter = userID
	}

	var notes []models.Note
	err := s.store.Scoped(ctx, func(ctx context.Context) error {
		var err error
		notes, err = s.notes.FindNotes(ctx, filter)
		return err
	})
	return notes, err
}
