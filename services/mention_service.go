package service

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"rush-server/models"
)

const mentionPrefix = '@'

type mentionMarker struct {
	start       int // index of '@'
	end         int // first byte after the mentioned name
	applicantID string
}

// ParseMentions splits a shared notes blob into per-applicant text.
//
// Every '@' in text is a marker. A marker belongs to the applicant whose name follows it
// (longest name wins, and the name must end at a word boundary); the text after the name up to
// the next marker is that applicant's segment. Segments of the same applicant are joined with
// a newline in order of appearance. Applicants never mentioned are absent from the result;
// applicants mentioned only with empty segments map to "".
func ParseMentions(text string, applicants []models.Applicant) map[string]string {
	candidates := make([]models.Applicant, 0, len(applicants))
	for _, a := range applicants {
		if strings.TrimSpace(a.Name) != "" && a.ID != "" {
			candidates = append(candidates, a)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].Name) > len(candidates[j].Name)
	})

	var markers []mentionMarker
	for i := 0; i < len(text); i++ {
		if text[i] != mentionPrefix {
			continue
		}
		m := mentionMarker{start: i, end: i + 1}
		rest := text[i+1:]
		for _, a := range candidates {
			if strings.HasPrefix(rest, a.Name) && atWordBoundary(rest[len(a.Name):]) {
				m.applicantID = a.ID
				m.end = i + 1 + len(a.Name)
				break
			}
		}
		markers = append(markers, m)
	}

	segments := make(map[string][]string)
	for k, m := range markers {
		if m.applicantID == "" {
			continue
		}
		stop := len(text)
		if k+1 < len(markers) {
			stop = markers[k+1].start
		}
		seg := strings.TrimSpace(text[m.end:stop])
		if seg == "" {
			if _, ok := segments[m.applicantID]; !ok {
				segments[m.applicantID] = nil
			}
			continue
		}
		segments[m.applicantID] = append(segments[m.applicantID], seg)
	}

	out := make(map[string]string, len(segments))
	for id, parts := range segments {
		out[id] = strings.Join(parts, "\n")
	}
	return out
}

func atWordBoundary(s string) bool {
	if s == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s)
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
