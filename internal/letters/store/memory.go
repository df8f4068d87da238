package store

import (
	"context"
	"sort"
	"sync"

	"feder/internal/letters/models"
	id "feder/pkg/domain"
	"feder/pkg/platform/sentinel"
)

var (
	ErrNotFound      = sentinel.ErrNotFound
	ErrDuplicateFile = sentinel.ErrAlreadyUsed
	ErrAlreadyOwned  = sentinel.ErrInvalidState
)

type attachmentKey struct {
	letterID id.LetterID
	filename string
	digest   string
}

type InMemoryStore struct {
	mu          sync.RWMutex
	letters     map[id.LetterID]*models.Letter
	attachments map[id.AttachmentID]*models.Attachment
	fileIndex   map[attachmentKey]id.AttachmentID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		letters:     make(map[id.LetterID]*models.Letter),
		attachments: make(map[id.AttachmentID]*models.Attachment),
		fileIndex:   make(map[attachmentKey]id.AttachmentID),
	}
}

func (s *InMemoryStore) CreateLetter(_ context.Context, l *models.Letter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := cloneLetter(l)
	cp.Attachments = nil
	s.letters[l.ID] = cp
	return nil
}

func (s *InMemoryStore) CreateAttachment(_ context.Context, a *models.Attachment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.letters[a.LetterID]; !ok {
		return ErrNotFound
	}
	key := attachmentKey{letterID: a.LetterID, filename: a.Filename, digest: a.Digest}
	if _, taken := s.fileIndex[key]; taken {
		return ErrDuplicateFile
	}
	cp := *a
	s.attachments[a.ID] = &cp
	s.fileIndex[key] = a.ID
	return nil
}

func (s *InMemoryStore) FindLetter(_ context.Context, letterID id.LetterID) (*models.Letter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.letters[letterID]
	if !ok {
		return nil, ErrNotFound
	}
	return s.withAttachments(l), nil
}

func (s *InMemoryStore) FindAttachment(_ context.Context, letterID id.LetterID, attachmentID id.AttachmentID) (*models.Attachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.attachments[attachmentID]
	if !ok || a.LetterID != letterID {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// FindAttachmentByID looks an attachment up without its letter.
func (s *InMemoryStore) FindAttachmentByID(_ context.Context, attachmentID id.AttachmentID) (*models.Attachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.attachments[attachmentID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// ListByCase returns the case's letters except those marked spam.
func (s *InMemoryStore) ListByCase(_ context.Context, caseID id.CaseID) ([]*models.Letter, error) {
	return s.filter(func(l *models.Letter) bool {
		return l.CaseID != nil && *l.CaseID == caseID && !l.IsSpam()
	}), nil
}

func (s *InMemoryStore) ListUnrecognized(_ context.Context) ([]*models.Letter, error) {
	return s.filter(func(l *models.Letter) bool {
		return l.CaseID == nil && l.IsIncoming()
	}), nil
}

// UpdateSpam moves the letter from one spam state to another and reports
// false when the letter was no longer in from.
func (s *InMemoryStore) UpdateSpam(_ context.Context, letterID id.LetterID, from, to models.SpamStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.letters[letterID]
	if !ok {
		return false, ErrNotFound
	}
	if l.Spam != from {
		return false, nil
	}
	l.Spam = to
	return true, nil
}

func (s *InMemoryStore) AssignCase(_ context.Context, letterID id.LetterID, caseID id.CaseID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.letters[letterID]
	if !ok {
		return ErrNotFound
	}
	if l.CaseID != nil {
		return ErrAlreadyOwned
	}
	l.CaseID = &caseID
	return nil
}

// OutgoingMessageIndex maps the Message-ID of every outgoing letter to the
// letter.
func (s *InMemoryStore) OutgoingMessageIndex(_ context.Context) (map[string]id.LetterID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	index := make(map[string]id.LetterID)
	for _, l := range s.letters {
		if l.Direction == models.DirectionOutgoing && l.MessageIDHeader != "" {
			index[l.MessageIDHeader] = l.ID
		}
	}
	return index, nil
}

func (s *InMemoryStore) filter(keep func(*models.Letter) bool) []*models.Letter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Letter{}
	for _, l := range s.letters {
		if keep(l) {
			out = append(out, s.withAttachments(l))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// withAttachments copies l and joins its attachments; callers hold mu.
func (s *InMemoryStore) withAttachments(l *models.Letter) *models.Letter {
	cp := cloneLetter(l)
	cp.Attachments = []models.Attachment{}
	for _, a := range s.attachments {
		if a.LetterID == l.ID {
			cp.Attachments = append(cp.Attachments, *a)
		}
	}
	sort.Slice(cp.Attachments, func(i, j int) bool {
		if cp.Attachments[i].Filename == cp.Attachments[j].Filename {
			return cp.Attachments[i].ID.String() < cp.Attachments[j].ID.String()
		}
		return cp.Attachments[i].Filename < cp.Attachments[j].Filename
	})
	return cp
}

func cloneLetter(l *models.Letter) *models.Letter {
	cp := *l
	if l.CaseID != nil {
		caseID := *l.CaseID
		cp.CaseID = &caseID
	}
	if l.AuthorID != nil {
		authorID := *l.AuthorID
		cp.AuthorID = &authorID
	}
	return &cp
}
