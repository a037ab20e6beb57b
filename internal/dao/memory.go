package dao

import (
	"context"
	"sync"
	"time"

	"github.com/safedocs/doc-audit-service/internal/domain"
)

// MemoryRevisionRepository is an in-memory RevisionRepository used as a
// test double. The canonical store is the gorm-backed repository.
type MemoryRevisionRepository struct {
	mu     sync.RWMutex
	docs   map[string][]*domain.Revision
	nextID int64
}

// NewMemoryRevisionRepository creates an empty in-memory repository.
func NewMemoryRevisionRepository() *MemoryRevisionRepository {
	return &MemoryRevisionRepository{docs: make(map[string][]*domain.Revision)}
}

func (s *MemoryRevisionRepository) Append(_ context.Context, rev *domain.Revision, prepare func(prev *domain.Revision) error) (*domain.Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.docs[rev.DocID]

	if prepare != nil {
		var prev *domain.Revision
		if len(history) > 0 {
			clone := *history[len(history)-1]
			prev = &clone
		}
		if err := prepare(prev); err != nil {
			return nil, err
		}
	}

	s.nextID++

	stored := *rev
	stored.ID = s.nextID
	stored.RevisionNumber = int64(len(history)) + 1
	if stored.Timestamp.IsZero() {
		stored.Timestamp = time.Now().UTC()
	}

	s.docs[rev.DocID] = append(history, &stored)

	out := stored
	return &out, nil
}

func (s *MemoryRevisionRepository) GetHistory(_ context.Context, docID string) ([]*domain.Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.docs[docID]
	if !ok || len(history) == 0 {
		return nil, domain.ErrDocumentNotFound
	}

	out := make([]*domain.Revision, len(history))
	for i, rev := range history {
		clone := *rev
		out[i] = &clone
	}
	return out, nil
}

func (s *MemoryRevisionRepository) LatestRevisionNumber(_ context.Context, docID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.docs[docID])), nil
}
