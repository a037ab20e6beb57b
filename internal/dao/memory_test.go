package dao

import (
	"context"
	"sync"
	"testing"

	"github.com/safedocs/doc-audit-service/internal/domain"
	"github.com/safedocs/doc-audit-service/pkg/textscan"

	"github.com/stretchr/testify/assert"
)

func TestMemoryRepository_AppendAssignsSequentialNumbers(t *testing.T) {
	repo := NewMemoryRevisionRepository()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		rev, err := repo.Append(ctx, &domain.Revision{
			DocID:        "doc-1",
			OriginalText: "text",
			Analysis:     textscan.EmptyFindings(),
		}, nil)
		assert.NoError(t, err)
		assert.Equal(t, int64(i), rev.RevisionNumber)
		assert.False(t, rev.Timestamp.IsZero())
	}

	latest, err := repo.LatestRevisionNumber(ctx, "doc-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), latest)
}

func TestMemoryRepository_ConcurrentAppendsNoGapsNoDuplicates(t *testing.T) {
	repo := NewMemoryRevisionRepository()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Append(ctx, &domain.Revision{
				DocID:    "doc-racy",
				Analysis: textscan.EmptyFindings(),
			}, nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	history, err := repo.GetHistory(ctx, "doc-racy")
	assert.NoError(t, err)
	assert.Len(t, history, n)
	for i, rev := range history {
		assert.Equal(t, int64(i+1), rev.RevisionNumber)
	}
}

func TestMemoryRepository_UnknownDocumentIsNotFound(t *testing.T) {
	repo := NewMemoryRevisionRepository()
	ctx := context.Background()

	_, err := repo.GetHistory(ctx, "never-seen-id")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

	n, err := repo.LatestRevisionNumber(ctx, "never-seen-id")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestMemoryRepository_HistoryIsIsolatedPerDocument(t *testing.T) {
	repo := NewMemoryRevisionRepository()
	ctx := context.Background()

	_, err := repo.Append(ctx, &domain.Revision{DocID: "doc-a", Analysis: textscan.EmptyFindings()}, nil)
	assert.NoError(t, err)
	_, err = repo.Append(ctx, &domain.Revision{DocID: "doc-b", Analysis: textscan.EmptyFindings()}, nil)
	assert.NoError(t, err)

	history, err := repo.GetHistory(ctx, "doc-b")
	assert.NoError(t, err)
	if assert.Len(t, history, 1) {
		assert.Equal(t, int64(1), history[0].RevisionNumber)
	}
}
