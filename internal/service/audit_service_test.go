package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/safedocs/doc-audit-service/internal/dao"
	"github.com/safedocs/doc-audit-service/internal/domain"
	"github.com/safedocs/doc-audit-service/pkg/textscan"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestService() AuditService {
	return NewAuditService(dao.NewMemoryRevisionRepository(), nil, zap.NewNop())
}

func TestSubmit_FirstRevision(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	rev, err := svc.Submit(ctx, "", "This is a hazard. Fire risk is evident.")
	assert.NoError(t, err)

	assert.NotEmpty(t, rev.DocID)
	assert.Equal(t, int64(1), rev.RevisionNumber)
	assert.Nil(t, rev.Diff)
	assert.False(t, rev.Timestamp.IsZero())

	assert.Len(t, rev.Analysis.DetectedHazards, 2)
	assert.Contains(t, rev.Analysis.RegulatoryComments, "hazard")
	assert.Contains(t, rev.Analysis.RegulatoryComments, "fire")

	want := "This is a hazard." + textscan.RecommendationSuffix +
		" Fire risk is evident." + textscan.RecommendationSuffix
	assert.Equal(t, want, rev.RevisedDocument)
}

func TestSubmit_SecondRevisionDiffsAgainstPrevious(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Submit(ctx, "", "Initial content")
	assert.NoError(t, err)
	assert.Nil(t, first.Diff)

	second, err := svc.Submit(ctx, first.DocID, "Updated content")
	assert.NoError(t, err)

	assert.Equal(t, first.DocID, second.DocID)
	assert.Equal(t, int64(2), second.RevisionNumber)
	if assert.NotNil(t, second.Diff) {
		assert.Contains(t, *second.Diff, "-Initial content")
		assert.Contains(t, *second.Diff, "+Updated content")
	}
	assert.NotEmpty(t, second.Changes)
}

func TestSubmit_DiffIsAgainstImmediatelyPrecedingRevision(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Submit(ctx, "", "version one")
	assert.NoError(t, err)

	_, err = svc.Submit(ctx, first.DocID, "version two")
	assert.NoError(t, err)

	third, err := svc.Submit(ctx, first.DocID, "version three")
	assert.NoError(t, err)

	if assert.NotNil(t, third.Diff) {
		assert.Contains(t, *third.Diff, "-version two")
		assert.False(t, strings.Contains(*third.Diff, "-version one"))
	}
}

func TestSubmit_IdenticalResubmissionHasEmptyDiff(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Submit(ctx, "", "same text")
	assert.NoError(t, err)

	second, err := svc.Submit(ctx, first.DocID, "same text")
	assert.NoError(t, err)

	if assert.NotNil(t, second.Diff) {
		assert.Equal(t, "", *second.Diff)
	}
}

func TestSubmit_SequentialNumberingUnderConcurrency(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Submit(ctx, "", "seed")
	assert.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(ctx, first.DocID, "racing update")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	history, err := svc.History(ctx, first.DocID)
	assert.NoError(t, err)
	assert.Len(t, history.Revisions, n+1)
	for i, rev := range history.Revisions {
		assert.Equal(t, int64(i+1), rev.RevisionNumber)
	}
}

func TestSubmit_ConcurrentDiffsTargetImmediatePredecessor(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Submit(ctx, "", "draft zero")
	assert.NoError(t, err)

	const n = 16
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Submit(ctx, first.DocID, fmt.Sprintf("draft %d text", i+1))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	history, err := svc.History(ctx, first.DocID)
	assert.NoError(t, err)
	assert.Len(t, history.Revisions, n+1)

	// Whatever order the submissions landed in, each stored diff must
	// remove the text of the revision immediately before it.
	for i := 1; i < len(history.Revisions); i++ {
		rev := history.Revisions[i]
		prev := history.Revisions[i-1]
		if assert.NotNil(t, rev.Diff) {
			assert.Contains(t, *rev.Diff, "-"+prev.OriginalText)
			assert.Contains(t, *rev.Diff, "+"+rev.OriginalText)
		}
	}
}

func TestHistory_UnknownDocumentIsNotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.History(context.Background(), "never-seen-id")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestHistory_OrderAndDiffs(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Submit(ctx, "", "alpha")
	assert.NoError(t, err)
	_, err = svc.Submit(ctx, first.DocID, "beta")
	assert.NoError(t, err)

	history, err := svc.History(ctx, first.DocID)
	assert.NoError(t, err)

	assert.Equal(t, first.DocID, history.DocID)
	assert.Len(t, history.Revisions, 2)
	assert.Nil(t, history.Revisions[0].Diff)
	assert.NotNil(t, history.Revisions[1].Diff)
	assert.Empty(t, history.Revisions[0].Changes)
	assert.NotEmpty(t, history.Revisions[1].Changes)
}

func TestExists(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	exists, err := svc.Exists(ctx, "nope")
	assert.NoError(t, err)
	assert.False(t, exists)

	rev, err := svc.Submit(ctx, "", "content here")
	assert.NoError(t, err)

	exists, err = svc.Exists(ctx, rev.DocID)
	assert.NoError(t, err)
	assert.True(t, exists)
}

// failingRepo simulates an unreachable storage medium.
type failingRepo struct {
	domain.RevisionRepository
}

var errStorageDown = errors.New("storage unreachable")

func (f *failingRepo) Append(context.Context, *domain.Revision, func(prev *domain.Revision) error) (*domain.Revision, error) {
	return nil, errStorageDown
}

func (f *failingRepo) LatestRevisionNumber(context.Context, string) (int64, error) {
	return 0, errStorageDown
}

// cancelAwareRepo refuses reads once the caller's context is done.
type cancelAwareRepo struct {
	domain.RevisionRepository
}

func (r *cancelAwareRepo) GetHistory(ctx context.Context, docID string) ([]*domain.Revision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.RevisionRepository.GetHistory(ctx, docID)
}

func TestHistory_CancelledCallerDoesNotFailSharedRead(t *testing.T) {
	repo := &cancelAwareRepo{RevisionRepository: dao.NewMemoryRevisionRepository()}
	svc := NewAuditService(repo, nil, zap.NewNop())

	first, err := svc.Submit(context.Background(), "", "archived text")
	assert.NoError(t, err)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	history, err := svc.History(cancelled, first.DocID)
	assert.NoError(t, err)
	assert.Len(t, history.Revisions, 1)
}

func TestSubmit_StorageFailurePropagates(t *testing.T) {
	svc := NewAuditService(&failingRepo{}, nil, zap.NewNop())

	_, err := svc.Submit(context.Background(), "doc-1", "text")
	assert.ErrorIs(t, err, errStorageDown)
}

func TestSubmit_AnalysisRoundTripsThroughStore(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	submitted, err := svc.Submit(ctx, "", "The wiring is unsafe. Inspections are non-compliant.")
	assert.NoError(t, err)

	history, err := svc.History(ctx, submitted.DocID)
	assert.NoError(t, err)
	assert.Equal(t, submitted.Analysis, history.Revisions[0].Analysis)
	assert.Equal(t, []string{"Inspections are non-compliant."}, history.Revisions[0].Analysis.ComplianceIssues)
}
