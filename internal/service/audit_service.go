// Package service implements the business logic layer.
package service

import (
	"context"
	"time"

	"github.com/safedocs/doc-audit-service/internal/domain"
	"github.com/safedocs/doc-audit-service/internal/dto"
	"github.com/safedocs/doc-audit-service/pkg/diff"
	"github.com/safedocs/doc-audit-service/pkg/logger"
	"github.com/safedocs/doc-audit-service/pkg/textscan"
	"github.com/safedocs/doc-audit-service/pkg/timex"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// AuditService is the orchestrator over analysis, revision and storage.
// It is the only surface the transport layer talks to.
type AuditService interface {
	// Submit audits text and appends it as the next revision of docID.
	// An empty docID starts a new document under a generated id. The
	// diff against the previous revision is computed here and fixed at
	// write time; it is nil for a first revision.
	Submit(ctx context.Context, docID string, text string) (*dto.RevisionDTO, error)

	// History returns the ordered revision history of docID, or
	// domain.ErrDocumentNotFound.
	History(ctx context.Context, docID string) (*dto.HistoryDTO, error)

	// Exists reports whether docID has at least one stored revision.
	Exists(ctx context.Context, docID string) (bool, error)
}

// auditService implements AuditService.
type auditService struct {
	repo     domain.RevisionRepository
	analyzer *textscan.Analyzer
	sf       *singleflight.Group
	logger   *zap.Logger
}

// NewAuditService creates an AuditService. A nil analyzer uses the
// default vocabulary.
func NewAuditService(repo domain.RevisionRepository, analyzer *textscan.Analyzer, lg *zap.Logger) AuditService {
	if analyzer == nil {
		analyzer = textscan.NewDefaultAnalyzer()
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &auditService{
		repo:     repo,
		analyzer: analyzer,
		sf:       &singleflight.Group{},
		logger:   lg,
	}
}

// safeAnalyze runs the analyzer with panic protection. Analysis is
// best-effort: a document that cannot be analyzed is still stored with
// empty findings.
func (s *auditService) safeAnalyze(docID, text string) (findings textscan.Findings) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("analysis degraded to empty findings",
				zap.String(logger.FieldDocID, docID),
				zap.String(logger.FieldMethod, "auditService.safeAnalyze"),
				zap.Any("panic", r))
			findings = textscan.EmptyFindings()
		}
	}()
	return s.analyzer.Analyze(text)
}

// safeRevise runs the reviser with panic protection, degrading to the
// unmodified text.
func (s *auditService) safeRevise(docID, text string) (revised string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("revision generation degraded to original text",
				zap.String(logger.FieldDocID, docID),
				zap.String(logger.FieldMethod, "auditService.safeRevise"),
				zap.Any("panic", r))
			revised = text
		}
	}()
	return s.analyzer.Revise(text)
}

func (s *auditService) Submit(ctx context.Context, docID string, text string) (*dto.RevisionDTO, error) {
	if docID == "" {
		docID = uuid.NewString()
	}

	findings := s.safeAnalyze(docID, text)
	revised := s.safeRevise(docID, text)

	rev := &domain.Revision{
		DocID:           docID,
		Timestamp:       time.Now().UTC(),
		OriginalText:    text,
		Analysis:        findings,
		RevisedDocument: revised,
	}

	// The diff must target the immediately preceding revision, so it is
	// derived inside the store's per-document critical section where a
	// racing submit cannot slip in between the predecessor read and the
	// write. Nil for a first revision.
	var prevText *string
	stored, err := s.repo.Append(ctx, rev, func(prev *domain.Revision) error {
		if prev == nil {
			return nil
		}
		d := diff.Unified(prev.OriginalText, text)
		rev.Diff = &d
		p := prev.OriginalText
		prevText = &p
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "append revision")
	}

	s.logger.Info("revision stored",
		zap.String(logger.FieldDocID, stored.DocID),
		zap.Int64(logger.FieldRevision, stored.RevisionNumber),
		zap.Int(logger.FieldSize, len(text)))

	out := domainToDTO(stored)
	if prevText != nil {
		out.Changes = diff.Changes(*prevText, stored.OriginalText)
	}
	return out, nil
}

func (s *auditService) History(ctx context.Context, docID string) (*dto.HistoryDTO, error) {
	// Concurrent reads of the same history collapse into one query. The
	// query runs detached from the first caller's context so that one
	// cancelled request cannot fail every coalesced caller.
	readCtx := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do("history:"+docID, func() (interface{}, error) {
		return s.repo.GetHistory(readCtx, docID)
	})
	if err != nil {
		if pkgerrors.Is(err, domain.ErrDocumentNotFound) {
			return nil, err
		}
		return nil, pkgerrors.Wrap(err, "load revision history")
	}
	revisions := v.([]*domain.Revision)

	out := &dto.HistoryDTO{
		DocID:     docID,
		Revisions: make([]*dto.RevisionDTO, 0, len(revisions)),
	}
	for i, rev := range revisions {
		d := domainToDTO(rev)
		if i > 0 {
			d.Changes = diff.Changes(revisions[i-1].OriginalText, rev.OriginalText)
		}
		out.Revisions = append(out.Revisions, d)
	}
	return out, nil
}

func (s *auditService) Exists(ctx context.Context, docID string) (bool, error) {
	n, err := s.repo.LatestRevisionNumber(ctx, docID)
	if err != nil {
		return false, pkgerrors.Wrap(err, "check document existence")
	}
	return n > 0, nil
}

func domainToDTO(rev *domain.Revision) *dto.RevisionDTO {
	return &dto.RevisionDTO{
		DocID:           rev.DocID,
		RevisionNumber:  rev.RevisionNumber,
		Timestamp:       timex.Time(rev.Timestamp),
		OriginalText:    rev.OriginalText,
		Analysis:        rev.Analysis,
		RevisedDocument: rev.RevisedDocument,
		Diff:            rev.Diff,
	}
}
