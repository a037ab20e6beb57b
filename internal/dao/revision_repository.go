package dao

import (
	"context"
	"time"

	"github.com/safedocs/doc-audit-service/internal/domain"
	"github.com/safedocs/doc-audit-service/internal/model"
	"github.com/safedocs/doc-audit-service/pkg/textscan"
	"github.com/safedocs/doc-audit-service/pkg/timex"

	"github.com/bytedance/sonic"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// revisionRepository implements domain.RevisionRepository on gorm.
type revisionRepository struct {
	dao *Dao
}

// NewRevisionRepository creates the durable RevisionRepository.
func NewRevisionRepository(dao *Dao) domain.RevisionRepository {
	return &revisionRepository{dao: dao}
}

func (r *revisionRepository) toModel(rev *domain.Revision) (*model.Revision, error) {
	analysis, err := sonic.MarshalString(rev.Analysis)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "marshal analysis")
	}
	return &model.Revision{
		DocID:           rev.DocID,
		RevisionNumber:  rev.RevisionNumber,
		Timestamp:       timex.Time(rev.Timestamp),
		OriginalText:    rev.OriginalText,
		Analysis:        analysis,
		RevisedDocument: rev.RevisedDocument,
		Diff:            rev.Diff,
	}, nil
}

func (r *revisionRepository) toDomain(m *model.Revision) (*domain.Revision, error) {
	if m == nil {
		return nil, nil
	}
	findings := textscan.EmptyFindings()
	if m.Analysis != "" {
		if err := sonic.UnmarshalString(m.Analysis, &findings); err != nil {
			return nil, pkgerrors.Wrapf(err, "unmarshal analysis for revision %d", m.ID)
		}
	}
	return &domain.Revision{
		ID:              m.ID,
		DocID:           m.DocID,
		RevisionNumber:  m.RevisionNumber,
		Timestamp:       m.Timestamp.Time(),
		OriginalText:    m.OriginalText,
		Analysis:        findings,
		RevisedDocument: m.RevisedDocument,
		Diff:            m.Diff,
	}, nil
}

// Append assigns the next revision number and inserts the record in one
// transaction. The per-document write queue serializes the read-latest /
// prepare / assign-next / insert sequence so concurrent appends to the
// same document can never collide or observe a stale predecessor, while
// other documents proceed in parallel.
func (r *revisionRepository) Append(ctx context.Context, rev *domain.Revision, prepare func(prev *domain.Revision) error) (*domain.Revision, error) {
	var stored *domain.Revision

	run := func() error {
		return r.dao.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var prev *domain.Revision
			var prevModel model.Revision
			err := tx.Where("doc_id = ?", rev.DocID).
				Order("revision_number DESC").
				First(&prevModel).Error
			switch {
			case err == nil:
				prev, err = r.toDomain(&prevModel)
				if err != nil {
					return err
				}
			case pkgerrors.Is(err, gorm.ErrRecordNotFound):
				// first revision
			default:
				return pkgerrors.Wrap(err, "read latest revision")
			}

			if prepare != nil {
				if err := prepare(prev); err != nil {
					return err
				}
			}

			m, err := r.toModel(rev)
			if err != nil {
				return err
			}
			m.RevisionNumber = 1
			if prev != nil {
				m.RevisionNumber = prev.RevisionNumber + 1
			}
			if m.Timestamp.IsZero() {
				m.Timestamp = timex.Time(time.Now().UTC())
			}

			if err := tx.Create(m).Error; err != nil {
				return pkgerrors.Wrap(err, "insert revision")
			}

			stored, err = r.toDomain(m)
			return err
		})
	}

	var err error
	if wq := r.dao.wq; wq != nil {
		err = wq.Execute(ctx, rev.DocID, run)
	} else {
		err = run()
	}
	if err != nil {
		return nil, err
	}

	r.dao.Logger().Debug("revision appended",
		zap.String("docId", stored.DocID),
		zap.Int64("revisionNumber", stored.RevisionNumber))

	return stored, nil
}

func (r *revisionRepository) GetHistory(ctx context.Context, docID string) ([]*domain.Revision, error) {
	var models []*model.Revision
	err := r.dao.DB().WithContext(ctx).
		Where("doc_id = ?", docID).
		Order("revision_number ASC").
		Find(&models).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "query revision history")
	}
	if len(models) == 0 {
		return nil, domain.ErrDocumentNotFound
	}

	revisions := make([]*domain.Revision, 0, len(models))
	for _, m := range models {
		rev, err := r.toDomain(m)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, rev)
	}
	return revisions, nil
}

func (r *revisionRepository) LatestRevisionNumber(ctx context.Context, docID string) (int64, error) {
	var maxNumber int64
	err := r.dao.DB().WithContext(ctx).Model(&model.Revision{}).
		Where("doc_id = ?", docID).
		Select("COALESCE(MAX(revision_number), 0)").
		Scan(&maxNumber).Error
	if err != nil {
		return 0, pkgerrors.Wrap(err, "query latest revision number")
	}
	return maxNumber, nil
}
