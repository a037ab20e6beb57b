package api_router

import (
	"context"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/safedocs/doc-audit-service/internal/app"
	"github.com/safedocs/doc-audit-service/internal/domain"
	"github.com/safedocs/doc-audit-service/internal/dto"
	"github.com/safedocs/doc-audit-service/internal/middleware"
	pkgapp "github.com/safedocs/doc-audit-service/pkg/app"
	"github.com/safedocs/doc-audit-service/pkg/code"
	apperrors "github.com/safedocs/doc-audit-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// defaultMaxDocumentSize bounds uploaded document content when the
// config does not set a limit.
const defaultMaxDocumentSize = 16 << 20 // 16MB

// AuditHandler handles document audit submissions and history reads.
// Uses the App Container to inject dependencies.
type AuditHandler struct {
	*Handler
}

// NewAuditHandler creates an AuditHandler instance.
func NewAuditHandler(a *app.App) *AuditHandler {
	return &AuditHandler{
		Handler: NewHandler(a),
	}
}

// readDocument extracts the submitted document content: the multipart
// `document` file when present, the `text` form field otherwise. The
// returned code is nil on success.
func (h *AuditHandler) readDocument(c *gin.Context) (string, *code.Code) {
	maxSize := int64(defaultMaxDocumentSize)
	if cfg := h.App.Config(); cfg != nil && cfg.App.MaxDocumentSize > 0 {
		maxSize = int64(cfg.App.MaxDocumentSize)
	}

	if file, err := c.FormFile("document"); err == nil {
		if file.Size > maxSize {
			return "", code.ErrorDocumentRead.WithDetails("document exceeds size limit")
		}
		f, err := file.Open()
		if err != nil {
			return "", code.ErrorDocumentRead.WithDetails(err.Error())
		}
		defer f.Close()

		raw, err := io.ReadAll(io.LimitReader(f, maxSize+1))
		if err != nil {
			return "", code.ErrorDocumentRead.WithDetails(err.Error())
		}
		if int64(len(raw)) > maxSize {
			return "", code.ErrorDocumentRead.WithDetails("document exceeds size limit")
		}
		return validateDocument(string(raw))
	}

	return validateDocument(c.PostForm("text"))
}

// validateDocument rejects content the analyzer cannot meaningfully
// process: empty, invalid UTF-8, or NUL bytes.
func validateDocument(text string) (string, *code.Code) {
	if strings.TrimSpace(text) == "" {
		return "", code.ErrorDocumentEmpty
	}
	if !utf8.ValidString(text) {
		return "", code.ErrorDocumentRead.WithDetails("document is not valid UTF-8 text")
	}
	if strings.ContainsRune(text, '\x00') {
		return "", code.ErrorDocumentRead.WithDetails("document contains NUL bytes")
	}
	return text, nil
}

// Analyze audits a new document submission.
// @Summary Submit a document for audit
// @Description Analyzes the document, stores it as revision 1 of a new document id and returns the stored revision
// @Tags Audit
// @Accept mpfd
// @Produce json
// @Param document formData file false "Document file"
// @Param text formData string false "Document text, used when no file is uploaded"
// @Success 200 {object} pkgapp.Res{data=dto.RevisionDTO} "Success"
// @Router /api/audit [post]
func (h *AuditHandler) Analyze(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	text, errCode := h.readDocument(c)
	if errCode != nil {
		response.ToResponse(errCode)
		return
	}

	if h.App.IsShuttingDown() {
		response.ToResponse(code.ErrorServerInternal.WithDetails("service is shutting down"))
		return
	}
	done := h.App.TrackOperation()
	defer done()

	ctx := c.Request.Context()

	revision, err := h.App.AuditService.Submit(ctx, "", text)
	if err != nil {
		h.logError(ctx, "AuditHandler.Analyze", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	auditsTotal.WithLabelValues("analyze").Inc()
	response.ToResponse(code.Success.WithData(revision))
}

// ReAudit audits a new version of an already tracked document.
// @Summary Re-audit a tracked document
// @Description Analyzes the new content and appends it as the next revision of docId, with a diff against the previous revision
// @Tags Audit
// @Accept mpfd
// @Produce json
// @Param docId formData string true "Document id returned by a previous audit"
// @Param document formData file false "Document file"
// @Param text formData string false "Document text, used when no file is uploaded"
// @Success 200 {object} pkgapp.Res{data=dto.RevisionDTO} "Success"
// @Router /api/audit/re [post]
func (h *AuditHandler) ReAudit(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ReAuditRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("AuditHandler.ReAudit.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	text, errCode := h.readDocument(c)
	if errCode != nil {
		response.ToResponse(errCode)
		return
	}

	if h.App.IsShuttingDown() {
		response.ToResponse(code.ErrorServerInternal.WithDetails("service is shutting down"))
		return
	}
	done := h.App.TrackOperation()
	defer done()

	ctx := c.Request.Context()

	// A re-audit must target a document that already has revisions.
	exists, err := h.App.AuditService.Exists(ctx, params.DocID)
	if err != nil {
		h.logError(ctx, "AuditHandler.ReAudit", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if !exists {
		response.ToResponse(code.ErrorDocumentNotFound)
		return
	}

	revision, err := h.App.AuditService.Submit(ctx, params.DocID, text)
	if err != nil {
		h.logError(ctx, "AuditHandler.ReAudit", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	auditsTotal.WithLabelValues("re_audit").Inc()
	response.ToResponse(code.Success.WithData(revision))
}

// History returns the full revision history of a document.
// @Summary Get document revision history
// @Description Returns all stored revisions of docId in submission order, including analysis results and diffs
// @Tags Audit
// @Produce json
// @Param docId query string true "Document id"
// @Success 200 {object} pkgapp.Res{data=dto.HistoryDTO} "Success"
// @Router /api/audit/history [get]
func (h *AuditHandler) History(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.HistoryRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("AuditHandler.History.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	history, err := h.App.AuditService.History(ctx, params.DocID)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			response.ToResponse(code.ErrorDocumentNotFound)
			return
		}
		h.logError(ctx, "AuditHandler.History", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(history))
}

// logError logs an error with its trace id.
func (h *AuditHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
