package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/docextract/internal/api/shared"
	"github.com/phrazzld/docextract/internal/domain"
	"github.com/phrazzld/docextract/internal/platform/logger"
	"github.com/phrazzld/docextract/internal/service"
)

// ExtractionHandler handles extraction HTTP requests
type ExtractionHandler struct {
	extractionService service.ExtractionService
	logger            *slog.Logger
}

// NewExtractionHandler creates a new ExtractionHandler
func NewExtractionHandler(extractionService service.ExtractionService, logger *slog.Logger) *ExtractionHandler {
	if extractionService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("extractionService cannot be nil for ExtractionHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractionHandler{
		extractionService: extractionService,
		logger:            logger.With(slog.String("component", "extraction_handler")),
	}
}

// CreateExtraction handles POST /api/extractions
func (h *ExtractionHandler) CreateExtraction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req CreateExtractionRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	extraction, err := h.extractionService.Create(r.Context(), userID, req.DocumentName)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create extraction")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, extractionToResponse(extraction))
}

// ListExtractions handles GET /api/extractions?limit=&offset=
func (h *ExtractionHandler) ListExtractions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	limit, okLimit := queryInt(r, "limit")
	offset, okOffset := queryInt(r, "offset")
	if !okLimit || !okOffset {
		HandleAPIError(w, r, service.ErrInvalidPagination, "")
		return
	}

	list, err := h.extractionService.List(r.Context(), userID, limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list extractions")
		return
	}

	resp := ListExtractionsResponse{
		Extractions: make([]ExtractionResponse, 0, len(list)),
		Limit:       limit,
		Offset:      offset,
	}
	for _, e := range list {
		resp.Extractions = append(resp.Extractions, extractionToResponse(e))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetExtraction handles GET /api/extractions/{id}
func (h *ExtractionHandler) GetExtraction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, ErrInvalidID, "")
		return
	}

	extraction, err := h.extractionService.Get(r.Context(), userID, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get extraction")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, extractionToResponse(extraction))
}

// BatchGetExtractions handles POST /api/extractions/batch/get
//
// The response is 200 whenever the batch itself was accepted; per-id
// failures are reported in the items.
func (h *ExtractionHandler) BatchGetExtractions(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.decodeBatch(w, r)
	if !ok {
		return
	}

	outcomes, err := h.extractionService.GetMany(r.Context(), userID, req.IDs)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get extractions")
		return
	}

	resp := batchToResponse(req.IDs, outcomes, func(item *BatchItemResponse, e *domain.Extraction) {
		er := extractionToResponse(e)
		item.Extraction = &er
	})
	h.logBatch(r, "batch get", resp)
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// BatchDeleteExtractions handles POST /api/extractions/batch/delete
func (h *ExtractionHandler) BatchDeleteExtractions(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.decodeBatch(w, r)
	if !ok {
		return
	}

	outcomes, err := h.extractionService.DeleteMany(r.Context(), userID, req.IDs)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete extractions")
		return
	}

	resp := batchToResponse[uuid.UUID](req.IDs, outcomes, nil)
	h.logBatch(r, "batch delete", resp)
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

func (h *ExtractionHandler) requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		logger.FromContextOrDefault(r.Context(), h.logger).Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}

func (h *ExtractionHandler) decodeBatch(w http.ResponseWriter, r *http.Request) (uuid.UUID, BatchRequest, bool) {
	var req BatchRequest
	userID, ok := h.requireUser(w, r)
	if !ok {
		return uuid.Nil, req, false
	}
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return uuid.Nil, req, false
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleValidationError(w, r, err)
		return uuid.Nil, req, false
	}
	return userID, req, true
}

func (h *ExtractionHandler) logBatch(r *http.Request, msg string, resp BatchResponse) {
	logger.FromContextOrDefault(r.Context(), h.logger).Debug(msg,
		slog.Int("items", len(resp.Items)),
		slog.Int("succeeded", resp.Succeeded),
		slog.Int("failed", resp.Failed),
		slog.Int("cancelled", resp.Cancelled))
}

// queryInt parses a non-negative integer query parameter; absent means 0.
func queryInt(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
