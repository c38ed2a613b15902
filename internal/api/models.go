package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/docextract/internal/batch"
	"github.com/phrazzld/docextract/internal/domain"
)

// CreateExtractionRequest is the payload of POST /api/extractions.
type CreateExtractionRequest struct {
	DocumentName string `json:"document_name" validate:"required,max=255"`
}

// BatchRequest is the payload of the batch endpoints.
type BatchRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}

// ExtractionResponse is the JSON form of an extraction.
type ExtractionResponse struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	DocumentName string          `json:"document_name"`
	Status       string          `json:"status"`
	Fields       json.RawMessage `json:"fields,omitempty"`
	Error        string          `json:"error,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ListExtractionsResponse is the body of GET /api/extractions.
type ListExtractionsResponse struct {
	Extractions []ExtractionResponse `json:"extractions"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
}

// BatchItemResponse reports one id of a batch request, at its request index.
type BatchItemResponse struct {
	Index      int                 `json:"index"`
	ID         uuid.UUID           `json:"id"`
	Status     string              `json:"status"`
	Extraction *ExtractionResponse `json:"extraction,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// BatchResponse is the body of the batch endpoints.
type BatchResponse struct {
	Items     []BatchItemResponse `json:"items"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Cancelled int                 `json:"cancelled"`
}

func extractionToResponse(e *domain.Extraction) ExtractionResponse {
	return ExtractionResponse{
		ID:           e.ID,
		UserID:       e.UserID,
		DocumentName: e.DocumentName,
		Status:       string(e.Status),
		Fields:       e.Fields,
		Error:        e.Error,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// batchToResponse converts outcomes into the response envelope; present
// decides what each succeeded value contributes to its item.
func batchToResponse[R any](
	ids []uuid.UUID,
	outcomes []batch.Outcome[R],
	present func(item *BatchItemResponse, value R),
) BatchResponse {
	resp := BatchResponse{Items: make([]BatchItemResponse, len(outcomes))}
	for i, o := range outcomes {
		item := BatchItemResponse{Index: o.Index, ID: ids[o.Index], Status: o.Status.String()}
		if o.OK() {
			if present != nil {
				present(&item, o.Value)
			}
		} else {
			item.Error = GetSafeErrorMessage(o.Err)
		}
		resp.Items[i] = item
	}
	resp.Succeeded, resp.Failed, resp.Cancelled = batch.Count(outcomes)
	return resp
}
