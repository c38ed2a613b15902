package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExtractionStatus represents the processing state of an extraction.
type ExtractionStatus string

// Possible extraction status values.
const (
	ExtractionStatusPending    ExtractionStatus = "pending"
	ExtractionStatusProcessing ExtractionStatus = "processing"
	ExtractionStatusCompleted  ExtractionStatus = "completed"
	ExtractionStatusFailed     ExtractionStatus = "failed"
)

// MaxDocumentNameLength is the longest document name accepted.
const MaxDocumentNameLength = 255

// Validation errors for Extraction.
var (
	ErrEmptyExtractionID       = errors.New("extraction ID cannot be empty")
	ErrEmptyUserID             = errors.New("extraction user ID cannot be empty")
	ErrEmptyDocumentName       = errors.New("document name cannot be empty")
	ErrDocumentNameTooLong     = errors.New("document name is too long")
	ErrInvalidExtractionStatus = errors.New("invalid extraction status")
	ErrInvalidFields           = errors.New("extracted fields must be valid JSON")
)

// Extraction is the result of running field extraction over one uploaded
// document. Fields holds the extracted key/value data once the extraction
// has completed; Error holds the failure reason when it has failed.
type Extraction struct {
	ID           uuid.UUID        `json:"id"`
	UserID       uuid.UUID        `json:"user_id"`
	DocumentName string           `json:"document_name"`
	Status       ExtractionStatus `json:"status"`
	Fields       json.RawMessage  `json:"fields,omitempty"`
	Error        string           `json:"error,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// NewExtraction creates a pending extraction for the given user and document.
func NewExtraction(userID uuid.UUID, documentName string) (*Extraction, error) {
	now := time.Now().UTC()
	e := &Extraction{
		ID:           uuid.New(),
		UserID:       userID,
		DocumentName: strings.TrimSpace(documentName),
		Status:       ExtractionStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks that the extraction holds consistent data.
func (e *Extraction) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyExtractionID
	}
	if e.UserID == uuid.Nil {
		return ErrEmptyUserID
	}
	if strings.TrimSpace(e.DocumentName) == "" {
		return ErrEmptyDocumentName
	}
	if len(e.DocumentName) > MaxDocumentNameLength {
		return ErrDocumentNameTooLong
	}
	if !e.Status.IsValid() {
		return ErrInvalidExtractionStatus
	}
	if len(e.Fields) > 0 && !json.Valid(e.Fields) {
		return ErrInvalidFields
	}
	return nil
}

// IsOwnedBy reports whether the extraction belongs to userID.
func (e *Extraction) IsOwnedBy(userID uuid.UUID) bool {
	return e.UserID == userID
}

// IsValid reports whether s is a known status.
func (s ExtractionStatus) IsValid() bool {
	switch s {
	case ExtractionStatusPending, ExtractionStatusProcessing,
		ExtractionStatusCompleted, ExtractionStatusFailed:
		return true
	default:
		return false
	}
}
