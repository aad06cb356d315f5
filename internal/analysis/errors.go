package analysis

import (
	"errors"
	"net/http"

	"ats-checker/internal/extract"
	"ats-checker/internal/shared/storage/object"
)

var (
	ErrDocumentTooLarge    = errors.New("document too large")
	ErrInvalidFileType     = errors.New("invalid file type")
	ErrStorageUnconfigured = errors.New("object storage not configured")
)

const (
	ErrorCodeValidation         = "VALIDATION_ERROR"
	ErrorCodeInvalidFileType    = "INVALID_FILE_TYPE"
	ErrorCodeFileTooLarge       = "FILE_TOO_LARGE"
	ErrorCodeUnsupportedFormat  = "UNSUPPORTED_FORMAT"
	ErrorCodeCorruptDocument    = "CORRUPT_DOCUMENT"
	ErrorCodeEmptyDocument      = "EMPTY_DOCUMENT"
	ErrorCodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	ErrorCodeNotFound           = "NOT_FOUND"
	ErrorCodeStorage            = "STORAGE_ERROR"
	ErrorCodeInternal           = "INTERNAL_ERROR"
)

// Classify maps an analysis error to its HTTP status, error code and a
// message safe to show to clients.
func Classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrDocumentTooLarge):
		return http.StatusRequestEntityTooLarge, ErrorCodeFileTooLarge, "File exceeds the maximum upload size."
	case errors.Is(err, ErrInvalidFileType):
		return http.StatusBadRequest, ErrorCodeInvalidFileType, "Only PDF, DOC and DOCX files are accepted."
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType, ErrorCodeUnsupportedFormat, "Unsupported file format. Upload a PDF, DOC or DOCX resume."
	case errors.Is(err, extract.ErrCorruptDocument):
		return http.StatusUnprocessableEntity, ErrorCodeCorruptDocument, "The file could not be read. It may be damaged or password protected."
	case errors.Is(err, extract.ErrEmptyDocument):
		return http.StatusUnprocessableEntity, ErrorCodeEmptyDocument, "Not enough text could be extracted from the file. Scanned or image-only resumes are not supported."
	case errors.Is(err, ErrStorageUnconfigured):
		return http.StatusServiceUnavailable, ErrorCodeStorageUnavailable, "Object storage is not configured."
	case errors.Is(err, object.ErrNotFound):
		return http.StatusNotFound, ErrorCodeNotFound, "Document not found."
	case errors.Is(err, object.ErrInvalidKey):
		return http.StatusBadRequest, ErrorCodeValidation, "Invalid storage key."
	default:
		return http.StatusInternalServerError, ErrorCodeInternal, "Internal server error"
	}
}
