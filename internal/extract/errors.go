package extract

import "errors"

var (
	// ErrUnsupportedFormat is returned when the payload is not a PDF, DOC, DOCX or plain text document.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrCorruptDocument is returned when a recognised format fails to parse.
	ErrCorruptDocument = errors.New("corrupt document")
	// ErrEmptyDocument is returned when too little text could be extracted.
	ErrEmptyDocument = errors.New("empty document")
)
