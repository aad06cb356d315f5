package extract

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// DefaultMinWords is the fewest words a document may yield before it is rejected as empty.
const DefaultMinWords = 50

// Kind identifies the extraction strategy used for a document.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindDOC  Kind = "doc"
	KindText Kind = "text"
)

// Warning codes reported alongside extracted text.
const (
	WarningTables    = "TABLES_DETECTED"
	WarningImages    = "IMAGES_DETECTED"
	WarningTextBoxes = "TEXT_BOXES_DETECTED"
	WarningEncoding  = "ENCODING_CONVERTED"
)

// RawDocument is an uploaded file as received from the host.
type RawDocument struct {
	Data         []byte
	DeclaredMIME string
	FileName     string
}

// Size returns the payload size in bytes.
func (d RawDocument) Size() int64 {
	return int64(len(d.Data))
}

// Warning describes a non-fatal observation made while extracting text.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result is the plain-text rendition of a document.
type Result struct {
	Text     string
	Kind     Kind
	Pages    int
	Words    int
	Warnings []Warning
}

// Extractor converts raw documents into plain text.
type Extractor struct {
	minWords int
}

// New returns an Extractor rejecting documents with fewer than minWords words.
func New(minWords int) *Extractor {
	if minWords <= 0 {
		minWords = DefaultMinWords
	}
	return &Extractor{minWords: minWords}
}

// MinWords reports the empty-document threshold.
func (e *Extractor) MinWords() int {
	return e.minWords
}

// Extract sniffs the payload, runs the matching strategy and validates the yield.
func (e *Extractor) Extract(ctx context.Context, doc RawDocument) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if len(doc.Data) == 0 {
		return Result{}, fmt.Errorf("%w: no bytes received", ErrEmptyDocument)
	}

	kind, err := detectKind(doc)
	if err != nil {
		return Result{}, err
	}

	var res Result
	err = safeParse(kind, func() error {
		var perr error
		switch kind {
		case KindPDF:
			res, perr = extractPDF(doc.Data)
		case KindDOCX:
			res, perr = extractDOCX(doc.Data)
		case KindDOC:
			res, perr = extractDOC(doc.Data)
		case KindText:
			res, perr = extractPlainText(doc.Data)
		default:
			perr = fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind)
		}
		return perr
	})
	if err != nil {
		return Result{}, err
	}

	res.Kind = kind
	res.Text = strings.TrimSpace(res.Text)
	res.Words = CountWords(res.Text)
	if res.Words < e.minWords {
		return Result{}, fmt.Errorf("%w: extracted %d words, need at least %d", ErrEmptyDocument, res.Words, e.minWords)
	}
	return res, nil
}

// safeParse converts parser panics into ErrCorruptDocument. ledongthuc/pdf and
// the zip based readers panic on some truncated inputs.
func safeParse(kind Kind, fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %s parser panic: %v", ErrCorruptDocument, kind, rec)
		}
	}()
	return fn()
}

// CountWords counts whitespace separated tokens holding at least one letter or digit.
func CountWords(text string) int {
	n := 0
	for _, field := range strings.Fields(text) {
		for _, r := range field {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				n++
				break
			}
		}
	}
	return n
}

func addWarning(warnings []Warning, code, message string) []Warning {
	for _, w := range warnings {
		if w.Code == code {
			return warnings
		}
	}
	return append(warnings, Warning{Code: code, Message: message})
}
