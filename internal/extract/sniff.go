package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeDOC  = "application/msword"
	mimeOLE  = "application/x-ole-storage"
	mimeZIP  = "application/zip"
	mimeText = "text/plain"

	mimeOctetStream = "application/octet-stream"
)

// detectKind trusts the bytes over the declared type. The declared MIME type and
// file extension only settle containers the sniffer cannot classify on its own.
func detectKind(doc RawDocument) (Kind, error) {
	declared := declaredKind(doc.DeclaredMIME, doc.FileName)
	mt := mimetype.Detect(doc.Data)

	switch {
	case mt.Is(mimePDF):
		return KindPDF, nil
	case mt.Is(mimeDOCX):
		return KindDOCX, nil
	case mt.Is(mimeDOC):
		return KindDOC, nil
	case mt.Is(mimeOLE):
		if declared == KindDOC {
			return KindDOC, nil
		}
		return "", fmt.Errorf("%w: ole container is not a word document", ErrUnsupportedFormat)
	case mt.Is(mimeZIP):
		if mapOOXMLFromZip(doc.Data) == mimeDOCX {
			return KindDOCX, nil
		}
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeZIP)
	case mt.Is(mimeText):
		return KindText, nil
	}

	// Unrecognised binary: let the declared parser decide whether it is merely damaged.
	if mt.Is(mimeOctetStream) {
		switch declared {
		case KindPDF, KindDOCX, KindDOC:
			return declared, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mt.String())
}

func declaredKind(mimeType, fileName string) Kind {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch clean {
	case mimePDF:
		return KindPDF
	case mimeDOCX:
		return KindDOCX
	case mimeDOC:
		return KindDOC
	case mimeText:
		return KindText
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return KindPDF
	case ".docx":
		return KindDOCX
	case ".doc":
		return KindDOC
	case ".txt":
		return KindText
	}
	return ""
}

func mapOOXMLFromZip(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		switch name {
		case "word/document.xml":
			return mimeDOCX
		case "xl/workbook.xml":
			return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		case "ppt/presentation.xml":
			return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
		}
	}
	return ""
}
