package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

func extractPDF(data []byte) (Result, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("%w: pdf: %v", ErrCorruptDocument, err)
	}

	var (
		buf      strings.Builder
		warnings []Warning
		pages    int
	)
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pages++
		text, err := page.GetPlainText(nil)
		if err != nil {
			return Result{}, fmt.Errorf("%w: pdf page %d: %v", ErrCorruptDocument, i, err)
		}
		buf.WriteString(text)
		buf.WriteString("\n")

		if pageHasImages(page) {
			warnings = addWarning(warnings, WarningImages, "Images were found in the PDF; ATS parsers ignore text inside images.")
		}
	}

	return Result{Text: buf.String(), Pages: pages, Warnings: warnings}, nil
}

func pageHasImages(page pdf.Page) bool {
	xobjects := page.Resources().Key("XObject")
	if xobjects.IsNull() {
		return false
	}
	for _, name := range xobjects.Keys() {
		if xobjects.Key(name).Key("Subtype").Name() == "Image" {
			return true
		}
	}
	return false
}
