package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

type docxFeatures struct {
	tables    int
	images    int
	textBoxes int
}

func extractDOCX(data []byte) (Result, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("%w: docx: %v", ErrCorruptDocument, err)
	}
	defer doc.Close()

	text, features, err := walkDocxXML(doc.Editable().GetContent())
	if err != nil {
		return Result{}, fmt.Errorf("%w: docx xml: %v", ErrCorruptDocument, err)
	}

	var warnings []Warning
	if features.tables > 0 {
		warnings = addWarning(warnings, WarningTables, fmt.Sprintf("%d table(s) found; many ATS parsers scramble table cells.", features.tables))
	}
	if features.images > 0 {
		warnings = addWarning(warnings, WarningImages, fmt.Sprintf("%d image(s) or drawing(s) found; ATS parsers ignore their content.", features.images))
	}
	if features.textBoxes > 0 {
		warnings = addWarning(warnings, WarningTextBoxes, fmt.Sprintf("%d text box(es) found; text boxes are often skipped by ATS parsers.", features.textBoxes))
	}
	return Result{Text: text, Warnings: warnings}, nil
}

// walkDocxXML collects w:t text nodes from document.xml, turning paragraph,
// break and tab elements into whitespace, and counts layout elements.
func walkDocxXML(raw string) (string, docxFeatures, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var (
		buf      strings.Builder
		features docxFeatures
		inText   bool
	)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", features, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				buf.WriteByte('\t')
			case "br", "cr":
				buf.WriteByte('\n')
			case "tbl":
				features.tables++
			case "drawing", "pict":
				features.images++
			case "txbxContent":
				features.textBoxes++
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				buf.WriteByte('\n')
			case "tc":
				buf.WriteByte('\t')
			}
		case xml.CharData:
			if inText {
				buf.Write(t)
			}
		}
	}
	return strings.TrimSpace(buf.String()), features, nil
}
