package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func words(n int) string {
	base := []string{"python", "engineer", "built", "scalable", "services", "on", "aws", "with", "docker", "pipelines"}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, base[i%len(base)])
	}
	return strings.Join(out, " ")
}

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`},
		{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`},
		{"word/document.xml", `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`},
		{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`},
	}
	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			t.Fatalf("create %s: %v", f.name, err)
		}
		if _, err := w.Write([]byte(f.content)); err != nil {
			t.Fatalf("write %s: %v", f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func paragraph(text string) string {
	return `<w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

func TestExtractPlainText(t *testing.T) {
	text := "EXPERIENCE\n" + words(60)
	res, err := New(0).Extract(context.Background(), RawDocument{Data: []byte(text), FileName: "resume.txt"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Kind != KindText {
		t.Fatalf("expected text kind, got %s", res.Kind)
	}
	if res.Words != 61 {
		t.Fatalf("expected 61 words, got %d", res.Words)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", res.Warnings)
	}
}

func TestExtractDOCXCollectsTextAndLayoutWarnings(t *testing.T) {
	body := paragraph("Skills") +
		paragraph(words(55)) +
		`<w:tbl><w:tr><w:tc>` + paragraph("Kubernetes") + `</w:tc><w:tc>` + paragraph("Terraform") + `</w:tc></w:tr></w:tbl>` +
		`<w:p><w:r><w:drawing></w:drawing></w:r></w:p>`
	data := buildDocx(t, body)

	res, err := New(0).Extract(context.Background(), RawDocument{
		Data:         data,
		DeclaredMIME: "application/zip",
		FileName:     "resume.docx",
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Kind != KindDOCX {
		t.Fatalf("expected docx kind, got %s", res.Kind)
	}
	if !strings.HasPrefix(res.Text, "Skills\n") {
		t.Fatalf("expected paragraph break after heading, got %q", res.Text[:20])
	}
	if !strings.Contains(res.Text, "Kubernetes") || !strings.Contains(res.Text, "Terraform") {
		t.Fatalf("expected table cell text to be kept")
	}
	codes := map[string]bool{}
	for _, w := range res.Warnings {
		codes[w.Code] = true
	}
	if !codes[WarningTables] || !codes[WarningImages] {
		t.Fatalf("expected table and image warnings, got %v", res.Warnings)
	}
}

func TestExtractRejectsGenericZip(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = New(0).Extract(context.Background(), RawDocument{Data: buf.Bytes(), DeclaredMIME: "application/zip", FileName: "resume.zip"})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtractThirtyWordsIsEmpty(t *testing.T) {
	_, err := New(0).Extract(context.Background(), RawDocument{Data: []byte(words(30)), FileName: "resume.txt"})
	if !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestExtractNoBytesIsEmpty(t *testing.T) {
	_, err := New(0).Extract(context.Background(), RawDocument{FileName: "resume.pdf"})
	if !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestExtractCorruptPDF(t *testing.T) {
	data := []byte("%PDF-1.4\n1 0 obj << /Type /Catalog >>\nthis is not a real pdf body\n")
	_, err := New(0).Extract(context.Background(), RawDocument{Data: data, DeclaredMIME: "application/pdf", FileName: "resume.pdf"})
	if !errors.Is(err, ErrCorruptDocument) {
		t.Fatalf("expected ErrCorruptDocument, got %v", err)
	}
}

func TestExtractSniffedTypeBeatsDeclaredType(t *testing.T) {
	res, err := New(0).Extract(context.Background(), RawDocument{
		Data:         []byte(words(80)),
		DeclaredMIME: "application/pdf",
		FileName:     "resume.pdf",
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Kind != KindText {
		t.Fatalf("expected sniffed text kind, got %s", res.Kind)
	}
}

func TestExtractUnsupportedImage(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0x00, 0x10, 0x7f}, 64)...)
	_, err := New(0).Extract(context.Background(), RawDocument{Data: png, FileName: "resume.pdf"})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtractDeclaredDocThatIsNotOLE(t *testing.T) {
	junk := bytes.Repeat([]byte{0x00, 0x01, 0x02, 0x03, 0xfe}, 200)
	_, err := New(0).Extract(context.Background(), RawDocument{Data: junk, DeclaredMIME: "application/msword", FileName: "resume.doc"})
	if !errors.Is(err, ErrCorruptDocument) {
		t.Fatalf("expected ErrCorruptDocument, got %v", err)
	}
}

func TestExtractLatin1TextIsConverted(t *testing.T) {
	latin := []byte(words(60) + " caf")
	latin = append(latin, 0xe9)
	latin = append(latin, []byte(" r")...)
	latin = append(latin, 0xe9)
	latin = append(latin, []byte("sum")...)
	latin = append(latin, 0xe9)

	res, err := New(0).Extract(context.Background(), RawDocument{Data: latin, FileName: "resume.txt"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !utf8.ValidString(res.Text) {
		t.Fatalf("expected valid utf-8 output")
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Code != WarningEncoding {
		t.Fatalf("expected encoding warning, got %v", res.Warnings)
	}
}

func TestPrintableTextPrefersUTF16Runs(t *testing.T) {
	var stream []byte
	stream = append(stream, 0x00, 0x00, 0xff, 0x13)
	for _, r := range "Senior Data Engineer\rLed migration to Spark" {
		stream = append(stream, byte(r), 0x00)
	}
	stream = append(stream, 0x00, 0x00, 0x01)

	got := printableText(stream)
	if !strings.Contains(got, "Senior Data Engineer\n") || !strings.Contains(got, "Led migration to Spark") {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "empty", in: "", want: 0},
		{name: "punctuation only", in: "• - — |", want: 0},
		{name: "mixed", in: "Go, C++ and 5 years •", want: 5},
		{name: "newlines", in: "a\nb\tc", want: 3},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := CountWords(tt.in); got != tt.want {
				t.Fatalf("CountWords(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func resumeLines() []string {
	return []string{
		"Jane Doe",
		"jane.doe at example dot com",
		"Experience",
		"Senior Engineer at Acme Corp from 2019 to 2024",
		"Built Python services on AWS for payments teams",
		"Moved deployments to Docker and Kubernetes clusters",
		"Designed REST endpoints backed by PostgreSQL databases",
		"Education",
		"BSc Computer Science at State University in 2015",
		"Skills",
		"Python Go AWS Docker Kubernetes SQL Git Agile Terraform Linux",
		"Led a team of five engineers across three time zones",
	}
}

func TestExtractPDFReadsEveryLine(t *testing.T) {
	data := buildPDF(t, resumeLines(), false)
	res, err := New(0).Extract(context.Background(), RawDocument{Data: data, FileName: "resume.pdf"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Kind != KindPDF || res.Pages != 1 {
		t.Fatalf("expected one pdf page, got %s pages=%d", res.Kind, res.Pages)
	}
	for _, line := range resumeLines() {
		if !strings.Contains(res.Text, line) {
			t.Fatalf("missing line %q in %q", line, res.Text)
		}
	}
	if !strings.Contains(res.Text, "Experience\n") {
		t.Fatalf("expected line breaks between text lines")
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", res.Warnings)
	}
}

func TestExtractPDFWithImageWarns(t *testing.T) {
	data := buildPDF(t, resumeLines(), true)
	res, err := New(0).Extract(context.Background(), RawDocument{Data: data, DeclaredMIME: "application/pdf", FileName: "resume.pdf"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Code != WarningImages {
		t.Fatalf("expected %s, got %v", WarningImages, res.Warnings)
	}
}

func TestExtractDOCReadsWordDocumentStream(t *testing.T) {
	data := buildDOC(t, resumeLines())
	res, err := New(0).Extract(context.Background(), RawDocument{Data: data, DeclaredMIME: "application/msword", FileName: "resume.doc"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Kind != KindDOC {
		t.Fatalf("expected doc kind, got %s", res.Kind)
	}
	for _, line := range resumeLines() {
		if !strings.Contains(res.Text, line+"\n") && !strings.HasSuffix(res.Text, line) {
			t.Fatalf("missing paragraph %q in %q", line, res.Text)
		}
	}
}

func TestExtractOLEWithoutDocHint(t *testing.T) {
	data := buildDOC(t, resumeLines())
	_, err := New(0).Extract(context.Background(), RawDocument{Data: data, FileName: "resume.bin"})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
