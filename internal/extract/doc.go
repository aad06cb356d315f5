package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/richardlehane/mscfb"
)

const minRunLength = 4

// extractDOC reads the WordDocument stream of a Word 97-2003 file and keeps
// the printable text runs found in it. Containers without that stream are
// scanned whole.
func extractDOC(data []byte) (Result, error) {
	reader, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("%w: doc container: %v", ErrCorruptDocument, err)
	}

	var stream []byte
	for entry, nerr := reader.Next(); nerr == nil; entry, nerr = reader.Next() {
		if entry.Name != "WordDocument" {
			continue
		}
		stream, err = io.ReadAll(entry)
		if err != nil {
			return Result{}, fmt.Errorf("%w: doc stream: %v", ErrCorruptDocument, err)
		}
		break
	}
	if stream == nil {
		stream = data
	}

	return Result{Text: printableText(stream)}, nil
}

// printableText decodes the stream both as UTF-16LE and as 8-bit text and keeps
// whichever rendition yields more letters. Word stores text in either form
// depending on the characters used.
func printableText(stream []byte) string {
	wide := utf16Runs(stream)
	narrow := byteRuns(stream)
	if letterCount(wide) >= letterCount(narrow) {
		return wide
	}
	return narrow
}

func utf16Runs(stream []byte) string {
	var (
		out strings.Builder
		run []rune
	)
	flush := func() {
		if len(run) >= minRunLength {
			out.WriteString(string(run))
			out.WriteByte('\n')
		}
		run = run[:0]
	}
	for i := 0; i+1 < len(stream); i += 2 {
		r := rune(stream[i]) | rune(stream[i+1])<<8
		if r == '\r' || r == 0x0b {
			flush()
			continue
		}
		if isPrintable(r) {
			run = append(run, r)
			continue
		}
		flush()
	}
	flush()
	return out.String()
}

func byteRuns(stream []byte) string {
	var (
		out strings.Builder
		run []byte
	)
	flush := func() {
		if len(run) >= minRunLength {
			out.Write(run)
			out.WriteByte('\n')
		}
		run = run[:0]
	}
	for _, b := range stream {
		if b == '\r' || b == 0x0b {
			flush()
			continue
		}
		if b == '\t' || (b >= 0x20 && b < 0x7f) {
			run = append(run, b)
			continue
		}
		flush()
	}
	flush()
	return out.String()
}

func isPrintable(r rune) bool {
	switch {
	case r == '\t':
		return true
	case r >= 0x20 && r < 0x7f:
		return true
	case r >= 0xa0 && r < 0x2000:
		return true
	case r >= 0x2010 && r <= 0x2027:
		return true
	}
	return false
}

func letterCount(s string) int {
	n := 0
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			n++
		}
	}
	return n
}
