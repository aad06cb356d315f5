package extract

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xef, 0xbb, 0xbf}
	bomUTF16LE = []byte{0xff, 0xfe}
	bomUTF16BE = []byte{0xfe, 0xff}
)

func extractPlainText(data []byte) (Result, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return Result{Text: string(data[len(bomUTF8):])}, nil
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		text, err := decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), data)
		if err != nil {
			return Result{}, fmt.Errorf("%w: utf-16 text: %v", ErrCorruptDocument, err)
		}
		return Result{Text: text}, nil
	case utf8.Valid(data):
		return Result{Text: string(data)}, nil
	}

	charset, enc := detectCharset(data)
	text, err := decodeWith(enc, data)
	if err != nil {
		return Result{}, fmt.Errorf("%w: decode %s text: %v", ErrCorruptDocument, charset, err)
	}
	return Result{
		Text: text,
		Warnings: []Warning{{
			Code:    WarningEncoding,
			Message: fmt.Sprintf("Text was converted from %s; save resumes as UTF-8 to avoid garbled characters.", charset),
		}},
	}, nil
}

// detectCharset guesses the encoding of non-UTF-8 text, defaulting to Windows-1252.
func detectCharset(data []byte) (string, encoding.Encoding) {
	best, err := chardet.NewTextDetector().DetectBest(data)
	if err == nil && best != nil && best.Charset != "" {
		if enc, lerr := htmlindex.Get(best.Charset); lerr == nil && !strings.HasPrefix(strings.ToLower(best.Charset), "utf-8") {
			return best.Charset, enc
		}
	}
	return "windows-1252", charmap.Windows1252
}

func decodeWith(enc encoding.Encoding, data []byte) (string, error) {
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
