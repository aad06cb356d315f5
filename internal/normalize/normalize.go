// Package normalize cleans extracted resume text and splits it into sections.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"ats-checker/internal/extract"
)

// glyphs removed wherever they appear.
var bulletGlyphs = map[rune]bool{
	'•': true, '◦': true, '▪': true, '■': true, '●': true, '‣': true, '⁃': true,
	'·': true, '➢': true, '➤': true, '►': true, '✓': true, '✔': true, '❖': true,
	'◆': true, '○': true, '□': true, '▫': true,
}

// markers removed only at the start of a line.
var leadingMarkers = "-*–—>"

// Normalize cleans each line, detects section headers on the cased text and
// returns the lowercased document split into sections.
func Normalize(res extract.Result) Document {
	fold := newFold()

	var (
		all      []string
		sections []Section
		index    = map[string]int{}
		current  = -1
		headers  int
	)

	appendTo := func(idx int, line string) {
		if sections[idx].Text == "" {
			sections[idx].Text = line
			return
		}
		sections[idx].Text += "\n" + line
	}

	for _, raw := range splitLines(res.Text) {
		line := cleanLine(fold, raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		all = append(all, lower)

		if name, rest, ok := detectHeader(line); ok {
			headers++
			idx, seen := index[name]
			if !seen {
				sections = append(sections, Section{Name: name, Header: line})
				idx = len(sections) - 1
				index[name] = idx
			}
			current = idx
			if rest != "" {
				appendTo(current, strings.ToLower(rest))
			}
			continue
		}

		if current < 0 {
			sections = append(sections, Section{Name: SectionPreamble})
			current = len(sections) - 1
			index[SectionPreamble] = current
		}
		appendTo(current, lower)
	}

	text := strings.Join(all, "\n")
	doc := Document{
		Text:      text,
		Words:     extract.CountWords(text),
		Kind:      res.Kind,
		Warnings:  append([]extract.Warning(nil), res.Warnings...),
		Segmented: headers > 0,
		Sections:  sections,
	}
	if !doc.Segmented {
		doc.Sections = []Section{{Name: SectionUnsegmented, Text: text}}
	}
	return doc
}

// newFold returns a fresh transformer; transformers carry state and are not
// shared between calls.
func newFold() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// cleanLine folds compatibility forms and diacritics, drops control, format,
// private-use and bullet runes, strips list markers and collapses whitespace.
// Case is preserved so header detection can look at it.
func cleanLine(fold transform.Transformer, raw string) string {
	folded, _, err := transform.String(fold, raw)
	if err != nil {
		folded = raw
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r == '\t':
			b.WriteByte(' ')
		case unicode.IsControl(r), unicode.In(r, unicode.Cf, unicode.Co), r == unicode.ReplacementChar:
			b.WriteByte(' ')
		case bulletGlyphs[r]:
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}

	line := strings.TrimSpace(b.String())
	for line != "" && strings.ContainsRune(leadingMarkers, []rune(line)[0]) {
		line = strings.TrimSpace(strings.TrimLeft(line, leadingMarkers))
	}
	return strings.Join(strings.Fields(line), " ")
}
