package audit

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	emailPattern = regexp.MustCompile(`[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?[0-9(][0-9 \t().\-]{6,}[0-9]`)
	phoneLabel   = regexp.MustCompile(`\b(?:phone|tel|mobile|cell|ph)\b`)
	yearPattern  = regexp.MustCompile(`(?:^|\D)(?:19|20)\d{2}(?:\D|$)`)
	numberToken  = regexp.MustCompile(`^\d+(?:[.,]\d+)*(?:k|m|x|\+)?$`)
)

// separators that may sit between a phone number and the rest of a contact line
const contactSeparators = "|•·,;:/"

func hasEmail(text string) bool {
	return emailPattern.MatchString(strings.ToLower(text))
}

// hasPhone looks for a run of 7 to 15 digits with common separators. Inside
// prose the run only counts when the line carries a phone label or the
// number has an international prefix, so "from 1 000 000 to 5 000 000" or an
// ISBN does not pass for contact details.
func hasPhone(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		labelled := phoneLabel.MatchString(strings.ToLower(line))
		for _, loc := range phonePattern.FindAllStringIndex(line, -1) {
			m := line[loc[0]:loc[1]]
			if !plausiblePhone(m) {
				continue
			}
			if labelled || strings.HasPrefix(m, "+") || standsAlone(line[:loc[0]], line[loc[1]:]) {
				return true
			}
		}
	}
	return false
}

func plausiblePhone(m string) bool {
	digits := 0
	for _, r := range m {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 7 || digits > 15 || looksLikeDateRange(m) {
		return false
	}
	return strings.HasPrefix(m, "+") || !thousandsGroups(m)
}

// thousandsGroups reports digit runs grouped like a large number: a lead group
// of one to three digits followed only by groups of exactly three.
func thousandsGroups(m string) bool {
	groups := strings.FieldsFunc(m, func(r rune) bool { return !unicode.IsDigit(r) })
	if len(groups) < 2 || len(groups[0]) > 3 {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}

// standsAlone reports whether the text around a match is empty or ends at a
// contact separator rather than running into words.
func standsAlone(before, after string) bool {
	before = strings.TrimSpace(before)
	after = strings.TrimSpace(after)
	okBefore := before == "" || strings.ContainsRune(contactSeparators, lastRune(before))
	okAfter := after == "" || strings.ContainsRune(contactSeparators, []rune(after)[0])
	return okBefore && okAfter
}

func lastRune(s string) rune {
	r := []rune(s)
	return r[len(r)-1]
}

func hasYear(text string) bool {
	return yearPattern.MatchString(text)
}

func looksLikeDateRange(s string) bool {
	fields := strings.FieldsFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if len(fields) != 2 {
		return false
	}
	return isYear(fields[0]) && isYear(fields[1])
}

// hasMeasurableResult reports whether text quantifies anything: a percentage,
// a currency amount, a multiplier or a plain count. Years and dates do not count.
func hasMeasurableResult(text string) bool {
	for _, raw := range strings.Fields(text) {
		tok := strings.Trim(raw, "()[],;:!?\"'")
		tok = strings.TrimRight(tok, ".")
		if tok == "" {
			continue
		}
		if strings.ContainsAny(tok, "%$€£¥") {
			if strings.IndexFunc(tok, unicode.IsDigit) >= 0 {
				return true
			}
			continue
		}
		if strings.ContainsAny(tok, "/-") {
			continue
		}
		if !numberToken.MatchString(tok) || isYear(tok) {
			continue
		}
		return true
	}
	return strings.Contains(text, " percent")
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1900 && n <= 2099
}
