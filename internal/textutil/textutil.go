// Package textutil holds small text predicates shared by the attestation and
// canonicalization passes.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// WholeWordContains reports a case-insensitive whole-word occurrence of
// phrase in text: the characters adjacent to the match must not be letters
// or digits, so "Goa" does not match inside "goal".
func WholeWordContains(text, phrase string) bool {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return false
	}
	lowerText := strings.ToLower(text)
	lowerPhrase := strings.ToLower(phrase)

	for from := 0; ; {
		i := strings.Index(lowerText[from:], lowerPhrase)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(lowerPhrase)
		if boundaryBefore(lowerText, start) && boundaryAfter(lowerText, end) {
			return true
		}
		from = start + 1
	}
}

// ContainsAnyWord reports whether any of the phrases occurs whole-word in
// text.
func ContainsAnyWord(text string, phrases []string) bool {
	for _, p := range phrases {
		if WholeWordContains(text, p) {
			return true
		}
	}
	return false
}

// TitleCase converts an all-caps multi-word name to title case ("TATA
// MOTORS" to "Tata Motors"). Single tokens and mixed-case names are returned
// unchanged so acronyms like "TVS" survive.
func TitleCase(name string) string {
	if !strings.Contains(name, " ") {
		return name
	}
	for _, r := range name {
		if unicode.IsLower(r) {
			return name
		}
	}
	return titleCaser.String(strings.ToLower(name))
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
