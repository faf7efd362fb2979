// Package textcase provides the string transforms used to derive slugs,
// identifiers, and namespaces from user-entered names.
package textcase

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English, cases.NoLower)

// Slugify converts a free-form name into a lowercase hyphenated slug:
// spaces and underscores become hyphens, everything outside [a-z0-9-] is
// dropped, hyphen runs collapse, and leading/trailing hyphens are trimmed.
// Applying Slugify to its own output returns the input unchanged.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r == ' ' || r == '_' || r == '-':
			b.WriteByte('-')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	out := b.String()
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	return strings.Trim(out, "-")
}

// Camel removes every hyphen and underscore and uppercases the character
// that followed it. All other characters, including the first, are left
// untouched: "my-cool-tool" becomes "myCoolTool".
func Camel(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	upNext := false
	for _, r := range s {
		if r == '-' || r == '_' {
			upNext = true
			continue
		}
		if upNext {
			r = unicode.ToUpper(r)
			upNext = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Kebab inserts a hyphen before each uppercase letter that follows a
// lowercase letter or digit, then lowercases the result: "MyCoolTool"
// becomes "my-cool-tool".
func Kebab(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteByte('-')
		}
		b.WriteRune(r)
		prev = r
	}
	return strings.ToLower(b.String())
}

// Pascal splits on spaces, hyphens, and underscores, uppercases the first
// letter of each word without lowering the rest, and joins the words:
// "my cool-tool" becomes "MyCoolTool" and "XML parser" stays "XMLParser".
func Pascal(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	var b strings.Builder
	b.Grow(len(s))
	for _, w := range words {
		b.WriteString(titleCaser.String(w))
	}
	return b.String()
}

// Title splits on the same separators as Pascal and joins the title-cased
// words with single spaces: "acme-labs" becomes "Acme Labs".
func Title(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	for i, w := range words {
		words[i] = titleCaser.String(w)
	}
	return strings.Join(words, " ")
}

// Year returns the current year, used for license substitution.
func Year() string {
	return strconv.Itoa(time.Now().Year())
}
