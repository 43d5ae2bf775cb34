// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"
	"unicode"
)

// excludedFields are record fields that never appear in rendered output,
// at any nesting depth. They hold the bulk prose (description and claims
// text) that downstream chunking ingests through other channels.
var excludedFields = map[string]struct{}{
	"full_description": {},
	"claims":           {},
	"background":       {},
}

// Excluded reports whether the named field is stripped from output.
func Excluded(key string) bool {
	_, ok := excludedFields[key]
	return ok
}

const (
	// maxHeadingLevel caps heading depth at Markdown's H6.
	maxHeadingLevel = 6

	// indentUnit is the per-level indentation for nested sections.
	indentUnit = "    "
)

// Markdown renders a decoded record as heading-structured Markdown.
// Nested objects and arrays become sections with heading depth following
// nesting depth; scalar fields become bold-labeled lines. The blank-line
// placement is part of the output contract: downstream consumers compare
// renderings byte for byte.
func Markdown(v *Value) string {
	var b strings.Builder
	writeValue(&b, v, 0)
	return b.String()
}

func writeValue(b *strings.Builder, v *Value, depth int) {
	indent := strings.Repeat(indentUnit, depth)

	switch v.Kind {
	case KindObject:
		for _, m := range v.Members {
			if Excluded(m.Key) {
				continue
			}

			level := depth + 1
			if level > maxHeadingLevel {
				level = maxHeadingLevel
			}

			// Separator line before every top-level field and before
			// nested container sections.
			if depth == 0 || m.Value.IsContainer() {
				b.WriteString("\n")
			}

			if m.Value.IsContainer() {
				fmt.Fprintf(b, "%s%s %s\n", indent, strings.Repeat("#", level), headingLabel(m.Key))
				writeValue(b, m.Value, depth+1)
			} else {
				fmt.Fprintf(b, "%s**%s:** %s\n", indent, headingLabel(m.Key), m.Value.Text())
			}
		}

	case KindArray:
		if depth > 0 {
			b.WriteString("\n")
		}
		for _, el := range v.Elems {
			b.WriteString(indent)
			b.WriteString("- ")
			if el.IsContainer() {
				writeValue(b, el, depth+1)
			} else {
				b.WriteString(el.Text())
				b.WriteString("\n")
			}
		}

	default:
		// Bare scalar at the top level.
		b.WriteString(v.Text())
		b.WriteString("\n")
	}
}

// headingLabel turns a record key into a human-readable label: underscores
// become spaces and each word is title-cased ("patent_number" becomes
// "Patent Number").
func headingLabel(key string) string {
	s := strings.ReplaceAll(key, "_", " ")

	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
