// Package shared provides naming and namespace helpers used across
// multiple packages in the cody-schema codebase.
package shared

import (
	"strings"
	"unicode"
)

// SnakeCaseToCamelCase turns "user_id" into "userId". Empty segments from
// repeated underscores are dropped.
func SnakeCaseToCamelCase(value string) string {
	if value == "" {
		return value
	}
	parts := strings.Split(value, "_")
	var builder strings.Builder
	for _, part := range parts {
		builder.WriteString(UcFirst(part))
	}
	return LcFirst(builder.String())
}

// CamelCaseToTitle expands a camelCase identifier into capitalised,
// space separated words: "userId" becomes "User Id" and "HTMLParser"
// becomes "HTML Parser".
func CamelCaseToTitle(value string) string {
	runes := []rune(value)
	var builder strings.Builder
	for i, r := range runes {
		builder.WriteRune(r)
		if i+1 >= len(runes) {
			continue
		}
		next := runes[i+1]
		switch {
		case unicode.IsUpper(r) && unicode.IsUpper(next) && i+2 < len(runes) && unicode.IsLower(runes[i+2]):
			builder.WriteRune(' ')
		case !unicode.IsUpper(r) && unicode.IsUpper(next):
			builder.WriteRune(' ')
		case isASCIILetter(r) && !isASCIILetter(next):
			builder.WriteRune(' ')
		}
	}
	return UcFirst(builder.String())
}

// PropertyTitle derives a display title from a property key written in
// snake or camel case.
func PropertyTitle(property string) string {
	return CamelCaseToTitle(SnakeCaseToCamelCase(property))
}

// NodeNameToPascalCase converts a board element name such as
// "user profile" or "add-item" into "UserProfile" / "AddItem".
func NodeNameToPascalCase(name string) string {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	var builder strings.Builder
	for _, field := range fields {
		builder.WriteString(UcFirst(field))
	}
	return builder.String()
}

// UcFirst upper-cases the first rune.
func UcFirst(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// LcFirst lower-cases the first rune.
func LcFirst(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
