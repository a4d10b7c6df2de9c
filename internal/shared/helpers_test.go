package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCaseToCamelCase(t *testing.T) {
	tests := map[string]string{
		"":             "",
		"user":         "user",
		"user_id":      "userId",
		"home_address": "homeAddress",
		"a__b":         "aB",
		"Already":      "already",
		"alreadyCamel": "alreadyCamel",
	}
	for input, want := range tests {
		assert.Equal(t, want, SnakeCaseToCamelCase(input), input)
	}
}

func TestCamelCaseToTitle(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"user":       "User",
		"userId":     "User Id",
		"HTMLParser": "HTML Parser",
		"addressV2":  "Address V 2",
		"zipCode":    "Zip Code",
	}
	for input, want := range tests {
		assert.Equal(t, want, CamelCaseToTitle(input), input)
	}
}

func TestPropertyTitle(t *testing.T) {
	assert.Equal(t, "User Id", PropertyTitle("user_id"))
	assert.Equal(t, "First Name", PropertyTitle("firstName"))
}

func TestNodeNameToPascalCase(t *testing.T) {
	tests := map[string]string{
		"user":          "User",
		"user profile":  "UserProfile",
		"add-item":      "AddItem",
		"order_line":    "OrderLine",
		"  spaced  out": "SpacedOut",
		"UserState":     "UserState",
	}
	for input, want := range tests {
		assert.Equal(t, want, NodeNameToPascalCase(input), input)
	}
}

func TestCaseFirst(t *testing.T) {
	assert.Equal(t, "Abc", UcFirst("abc"))
	assert.Equal(t, "aBC", LcFirst("ABC"))
	assert.Equal(t, "", UcFirst(""))
	assert.Equal(t, "", LcFirst(""))
}
