package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cody-schema/internal/types"
)

func TestParseDirective(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		wantKey   string
		wantValue types.Value
	}{
		{name: "string value", token: "format:email", wantKey: "format", wantValue: types.StringValue("email")},
		{name: "integer value", token: "maxLength:255", wantKey: "maxLength", wantValue: types.IntValue(255)},
		{name: "negative integer", token: "minimum:-3", wantKey: "minimum", wantValue: types.IntValue(-3)},
		{name: "float value", token: "maximum:2.5", wantKey: "maximum", wantValue: types.FloatValue(2.5)},
		{name: "true", token: "uniqueItems:true", wantKey: "uniqueItems", wantValue: types.BoolValue(true)},
		{name: "false", token: "deprecated:false", wantKey: "deprecated", wantValue: types.BoolValue(false)},
		{name: "leading zero stays string", token: "pattern:0123", wantKey: "pattern", wantValue: types.StringValue("0123")},
		{name: "trailing zero float stays string", token: "multipleOf:1.50", wantKey: "multipleOf", wantValue: types.StringValue("1.50")},
		{name: "capitalised bool stays string", token: "flag:True", wantKey: "flag", wantValue: types.StringValue("True")},
		{name: "empty value", token: "format:", wantKey: "format", wantValue: types.StringValue("")},
		{name: "ns alias", token: "ns:/Common", wantKey: NamespaceKeyword, wantValue: types.StringValue("/Common")},
		{name: "namespace key", token: "namespace:Common", wantKey: NamespaceKeyword, wantValue: types.StringValue("Common")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, err := ParseDirective(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, key)
			if diff := cmp.Diff(tt.wantValue, value); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseDirectiveMalformed(t *testing.T) {
	for _, token := range []string{"maxLength", "a:b:c", ":value", ""} {
		t.Run(token, func(t *testing.T) {
			_, _, err := ParseDirective(token)
			require.Error(t, err)
			assert.Equal(t, types.KindMalformedDirective, types.KindOf(err))
			message, details := types.Describe(err)
			assert.Contains(t, message, "can't parse shorthand validation")
			assert.Contains(t, details, "validationKey:value")
		})
	}
}
