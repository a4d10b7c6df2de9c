package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"cody-schema/internal/types"
)

// NamespaceKeyword is the directive key that overrides the namespace of a
// reference. The short form "ns" is rewritten to it.
const NamespaceKeyword = "namespace"

const namespaceShortKey = "ns"

// ParseDirective parses a single "key:value" validation token. The value
// is coerced to a boolean, an integer or a float when it reads back
// unchanged as one, and is kept as a string otherwise.
func ParseDirective(token string) (string, types.Value, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 2 || parts[0] == "" {
		return "", types.Value{}, types.NewSchemaError(
			types.KindMalformedDirective,
			fmt.Sprintf("can't parse shorthand validation %q", token),
			`expected format "validationKey:value"`,
		)
	}
	key, value := parts[0], parts[1]

	switch value {
	case "true":
		return key, types.BoolValue(true), nil
	case "false":
		return key, types.BoolValue(false), nil
	}
	if i, err := strconv.ParseInt(value, 10, 64); err == nil && strconv.FormatInt(i, 10) == value {
		return key, types.IntValue(i), nil
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) &&
		strconv.FormatFloat(f, 'f', -1, 64) == value {
		return key, types.FloatValue(f), nil
	}
	if key == namespaceShortKey {
		return NamespaceKeyword, types.StringValue(value), nil
	}
	return key, types.StringValue(value), nil
}
