package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaErrorCodes(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want errbuilder.ErrCode
	}{
		{kind: KindMalformedShorthand, want: errbuilder.CodeInvalidArgument},
		{kind: KindMalformedDirective, want: errbuilder.CodeInvalidArgument},
		{kind: KindConflictingDefinition, want: errbuilder.CodeAlreadyExists},
		{kind: KindUnresolvedReference, want: errbuilder.CodeNotFound},
		{kind: KindCyclicReference, want: errbuilder.CodeFailedPrecondition},
		{kind: KindIO, want: errbuilder.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			err := NewSchemaError(tt.kind, "boom", "")
			assert.Equal(t, tt.want, err.Code())
		})
	}
}

func TestSchemaErrorDescribe(t *testing.T) {
	err := NewSchemaError(KindUnresolvedReference, "missing ref", "#/definitions/X")
	assert.Equal(t, "missing ref: #/definitions/X", err.Error())

	wrapped := fmt.Errorf("define: %w", err)
	assert.Equal(t, KindUnresolvedReference, KindOf(wrapped))
	message, details := Describe(wrapped)
	assert.Equal(t, "missing ref", message)
	assert.Equal(t, "#/definitions/X", details)

	message, details = Describe(errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg("plain builder"))
	assert.Equal(t, "plain builder", message)
	assert.Empty(t, details)

	message, _ = Describe(errors.New("plain"))
	assert.Equal(t, "plain", message)
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
}

func TestWrapSchemaErrorKeepsCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := WrapSchemaError(KindIO, errbuilder.CodeNotFound, "cannot read", cause)
	require.Error(t, err)
	assert.Equal(t, "permission denied", err.Details)
	assert.Equal(t, errbuilder.CodeNotFound, err.Code())
	assert.Equal(t, "cannot read: permission denied", err.Error())
}
