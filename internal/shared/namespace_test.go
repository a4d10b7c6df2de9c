package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNamespace(t *testing.T) {
	tests := map[string]string{
		"":          "/",
		"/":         "/",
		"Model":     "/Model/",
		"/Model":    "/Model/",
		"Model/":    "/Model/",
		" /A/B/ ":   "/A/B/",
		"/A/B/Deep": "/A/B/Deep/",
	}
	for input, want := range tests {
		assert.Equal(t, want, NormalizeNamespace(input), input)
	}
}

func TestNamespaceHelpers(t *testing.T) {
	assert.True(t, IsRootNamespace("/Common/Address"))
	assert.False(t, IsRootNamespace("Address"))

	assert.Equal(t, "Address", RemoveNamespace("/Common/Address"))
	assert.Equal(t, "Address", RemoveNamespace("Address"))

	assert.Equal(t, "/User", AbsoluteName("User"))
	assert.Equal(t, "/User", AbsoluteName("/User"))

	assert.Equal(t, []string{"Model", "UserState"}, PathSegments("/Model/UserState"))
	assert.Equal(t, []string{"User"}, PathSegments("User"))
	assert.Nil(t, PathSegments("/"))
	assert.Nil(t, PathSegments(""))
}

func TestDefinitionName(t *testing.T) {
	tests := []struct {
		namespace string
		element   string
		want      string
	}{
		{namespace: "", element: "user profile", want: "/UserProfile"},
		{namespace: "/", element: "User", want: "/User"},
		{namespace: "Common", element: "address", want: "/Common/Address"},
		{namespace: "/Model/", element: "user state", want: "/Model/UserState"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefinitionName(tt.namespace, tt.element))
	}
}
