package shared

import "strings"

// NormalizeNamespace returns ns in its canonical "/a/b/" form. The empty
// namespace is the root, "/".
func NormalizeNamespace(ns string) string {
	ns = strings.TrimSpace(ns)
	if ns == "" {
		return "/"
	}
	if !strings.HasPrefix(ns, "/") {
		ns = "/" + ns
	}
	if !strings.HasSuffix(ns, "/") {
		ns += "/"
	}
	return ns
}

// IsRootNamespace reports whether ref is anchored at the root namespace.
func IsRootNamespace(ref string) bool {
	return strings.HasPrefix(ref, "/")
}

// RemoveNamespace returns the last path segment of ref.
func RemoveNamespace(ref string) string {
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}

// DefinitionName builds the absolute definition name of a board element:
// the PascalCased element name prefixed with its namespace.
//
//	DefinitionName("", "user profile")        == "/UserProfile"
//	DefinitionName("Common", "address")       == "/Common/Address"
//	DefinitionName("/Model/", "user state")   == "/Model/UserState"
func DefinitionName(namespace string, elementName string) string {
	return NormalizeNamespace(namespace) + NodeNameToPascalCase(elementName)
}

// AbsoluteName normalises a definition name to its leading-slash form.
func AbsoluteName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "/") {
		return name
	}
	return "/" + name
}

// PathSegments splits a definition path on "/" after dropping the leading
// slash. It returns nil for an empty path.
func PathSegments(path string) []string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
