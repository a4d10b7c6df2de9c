package adapters

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"cody-schema/internal/core"
	"cody-schema/internal/ports"
	"cody-schema/internal/types"
)

// documentExtensions are the file types Discover keeps.
var documentExtensions = map[string]struct{}{
	".json": {},
	".yaml": {},
	".yml":  {},
}

// DocumentFileAdapter reads board element metadata documents from JSON or
// YAML files. A document looks like
//
//	name: User Profile
//	ns: /Model
//	shorthand: true
//	schema:
//	  userId: string|format:uuid
//	  nickname?: string
type DocumentFileAdapter struct{}

func NewDocumentFileAdapter() DocumentFileAdapter {
	return DocumentFileAdapter{}
}

// Discover expands doublestar patterns such as "boards/**/*.yaml".
func (a DocumentFileAdapter) Discover(ctx context.Context, patterns []string) ([]string, error) {
	seen := map[string]struct{}{}
	var locations []string
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, types.WrapSchemaError(
				types.KindIO,
				errbuilder.CodeInvalidArgument,
				fmt.Sprintf("invalid document pattern %q", pattern),
				err,
			)
		}
		for _, match := range matches {
			if _, ok := documentExtensions[strings.ToLower(filepath.Ext(match))]; !ok {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			locations = append(locations, match)
		}
	}
	sort.Strings(locations)
	log.Debug().Strs("patterns", patterns).Int("documents", len(locations)).Msg("documents discovered")
	return locations, nil
}

func (a DocumentFileAdapter) LoadDocument(ctx context.Context, location string) (types.SchemaDocument, error) {
	data, err := os.ReadFile(location)
	if err != nil {
		code := errbuilder.CodeInternal
		if errors.Is(err, fs.ErrNotExist) {
			code = errbuilder.CodeNotFound
		}
		return types.SchemaDocument{}, types.WrapSchemaError(
			types.KindIO,
			code,
			fmt.Sprintf("failed to read document %s", location),
			err,
		)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		message, details := types.Describe(err)
		return types.SchemaDocument{}, types.NewSchemaError(
			types.KindOf(err),
			fmt.Sprintf("document %s: %s", location, message),
			details,
		)
	}
	if doc.Name == "" {
		base := filepath.Base(location)
		doc.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	doc.Origin = location
	return doc, nil
}

// ParseDocument decodes document metadata. The namespace is taken from
// "ns", then "namespace". A missing "shorthand" flag means the schema is
// shorthand.
func ParseDocument(data []byte) (types.SchemaDocument, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return types.SchemaDocument{}, types.NewSchemaError(
			types.KindMalformedShorthand,
			"document is neither valid JSON nor YAML",
			err.Error(),
		)
	}
	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return types.SchemaDocument{}, types.NewSchemaError(
			types.KindMalformedShorthand,
			"document metadata must be an object",
			"expected keys name, ns, shorthand and schema",
		)
	}

	doc := types.SchemaDocument{Shorthand: true}
	var (
		schema    *yaml.Node
		ns        string
		namespace string
	)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "name":
			doc.Name = value.Value
		case "ns":
			ns = value.Value
		case "namespace":
			namespace = value.Value
		case "shorthand":
			var flag bool
			if value.Kind != yaml.ScalarNode || value.Decode(&flag) != nil {
				return types.SchemaDocument{}, types.NewSchemaError(
					types.KindMalformedShorthand,
					"document metadata key \"shorthand\" must be a boolean",
					"got "+value.Value,
				)
			}
			doc.Shorthand = flag
		case "schema":
			schema = value
		}
	}
	doc.Namespace = detectNamespace(ns, namespace)

	if schema == nil {
		return types.SchemaDocument{}, types.NewSchemaError(
			types.KindMalformedShorthand,
			"document has no schema",
			"add a \"schema\" key with a shorthand or JSON schema",
		)
	}
	if doc.Shorthand {
		doc.Schema = shorthandFromNode(schema)
		return doc, nil
	}
	literal, err := core.DecodeFragmentNode(schema)
	if err != nil {
		return types.SchemaDocument{}, err
	}
	doc.Literal = literal
	return doc, nil
}

// ParseShorthand decodes standalone shorthand input. A bare scalar such
// as "string|format:email" becomes a shorthand string, a mapping becomes
// a shorthand object.
func (a DocumentFileAdapter) ParseShorthand(data []byte) (types.ShorthandValue, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, types.NewSchemaError(
			types.KindMalformedShorthand,
			"shorthand is neither valid JSON nor YAML",
			err.Error(),
		)
	}
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		return shorthandFromNode(root.Content[0]), nil
	}
	return types.ShorthandString(""), nil
}

func detectNamespace(ns string, namespace string) string {
	switch {
	case ns != "":
		return ns
	case namespace != "":
		return namespace
	default:
		return "/"
	}
}

// shorthandFromNode keeps mapping order so properties compile in the
// order they were written.
func shorthandFromNode(node *yaml.Node) types.ShorthandValue {
	switch node.Kind {
	case yaml.MappingNode:
		obj := types.NewShorthandObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			obj.Fields = append(obj.Fields, types.Field(node.Content[i].Value, shorthandFromNode(node.Content[i+1])))
		}
		return obj
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!str", "":
			return types.ShorthandString(node.Value)
		case "!!int", "!!float":
			return types.ShorthandLiteral{Type: "number", Text: node.Value}
		case "!!bool":
			return types.ShorthandLiteral{Type: "boolean", Text: node.Value}
		case "!!null":
			return types.ShorthandLiteral{Type: "null", Text: "null"}
		default:
			return types.ShorthandString(node.Value)
		}
	case yaml.SequenceNode:
		return types.ShorthandLiteral{Type: "array", Text: fmt.Sprintf("[%d items]", len(node.Content))}
	case yaml.AliasNode:
		if node.Alias != nil {
			return shorthandFromNode(node.Alias)
		}
	}
	return types.ShorthandLiteral{Type: "null", Text: "null"}
}

var _ ports.DocumentSourcePort = DocumentFileAdapter{}
