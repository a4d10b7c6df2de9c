package app

import "cody-schema/internal/types"

type CompileRequest struct {
	// Input is shorthand text: a single shorthand string or a JSON/YAML
	// shorthand object.
	Input     []byte
	Namespace string
}

type CompileResult struct {
	Schema types.Fragment
}

type DefineRequest struct {
	DefinitionsPath string
	Documents       []string
	// OriginRoot, when set, makes recorded origins relative to it.
	OriginRoot string
}

type DefinedSchema struct {
	Name   string
	Origin string
}

type DefineResult struct {
	DefinitionsPath string
	Defined         []DefinedSchema
}

type DereferenceRequest struct {
	DefinitionsPath string
	RefsDir         string
	// Name selects a registered definition. When empty, Input is decoded
	// as a schema instead.
	Name      string
	Input     []byte
	Shorthand bool
	Namespace string
}

type DereferenceResult struct {
	Schema types.Fragment
}

type ClassifyRequest struct {
	DefinitionsPath string
	RefsDir         string
	Name            string
}

type ClassifyResult struct {
	Name    string
	Exists  bool
	IsArray bool
	IsState bool
}

type WatchRequest struct {
	Define DefineRequest
	// Roots are the watched directories. When empty they are derived from
	// the base directories of the document patterns.
	Roots []string
	// OnDefine receives the outcome of every define run.
	OnDefine func(DefineResult, error)
}
