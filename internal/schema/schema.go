// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package schema generates a JSON Schema from a tagged Go struct.
// Property names come from yaml tags, descriptions from docdesc tags and
// required properties from validate:"required".
package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"
)

// Draft is the JSON Schema dialect of generated documents.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Generator builds JSON Schema documents.
type Generator struct {
	// Title and Description are set on the root schema.
	Title       string
	Description string
}

// NewGenerator creates a new Generator.
func NewGenerator(title, description string) *Generator {
	return &Generator{Title: title, Description: description}
}

// Generate returns the schema of def, which must be a struct or a pointer to one.
func (g *Generator) Generate(def any) (map[string]any, error) {
	t := reflect.TypeOf(def)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct type, got %v", t)
	}

	root := g.object(t)
	root["$schema"] = Draft
	root["title"] = g.Title

	if g.Description != "" {
		root["description"] = g.Description
	}

	return root, nil
}

// WriteJSONSchema writes the indented schema of def to w.
func (g *Generator) WriteJSONSchema(w io.Writer, def any) error {
	s, err := g.Generate(def)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	_, err = w.Write(append(b, '\n'))

	return err
}

func (g *Generator) object(t reflect.Type) map[string]any {
	properties := make(map[string]any)
	required := []string{}

	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := fieldName(field)
		if name == "" {
			continue
		}

		prop := g.property(field.Type)
		if desc := field.Tag.Get("docdesc"); desc != "" {
			prop["description"] = desc
		}

		properties[name] = prop

		if isRequired(field) {
			required = append(required, name)
		}
	}

	slices.Sort(required)

	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

func (g *Generator) property(t reflect.Type) map[string]any {
	switch t.Kind() {
	case reflect.Ptr:
		return g.property(t.Elem())
	case reflect.Struct:
		return g.object(t)
	case reflect.Slice, reflect.Array:
		return map[string]any{"type": "array", "items": g.property(t.Elem())}
	case reflect.Map:
		return map[string]any{"type": "object", "additionalProperties": g.property(t.Elem())}
	default:
		return map[string]any{"type": scalarType(t.Kind())}
	}
}

func fieldName(field reflect.StructField) string {
	tag := field.Tag.Get("yaml")
	if tag == "-" {
		return ""
	}

	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name
	}

	return strings.ToLower(field.Name)
}

// isRequired reports a validate "required" rule on the field itself.
// Rules after "dive" apply to elements and are ignored.
func isRequired(field reflect.StructField) bool {
	rules, _, _ := strings.Cut(field.Tag.Get("validate"), "dive")

	return slices.Contains(strings.Split(rules, ","), "required")
}

// scalarType converts a Go kind to a JSON schema type.
func scalarType(k reflect.Kind) string {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	default:
		return "string"
	}
}
