package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	jsonschema "github.com/swaggest/jsonschema-go"
	"google.golang.org/genai"
)

var (
	typeObject  = jsonschema.SimpleType("object")
	typeArray   = jsonschema.SimpleType("array")
	typeString  = jsonschema.SimpleType("string")
	typeInteger = jsonschema.SimpleType("integer")
	typeNumber  = jsonschema.SimpleType("number")
	typeBoolean = jsonschema.SimpleType("boolean")
	typeNull    = jsonschema.SimpleType("null")
)

// ParseSchema decodes JSON schema text and translates it into the subset
// Gemini accepts. Errors wrap ErrSchema.
func ParseSchema(raw string) (*genai.Schema, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, SchemaError(errors.New("schema is empty"))
	}
	if !json.Valid([]byte(raw)) {
		return nil, SchemaError(errors.New("schema is not valid JSON"))
	}

	var doc jsonschema.Schema
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, SchemaError(err)
	}

	out, err := translate(&doc, "$")
	if err != nil {
		return nil, SchemaError(err)
	}
	return out, nil
}

func translate(s *jsonschema.Schema, path string) (*genai.Schema, error) {
	out := &genai.Schema{}

	if s.Type != nil {
		if err := applyType(out, s.Type, path); err != nil {
			return nil, err
		}
	}

	if s.Title != nil {
		out.Title = *s.Title
	}
	if s.Description != nil {
		out.Description = *s.Description
	}
	if s.Format != nil {
		out.Format = *s.Format
	}
	if s.Minimum != nil {
		v := *s.Minimum
		out.Minimum = &v
	}
	if s.Maximum != nil {
		v := *s.Maximum
		out.Maximum = &v
	}
	for _, e := range s.Enum {
		out.Enum = append(out.Enum, fmt.Sprint(e))
	}
	if len(s.Enum) > 0 && out.Type == "" {
		out.Type = genai.TypeString
	}

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		names := make([]string, 0, len(s.Properties))
		for name := range s.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			prop := s.Properties[name]
			child, err := translateRef(prop, path+"."+name)
			if err != nil {
				return nil, err
			}
			out.Properties[name] = child
		}
		out.PropertyOrdering = names
		if out.Type == "" {
			out.Type = genai.TypeObject
		}
	}
	out.Required = append(out.Required, s.Required...)

	if s.Items != nil {
		if s.Items.SchemaOrBool == nil {
			return nil, fmt.Errorf("%s: tuple items are not supported", path)
		}
		child, err := translateRef(*s.Items.SchemaOrBool, path+"[]")
		if err != nil {
			return nil, err
		}
		out.Items = child
		if out.Type == "" {
			out.Type = genai.TypeArray
		}
	}

	for i, alt := range s.AnyOf {
		child, err := translateRef(alt, fmt.Sprintf("%s.anyOf[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out.AnyOf = append(out.AnyOf, child)
	}

	if out.Type == "" && len(out.AnyOf) == 0 {
		return nil, fmt.Errorf("%s: schema must declare a type", path)
	}
	if out.Type == genai.TypeArray && out.Items == nil {
		return nil, fmt.Errorf("%s: array schema must declare items", path)
	}
	return out, nil
}

func translateRef(s jsonschema.SchemaOrBool, path string) (*genai.Schema, error) {
	if s.TypeObject == nil {
		return nil, fmt.Errorf("%s: boolean schemas are not supported", path)
	}
	return translate(s.TypeObject, path)
}

// applyType maps JSON schema types onto Gemini's upper-case enum. A
// ["x", "null"] union becomes a nullable x.
func applyType(out *genai.Schema, t *jsonschema.Type, path string) error {
	var types []jsonschema.SimpleType
	if t.SimpleTypes != nil {
		types = append(types, *t.SimpleTypes)
	}
	types = append(types, t.SliceOfSimpleTypeValues...)

	var concrete []jsonschema.SimpleType
	for _, st := range types {
		if st == typeNull {
			nullable := true
			out.Nullable = &nullable
			continue
		}
		concrete = append(concrete, st)
	}
	switch len(concrete) {
	case 0:
		return fmt.Errorf("%s: null-only schemas are not supported", path)
	case 1:
	default:
		return fmt.Errorf("%s: multiple types are not supported, use anyOf", path)
	}

	switch concrete[0] {
	case typeObject:
		out.Type = genai.TypeObject
	case typeArray:
		out.Type = genai.TypeArray
	case typeString:
		out.Type = genai.TypeString
	case typeInteger:
		out.Type = genai.TypeInteger
	case typeNumber:
		out.Type = genai.TypeNumber
	case typeBoolean:
		out.Type = genai.TypeBoolean
	default:
		return fmt.Errorf("%s: unsupported type %q", path, concrete[0])
	}
	return nil
}
