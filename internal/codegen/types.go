package codegen

import (
	"fmt"
	"strings"
	"unicode"
)

// Key field types understood by the generator. They map one to one onto the
// field constructors of pkg/keys.
const (
	uint8Type   = "uint8"
	uint16Type  = "uint16"
	uint32Type  = "uint32"
	uint64Type  = "uint64"
	hash160Type = "hash160"
	hash256Type = "hash256"
)

var fieldWidths = map[string]int{
	uint8Type:   1,
	uint16Type:  2,
	uint32Type:  4,
	uint64Type:  8,
	hash160Type: 20,
	hash256Type: 32,
}

// isHashType reports whether the field type is a raw byte string.
func isHashType(fieldType string) bool {
	return fieldType == hash160Type || fieldType == hash256Type
}

// GoTypeName converts a key field type to the Go type of its decoded value.
func GoTypeName(fieldType string) string {
	switch fieldType {
	case hash160Type:
		return "common.Address"
	case hash256Type:
		return "common.Hash"
	default:
		return fieldType
	}
}

// KeyField returns the pkg/keys constructor expression for a field.
func KeyField(field LayoutField) string {
	return fmt.Sprintf("keys.%s(%q)", ToPascalCase(field.Type), field.Name)
}

// TupleAccessor returns the expression reading field i of a decoded keys.Tuple
// named tuple.
func TupleAccessor(field LayoutField, i int) string {
	switch field.Type {
	case hash160Type:
		return fmt.Sprintf("common.BytesToAddress(tuple.Bytes(%d))", i)
	case hash256Type:
		return fmt.Sprintf("tuple.Hash(%d)", i)
	case uint64Type:
		return fmt.Sprintf("tuple.Uint(%d)", i)
	default:
		return fmt.Sprintf("%s(tuple.Uint(%d))", field.Type, i)
	}
}

// ValueSource returns the expression deriving a field from the (entry, block) pair
// an indexer receives. Fields with no well-known source get a zero value the
// author replaces.
func ValueSource(field LayoutField) string {
	switch {
	case field.Name == "height" && !isHashType(field.Type):
		return "entry.Height"
	case (field.Name == "time" || field.Name == "timestamp") && !isHashType(field.Type):
		return "block.Time()"
	case (field.Name == "hash" || field.Name == "block_hash") && field.Type == hash256Type:
		return "block.Hash()"
	case (field.Name == "prev_hash" || field.Name == "parent_hash") && field.Type == hash256Type:
		return "entry.PrevHash"
	case field.Type == hash160Type:
		return "common.Address{}"
	case field.Type == hash256Type:
		return "common.Hash{}"
	default:
		return field.Type + "(0)"
	}
}

// IsDerived reports whether ValueSource knows where the field comes from.
func IsDerived(field LayoutField) bool {
	src := ValueSource(field)
	return strings.HasPrefix(src, "entry.") || strings.HasPrefix(src, "block.")
}

// ToSnakeCase converts a string from camelCase or PascalCase to snake_case.
func ToSnakeCase(s string) string {
	result := make([]rune, 0, len(s)+len(s))
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			result = append(result, '_')
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}

// ToPascalCase converts a snake_case or kebab-case string to PascalCase.
// Already PascalCase input keeps its inner capitals.
func ToPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})

	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}

	return strings.Join(parts, "")
}

// ToLowerCamelCase converts a string to lowerCamelCase.
func ToLowerCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if len(pascal) == 0 {
		return pascal
	}
	return strings.ToLower(pascal[:1]) + pascal[1:]
}
