package codegen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goran-ethernal/BlockIndexor/pkg/indexer"
)

var (
	layoutNameRe = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
	fieldNameRe  = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// LayoutField is one field of a key layout.
type LayoutField struct {
	Name string // snake_case field name (e.g. "time")
	Type string // key field type (e.g. "uint32", "hash256")
}

// LayoutSignature is a parsed key layout definition.
type LayoutSignature struct {
	Raw    string
	Name   string // PascalCase layout name (e.g. "Timestamp")
	Tag    byte
	Fields []LayoutField
}

// ParseLayoutSignature parses a layout definition of the form
//
//	Name[t](type name, type name, ...)
//
// where t is the single character key tag, for example
// "Timestamp[b](uint32 time, hash256 hash)".
func ParseLayoutSignature(sig string) (*LayoutSignature, error) {
	sig = strings.TrimSpace(sig)

	if sig == "" {
		return nil, fmt.Errorf("empty layout")
	}

	openTag := strings.Index(sig, "[")
	if openTag == -1 {
		return nil, fmt.Errorf("invalid layout: missing key tag, expected Name[t](...)")
	}

	name := strings.TrimSpace(sig[:openTag])
	if !layoutNameRe.MatchString(name) {
		return nil, fmt.Errorf("invalid layout name '%s': must start "+
			"with uppercase letter and contain only alphanumeric characters", name)
	}

	closeTag := strings.Index(sig, "]")
	if closeTag == -1 || closeTag < openTag {
		return nil, fmt.Errorf("invalid layout: malformed key tag")
	}

	tag, err := parseTag(sig[openTag+1 : closeTag])
	if err != nil {
		return nil, err
	}

	rest := strings.TrimSpace(sig[closeTag+1:])
	if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
		return nil, fmt.Errorf("invalid layout: fields must be enclosed in parentheses")
	}

	fields, err := parseFields(rest[1 : len(rest)-1])
	if err != nil {
		return nil, fmt.Errorf("failed to parse fields: %w", err)
	}

	return &LayoutSignature{
		Raw:    sig,
		Name:   name,
		Tag:    tag,
		Fields: fields,
	}, nil
}

func parseTag(raw string) (byte, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) != 1 {
		return 0, fmt.Errorf("invalid key tag '%s': must be a single character", raw)
	}

	tag := raw[0]
	isAlnum := (tag >= 'a' && tag <= 'z') || (tag >= 'A' && tag <= 'Z') || (tag >= '0' && tag <= '9')
	if !isAlnum {
		return 0, fmt.Errorf("invalid key tag '%s': must be a letter or digit", raw)
	}
	if tag == indexer.SyncTag {
		return 0, fmt.Errorf("key tag '%c' is reserved for the sync state", tag)
	}

	return tag, nil
}

// parseFields parses the comma separated field list of a layout.
func parseFields(fieldsStr string) ([]LayoutField, error) {
	fieldsStr = strings.TrimSpace(fieldsStr)
	if fieldsStr == "" {
		return nil, fmt.Errorf("a layout needs at least one field")
	}

	parts := strings.Split(fieldsStr, ",")
	fields := make([]LayoutField, 0, len(parts))
	names := make(map[string]bool, len(parts))

	for _, part := range parts {
		field, err := parseField(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid field '%s': %w", strings.TrimSpace(part), err)
		}

		if names[field.Name] {
			return nil, fmt.Errorf("duplicate field name: %s", field.Name)
		}
		names[field.Name] = true

		fields = append(fields, field)
	}

	return fields, nil
}

// parseField parses a single "type name" pair.
func parseField(fieldStr string) (LayoutField, error) {
	parts := strings.Fields(fieldStr)
	if len(parts) != 2 { //nolint:mnd
		return LayoutField{}, fmt.Errorf("expected 'type name'")
	}

	field := LayoutField{Type: parts[0], Name: parts[1]}

	if _, ok := fieldWidths[field.Type]; !ok {
		return LayoutField{}, fmt.Errorf("unsupported field type: %s", field.Type)
	}
	if !fieldNameRe.MatchString(field.Name) {
		return LayoutField{}, fmt.Errorf("invalid field name: %s", field.Name)
	}

	return field, nil
}

// CanonicalSignature returns the layout without field names.
// Example: "Timestamp[b](uint32,hash256)"
func (l *LayoutSignature) CanonicalSignature() string {
	types := make([]string, len(l.Fields))
	for i, f := range l.Fields {
		types[i] = f.Type
	}

	return fmt.Sprintf("%s[%c](%s)", l.Name, l.Tag, strings.Join(types, ","))
}

// TagLiteral returns the tag as a Go rune literal.
func (l *LayoutSignature) TagLiteral() string {
	return strconv.QuoteRune(rune(l.Tag))
}

// KeySize is the encoded key length: the tag byte plus every field.
func (l *LayoutSignature) KeySize() int {
	size := 1
	for _, f := range l.Fields {
		size += fieldWidths[f.Type]
	}
	return size
}

// Describe renders the byte layout, e.g. "'b' ‖ time (4 bytes) ‖ hash (32 bytes)".
func (l *LayoutSignature) Describe() string {
	parts := make([]string, 0, len(l.Fields)+1)
	parts = append(parts, l.TagLiteral())
	for _, f := range l.Fields {
		parts = append(parts, fmt.Sprintf("%s (%d bytes)", f.Name, fieldWidths[f.Type]))
	}
	return strings.Join(parts, " ‖ ")
}

// UnderivedFields returns the fields with no well-known source.
func (l *LayoutSignature) UnderivedFields() []LayoutField {
	var out []LayoutField
	for _, f := range l.Fields {
		if !IsDerived(f) {
			out = append(out, f)
		}
	}
	return out
}
