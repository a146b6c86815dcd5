package codegen

import (
	"bytes"
	_ "embed"
	"fmt"
	"go/format"
	"text/template"
)

//go:embed templates/indexer.go.tmpl
var indexerTemplate string

//go:embed templates/indexer_test.go.tmpl
var indexerTestTemplate string

//go:embed templates/README.md.tmpl
var readmeTemplate string

// TemplateData represents the data passed to templates.
type TemplateData struct {
	Name       string             // Indexer name (PascalCase, e.g., "BlockHeight")
	Package    string             // Go package name (lowercase, e.g., "blockheight")
	Type       string             // Registered indexer type
	ImportPath string             // Full import path for the package
	Layouts    []*LayoutSignature // Key layouts the indexer writes
}

// NeedsCommon reports whether generated code refers to go-ethereum's common package.
func (d *TemplateData) NeedsCommon() bool {
	for _, l := range d.Layouts {
		for _, f := range l.Fields {
			if isHashType(f.Type) {
				return true
			}
		}
	}
	return false
}

// RenderIndexer generates the indexer.go file content.
func RenderIndexer(data *TemplateData) (string, error) {
	return renderGoTemplate("indexer", indexerTemplate, data)
}

// RenderIndexerTest generates the indexer_test.go file content.
func RenderIndexerTest(data *TemplateData) (string, error) {
	return renderGoTemplate("indexer_test", indexerTestTemplate, data)
}

// RenderReadme generates the README.md file content.
func RenderReadme(data *TemplateData) (string, error) {
	return renderTemplate("readme", readmeTemplate, data)
}

// renderGoTemplate renders a Go source template and gofmts the result.
func renderGoTemplate(name, tmplStr string, data *TemplateData) (string, error) {
	src, err := renderTemplate(name, tmplStr, data)
	if err != nil {
		return "", err
	}

	formatted, err := format.Source([]byte(src))
	if err != nil {
		return "", fmt.Errorf("generated %s is not valid Go: %w", name, err)
	}

	return string(formatted), nil
}

// renderTemplate renders a template with the given data.
func renderTemplate(name, tmplStr string, data *TemplateData) (string, error) {
	tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// templateFuncs returns the functions available in templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"GoTypeName":    GoTypeName,
		"KeyField":      KeyField,
		"TupleAccessor": TupleAccessor,
		"ValueSource":   ValueSource,
		"IsDerived":     IsDerived,

		"ToPascalCase":     ToPascalCase,
		"ToSnakeCase":      ToSnakeCase,
		"ToLowerCamelCase": ToLowerCamelCase,

		"add": func(a, b int) int { return a + b },
	}
}
