package codegen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goran-ethernal/BlockIndexor/pkg/keys"
)

const (
	mkdirPerm = 0755
	filePerm  = 0644
)

var keyFields = map[string]func(string) keys.Field{
	uint8Type:   keys.Uint8,
	uint16Type:  keys.Uint16,
	uint32Type:  keys.Uint32,
	uint64Type:  keys.Uint64,
	hash160Type: keys.Hash160,
	hash256Type: keys.Hash256,
}

// Generator generates a block indexer package from key layout definitions.
type Generator struct {
	Name       string   // Indexer name (e.g., "BlockHeight")
	Package    string   // Go package name (e.g., "blockheight")
	Type       string   // Registered indexer type (default: the package name)
	Layouts    []string // Layout definitions, see ParseLayoutSignature
	OutputDir  string   // Output directory path
	ImportPath string   // Go module import path
	Force      bool     // Overwrite existing files
	DryRun     bool     // Don't write files, just show what would be generated

	// Out receives progress and the summary. Defaults to os.Stdout.
	Out io.Writer
}

// GeneratedFiles represents the files that were generated.
type GeneratedFiles struct {
	IndexerFile string // Path to indexer.go
	TestFile    string // Path to indexer_test.go
	ReadmeFile  string // Path to README.md
}

// Generate generates all indexer files.
func (g *Generator) Generate() (*GeneratedFiles, error) {
	if g.Out == nil {
		g.Out = os.Stdout
	}

	if err := g.validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	layouts, err := g.parseLayouts()
	if err != nil {
		return nil, fmt.Errorf("failed to parse layouts: %w", err)
	}

	if g.Package == "" {
		g.Package = strings.ToLower(g.Name)
	}
	if g.Type == "" {
		g.Type = g.Package
	}
	if g.OutputDir == "" {
		g.OutputDir = filepath.Join(".", "examples", "indexers", g.Package)
	}

	if g.ImportPath == "" {
		modulePath, err := getModulePath()
		if err != nil {
			g.ImportPath = "yourproject/indexers/" + g.Package
		} else {
			cleanPath := filepath.ToSlash(strings.TrimPrefix(filepath.Clean(g.OutputDir), "./"))
			g.ImportPath = modulePath + "/" + cleanPath
		}
	}

	data := &TemplateData{
		Name:       g.Name,
		Package:    g.Package,
		Type:       g.Type,
		ImportPath: g.ImportPath,
		Layouts:    layouts,
	}

	if !g.Force {
		if _, err := os.Stat(g.OutputDir); err == nil {
			return nil, fmt.Errorf("output directory already exists: %s (use --force to overwrite)", g.OutputDir)
		}
	}

	if !g.DryRun {
		if err := os.MkdirAll(g.OutputDir, mkdirPerm); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	type fileGen struct {
		path     *string
		render   func(*TemplateData) (string, error)
		filename string
		desc     string
	}

	files := &GeneratedFiles{}
	fileGens := []fileGen{
		{&files.IndexerFile, RenderIndexer, g.Package + "_indexer.go", "indexer"},
		{&files.TestFile, RenderIndexerTest, g.Package + "_indexer_test.go", "indexer test"},
		{&files.ReadmeFile, RenderReadme, "README.md", "readme"},
	}

	for _, fg := range fileGens {
		content, err := fg.render(data)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", fg.desc, err)
		}

		path := filepath.Join(g.OutputDir, fg.filename)
		*fg.path = path

		if err := g.writeFile(path, content); err != nil {
			return nil, err
		}
	}

	return files, nil
}

// validate validates the generator configuration.
func (g *Generator) validate() error {
	if g.Name == "" {
		return fmt.Errorf("indexer name is required")
	}

	if len(g.Layouts) == 0 {
		return fmt.Errorf("at least one key layout is required")
	}

	if !layoutNameRe.MatchString(g.Name) {
		return fmt.Errorf("indexer name should be PascalCase and start with an uppercase letter: %s", g.Name)
	}

	if g.Package != "" && strings.ToLower(g.Package) != g.Package {
		return fmt.Errorf("package name must be lowercase: %s", g.Package)
	}

	return nil
}

// parseLayouts parses the layout definitions and checks that together they form a
// valid key schema.
func (g *Generator) parseLayouts() ([]*LayoutSignature, error) {
	sigs := make([]*LayoutSignature, 0, len(g.Layouts))
	layouts := make([]*keys.Layout, 0, len(g.Layouts))

	for i, raw := range g.Layouts {
		sig, err := ParseLayoutSignature(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid layout #%d '%s': %w", i+1, raw, err)
		}

		fields := make([]keys.Field, len(sig.Fields))
		for j, f := range sig.Fields {
			fields[j] = keyFields[f.Type](f.Name)
		}

		layout, err := keys.NewLayout(ToSnakeCase(sig.Name), sig.Tag, fields...)
		if err != nil {
			return nil, fmt.Errorf("invalid layout #%d '%s': %w", i+1, raw, err)
		}

		sigs = append(sigs, sig)
		layouts = append(layouts, layout)
	}

	if _, err := keys.NewSchema(layouts...); err != nil {
		return nil, err
	}

	return sigs, nil
}

// writeFile writes content to a file, respecting DryRun and Force flags.
func (g *Generator) writeFile(path, content string) error {
	if g.DryRun {
		fmt.Fprintf(g.Out, "Would create: %s\n", path)
		return nil
	}

	if !g.Force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists: %s (use --force to overwrite)", path)
		}
	}

	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	fmt.Fprintf(g.Out, "Generated: %s\n", path)
	return nil
}

// getModulePath reads the module path from go.mod file.
func getModulePath() (string, error) {
	data, err := os.ReadFile("go.mod")
	if err != nil {
		return "", err
	}

	for line := range strings.SplitSeq(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "module ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "module")), nil
		}
	}

	return "", fmt.Errorf("module directive not found in go.mod")
}

// PrintSummary prints a summary of what was generated.
func (g *Generator) PrintSummary(files *GeneratedFiles) {
	out := g.Out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintln(out, "\n✓ Successfully generated indexer!")
	fmt.Fprintf(out, "\nIndexer: %s\n", g.Name)
	fmt.Fprintf(out, "Type:    %s\n", g.Type)
	fmt.Fprintf(out, "Package: %s\n", g.Package)
	fmt.Fprintf(out, "Output:  %s\n", g.OutputDir)
	fmt.Fprintf(out, "Layouts: %d\n", len(g.Layouts))

	fmt.Fprintln(out, "\nGenerated files:")
	fmt.Fprintf(out, "  • %s\n", files.IndexerFile)
	fmt.Fprintf(out, "  • %s\n", files.TestFile)
	fmt.Fprintf(out, "  • %s\n", files.ReadmeFile)

	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Fill in the key fields marked in blockKeys")
	fmt.Fprintln(out, "  2. Add to your config.yaml:")
	fmt.Fprintf(out, "     indexers:\n")
	fmt.Fprintf(out, "       - name: \"%s\"\n", g.Type)
	fmt.Fprintf(out, "         type: \"%s\"\n", g.Type)
	fmt.Fprintf(out, "         start_height: 0\n")
	fmt.Fprintln(out, "  3. Import in cmd/indexer/main.go:")
	fmt.Fprintf(out, "     import _ \"%s\"\n", g.ImportPath)
	fmt.Fprintln(out, "\nFor more information, see the generated README.md")
}
