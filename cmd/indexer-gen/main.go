package main

import (
	"fmt"
	"os"

	"github.com/goran-ethernal/BlockIndexor/internal/codegen"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	// Flags
	name        string
	indexerType string
	layouts     []string
	output      string
	packageName string
	importPath  string
	force       bool
	dryRun      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "indexer-gen",
	Short: "Generate block indexers from key layouts",
	Long: `indexer-gen scaffolds a block indexer package from one or more key layout
definitions. It generates the layouts and schema, IndexBlock and UnindexBlock,
a typed scan per layout, tests and documentation.

A layout is written as Name[t](type name, ...) where t is the one character key
tag and each field is one of uint8, uint16, uint32, uint64, hash160 or hash256.
Fields named height, time, hash and prev_hash are filled from the block.`,
	Version: version,
	Example: `  # Generate a height index
  indexer-gen --name BlockHeight \
    --layout "Height[h](uint32 height, hash256 hash)"

  # Two layouts with custom output
  indexer-gen --name Lineage \
    --layout "Parent[p](hash256 prev_hash, hash256 hash)" \
    --layout "Time[t](uint64 time, uint32 height)" \
    --output ./examples/indexers/lineage

  # Preview generation without writing files
  indexer-gen --name BlockHeight \
    --layout "Height[h](uint32 height, hash256 hash)" \
    --dry-run`,
	RunE: runGenerate,
}

func init() {
	rootCmd.Flags().StringVarP(&name, "name", "n", "", "indexer name (required, PascalCase, e.g., 'BlockHeight')")
	rootCmd.Flags().StringVarP(&indexerType, "type", "t", "", "registered indexer type (default: package name)")
	rootCmd.Flags().StringArrayVarP(&layouts, "layout", "l", []string{},
		"key layout (required, can be specified multiple times)")
	rootCmd.Flags().StringVarP(&output, "output", "o", "",
		"output directory (default: ./examples/indexers/<name_lowercase>)")
	rootCmd.Flags().StringVarP(&packageName, "package", "p", "", "Go package name (default: derived from name)")
	rootCmd.Flags().StringVarP(&importPath, "import", "i", "", "Go import path (default: auto-detected from go.mod)")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing files")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be generated without writing files")

	_ = rootCmd.MarkFlagRequired("name")
	_ = rootCmd.MarkFlagRequired("layout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	gen := &codegen.Generator{
		Name:       name,
		Package:    packageName,
		Type:       indexerType,
		Layouts:    layouts,
		OutputDir:  output,
		ImportPath: importPath,
		Force:      force,
		DryRun:     dryRun,
		Out:        cmd.OutOrStdout(),
	}

	files, err := gen.Generate()
	if err != nil {
		return err
	}

	if !dryRun {
		gen.PrintSummary(files)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "\nDry run complete. No files were created.")
	}

	return nil
}
