package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/awata/permgen/internal/entities"
	"github.com/awata/permgen/internal/services/emitter"
)

// GeneratedFile pairs an output file name with its rendered content
type GeneratedFile struct {
	Name    string
	Content string
}

// GeneratorService turns a validated permission registry into client-side
// output files. Emission is two-phase: every source module first, in
// discovery order, then every aggregate, so aggregate aliases always refer
// to modules that have already been emitted.
type GeneratorService struct {
	emitter   *emitter.TypeScript
	outputDir string
}

// NewGeneratorService creates a new GeneratorService
func NewGeneratorService(rootNamespace string, outputDir string) *GeneratorService {
	return &GeneratorService{
		emitter:   emitter.NewTypeScript(rootNamespace),
		outputDir: outputDir,
	}
}

// Render validates the registry and renders every output file in emission
// order without touching disk. Any validation error aborts before a single
// file is rendered.
func (s *GeneratorService) Render(registry *entities.Registry) ([]GeneratedFile, error) {
	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	files := make([]GeneratedFile, 0, len(registry.Modules)+len(registry.Aggregates))
	for _, module := range registry.Modules {
		files = append(files, GeneratedFile{
			Name:    s.emitter.FileName(module.Name),
			Content: s.emitter.EmitModule(module),
		})
	}
	for _, aggregate := range registry.Aggregates {
		content, err := s.emitter.EmitAggregate(registry, aggregate)
		if err != nil {
			return nil, fmt.Errorf("failed to emit aggregate %s: %w", aggregate.Name, err)
		}
		files = append(files, GeneratedFile{
			Name:    s.emitter.FileName(aggregate.Name),
			Content: content,
		})
	}

	return files, nil
}

// Generate renders the registry and writes the output files. The write is
// all-or-nothing: files are staged in a temporary directory inside the
// output directory and only moved into place after every render and stage
// write has succeeded, so a failed run never leaves partial output and
// never disturbs the previous run's files.
func (s *GeneratorService) Generate(registry *entities.Registry) ([]GeneratedFile, error) {
	files, err := s.Render(registry)
	if err != nil {
		return nil, err
	}
	if err := s.write(files); err != nil {
		return nil, err
	}
	return files, nil
}

// write stages every file, then moves them into the output directory
func (s *GeneratorService) write(files []GeneratedFile) error {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	staging, err := os.MkdirTemp(s.outputDir, ".permgen-")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	for _, f := range files {
		if err := os.WriteFile(filepath.Join(staging, f.Name), []byte(f.Content), 0o644); err != nil {
			return fmt.Errorf("failed to stage %s: %w", f.Name, err)
		}
	}

	// Staging is a subdirectory of the output directory, so each move is a
	// same-filesystem rename that replaces any prior file in one step.
	for _, f := range files {
		if err := os.Rename(filepath.Join(staging, f.Name), filepath.Join(s.outputDir, f.Name)); err != nil {
			return fmt.Errorf("failed to move %s into place: %w", f.Name, err)
		}
	}

	return nil
}
