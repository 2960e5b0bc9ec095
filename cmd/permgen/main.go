package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/awata/permgen/internal/entities"
	"github.com/awata/permgen/internal/infrastructure/config"
	"github.com/awata/permgen/internal/infrastructure/database"
	"github.com/awata/permgen/internal/repositories/postgres"
	"github.com/awata/permgen/internal/services"
	"github.com/awata/permgen/internal/services/loader"
	"github.com/awata/permgen/internal/services/parser"
	"github.com/spf13/cobra"
)

var (
	envFlag       string
	sourceFlag    string
	formatFlag    string
	outFlag       string
	namespaceFlag string
)

var rootCmd = &cobra.Command{
	Use:   "permgen",
	Short: "Permission key generator",
	Long: `Permission key generator.
Mirrors server-side permission declarations into client-side TypeScript
modules and publishes them to the application's permission registry.`,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate client-side permission key modules",
	Long:  `Validate the permission declarations and emit one TypeScript module per declared module.`,
	Run:   runGenerate,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the permission declarations",
	Long:  `Parse and validate the permission declarations without writing any output.`,
	Run:   runCheck,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Rewrite declaration files in canonical form",
	Long:  `Parse every .perm file in the source directory and rewrite it in canonical form.`,
	Run:   runFmt,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every permission key",
	Long:  `Print every permission key and its description in emission order.`,
	Run:   runList,
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Publish the permission keys to the database",
	Long:  `Validate the permission declarations and replace the database permission registry with them.`,
	Run:   runSync,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFlag, "env", "e", "dev", "Environment to use (dev, test, prod)")
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "Declaration source (overrides SOURCE_DIR)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "", "Source format: dsl or yaml (overrides SOURCE_FORMAT)")

	generateCmd.Flags().StringVar(&outFlag, "out", "", "Output directory (overrides OUTPUT_DIR)")
	generateCmd.Flags().StringVar(&namespaceFlag, "namespace", "", "Root namespace (overrides ROOT_NAMESPACE)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(syncCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Failed to execute command: %v", err)
	}
}

// loadConfig initializes viper for the selected environment and applies
// command-line overrides
func loadConfig() *config.Config {
	if err := config.InitConfig(envFlag); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if sourceFlag != "" {
		cfg.Generator.SourceDir = sourceFlag
	}
	if formatFlag != "" {
		cfg.Generator.SourceFormat = formatFlag
	}
	if outFlag != "" {
		cfg.Generator.OutputDir = outFlag
	}
	if namespaceFlag != "" {
		cfg.Generator.RootNamespace = namespaceFlag
	}

	return cfg
}

// loadRegistry materializes the permission registry from the configured source
func loadRegistry(cfg *config.GeneratorConfig) *entities.Registry {
	registry, err := loader.Load(cfg.SourceDir, cfg.SourceFormat)
	if err != nil {
		log.Fatalf("Failed to load declarations: %v", err)
	}
	return registry
}

func runGenerate(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	registry := loadRegistry(&cfg.Generator)

	svc := services.NewGeneratorService(cfg.Generator.RootNamespace, cfg.Generator.OutputDir)
	files, err := svc.Generate(registry)
	if err != nil {
		log.Fatalf("Generation failed: %v", err)
	}

	for _, f := range files {
		log.Printf("Wrote %s", filepath.Join(cfg.Generator.OutputDir, f.Name))
	}
	log.Printf("Generated %d files from %d modules and %d aggregates",
		len(files), len(registry.Modules), len(registry.Aggregates))
}

func runCheck(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	registry := loadRegistry(&cfg.Generator)

	if err := registry.Validate(); err != nil {
		log.Fatalf("Validation failed: %v", err)
	}

	log.Printf("Declarations valid: %d modules, %d aggregates, %d keys",
		len(registry.Modules), len(registry.Aggregates), len(registry.Records()))
}

func runFmt(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if cfg.Generator.SourceFormat != loader.FormatDSL {
		log.Fatalf("fmt only applies to %s sources", loader.FormatDSL)
	}

	dirEntries, err := os.ReadDir(cfg.Generator.SourceDir)
	if err != nil {
		log.Fatalf("Failed to read source directory: %v", err)
	}

	formatter := parser.NewFormatter()
	rewritten := 0
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".perm") {
			continue
		}

		path := filepath.Join(cfg.Generator.SourceDir, de.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", path, err)
		}

		decls, err := loader.ParseDeclarations(string(data))
		if err != nil {
			log.Fatalf("%s: %v", de.Name(), err)
		}

		canonical := formatter.Format(decls)
		if canonical == string(data) {
			continue
		}
		if err := os.WriteFile(path, []byte(canonical), 0o644); err != nil {
			log.Fatalf("Failed to rewrite %s: %v", path, err)
		}
		log.Printf("Rewrote %s", path)
		rewritten++
	}

	log.Printf("Formatted %d files", rewritten)
}

func runList(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	registry := loadRegistry(&cfg.Generator)

	if err := registry.Validate(); err != nil {
		log.Fatalf("Validation failed: %v", err)
	}

	for _, m := range registry.Modules {
		fmt.Printf("%s (%s)\n", m.Name, m.DisplayName)
		for _, e := range m.Entries {
			fmt.Printf("  %-50s %s\n", m.Value(e), e.Description)
		}
	}
	for _, a := range registry.Aggregates {
		fmt.Printf("%s (%s, aggregate)\n", a.Name, a.DisplayName)
		for _, ref := range a.Refs {
			m, e := registry.Resolve(ref)
			fmt.Printf("  %-50s %s\n", m.Value(e), e.Description)
		}
	}
}

func runSync(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	registry := loadRegistry(&cfg.Generator)

	pg, err := database.NewPostgres(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pg.Close()

	repo := postgres.NewPostgresPermissionRepository(pg.DB)
	svc := services.NewSyncService(repo)

	run, err := svc.Sync(context.Background(), registry)
	if err != nil {
		log.Fatalf("Sync failed: %v", err)
	}

	log.Printf("Published %d keys from %d modules (run %s)", run.KeyCount, run.ModuleCount, run.ID)
}
