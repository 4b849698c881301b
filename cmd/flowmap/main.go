package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"flowmap/internal/analysis"
	"flowmap/internal/analyzer"
	"flowmap/internal/collector"
	"flowmap/internal/config"
	"flowmap/internal/crawler"
	"flowmap/internal/git"
	"flowmap/internal/graph"
	"flowmap/internal/report"
	"flowmap/internal/storage"
)

var (
	rootCmd = &cobra.Command{
		Use:   "flowmap <entry-file>",
		Short: "Static call-graph analyzer for GenSX workflows and components",
		Long: `flowmap recovers the call graph of workflow and component definitions in a
TypeScript/JavaScript project, starting from one entry file, without executing
any code.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	configPath string
	dbPath     string

	jsonOut    bool
	mermaidOut bool
	verbose    bool

	baseRef string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "flowmap.yaml", "Path to the optional YAML config")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Persist the analysis snapshot to this SQLite database")

	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "Also print the graph as JSON")
	rootCmd.Flags().BoolVar(&mermaidOut, "mermaid", false, "Also print a mermaid diagram of the call graph")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List analyzed files and per-call line numbers")

	impactCmd.Flags().StringVar(&baseRef, "base", "HEAD", "Git ref to diff against")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(impactCmd)
}

// analysisOptions merges config-file extensions into the analyzer options.
func analysisOptions(cfg *config.Config) analyzer.Options {
	return analyzer.Options{
		FactoryModules: cfg.Analysis.FactoryModules,
		DeniedCalls:    cfg.Analysis.DeniedCalls,
	}
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("warning: ignoring config %s: %v", configPath, err)
		return &config.Config{}
	}
	return cfg
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	entry := args[0]
	cfg := loadConfig()

	result, err := analyzer.Analyze(entry, analysisOptions(cfg))
	if err != nil {
		return err
	}

	entryAbs, _ := filepath.Abs(entry)
	fmt.Print(report.Render(result, report.Options{
		Verbose: verbose,
		BaseDir: filepath.Dir(entryAbs),
	}))

	if jsonOut {
		out, err := report.RenderJSON(result)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(out)
	}

	if mermaidOut {
		fmt.Println()
		fmt.Print(report.RenderMermaid(result))
	}

	if database := databasePath(cfg); database != "" {
		store, err := storage.NewSQLiteStore(database)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()
		if err := store.SaveResult(context.Background(), result); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		fmt.Printf("\n💾 Snapshot saved to %s\n", database)
	}

	return nil
}

func databasePath(cfg *config.Config) string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.Storage.Database
}

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Find candidate entry files in a project tree",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}
		cfg := loadConfig()
		if root == "." && cfg.Project.Root != "" {
			root = cfg.Project.Root
		}

		fmt.Printf("📂 Scanning %s\n", root)

		c := crawler.New(collector.New(cfg.Analysis.FactoryModules...))
		entries, err := c.FindEntryFiles(root)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		for _, e := range entries {
			if rel, err := filepath.Rel(root, e); err == nil {
				fmt.Printf("  %s\n", rel)
			} else {
				fmt.Printf("  %s\n", e)
			}
		}
		fmt.Printf("✅ Found %d candidate entry files\n", len(entries))
		return nil
	},
}

var impactCmd = &cobra.Command{
	Use:   "impact <entry-file>",
	Short: "Report definitions affected by local git changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry := args[0]
		cfg := loadConfig()

		result, err := analyzer.Analyze(entry, analysisOptions(cfg))
		if err != nil {
			return err
		}

		entryAbs, _ := filepath.Abs(entry)
		changes, err := git.DiffAgainst(baseRef, filepath.Dir(entryAbs))
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			fmt.Println("✅ No changes detected.")
			return nil
		}

		rep := analysis.Impact(result, changes)
		fmt.Printf("📝 %d changed files\n", len(changes))
		fmt.Printf("Directly changed definitions:\n")
		printDefinitionList(rep.DirectlyChanged)
		fmt.Printf("Affected callers:\n")
		printDefinitionList(rep.AffectedCallers)
		return nil
	},
}

func printDefinitionList(defs []*graph.Definition) {
	if len(defs) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, def := range defs {
		fmt.Printf("  - %s [%s] %s:%d\n", def.Name, def.Kind, def.File, def.Line)
	}
}
