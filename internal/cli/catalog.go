package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claude/gymlog/internal/seed"
	"github.com/claude/gymlog/internal/snapshotdb"
)

func init() {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the exercise catalog",
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert exercises from a YAML or JSON seed file",
		Run:   runCatalogSeed,
	}
	seedCmd.Flags().String("file", "", "Seed file (default: catalog.seed_file)")
	seedCmd.Flags().Bool("dry-run", false, "Resolve muscles without inserting")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog to a seed file (.yaml/.json) or an offline catalog file (.db)",
		Run:   runCatalogExport,
	}
	exportCmd.Flags().StringP("out", "o", "", "Output path")
	exportCmd.MarkFlagRequired("out")

	catalogCmd.AddCommand(seedCmd, exportCmd)
	RootCmd.AddCommand(catalogCmd)
}

func runCatalogSeed(cmd *cobra.Command, args []string) {
	file, _ := cmd.Flags().GetString("file")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	e := openDB(cmd.Context())
	defer e.Close()

	if file == "" {
		file = e.cfg.Catalog.SeedFile
	}
	parsed, err := seed.ParseFile(file)
	if err != nil {
		exitErr("read seed file", err)
	}

	stats, err := seed.New(e.db, e.log, dryRun).Seed(cmd.Context(), parsed)
	if err != nil {
		exitErr("seed", err)
	}
	if jsonOutput() {
		printJSON(stats)
		return
	}
	for _, w := range stats.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added %d, already present %d, skipped %d\n", stats.Added, stats.Existing, stats.Skipped)
}

func runCatalogExport(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("out")

	e := openDB(cmd.Context())
	defer e.Close()

	snap, err := e.db.LoadCatalog(cmd.Context())
	if err != nil {
		exitErr("load catalog", err)
	}

	switch strings.ToLower(filepath.Ext(out)) {
	case ".db", ".sqlite":
		err = snapshotdb.Write(out, snap)
	default:
		err = seed.WriteFile(out, seed.Export(snap))
	}
	if err != nil {
		exitErr("export", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d exercises to %s\n", snap.Len(), out)
}
