package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/claude/gymlog/internal/ingest/alpha"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import-alpha <export.csv>",
		Short: "Log every session of an Alpha Progression CSV export",
		Args:  cobra.ExactArgs(1),
		Run:   runImportAlpha,
	}
	cmd.Flags().Bool("dry-run", false, "Resolve and categorize without saving")

	RootCmd.AddCommand(cmd)
}

func runImportAlpha(cmd *cobra.Command, args []string) {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	f, err := os.Open(args[0])
	if err != nil {
		exitErr("open export", err)
	}
	defer f.Close()

	e := openService(cmd.Context())
	defer e.Close()

	res, err := alpha.NewImporter(e.workouts, e.log, dryRun).Import(cmd.Context(), f)
	if err != nil {
		exitErr("import", err)
	}
	if jsonOutput() {
		printJSON(res)
		return
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSESSION\tDAY TYPE\tLIFTS\tUNMATCHED")
	for _, w := range res.Workouts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", w.Date.Format(time.DateOnly), oneLine(w.Name, 40), w.DayType, w.Lifts, len(w.Unmatched))
	}
	tw.Flush()

	if dryRun {
		n := 0
		for _, w := range res.Workouts {
			if w.Lifts > 0 {
				n++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d sessions, would save %d\n", res.Sessions, n)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d sessions, saved %d\n", res.Sessions, res.Saved)
	}
	if len(res.Unmatched) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "unmatched exercises: %v\n", res.Unmatched)
	}
}
