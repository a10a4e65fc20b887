package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/claude/gymlog/internal/extract"
	"github.com/claude/gymlog/internal/resolver"
	"github.com/claude/gymlog/internal/snapshotdb"
	"github.com/claude/gymlog/internal/workout"
)

func init() {
	cmd := &cobra.Command{
		Use:   "resolve <name> [name...]",
		Short: "Resolve exercise names and categorize them as one session",
		Args:  cobra.MinimumNArgs(1),
		Run:   runResolve,
	}

	cmd.Flags().IntP("threshold", "t", -1, "Minimum fuzzy score 0-100 (default: catalog.match_threshold)")
	cmd.Flags().String("offline", "", "Resolve against a catalog file written by 'catalog export --out x.db' instead of the database")

	RootCmd.AddCommand(cmd)
}

func runResolve(cmd *cobra.Command, args []string) {
	threshold, _ := cmd.Flags().GetInt("threshold")
	offline, _ := cmd.Flags().GetString("offline")

	if threshold > 100 {
		exitErr("threshold", fmt.Errorf("must be within 0..100, got %d", threshold))
	}

	var svc *workout.Service
	if offline != "" {
		snap, err := snapshotdb.Read(offline)
		if err != nil {
			exitErr("load catalog file", err)
		}
		log := newLogger()
		svc = workout.New(snap, nil, extract.New(nil, log), log, resolver.DefaultThreshold)
	} else {
		e := openService(cmd.Context())
		defer e.Close()
		svc = e.workouts
	}

	matches := make([]workout.Match, 0, len(args))
	var names []string
	for _, arg := range args {
		m := svc.Match(arg, threshold)
		matches = append(matches, m)
		if m.Matched {
			names = append(names, m.Name)
		}
	}
	report := svc.Categorize(names)

	if jsonOutput() {
		printJSON(map[string]any{"matches": matches, "report": report})
		return
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INPUT\tEXERCISE\tSCORE")
	for _, m := range matches {
		if !m.Matched {
			fmt.Fprintf(tw, "%s\t(no match)\t-\n", m.Query)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", m.Query, m.Name, m.Score)
	}
	tw.Flush()
	fmt.Fprintf(cmd.OutOrStdout(), "\nDay type: %s\n", report.DayType)
}
