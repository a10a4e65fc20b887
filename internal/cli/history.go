package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/claude/gymlog/internal/models"
)

func init() {
	history := &cobra.Command{
		Use:   "history",
		Short: "List recent workouts",
		Run:   runHistory,
	}
	history.Flags().IntP("limit", "l", 10, "Max sessions")
	history.Flags().Bool("last", false, "Show the most recent session with its exercises")
	RootCmd.AddCommand(history)

	report := &cobra.Command{
		Use:   "report",
		Short: "Show every logged lift and cardio entry, newest first",
		Run:   runReport,
	}
	report.Flags().IntP("limit", "l", 100, "Max rows")
	RootCmd.AddCommand(report)
}

func runHistory(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	last, _ := cmd.Flags().GetBool("last")

	e := openDB(cmd.Context())
	defer e.Close()

	if last {
		showLastWorkout(cmd, e)
		return
	}

	rows, err := e.db.RecentWorkouts(cmd.Context(), limit)
	if err != nil {
		exitErr("history", err)
	}
	if jsonOutput() {
		printJSON(rows)
		return
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tDAY\tID\tLOG")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Date.Format(time.DateOnly), r.DayType, r.ID, oneLine(r.Raw, 60))
	}
	tw.Flush()
}

func showLastWorkout(cmd *cobra.Command, e *env) {
	w, err := e.db.LastWorkout(cmd.Context())
	if err != nil {
		exitErr("last workout", err)
	}
	if w == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "no workouts logged yet")
		return
	}
	d, err := e.db.GetWorkout(cmd.Context(), w.ID)
	if err != nil {
		exitErr("last workout", err)
	}
	if jsonOutput() {
		printJSON(d)
		return
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s  %s\n\n", d.Date.Format(time.DateOnly), d.DayType, d.ID)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EXERCISE\tSETS\tREPS\tWEIGHT")
	for _, x := range d.Exercises {
		sets := 0
		if x.Sets != nil {
			sets = *x.Sets
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", x.Name, orDash(sets), x.Reps, x.Weight)
	}
	for _, c := range d.Cardio {
		fmt.Fprintf(tw, "%s\t-\t%s\t%s\n", c.ActivityName, c.Duration, c.Distance)
	}
	tw.Flush()
}

func runReport(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	e := openDB(cmd.Context())
	defer e.Close()

	rows, err := e.db.QueryReport(cmd.Context(), limit)
	if err != nil {
		exitErr("report", err)
	}
	if jsonOutput() {
		printJSON(rows)
		return
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tDAY\tITEM\tTYPE\tDETAIL")
	for _, r := range rows {
		detail := strings.TrimSpace(fmt.Sprintf("%s %s %s", r.Duration, r.Distance, r.Speed))
		if r.Type == models.ItemLift {
			sets := "-"
			if r.Sets != nil {
				sets = fmt.Sprint(*r.Sets)
			}
			detail = strings.TrimSpace(fmt.Sprintf("%sx%s %s", sets, r.Reps, r.Weight))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Date.Format(time.DateOnly), r.DayType, r.ItemName, r.Type, detail)
	}
	tw.Flush()
}

// oneLine flattens s and cuts it to max runes.
func oneLine(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > max {
		return string(r[:max-1]) + "…"
	}
	return s
}
