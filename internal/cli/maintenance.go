package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func init() {
	backfill := &cobra.Command{
		Use:   "backfill",
		Short: "Rebuild muscle activations for logged lifts that have none",
		Run:   runBackfill,
	}

	merge := &cobra.Command{
		Use:   "merge-exercise",
		Short: "Move every log of one exercise onto another and delete the first",
		Run:   runMergeExercise,
	}
	merge.Flags().String("from", "", "Exercise to remove")
	merge.Flags().String("into", "", "Exercise to keep")
	merge.MarkFlagRequired("from")
	merge.MarkFlagRequired("into")

	redate := &cobra.Command{
		Use:   "redate",
		Short: "Move a workout to another date, deleting other workouts logged on its original date",
		Run:   runRedate,
	}
	redate.Flags().String("keep", "", "ID of the workout to keep")
	redate.Flags().String("date", "", "New date YYYY-MM-DD")
	redate.MarkFlagRequired("keep")
	redate.MarkFlagRequired("date")

	RootCmd.AddCommand(backfill, merge, redate)
}

func runBackfill(cmd *cobra.Command, args []string) {
	e := openDB(cmd.Context())
	defer e.Close()

	n, err := e.db.BackfillActivations(cmd.Context())
	if err != nil {
		exitErr("backfill", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "backfilled activations for %d lifts\n", n)
}

func runMergeExercise(cmd *cobra.Command, args []string) {
	from, _ := cmd.Flags().GetString("from")
	into, _ := cmd.Flags().GetString("into")

	e := openDB(cmd.Context())
	defer e.Close()

	res, err := e.db.MergeExercise(cmd.Context(), from, into)
	if err != nil {
		exitErr("merge", err)
	}
	if jsonOutput() {
		printJSON(res)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "merged %q into %q\n", from, into)
	fmt.Fprintln(cmd.ErrOrStderr(), "run 'POST /api/v1/catalog/reload' or restart the server to pick up the change")
}

func runRedate(cmd *cobra.Command, args []string) {
	keepStr, _ := cmd.Flags().GetString("keep")
	dateStr, _ := cmd.Flags().GetString("date")

	keep, err := uuid.Parse(keepStr)
	if err != nil {
		exitErr("keep", err)
	}
	date, err := parseDay(dateStr)
	if err != nil {
		exitErr("date", err)
	}

	e := openDB(cmd.Context())
	defer e.Close()

	res, err := e.db.RedateWorkout(cmd.Context(), keep, date)
	if err != nil {
		exitErr("redate", err)
	}
	if jsonOutput() {
		printJSON(res)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", *res)
}
