package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/claude/gymlog/internal/models"
)

func init() {
	cmd := &cobra.Command{
		Use:   "diet [meal text]",
		Short: "Estimate and save meals",
		Long:  "Asks the LLM to split free text into meals with calorie and macro estimates. Needs llm.api_key.",
		Run:   runDiet,
	}

	cmd.Flags().String("date", "", "Meal date YYYY-MM-DD (default: today)")
	cmd.Flags().BoolP("yes", "y", false, "Save without asking")

	RootCmd.AddCommand(cmd)
}

func runDiet(cmd *cobra.Command, args []string) {
	dateStr, _ := cmd.Flags().GetString("date")
	yes, _ := cmd.Flags().GetBool("yes")

	date, err := parseDay(dateStr)
	if err != nil {
		exitErr("date", err)
	}
	text, err := inputText(args, cmd.InOrStdin())
	if err != nil {
		exitErr("read input", err)
	}

	e := openService(cmd.Context())
	defer e.Close()

	items, err := e.ext.ParseDiet(cmd.Context(), text)
	if err != nil {
		exitErr("estimate meals", err)
	}
	totals := models.SumMacros(items)

	if jsonOutput() {
		printJSON(map[string]any{"items": items, "totals": totals})
	} else {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "MEAL\tFOOD\tKCAL\tP\tC\tF")
		for _, it := range items {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\n", it.MealType, it.FoodRaw, it.Calories, it.Protein, it.Carbs, it.Fats)
		}
		fmt.Fprintf(tw, "TOTAL\t\t%d\t%d\t%d\t%d\n", totals.Calories, totals.Protein, totals.Carbs, totals.Fats)
		tw.Flush()
	}

	if len(items) == 0 {
		exitErr("diet", fmt.Errorf("no meal entries recognized"))
	}
	if !yes && (len(args) == 0 || !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Save these meals?")) {
		fmt.Fprintln(cmd.ErrOrStderr(), "not saved")
		return
	}

	n, err := e.db.InsertDietLogs(cmd.Context(), date, items)
	if err != nil {
		exitErr("save meals", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "saved %d meal entries\n", n)
}
