package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/claude/gymlog/internal/workout"
)

func init() {
	cmd := &cobra.Command{
		Use:   "log [workout text]",
		Short: "Preview and save a workout",
		Long:  "Extracts exercises from free text, resolves them against the catalog and shows the categorized session. Reads stdin when no text is given.",
		Run:   runLog,
	}

	cmd.Flags().String("date", "", "Workout date YYYY-MM-DD (default: today)")
	cmd.Flags().BoolP("yes", "y", false, "Save without asking")
	cmd.Flags().Bool("analyze", false, "Ask the LLM for coaching feedback")

	RootCmd.AddCommand(cmd)
}

func runLog(cmd *cobra.Command, args []string) {
	dateStr, _ := cmd.Flags().GetString("date")
	yes, _ := cmd.Flags().GetBool("yes")
	analyze, _ := cmd.Flags().GetBool("analyze")

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

	preview, err := e.workouts.Preview(cmd.Context(), text)
	if err != nil {
		exitErr("preview", err)
	}

	var analysis string
	if analyze {
		analysis = e.workouts.Analyze(cmd.Context(), preview)
	}

	if jsonOutput() {
		printJSON(map[string]any{"preview": preview, "analysis": analysis})
	} else {
		printPreview(cmd.OutOrStdout(), preview)
		if analysis != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", analysis)
		}
	}

	if len(preview.Items) == 0 {
		exitErr("log", workout.ErrNothingMatched)
	}
	if !yes {
		if len(args) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "not saved: input came from stdin, pass --yes to save")
			return
		}
		if !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Save this workout?") {
			fmt.Fprintln(cmd.ErrOrStderr(), "not saved")
			return
		}
	}

	saved, err := e.workouts.Confirm(cmd.Context(), date, preview.SessionDayType(), preview.Raw, preview.Items)
	if err != nil {
		exitErr("save", err)
	}
	if jsonOutput() {
		printJSON(saved)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s: %d lifts, %d cardio\n", saved.ID, saved.Lifts, saved.Cardio)
	for _, name := range saved.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %q skipped\n", name)
	}
}

func printPreview(w io.Writer, p *workout.Preview) {
	fmt.Fprintf(w, "Day type: %s\n\n", p.DayType)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INPUT\tEXERCISE\tSCORE\tMUSCLE\tGROUP\tSETS\tREPS\tWEIGHT")
	for _, e := range p.Lifts {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			e.Input, e.Name, e.Score, e.Muscle, e.Group, orDash(e.Sets), e.Reps, e.Weight)
	}
	tw.Flush()

	for _, c := range p.Cardio {
		fmt.Fprintf(w, "cardio: %s %s %s\n", c.Name, c.Duration, c.Distance)
	}
	for _, u := range p.Unmatched {
		fmt.Fprintf(w, "warning: %q not in catalog\n", u)
	}
}

func orDash(n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprint(n)
}

// inputText joins args, or reads all of r when there are none.
func inputText(args []string, r io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(b))
	if text == "" {
		return "", fmt.Errorf("no input")
	}
	return text, nil
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
