// Package extract turns free-text workout and meal logs into structured items
// with an LLM, and asks the LLM for coaching feedback on a categorized session.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/claude/gymlog/internal/categorizer"
	"github.com/claude/gymlog/internal/models"
)

// AnalysisUnavailable is returned by Analyze when no LLM answer could be obtained.
const AnalysisUnavailable = "AI analysis unavailable."

// ErrUnavailable is returned when no LLM is configured.
var ErrUnavailable = errors.New("llm not configured")

// Completer sends one prompt to a chat model and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Extractor wraps a Completer. A nil Completer makes every call take its
// offline path.
type Extractor struct {
	llm Completer
	log *slog.Logger
}

// New creates an Extractor. llm may be nil.
func New(llm Completer, log *slog.Logger) *Extractor {
	return &Extractor{llm: llm, log: log}
}

// Available reports whether an LLM is configured.
func (e *Extractor) Available() bool { return e.llm != nil }

type rawItem struct {
	Type     text   `json:"type"`
	Name     text   `json:"name"`
	Sets     number `json:"sets"`
	Reps     text   `json:"reps"`
	Weight   text   `json:"weight"`
	Duration text   `json:"duration"`
	Distance text   `json:"distance"`
	Speed    text   `json:"speed"`
	Calories number `json:"calories"`
}

type rawDietItem struct {
	MealType text   `json:"meal_type"`
	FoodRaw  text   `json:"food_raw"`
	Calories number `json:"calories"`
	Protein  number `json:"protein"`
	Carbs    number `json:"carbs"`
	Fats     number `json:"fats"`
}

// ParseWorkout extracts lift and cardio items from a workout log. When the
// LLM is missing, fails, or returns nothing, the log is split on commas and
// every piece becomes a lift named by its text. The only error returned is
// ctx's.
func (e *Extractor) ParseWorkout(ctx context.Context, raw string) ([]models.Item, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	items, err := e.parseWorkoutLLM(ctx, raw)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil && !errors.Is(err, ErrUnavailable) {
		e.log.Warn("workout extraction failed, splitting on commas", "error", err)
	}
	if len(items) == 0 {
		items = SplitCommas(raw)
	}
	return items, nil
}

func (e *Extractor) parseWorkoutLLM(ctx context.Context, raw string) ([]models.Item, error) {
	if e.llm == nil {
		return nil, ErrUnavailable
	}
	reply, err := e.llm.Complete(ctx, workoutSystem, fmt.Sprintf(workoutPrompt, raw))
	if err != nil {
		return nil, fmt.Errorf("calling llm: %w", err)
	}
	list, err := decodeList[rawItem](reply)
	if err != nil {
		return nil, fmt.Errorf("decoding workout items: %w", err)
	}

	items := make([]models.Item, 0, len(list))
	for _, r := range list {
		name := strings.TrimSpace(string(r.Name))
		if name == "" {
			continue
		}
		it := models.Item{
			Type:     models.ItemLift,
			Name:     name,
			Sets:     int(r.Sets),
			Reps:     string(r.Reps),
			Weight:   string(r.Weight),
			Duration: string(r.Duration),
			Distance: string(r.Distance),
			Speed:    string(r.Speed),
			Calories: int(r.Calories),
		}
		if strings.EqualFold(string(r.Type), models.ItemCardio) {
			it.Type = models.ItemCardio
		}
		items = append(items, it)
	}
	return items, nil
}

// SplitCommas is the offline workout parser: every non-empty comma-separated
// piece becomes a lift item.
func SplitCommas(raw string) []models.Item {
	var items []models.Item
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			items = append(items, models.Item{Type: models.ItemLift, Name: name})
		}
	}
	return items
}

// ParseDiet estimates meal entries and macros for a food log. Meal types are
// normalized, unknown ones become Snack. Without an LLM it returns no items
// and ErrUnavailable.
func (e *Extractor) ParseDiet(ctx context.Context, raw string) ([]models.DietItem, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if e.llm == nil {
		return nil, ErrUnavailable
	}

	reply, err := e.llm.Complete(ctx, dietSystem, fmt.Sprintf(dietPrompt, raw))
	if err != nil {
		return nil, fmt.Errorf("calling llm: %w", err)
	}
	list, err := decodeList[rawDietItem](reply)
	if err != nil {
		return nil, fmt.Errorf("decoding diet items: %w", err)
	}

	items := make([]models.DietItem, 0, len(list))
	for _, r := range list {
		mealType, _ := models.NormalizeMealType(string(r.MealType))
		items = append(items, models.DietItem{
			MealType: mealType,
			FoodRaw:  string(r.FoodRaw),
			Calories: int(r.Calories),
			Protein:  int(r.Protein),
			Carbs:    int(r.Carbs),
			Fats:     int(r.Fats),
		})
	}
	return items, nil
}

// Analyze asks for a short coaching critique of a categorized session.
// It never fails: without an answer it returns AnalysisUnavailable.
func (e *Extractor) Analyze(ctx context.Context, report categorizer.Report) string {
	if e.llm == nil || len(report.Entries) == 0 {
		return AnalysisUnavailable
	}

	var exercises strings.Builder
	for _, p := range report.Entries {
		fmt.Fprintf(&exercises, "- %s (Target: %s)\n", p.Exercise, p.Muscle)
	}

	reply, err := e.llm.Complete(ctx, coachSystem,
		fmt.Sprintf(coachPrompt, report.DayType, strings.TrimSpace(exercises.String()), formatCounts(report.GroupCounts)))
	if err != nil {
		e.log.Warn("session analysis failed", "error", err)
		return AnalysisUnavailable
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return AnalysisUnavailable
	}
	return reply
}

// formatCounts renders counts as "Chest: 2, Shoulders: 1", largest first.
func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %d", k, counts[k])
	}
	return strings.Join(parts, ", ")
}
