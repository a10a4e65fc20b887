package extract

const workoutSystem = `You extract structured workout data from gym logs. Reply with JSON only.`

const workoutPrompt = `Extract a list of activities from this workout log: %q

Return ONLY a JSON LIST of objects.
Determine if each item is a LIFT (weights) or CARDIO.

For LIFT (Weights/Bodyweight):
- type: "lift"
- name: Exercise name (e.g., "Bench Press")
- sets: (int/null)
- reps: (string/null)
- weight: (string/null)

For CARDIO (Running, Cycling, Treadmill, Crossfit, etc.):
- type: "cardio"
- name: Activity name (e.g., "Treadmill Run", "Cycling")
- duration: Duration string (e.g., "30 mins")
- distance: Distance string (e.g., "5km")
- speed: Speed string (e.g., "10km/h") or null
- calories: (int/null)

Example Input: "Bench 3x10 100kg, then ran 5km on treadmill in 25 mins"
Example Output: [
  {"type": "lift", "name": "Bench", "sets": 3, "reps": "10", "weight": "100kg"},
  {"type": "cardio", "name": "Treadmill Run", "duration": "25 mins", "distance": "5km", "speed": null}
]`

const dietSystem = `You are a nutrition estimator. Reply with JSON only.`

const dietPrompt = `[IMPORTANT CONTEXT]
The user measures food using a specific container which is **450ml**.
- If the user says "cup", "container", "box", or "this one", they mean this **450ml** volume.
- Example: "Half cup of Upma" = 225ml of Upma.
- Example: "1 container of Rice" = 450ml of Rice.
- Please estimate calories/macros based on this specific volume.

Analyze this food log: %q

1. Split into separate meal entries if multiple are listed.
2. Detect meal type (Breakfast/Lunch/Dinner/Snack) from keywords like "Bf", "Eve", etc. Default to "Snack" if unknown.
3. Estimate calories and macros (Protein/Carbs/Fats, grams) for each item.

Return ONLY a JSON LIST of objects. Format:
[
  {
    "meal_type": "Breakfast",
    "food_raw": "2 eggs and toast",
    "calories": 250,
    "protein": 14,
    "carbs": 30,
    "fats": 10
  }
]`

const coachSystem = `Act as an elite strength and conditioning coach.`

const coachPrompt = `Analyze this %s workout session:

EXERCISES PERFORMED:
%s

MUSCLE GROUP VOLUME:
%s

Provide a brief, bulleted critique (max 3-4 points):
1. Identify any MAJOR missing muscle groups for this specific day type (e.g., if Push day, did they miss rear delts or a specific tricep head?).
2. Identify any redundancy (too many exercises for same muscle).
3. One actionable tip to improve this specific session.

Keep it concise and encouraging. No formatting, just specific advice.`
