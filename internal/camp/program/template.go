package program

type Phase struct {
	Name  string
	Focus string
}

var (
	PhaseBaseBuilding = Phase{
		Name:  "Base Building",
		Focus: "Hypertrophy & Cardio Base",
	}
	PhaseStrengthAndPower = Phase{
		Name:  "Strength & Power",
		Focus: "Max Strength & Intensity",
	}
	PhasePeaking = Phase{
		Name:  "Peaking",
		Focus: "Speed, Agility & Competition Specificity",
	}
)

// PhaseFor buckets a 1-based week number: 1-4 base, 5-8 strength, 9-12 peaking.
func PhaseFor(weekNumber int) Phase {
	switch {
	case weekNumber > 8:
		return PhasePeaking
	case weekNumber > 4:
		return PhaseStrengthAndPower
	default:
		return PhaseBaseBuilding
	}
}

func standardWeek() [DaysPerWeek]DailySchedule {
	return [DaysPerWeek]DailySchedule{
		{
			DayOffset: 0,
			Training:  []string{"BJJ: Hard Sparring", "S&C: Lower Body Strength"},
			Nutrition: []string{"Caloric Surplus (+200)", "Creatine"},
			Recovery:  []string{"Sleep 8h", "Foam Roll"},
			Notes:     "Start strong. Focus on passing.",
		},
		{
			DayOffset: 1,
			Training:  []string{"BJJ: Drilling / Tech", "Conditioning: Zone 2 Cardio (45m)"},
			Nutrition: []string{"Maintenance Calories", "Electrolytes"},
			Recovery:  []string{"Active Recovery", "Cold Shower"},
			Notes:     "Technique focus.",
		},
		{
			DayOffset: 2,
			Training:  []string{"BJJ: Positional Sparring", "S&C: Upper Body Strength"},
			Nutrition: []string{"High Carb Day", "Post-workout Shake"},
			Recovery:  []string{"Sleep 8.5h", "Massage Gun"},
			Notes:     "Mid-week grind.",
		},
		{
			DayOffset: 3,
			Training:  []string{"BJJ: Flow Roll", "Mobility Session"},
			Nutrition: []string{"Maintenance Calories"},
			Recovery:  []string{"Sauna / Hot Bath", "Nap (20m)"},
			Notes:     "Active recovery focus.",
		},
		{
			DayOffset: 4,
			Training:  []string{"BJJ: Competition Rounds", "S&C: Full Body Power"},
			Nutrition: []string{"High Protein", "Hydration Focus"},
			Recovery:  []string{"Sleep 9h"},
			Notes:     "Hardest session of the week.",
		},
		{
			DayOffset: 5,
			Training:  []string{"BJJ: Open Mat", "Conditioning: Sprints"},
			Nutrition: []string{"Refeed Meal"},
			Recovery:  []string{"Contrast Bath", "Yoga"},
			Notes:     "Empty the tank.",
		},
		{
			DayOffset: 6,
			Training:  []string{"Rest Day", "Walk (30m)"},
			Nutrition: []string{"Maintenance Calories", "Meal Prep"},
			Recovery:  []string{"Total Rest", "Mental Visualization"},
			Notes:     "Visualize next week.",
		},
	}
}

// Standard builds the 12-week camp from the standard week. Every call returns
// a fresh copy, so callers can never mutate a shared table.
func Standard() Definition {
	var def Definition
	for i := range def {
		weekNumber := i + 1
		phase := PhaseFor(weekNumber)
		def[i] = WeeklyPhase{
			WeekNumber: weekNumber,
			PhaseName:  phase.Name,
			Focus:      phase.Focus,
			Schedule:   standardWeek(),
		}
	}
	return def
}
