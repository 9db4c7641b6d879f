// Package plan holds the static multi-week plan templates and the calendar arithmetic
// used to lay them onto a user's week.
package plan

import "alcyxob/run-coach/internal/domain"

// DaysPerWeek is the length of every template week.
const DaysPerWeek = 7

// WeekTokens is one template week, Sunday first. Only the order of non-rest tokens
// survives scheduling.
type WeekTokens [DaysPerWeek]domain.Token

// Template is a named multi-week skeleton.
type Template struct {
	Name  string
	Weeks []WeekTokens
}

// Template keys.
const (
	Template5K           = "c25k_9wk"
	Template10K          = "10k_10wk"
	TemplateHalfMarathon = "half_12wk"
	TemplateMarathon     = "marathon_16wk"
)

// DefaultTemplates is the built-in template set.
var DefaultTemplates = map[string]Template{
	Template5K: {
		Name: "Couch to 5K",
		Weeks: []WeekTokens{
			{"R", "WR/1", "R", "WR/1", "R", "WR/1", "R"},
			{"R", "WR/2", "R", "WR/2", "R", "WR/2", "R"},
			{"R", "WR/3", "R", "WR/3", "R", "WR/3", "R"},
			{"R", "WR/4", "R", "WR/4", "R", "WR/4", "R"},
			{"R", "WR/5A", "R", "WR/5B", "R", "WR/5C", "R"},
			{"R", "WR/6A", "R", "WR/6B", "R", "WR/6C", "R"},
			{"R", "WR/7", "R", "WR/7", "R", "WR/7", "R"},
			{"R", "WR/8", "R", "WR/8", "R", "WR/8", "R"},
			{"R", "WR/9", "R", "WR/9", "R", "WR/9", "R"},
		},
	},
	Template10K: {
		Name: "10K Builder",
		Weeks: []WeekTokens{
			{"L3", "R", "E2", "X30", "E2", "R", "R"},
			{"L3", "R", "E2", "X30", "E3", "R", "R"},
			{"L4", "R", "E3", "X30", "T2", "R", "R"},
			{"L4", "R", "E3", "X30", "E3", "R", "F20"},
			{"L5", "R", "E3", "X40", "T3", "R", "R"},
			{"L5", "R", "E3", "X40", "U3", "R", "F20"},
			{"L6", "R", "E4", "X40", "T3", "R", "R"},
			{"L6", "R", "E4", "X40", "U4", "R", "F20"},
			{"L5", "R", "E3", "X30", "T2", "R", "R"},
			{"E2", "R", "E3", "R", "E2", "R", "L6.2"},
		},
	},
	TemplateHalfMarathon: {
		Name: "Half Marathon",
		Weeks: []WeekTokens{
			{"L4", "R", "E3", "X30", "E3", "R", "F20"},
			{"L5", "R", "E3", "X30", "T3", "R", "F20"},
			{"L6", "R", "E3", "X40", "E3", "R", "F20"},
			{"L5", "R", "E3", "X30", "T3", "R", "F20"},
			{"L7", "R", "E4", "X40", "T3", "R", "F20"},
			{"L8", "R", "E4", "X40", "U4", "R", "F20"},
			{"L9", "R", "E4", "X45", "T4", "R", "F20"},
			{"L7", "R", "E4", "X40", "E4", "R", "F20"},
			{"L10", "R", "E5", "X45", "T4", "R", "F20"},
			{"L11", "R", "E5", "X45", "U5", "R", "F20"},
			{"L8", "R", "E4", "X30", "T3", "R", "R"},
			{"E3", "R", "E3", "R", "E2", "R", "L13.1"},
		},
	},
	TemplateMarathon: {
		Name: "Marathon",
		Weeks: []WeekTokens{
			{"L6", "R", "E3", "X30", "E3", "R", "F20"},
			{"L7", "R", "E3", "X30", "T3", "R", "F20"},
			{"L8", "R", "E4", "X40", "E4", "R", "F20"},
			{"L6", "R", "E3", "X30", "T3", "R", "F20"},
			{"L10", "R", "E4", "X40", "T4", "R", "F20"},
			{"L11", "R", "E5", "X40", "U4", "R", "F20"},
			{"L12", "R", "E5", "X45", "T5", "R", "F20"},
			{"L9", "R", "E4", "X40", "E4", "R", "F20"},
			{"L14", "R", "E5", "X45", "T5", "R", "F20"},
			{"L15", "R", "E6", "X45", "U5", "R", "F20"},
			{"L16", "R", "E6", "X50", "T6", "R", "F20"},
			{"L12", "R", "E5", "X40", "E5", "R", "F20"},
			{"L18", "R", "E6", "X50", "T6", "R", "F20"},
			{"L20", "R", "E6", "X45", "U6", "R", "F20"},
			{"L12", "R", "E5", "X30", "T4", "R", "R"},
			{"E4", "R", "E3", "R", "E2", "R", "L26.2"},
		},
	},
}

// WorkoutTokens returns the non-rest tokens of the week in template order.
func (w WeekTokens) WorkoutTokens() []domain.Token {
	var tokens []domain.Token
	for _, t := range w {
		if !t.IsRest() {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
