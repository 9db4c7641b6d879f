package workout

import (
	"alcyxob/run-coach/internal/domain"
	"regexp"
	"strconv"
	"strings"
)

// Action is the verb of a pattern segment. Only running is treated specially.
type Action int

const (
	ActionOther Action = iota
	ActionRun
)

func parseAction(s string) Action {
	switch strings.ToLower(s) {
	case "run":
		return ActionRun
	default:
		return ActionOther
	}
}

// Effort returns the effort level implied by the action.
func (a Action) Effort() string {
	switch a {
	case ActionRun:
		return "moderate"
	default:
		return "easy"
	}
}

var groupedPattern = regexp.MustCompile(`(?i)^\((.+)\)\s*x\s*(\d+)$`)

// ParsePattern expands a compact interval notation into steps.
//
// A pattern is a '/'-separated list of "<duration> <action>" segments, e.g.
// "90s run/90s walk". A trailing 's' on the duration means seconds and a trailing
// 'm' means minutes. The whole pattern may be grouped as "(<inner>) xN", in which
// case N overrides repeats. repeats below 1 count as 1. Malformed segments are
// dropped, so the result may be empty. Step orders are left for the caller to assign.
func ParsePattern(pattern string, repeats int) []domain.Step {
	pattern = strings.TrimSpace(pattern)
	if repeats < 1 {
		repeats = 1
	}
	if m := groupedPattern.FindStringSubmatch(pattern); m != nil {
		pattern = m[1]
		if n, err := strconv.Atoi(m[2]); err == nil {
			repeats = n
		}
	}

	var single []domain.Step
	for _, segment := range strings.Split(pattern, "/") {
		parts := strings.Fields(segment)
		if len(parts) < 2 {
			continue
		}
		action := parseAction(parts[1])
		single = append(single, domain.Step{
			Label:    titleCase(parts[1]),
			Duration: expandDuration(parts[0]),
			Effort:   action.Effort(),
		})
	}

	steps := make([]domain.Step, 0, len(single)*repeats)
	for i := 0; i < repeats; i++ {
		steps = append(steps, single...)
	}
	return steps
}

func expandDuration(tok string) string {
	switch {
	case strings.HasSuffix(tok, "s"):
		return strings.TrimSuffix(tok, "s") + " sec"
	case strings.HasSuffix(tok, "m"):
		return strings.TrimSuffix(tok, "m") + " min"
	default:
		return tok
	}
}

func titleCase(s string) string {
	s = strings.ToLower(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
