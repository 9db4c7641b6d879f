package workout

import (
	"alcyxob/run-coach/internal/domain"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	kmPerMile    = 1.60934
	mainSetLabel = "Main Set"
)

var (
	leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)`)
	minutesRe     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*min`)
	secondsRe     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*sec`)
)

// Hydrate expands base/param with the default library. See Library.Hydrate.
func Hydrate(base, param string, units domain.UnitSystem) domain.HydratedWorkout {
	return DefaultLibrary.Hydrate(base, param, units)
}

// Hydrate expands a token into a concrete workout for the given unit system.
//
// It never fails: an unknown base, a missing variant or a non-numeric parameter
// yields an empty (or partial) hydration and callers fall back to skeleton defaults.
// The result depends only on its arguments.
func (l Library) Hydrate(base, param string, units domain.UnitSystem) domain.HydratedWorkout {
	e, ok := l.Lookup(base)
	if !ok {
		return domain.HydratedWorkout{}
	}

	if e.IsInterval() {
		return hydrateInterval(e, param, units)
	}
	switch e.Param {
	case ParamDistance:
		mi, ok := parseLeadingFloat(param)
		if !ok {
			return domain.HydratedWorkout{}
		}
		km := round1(mi * kmPerMile)
		h := hydrateSteps(e, units, values{mi: mi, km: km})
		h.DistanceMi = &mi
		h.DistanceKm = &km
		return h
	case ParamTime:
		minutes, ok := parseLeadingFloat(param)
		if !ok {
			return domain.HydratedWorkout{}
		}
		h := hydrateSteps(e, units, values{min: minutes})
		h.Minutes = &minutes
		return h
	default:
		v, ok := parseLeadingFloat(param)
		if !ok {
			return domain.HydratedWorkout{}
		}
		return domain.HydratedWorkout{Value: &v}
	}
}

type values struct {
	mi, km, min float64
}

func (v values) replace(s string) string {
	if s == "" {
		return s
	}
	return strings.NewReplacer(
		placeholderMi, formatNumber(v.mi),
		placeholderKm, formatNumber(v.km),
		placeholderMin, formatNumber(v.min),
	).Replace(s)
}

func hydrateSteps(e *Entry, units domain.UnitSystem, v values) domain.HydratedWorkout {
	steps := make([]domain.Step, 0, len(e.Steps))
	for i, tmpl := range e.Steps {
		s := tmpl.render(v)
		s.Order = i + 1
		steps = append(steps, s)
	}
	display := make([]domain.Step, len(steps))
	copy(display, steps)
	return domain.HydratedWorkout{
		Steps:             steps,
		DisplaySteps:      display,
		GlobalDescription: v.replace(e.description(units)),
	}
}

func hydrateInterval(e *Entry, param string, units domain.UnitSystem) domain.HydratedWorkout {
	key := strings.ToUpper(strings.TrimSpace(param))
	variant, ok := e.Variants[key]
	if !ok {
		return domain.HydratedWorkout{Variant: key}
	}

	var steps []domain.Step
	if e.Warmup != nil {
		steps = append(steps, e.Warmup.render(values{}))
	}
	steps = append(steps, ParsePattern(variant.Pattern, variant.Repeats)...)
	if e.Cooldown != nil {
		steps = append(steps, e.Cooldown.render(values{}))
	}
	for i := range steps {
		steps[i].Order = i + 1
	}

	var seconds float64
	for _, s := range steps {
		if s.Label == "Run" || s.Label == "Walk" {
			seconds += durationSeconds(s.Duration)
		}
	}
	minutes := math.Round(seconds / 60)

	var display []domain.Step
	if e.Warmup != nil {
		display = append(display, e.Warmup.render(values{}))
	}
	display = append(display, domain.Step{
		Label:    mainSetLabel,
		Duration: fmt.Sprintf("%s min", formatNumber(minutes)),
		Effort:   ActionRun.Effort(),
		Notes:    variant.Summary,
	})
	if e.Cooldown != nil {
		display = append(display, e.Cooldown.render(values{}))
	}
	for i := range display {
		display[i].Order = i + 1
	}

	return domain.HydratedWorkout{
		Variant:           key,
		Steps:             steps,
		DisplaySteps:      display,
		GlobalDescription: values{min: minutes}.replace(e.description(units)),
	}
}

func (e *Entry) description(units domain.UnitSystem) string {
	if units == domain.UnitsMetric && e.MetricDescription != "" {
		return e.MetricDescription
	}
	return e.Description
}

func (t StepTemplate) render(v values) domain.Step {
	s := domain.Step{
		Label:    t.Label,
		Duration: v.replace(t.Duration),
		Effort:   t.Effort,
		Notes:    v.replace(t.Notes),
	}
	switch {
	case strings.Contains(t.Distance, placeholderKm):
		meters := math.Round(v.km * 1000)
		s.Distance = &meters
	case t.Distance != "":
		if meters, ok := parseLeadingFloat(t.Distance); ok {
			s.Distance = &meters
		}
	}
	return s
}

// durationSeconds reads "<N> min" or "<N> sec"; minutes win when both appear.
func durationSeconds(d string) float64 {
	if m := minutesRe.FindStringSubmatch(d); m != nil {
		n, _ := strconv.ParseFloat(m[1], 64)
		return n * 60
	}
	if m := secondsRe.FindStringSubmatch(d); m != nil {
		n, _ := strconv.ParseFloat(m[1], 64)
		return n
	}
	return 0
}

// parseLeadingFloat reads the leading decimal number of s, ignoring trailing text.
func parseLeadingFloat(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
