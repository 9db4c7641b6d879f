// Package workout holds the static workout library and turns tokens into concrete workouts.
package workout

// ParamKind says how the parameter part of a token is read for a base code.
type ParamKind int

const (
	ParamOther    ParamKind = iota // numeric param reported as a bare value
	ParamDistance                  // miles
	ParamTime                      // minutes
	ParamInterval                  // variant key
)

// Placeholders substituted during hydration.
const (
	placeholderMi  = "{{mi}}"
	placeholderKm  = "{{km}}"
	placeholderMin = "{{min}}"
)

// StepTemplate is a step before placeholder substitution.
// Distance holds either a literal number of meters or the {{km}} placeholder.
type StepTemplate struct {
	Label    string
	Duration string
	Distance string
	Effort   string
	Notes    string
}

// Variant is one named interval prescription of an interval base.
type Variant struct {
	Pattern string
	Repeats int
	Summary string
}

// Entry is the skeleton definition of a base code.
type Entry struct {
	Code              string
	Type              string
	SubType           string
	Description       string // imperial
	MetricDescription string // used for metric users when set
	Param             ParamKind

	Steps []StepTemplate

	Warmup   *StepTemplate
	Cooldown *StepTemplate
	Variants map[string]Variant
}

// IsInterval reports whether the entry is hydrated from variants.
func (e *Entry) IsInterval() bool {
	return e.Param == ParamInterval
}

// Library maps base codes to their skeletons.
type Library map[string]*Entry

// Lookup returns the entry for base.
func (l Library) Lookup(base string) (*Entry, bool) {
	e, ok := l[base]
	return e, ok
}

var (
	walkWarmup   = &StepTemplate{Label: "Warm Up", Duration: "5 min", Effort: "easy", Notes: "Brisk walk"}
	walkCooldown = &StepTemplate{Label: "Cool Down", Duration: "5 min", Effort: "easy", Notes: "Easy walk"}
)

// DefaultLibrary is the built-in workout library referenced by the plan templates.
var DefaultLibrary = Library{
	"R": {
		Code:        "R",
		Type:        "rest",
		Description: "Rest day. Light stretching or a relaxed walk is fine.",
		Param:       ParamOther,
	},
	"E": {
		Code:              "E",
		Type:              "run",
		SubType:           "easy",
		Description:       "Easy run of {{mi}} mi at a conversational pace.",
		MetricDescription: "Easy run of {{km}} km at a conversational pace.",
		Param:             ParamDistance,
		Steps: []StepTemplate{
			{Label: "Easy Run", Distance: placeholderKm, Effort: "easy", Notes: "{{mi}} mi / {{km}} km"},
		},
	},
	"L": {
		Code:              "L",
		Type:              "run",
		SubType:           "long",
		Description:       "Long run of {{mi}} mi. Keep it slow and steady.",
		MetricDescription: "Long run of {{km}} km. Keep it slow and steady.",
		Param:             ParamDistance,
		Steps: []StepTemplate{
			{Label: "Warm Up", Duration: "5 min", Effort: "easy", Notes: "Walk or very easy jog"},
			{Label: "Long Run", Distance: placeholderKm, Effort: "moderate", Notes: "{{mi}} mi / {{km}} km"},
			{Label: "Cool Down", Duration: "5 min", Effort: "easy", Notes: "Walk"},
		},
	},
	"U": {
		Code:              "U",
		Type:              "run",
		SubType:           "progression",
		Description:       "Up-tempo progression run of {{mi}} mi, finishing faster than you started.",
		MetricDescription: "Up-tempo progression run of {{km}} km, finishing faster than you started.",
		Param:             ParamDistance,
		Steps: []StepTemplate{
			{Label: "Easy Start", Duration: "10 min", Effort: "easy"},
			{Label: "Progression", Distance: placeholderKm, Effort: "hard", Notes: "Build pace every mile: {{mi}} mi / {{km}} km"},
			{Label: "Cool Down", Duration: "5 min", Effort: "easy"},
		},
	},
	"T": {
		Code:              "T",
		Type:              "run",
		SubType:           "tempo",
		Description:       "Tempo run: {{mi}} mi at a comfortably hard pace.",
		MetricDescription: "Tempo run: {{km}} km at a comfortably hard pace.",
		Param:             ParamDistance,
		Steps: []StepTemplate{
			{Label: "Warm Up", Duration: "10 min", Effort: "easy"},
			{Label: "Tempo", Distance: placeholderKm, Effort: "hard", Notes: "{{mi}} mi / {{km}} km"},
			{Label: "Cool Down", Duration: "10 min", Effort: "easy"},
		},
	},
	"X": {
		Code:        "X",
		Type:        "cross",
		SubType:     "cross_training",
		Description: "{{min}} minutes of cross-training: cycling, swimming or elliptical.",
		Param:       ParamTime,
		Steps: []StepTemplate{
			{Label: "Cross Training", Duration: "{{min}} min", Effort: "moderate", Notes: "Any low-impact cardio"},
		},
	},
	"F": {
		Code:        "F",
		Type:        "mobility",
		SubType:     "flexibility",
		Description: "{{min}} minutes of flexibility and mobility work.",
		Param:       ParamTime,
		Steps: []StepTemplate{
			{Label: "Mobility", Duration: "{{min}} min", Effort: "easy", Notes: "Hips, hamstrings, calves"},
		},
	},
	"WR": {
		Code:        "WR",
		Type:        "run",
		SubType:     "walk_run",
		Description: "Walk/run intervals: {{min}} minutes of alternating running and walking.",
		Param:       ParamInterval,
		Warmup:      walkWarmup,
		Cooldown:    walkCooldown,
		Variants: map[string]Variant{
			"1":  {Pattern: "60s run/90s walk", Repeats: 8, Summary: "Alternate 60 seconds of running with 90 seconds of walking."},
			"2":  {Pattern: "90s run/2m walk", Repeats: 6, Summary: "Alternate 90 seconds of running with 2 minutes of walking."},
			"3":  {Pattern: "90s run/90s walk/3m run/3m walk", Repeats: 2, Summary: "Two rounds of 90 seconds and 3 minutes of running, each followed by equal walking."},
			"4":  {Pattern: "3m run/90s walk/5m run/150s walk", Repeats: 2, Summary: "Two rounds of 3 and 5 minute runs with walking breaks."},
			"5A": {Pattern: "(5m run/3m walk) x3", Summary: "Three 5-minute runs with 3-minute walks."},
			"5B": {Pattern: "8m run/5m walk/8m run", Summary: "Two 8-minute runs with a 5-minute walk between."},
			"5C": {Pattern: "20m run", Summary: "Run 20 minutes without walking."},
			"6A": {Pattern: "5m run/3m walk/8m run/3m walk/5m run", Summary: "5, 8 and 5 minute runs with 3-minute walks."},
			"6B": {Pattern: "(10m run/3m walk) x2", Summary: "Two 10-minute runs with 3-minute walks."},
			"6C": {Pattern: "22m run", Summary: "Run 22 minutes without walking."},
			"7":  {Pattern: "25m run", Summary: "Run 25 minutes."},
			"8":  {Pattern: "28m run", Summary: "Run 28 minutes."},
			"9":  {Pattern: "30m run", Summary: "Run 30 minutes."},
		},
	},
}
