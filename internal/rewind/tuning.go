package rewind

import (
	"fmt"
	"os"
	"text/template"
	"time"

	"github.com/pixil98/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/capture"
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/snapshot"
)

const (
	DefaultCapacity          = 9
	DefaultPeriod            = 5 * time.Second
	DefaultMagicRestoreDelay = 300 * time.Millisecond
	DefaultChoiceLabel       = `#{{ .ID }} {{ round .Ago.Seconds 0 }}s ago`
	DefaultLabelWidth        = 32
)

// Tuning holds the knobs of the rewind engine. Durations are simulation time
// except TickBudget, which is wall-clock time.
type Tuning struct {
	Capacity          int           `yaml:"capacity"`
	Period            time.Duration `yaml:"period"`
	TickBudget        time.Duration `yaml:"tick_budget"`
	ChunkSize         int           `yaml:"chunk_size"`
	MagicRestoreDelay time.Duration `yaml:"magic_restore_delay"`

	Allow           []string `yaml:"allow"`
	Deny            []string `yaml:"deny"`
	ExcludedEffects []string `yaml:"excluded_effects"`

	ChoiceLabel string `yaml:"choice_label"`
	// LabelWidth caps rendered labels in terminal cells. Zero disables it.
	LabelWidth  int    `yaml:"label_width"`
}

func DefaultTuning() Tuning {
	return Tuning{
		Capacity:          DefaultCapacity,
		Period:            DefaultPeriod,
		TickBudget:        snapshot.DefaultBudget,
		ChunkSize:         snapshot.DefaultChunkSize,
		MagicRestoreDelay: DefaultMagicRestoreDelay,
		Allow:             snapshot.DefaultAllow,
		Deny:              snapshot.DefaultDeny,
		ExcludedEffects:   capture.DefaultExcludedEffects,
		ChoiceLabel:       DefaultChoiceLabel,
		LabelWidth:        DefaultLabelWidth,
	}
}

// LoadTuning reads a YAML tuning file over the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("reading tuning: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("parsing tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("validating tuning %s: %w", path, err)
	}
	return t, nil
}

func (t *Tuning) Validate() error {
	el := errors.NewErrorList()

	if t.Capacity < 1 {
		el.Add(fmt.Errorf("capacity must be at least 1"))
	}
	if t.Period <= 0 {
		el.Add(fmt.Errorf("period must be positive"))
	}
	if t.TickBudget <= 0 {
		el.Add(fmt.Errorf("tick_budget must be positive"))
	}
	if t.ChunkSize < 1 {
		el.Add(fmt.Errorf("chunk_size must be at least 1"))
	}
	if t.MagicRestoreDelay < 0 {
		el.Add(fmt.Errorf("magic_restore_delay must not be negative"))
	}
	if len(t.Allow) == 0 {
		el.Add(fmt.Errorf("allow must list at least one pattern"))
	}
	if _, err := snapshot.NewTracker(t.Allow, t.Deny); err != nil {
		el.Add(err)
	}
	if t.LabelWidth < 0 {
		el.Add(fmt.Errorf("label_width must not be negative"))
	}
	if _, err := parseLabel(t.ChoiceLabel); err != nil {
		el.Add(fmt.Errorf("choice_label: %w", err))
	}

	return el.Err()
}

func parseLabel(s string) (*template.Template, error) {
	return template.New("choice").Funcs(labelFuncs).Parse(s)
}
