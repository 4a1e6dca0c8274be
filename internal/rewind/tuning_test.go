package rewind

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

func TestTuning_Validate(t *testing.T) {
	tests := map[string]struct {
		modify func(*Tuning)
		expErr string
	}{
		"defaults": {
			modify: func(*Tuning) {},
		},
		"zero capacity": {
			modify: func(t *Tuning) { t.Capacity = 0 },
			expErr: "capacity must be at least 1",
		},
		"zero period": {
			modify: func(t *Tuning) { t.Period = 0 },
			expErr: "period must be positive",
		},
		"zero budget": {
			modify: func(t *Tuning) { t.TickBudget = 0 },
			expErr: "tick_budget must be positive",
		},
		"zero chunk": {
			modify: func(t *Tuning) { t.ChunkSize = 0 },
			expErr: "chunk_size must be at least 1",
		},
		"negative delay": {
			modify: func(t *Tuning) { t.MagicRestoreDelay = -time.Second },
			expErr: "magic_restore_delay must not be negative",
		},
		"no allow": {
			modify: func(t *Tuning) { t.Allow = nil },
			expErr: "allow must list at least one pattern",
		},
		"bad deny pattern": {
			modify: func(t *Tuning) { t.Deny = []string{"[Area"} },
			expErr: "invalid type name pattern",
		},
		"negative label width": {
			modify: func(t *Tuning) { t.LabelWidth = -1 },
			expErr: "label_width must not be negative",
		},
		"bad label": {
			modify: func(t *Tuning) { t.ChoiceLabel = "{{ .ID " },
			expErr: "choice_label",
		},
		"unknown label function": {
			modify: func(t *Tuning) { t.ChoiceLabel = "{{ nope .ID }}" },
			expErr: "choice_label",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tuning := DefaultTuning()
			tt.modify(&tuning)

			err := tuning.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestLoadTuning(t *testing.T) {
	tests := map[string]struct {
		contents string
		exp      func(t *testing.T, tuning Tuning)
		expErr   string
	}{
		"overrides defaults": {
			contents: "capacity: 3\nperiod: 2s\nmagic_restore_delay: 500ms\nexcluded_effects: [TimeRevert, Freeze]\n",
			exp: func(t *testing.T, tuning Tuning) {
				testutil.AssertEqual(t, "capacity", tuning.Capacity, 3)
				testutil.AssertEqual(t, "period", tuning.Period, 2*time.Second)
				testutil.AssertEqual(t, "delay", tuning.MagicRestoreDelay, 500*time.Millisecond)
				testutil.AssertEqual(t, "excluded", len(tuning.ExcludedEffects), 2)
				testutil.AssertEqual(t, "chunk size", tuning.ChunkSize, DefaultTuning().ChunkSize)
				testutil.AssertEqual(t, "label", tuning.ChoiceLabel, DefaultChoiceLabel)
			},
		},
		"empty file keeps defaults": {
			contents: "",
			exp: func(t *testing.T, tuning Tuning) {
				testutil.AssertEqual(t, "capacity", tuning.Capacity, DefaultCapacity)
				testutil.AssertEqual(t, "period", tuning.Period, DefaultPeriod)
			},
		},
		"invalid yaml": {
			contents: "capacity: [1",
			expErr:   "parsing tuning",
		},
		"invalid values": {
			contents: "capacity: 0\n",
			expErr:   "capacity must be at least 1",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tuning.yaml")
			if err := os.WriteFile(path, []byte(tt.contents), 0o644); err != nil {
				t.Fatalf("writing tuning: %v", err)
			}

			tuning, err := LoadTuning(path)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.exp(t, tuning)
		})
	}
}

func TestLoadTuning_MissingFile(t *testing.T) {
	_, err := LoadTuning(filepath.Join(t.TempDir(), "missing.yaml"))
	testutil.AssertErrorContains(t, err, "reading tuning")
}
