package command

import (
	"fmt"
	"os"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/rewind"
)

// RewindConfig points at an optional YAML tuning file.
type RewindConfig struct {
	TuningPath string `json:"tuning_path"`
}

func (c *RewindConfig) Validate() error {
	if c.TuningPath == "" {
		return nil
	}
	if _, err := os.Stat(c.TuningPath); err != nil {
		return fmt.Errorf("invalid tuning_path %q: %w", c.TuningPath, err)
	}
	return nil
}

func (c *RewindConfig) LoadTuning() (rewind.Tuning, error) {
	if c.TuningPath == "" {
		return rewind.DefaultTuning(), nil
	}
	return rewind.LoadTuning(c.TuningPath)
}
