package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/sandbox"
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/storage"
)

// ScenarioConfig picks the sandbox scenario the service runs.
type ScenarioConfig struct {
	Path string `json:"path"`
	ID   string `json:"id"`
}

func (c *ScenarioConfig) Validate() error {
	el := errors.NewErrorList()

	if c.Path == "" {
		el.Add(fmt.Errorf("scenario path is required"))
	} else if _, err := os.Stat(c.Path); err != nil {
		el.Add(fmt.Errorf("invalid scenario path %q: %w", c.Path, err))
	}
	if c.ID == "" {
		el.Add(fmt.Errorf("scenario id is required"))
	}

	return el.Err()
}

// BuildWorld loads the scenario store and populates a new sandbox world.
func (c *ScenarioConfig) BuildWorld(opts ...sandbox.WorldOpt) (*sandbox.World, *sandbox.Keepers, error) {
	store, err := storage.NewFileStore[*sandbox.ScenarioSpec](c.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating scenario store: %w", err)
	}

	spec, ok := store.Get(c.ID)
	if !ok {
		return nil, nil, fmt.Errorf("scenario %q not found in %s", c.ID, c.Path)
	}

	w := sandbox.NewWorld(opts...)
	if err := w.Populate(spec); err != nil {
		return nil, nil, fmt.Errorf("populating scenario %q: %w", c.ID, err)
	}

	return w, sandbox.NewKeepers(spec.Subsystems), nil
}
