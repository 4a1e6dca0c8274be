package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval string         `json:"tick_interval"`
	Nats         NatsConfig     `json:"nats"`
	Scenario     ScenarioConfig `json:"scenario"`
	Rewind       RewindConfig   `json:"rewind"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		el.Add(fmt.Errorf("parsing tick_interval: %w", err))
	} else if d < time.Millisecond || d > time.Second {
		el.Add(fmt.Errorf("tick_interval must be between 1ms and 1s"))
	}

	el.Add(c.Nats.Validate())
	el.Add(c.Scenario.Validate())
	el.Add(c.Rewind.Validate())

	return el.Err()
}

func (c *Config) tickLength() time.Duration {
	d, _ := time.ParseDuration(c.TickInterval)
	return d
}
