package command

import (
	"context"
	"fmt"

	"github.com/pixil98/go-service"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/driver"
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/messaging"
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/rewind"
	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/sandbox"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	world, keepers, err := cfg.Scenario.BuildWorld(sandbox.WithStep(cfg.tickLength()))
	if err != nil {
		return nil, err
	}

	tuning, err := cfg.Rewind.LoadTuning()
	if err != nil {
		return nil, fmt.Errorf("loading rewind tuning: %w", err)
	}

	natsServer, err := cfg.Nats.BuildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	publisher := messaging.NewRewindPublisher(natsServer)

	orchestrator, err := rewind.NewOrchestrator(world, keepers.Subsystems(),
		rewind.WithTuning(tuning),
		rewind.WithIdentityTracker(publisher),
		rewind.WithEvents(publisher),
	)
	if err != nil {
		return nil, fmt.Errorf("creating orchestrator: %w", err)
	}

	// The world ticks first so a capture or restore always sees the state
	// of the current step.
	d := driver.NewTickDriver([]driver.Ticker{world, orchestrator},
		driver.WithTickLength(cfg.tickLength()),
	)

	return service.WorkerList{
		"nats":     natsServer,
		"driver":   &rewindWorker{orchestrator: orchestrator, driver: d},
		"commands": messaging.NewCommandServer(natsServer, orchestrator, cfg.Nats.commandOpts()...),
	}, nil
}

// rewindWorker attaches the orchestrator to the world for the lifetime of
// the tick driver.
type rewindWorker struct {
	orchestrator *rewind.Orchestrator
	driver       *driver.TickDriver
}

func (w *rewindWorker) Start(ctx context.Context) error {
	w.orchestrator.Initialize(ctx)
	defer w.orchestrator.Close()
	return w.driver.Start(ctx)
}
