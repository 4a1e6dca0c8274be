package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/messaging"
)

type NatsConfig struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	StartTimeout string `json:"start_timeout"`
	ReplyTimeout string `json:"reply_timeout"`
}

func (n *NatsConfig) Validate() error {
	el := errors.NewErrorList()

	if n.StartTimeout != "" {
		if _, err := time.ParseDuration(n.StartTimeout); err != nil {
			el.Add(fmt.Errorf("parsing nats start_timeout: %w", err))
		}
	}
	if n.ReplyTimeout != "" {
		if _, err := time.ParseDuration(n.ReplyTimeout); err != nil {
			el.Add(fmt.Errorf("parsing nats reply_timeout: %w", err))
		}
	}
	if n.Port < -1 || n.Port > 65535 {
		el.Add(fmt.Errorf("nats port %d out of range", n.Port))
	}

	return el.Err()
}

func (n *NatsConfig) BuildNatsServer() (*messaging.NatsServer, error) {
	var opts []messaging.NatsServerOpt
	if n.StartTimeout != "" {
		d, err := time.ParseDuration(n.StartTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing start_timeout: %w", err)
		}
		opts = append(opts, messaging.WithStartTimeout(d))
	}
	if n.Host != "" {
		opts = append(opts, messaging.WithHost(n.Host))
	}
	if n.Port != 0 {
		opts = append(opts, messaging.WithPort(n.Port))
	}

	return messaging.NewNatsServer(opts...)
}

func (n *NatsConfig) commandOpts() []messaging.CommandServerOpt {
	var opts []messaging.CommandServerOpt
	if d, err := time.ParseDuration(n.ReplyTimeout); err == nil {
		opts = append(opts, messaging.WithReplyTimeout(d))
	}
	return opts
}
