package system

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/amacleod/pulse/internal/agent"
	"github.com/amacleod/pulse/internal/cli"
)

// AgentCmd runs the notification agent in the foreground until interrupted.
type AgentCmd struct{}

func (c *AgentCmd) Run(ctx *cli.Context) error {
	cfg, err := agent.LoadConfig()
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return agent.New(cfg).Run(runCtx)
}
