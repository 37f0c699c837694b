package system

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/routinely/internal/api"
	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/logger"
)

type ServeCmd struct {
	Addr   string `help:"Address to listen on." default:"127.0.0.1:8787" env:"ROUTINELY_ADDR"`
	Stdout bool   `help:"Log to stdout instead of the log file."`
}

func (cmd *ServeCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	if cmd.Stdout {
		redirectLogs(os.Stdout)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return api.New(svc).Run(runCtx, cmd.Addr)
}

// redirectLogs sends the global logger to w at its current level.
func redirectLogs(w io.Writer) {
	level := "info"
	if logger.Logger != nil {
		level = logger.Logger.GetLevel().String()
	}
	logger.InitWriter(w, logger.Config{Level: level})
}
