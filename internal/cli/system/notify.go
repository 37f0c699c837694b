package system

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/logger"
	"github.com/julianstephens/routinely/internal/notifier"
)

type NotifyCmd struct {
	DryRun  bool          `help:"Print notifications to stdout instead of sending them."`
	Timeout time.Duration `help:"Give up on the tray app after this long." default:"5s"`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	settings, err := svc.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !settings.NotificationsEnabled {
		if c.DryRun {
			fmt.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	plan, err := svc.Plan("")
	if err != nil {
		return err
	}
	msg, ok := notifier.DailyMessage(plan)
	if !ok {
		if c.DryRun {
			fmt.Println("Nothing left to do today.")
		}
		return nil
	}

	if c.DryRun {
		fmt.Println("[DryRun] " + msg)
		return nil
	}

	notifyCtx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()
	if err := notifier.New().Notify(notifyCtx, msg); err != nil {
		logger.Warn("Failed to send notification", "error", err)
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
