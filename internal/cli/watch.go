package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	appLog "coursecal/internal/log"
)

// defaultSchedule rebuilds shortly after midnight, when "today" changes.
const defaultSchedule = "5 0 * * *"

func newWatchCmd(a *app) *cobra.Command {
	var (
		out      string
		schedule string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the output on a cron schedule until interrupted",
		Long: `watch runs build once, then again on every tick of --schedule (a standard
5-field cron expression evaluated in the configured timezone). A failed
rebuild is logged and the previous output is kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" || out == "-" {
				return errors.New("watch requires --out")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, out, schedule)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path")
	cmd.Flags().StringVar(&schedule, "schedule", defaultSchedule, "Cron schedule for rebuilds")
	return cmd
}

// watch builds once (failing fast on configuration errors), then schedules
// rebuilds until ctx is done.
func (a *app) watch(ctx context.Context, out, schedule string) error {
	inv, err := a.build(io.Discard, out)
	if err != nil {
		return err
	}

	logger := cronLogger{a.logger}
	c := cron.New(
		cron.WithLocation(inv.cfg.Location),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	if _, err := c.AddFunc(schedule, func() {
		if _, err := a.build(io.Discard, out); err != nil {
			a.logger.Error("calendar rebuild failed; previous output kept", err, "path", out)
		}
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	c.Start()
	a.logger.Info("watching calendar", "path", out, "schedule", schedule, "tz", inv.cfg.Timezone)

	<-ctx.Done()
	<-c.Stop().Done()
	a.logger.Info("watch stopped")
	return nil
}

// cronLogger adapts the application logger to cron.Logger.
type cronLogger struct {
	l *appLog.Logger
}

func (c cronLogger) Info(msg string, kv ...any) {
	c.l.Debug("cron: "+msg, kv...)
}

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.l.Error("cron: "+msg, err, kv...)
}
