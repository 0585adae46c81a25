package cli

import (
	"time"

	"github.com/spf13/cobra"

	"coursecal/internal/calendar"
	"coursecal/internal/config"
	appLog "coursecal/internal/log"
	"coursecal/internal/model"
)

const defaultConfigPath = "coursecal.yml"

// app carries the state shared by all subcommands of one root command.
type app struct {
	configPath string
	logLevel   string

	now    func() time.Time
	logger *appLog.Logger
}

// invocation is the result of one resolve + compute pass.
type invocation struct {
	doc *config.Document
	cfg calendar.EffectiveConfig
	ctx model.Context
}

// NewRootCmd builds the coursecal command tree. now supplies the wall
// clock; nil means time.Now.
func NewRootCmd(version string, now func() time.Time) *cobra.Command {
	if now == nil {
		now = time.Now
	}
	a := &app{now: now, logger: appLog.Default()}

	root := &cobra.Command{
		Use:     "coursecal",
		Version: version,
		Short:   "Compute the calendar context of a course period",
		Long: `coursecal reads a site configuration, resolves the calendar settings from
the calendar block and the extra.calendar_plugin override namespace, and
computes today's date, ISO week, academic week and plan flags for use in
templates.

CALENDAR_TODAY=YYYY-MM-DD pins "today" regardless of configuration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger.SetLevel(appLog.ParseLevel(a.logLevel))
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", defaultConfigPath, "Path to the site configuration")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level (debug, info, error)")

	root.AddCommand(
		newContextCmd(a),
		newBuildCmd(a),
		newICSCmd(a),
		newWatchCmd(a),
	)
	return root
}

// resolve loads the configuration and computes the calendar context at
// the current wall-clock time.
func (a *app) resolve() (*invocation, error) {
	doc, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	e, err := config.ParseEnv()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Effective(doc, e, a.logger)
	if err != nil {
		return nil, err
	}
	ctx, err := calendar.Compute(cfg, a.now(), a.logger)
	if err != nil {
		return nil, err
	}
	return &invocation{doc: doc, cfg: cfg, ctx: ctx}, nil
}
