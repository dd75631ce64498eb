package command

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/ota-go/internal/cli/api"
	"github.com/yndnr/ota-go/internal/cli/config"
	"github.com/yndnr/ota-go/internal/cli/connection"
	"github.com/yndnr/ota-go/internal/cli/output"
	"github.com/yndnr/ota-go/internal/core/domain"
	"github.com/yndnr/ota-go/internal/core/service"
	"github.com/yndnr/ota-go/internal/infra/buildinfo"
	"github.com/yndnr/ota-go/internal/infra/shutdown"
	"github.com/yndnr/ota-go/internal/telemetry/logger"
	"github.com/yndnr/ota-go/internal/telemetry/metric"
)

const envKey = "env"

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:                 "ota",
		Usage:                "Manage devices, packages, updates and campaigns of an OTA fleet",
		Version:              buildinfo.String(),
		Flags:                globalFlags(),
		Commands:             commands(),
		EnableBashCompletion: true,
		HideHelpCommand:      true,
		Before:               before,
		After:                after,
		Action:               unknownResource,
	}
	return app
}

// Run normalizes args and runs the application. Errors raised by flag
// parsing are reported as usage errors.
func Run(ctx context.Context, args []string) error {
	return RunApp(ctx, App(), args)
}

// RunApp is Run with a caller-provided application.
func RunApp(ctx context.Context, app *cli.App, args []string) error {
	err := app.RunContext(ctx, Normalize(args))
	if err == nil {
		return nil
	}
	var de *domain.DomainError
	if errors.As(err, &de) {
		return err
	}
	return domain.ErrArgs.WithDetails(err.Error())
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file",
			EnvVars: []string{"OTA_CONFIG"},
			Value:   config.DefaultPath(),
		},
		&cli.BoolFlag{
			Name:    "table",
			Aliases: []string{"t"},
			Usage:   "Print listings as tables",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level: debug, info, warn, error",
			EnvVars: []string{"OTA_LOG_LEVEL"},
			Value:   "warn",
		},
		&cli.StringFlag{
			Name:    "metrics-file",
			Usage:   "Write request metrics in textfile format on exit",
			EnvVars: []string{"OTA_METRICS_FILE"},
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Suppress progress output",
		},
	}
}

// GlobalFlags holds the parsed global flags.
type GlobalFlags struct {
	Config      string
	Table       bool
	Verbose     bool
	LogLevel    string
	MetricsFile string
	Quiet       bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Config:      c.String("config"),
		Table:       c.Bool("table"),
		Verbose:     c.Bool("verbose"),
		LogLevel:    c.String("log-level"),
		MetricsFile: c.String("metrics-file"),
		Quiet:       c.Bool("quiet"),
	}
}

// env is the wiring of one invocation.
type env struct {
	flags   *GlobalFlags
	store   *config.FileStore
	mgr     *connection.Manager
	metrics *metric.Registry
	cleanup *shutdown.Handler
	stdout  io.Writer
	stderr  io.Writer
}

func (e *env) registry() *api.Registry     { return api.NewRegistry(e.mgr) }
func (e *env) director() *api.Director     { return api.NewDirector(e.mgr) }
func (e *env) campaigner() *api.Campaigner { return api.NewCampaigner(e.mgr) }
func (e *env) reposerver() *api.Reposerver { return api.NewReposerver(e.mgr, e.metrics) }

// progress returns the batch reporter, or nil when progress is suppressed.
func (e *env) progress(title string, total int) *output.Progress {
	if e.flags.Quiet {
		return nil
	}
	return output.NewProgress(e.stderr, title, total)
}

func before(c *cli.Context) error {
	flags := ParseGlobalFlags(c)

	level := flags.LogLevel
	if flags.Verbose {
		level = "debug"
	}
	logger.SetDefault(logger.New(logger.Config{Level: level, Format: "text", Output: c.App.ErrWriter}))

	metrics := metric.NewRegistry()
	store := config.NewFileStore(flags.Config)
	tokens := service.NewTokenManager(service.NewArchiveStore(), store, &service.TokenManagerConfig{
		Skew:      10 * time.Second,
		Now:       time.Now,
		OnRefresh: metrics.TokenRefreshes.Inc,
	})
	client := connection.NewHTTPClient(connection.WithMetrics(metrics))

	cleanup := shutdown.NewHandler(5 * time.Second)
	if path := flags.MetricsFile; path != "" {
		cleanup.OnShutdown(func(context.Context) error {
			return metrics.WriteTextfile(path)
		})
	}

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[envKey] = &env{
		flags:   flags,
		store:   store,
		mgr:     connection.NewManager(store, tokens, client),
		metrics: metrics,
		cleanup: cleanup,
		stdout:  writerOr(c.App.Writer, os.Stdout),
		stderr:  writerOr(c.App.ErrWriter, os.Stderr),
	}
	return nil
}

// after runs the cleanup hooks. Their failures are logged and never change
// the exit status of the command.
func after(c *cli.Context) error {
	e := envFrom(c)
	if e == nil {
		return nil
	}
	if err := e.cleanup.Run(); err != nil {
		logger.Default().Warn("cleanup failed", "error", err)
	}
	return nil
}

// envFrom retrieves the invocation environment from context.
func envFrom(c *cli.Context) *env {
	if e, ok := c.App.Metadata[envKey].(*env); ok {
		return e
	}
	return nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
