package command

import (
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/ota-go/internal/cli/config"
	"github.com/yndnr/ota-go/internal/cli/output"
	"github.com/yndnr/ota-go/internal/core/domain"
	"github.com/yndnr/ota-go/internal/core/service"
	"github.com/yndnr/ota-go/internal/telemetry/logger"
)

func initCommand() *cli.Command {
	return &cli.Command{
		Name:            domain.ResourceInit.String(),
		Usage:           "Write the configuration file",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			stringFlag("credentials", "Path to credentials.zip", true),
			stringFlag("campaigner", "Campaigner server base URL", true),
			stringFlag("director", "Director server base URL", true),
			stringFlag("registry", "Device registry server base URL", true),
			stringFlag("reposerver", "TUF repository server base URL (defaults to tufrepo.url in credentials.zip)", false),
		},
		Action: func(c *cli.Context) error {
			if c.Args().Present() {
				if _, err := domain.ParseCommand(domain.ResourceInit.String(), c.Args().First()); err != nil {
					return err
				}
			}
			return route(domain.Command{Resource: domain.ResourceInit})(c)
		},
	}
}

func runInit(c *cli.Context, e *env) (output.Result, error) {
	creds, err := filepath.Abs(c.String("credentials"))
	if err != nil {
		return nil, domain.ErrFilesystem.WithCause(err)
	}

	_, err = config.Init(e.store, service.NewArchiveStore(), config.InitOptions{
		Credentials: creds,
		Campaigner:  c.String("campaigner"),
		Director:    c.String("director"),
		Registry:    c.String("registry"),
		Reposerver:  c.String("reposerver"),
	})
	if err != nil {
		return nil, err
	}
	logger.Default().Info("configuration written", "path", e.store.Path())
	return output.EmptyResult{}, nil
}
