package command

import (
	"context"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/ota-go/internal/core/domain"
	"github.com/yndnr/ota-go/internal/telemetry/logger"
)

func stringFlag(name, usage string, required bool) *cli.StringFlag {
	return &cli.StringFlag{Name: name, Usage: usage, Required: required}
}

// selectorFlags are the listing flags shared by device and group list.
func selectorFlags(noun string) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "all", Usage: "List all " + noun},
		stringFlag("device", "List "+noun+" by device ID", false),
		stringFlag("group", "List "+noun+" by group ID", false),
	}
}

// listSelector resolves --all, --device and --group.
func listSelector(ctx context.Context, c *cli.Context) (domain.ListSelector, error) {
	all, device, group := c.Bool("all"), c.String("device"), c.String("group")
	sel, err := domain.NewListSelector(all, device, group)
	if err != nil {
		return sel, err
	}
	if domain.SelectorCount(all, device, group) > 1 {
		logger.L(ctx).Warn("several listing flags given, using the first of --all, --device, --group")
	}
	return sel, nil
}

func uuidFlag(c *cli.Context, name string) (uuid.UUID, error) {
	return domain.ParseUUID(name, c.String(name))
}

func uuidSliceFlag(c *cli.Context, name string) ([]uuid.UUID, error) {
	values := c.StringSlice(name)
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := domain.ParseUUID(name, v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// exactlyOne reports a usage error unless exactly one of the flags a and b
// is set.
func exactlyOne(a string, aSet bool, b string, bSet bool) error {
	switch {
	case !aSet && !bSet:
		return domain.ErrArgs.WithDetailsf("one of --%s or --%s required", a, b)
	case aSet && bSet:
		return domain.ErrArgs.WithDetailsf("--%s and --%s are mutually exclusive", a, b)
	}
	return nil
}
