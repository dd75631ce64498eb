package command

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/ota-go/internal/cli/output"
	"github.com/yndnr/ota-go/internal/core/domain"
	"github.com/yndnr/ota-go/internal/core/service"
)

func updateLeaf(op domain.UpdateOp) leaf {
	switch op {
	case domain.UpdateCreate:
		return leaf{"Create a multi-target update from a TOML, YAML or JSON file", []cli.Flag{
			stringFlag("targets", "Update targets file", true),
		}}
	case domain.UpdateLaunch:
		return leaf{"Launch a multi-target update on a device", []cli.Flag{
			stringFlag("update", "Update ID", true),
			stringFlag("device", "Device ID", true),
		}}
	}
	return leaf{}
}

func runUpdate(ctx context.Context, c *cli.Context, e *env, op domain.UpdateOp) (output.Result, error) {
	director := e.director()

	switch op {
	case domain.UpdateCreate:
		requests, err := service.LoadTargetRequests(c.String("targets"))
		if err != nil {
			return nil, err
		}
		updates, err := service.ExpandUpdates(requests)
		if err != nil {
			return nil, err
		}
		return director.CreateUpdate(ctx, updates)

	case domain.UpdateLaunch:
		update, err := uuidFlag(c, "update")
		if err != nil {
			return nil, err
		}
		device, err := uuidFlag(c, "device")
		if err != nil {
			return nil, err
		}
		return director.LaunchUpdate(ctx, update, device)
	}
	return nil, unsupported(op)
}
