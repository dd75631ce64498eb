package command

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/ota-go/internal/cli/output"
	"github.com/yndnr/ota-go/internal/core/domain"
)

func deviceLeaf(op domain.DeviceOp) leaf {
	switch op {
	case domain.DeviceList:
		return leaf{"List devices", selectorFlags("devices")}
	case domain.DeviceCreate:
		return leaf{"Register a device", []cli.Flag{
			stringFlag("name", "Device name", true),
			stringFlag("id", "Device identifier, such as a VIN", true),
			&cli.BoolFlag{Name: "vehicle", Usage: "Register a vehicle"},
			&cli.BoolFlag{Name: "other", Usage: "Register any other device type"},
		}}
	case domain.DeviceDelete:
		return leaf{"Delete a device", []cli.Flag{stringFlag("device", "Device ID", true)}}
	}
	return leaf{}
}

func runDevice(ctx context.Context, c *cli.Context, e *env, op domain.DeviceOp) (output.Result, error) {
	registry := e.registry()

	switch op {
	case domain.DeviceList:
		sel, err := listSelector(ctx, c)
		if err != nil {
			return nil, err
		}
		return registry.ListDevices(ctx, sel)

	case domain.DeviceCreate:
		vehicle, other := c.Bool("vehicle"), c.Bool("other")
		if err := exactlyOne("vehicle", vehicle, "other", other); err != nil {
			return nil, err
		}
		flag := "other"
		if vehicle {
			flag = "vehicle"
		}
		kind, err := domain.ParseDeviceType(flag)
		if err != nil {
			return nil, err
		}
		return registry.CreateDevice(ctx, c.String("name"), c.String("id"), kind)

	case domain.DeviceDelete:
		device, err := uuidFlag(c, "device")
		if err != nil {
			return nil, err
		}
		return registry.DeleteDevice(ctx, device)
	}
	return nil, unsupported(op)
}
