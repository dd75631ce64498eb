package command

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/ota-go/internal/cli/output"
	"github.com/yndnr/ota-go/internal/core/domain"
)

func groupLeaf(op domain.GroupOp) leaf {
	membership := []cli.Flag{
		stringFlag("group", "Group ID", true),
		stringFlag("device", "Device ID", true),
	}

	switch op {
	case domain.GroupList:
		return leaf{"List groups, or the members of one", selectorFlags("groups")}
	case domain.GroupCreate:
		return leaf{"Create a static device group", []cli.Flag{stringFlag("name", "Group name", true)}}
	case domain.GroupAdd:
		return leaf{"Add a device to a group", membership}
	case domain.GroupRename:
		return leaf{"Rename a group", []cli.Flag{
			stringFlag("group", "Group ID", true),
			stringFlag("name", "New group name", true),
		}}
	case domain.GroupRemove:
		return leaf{"Remove a device from a group", membership}
	}
	return leaf{}
}

func runGroup(ctx context.Context, c *cli.Context, e *env, op domain.GroupOp) (output.Result, error) {
	registry := e.registry()

	switch op {
	case domain.GroupList:
		sel, err := listSelector(ctx, c)
		if err != nil {
			return nil, err
		}
		return registry.ListGroups(ctx, sel)

	case domain.GroupCreate:
		return registry.CreateGroup(ctx, c.String("name"), domain.GroupStatic)

	case domain.GroupRename:
		group, err := uuidFlag(c, "group")
		if err != nil {
			return nil, err
		}
		return registry.RenameGroup(ctx, group, c.String("name"))

	case domain.GroupAdd, domain.GroupRemove:
		group, err := uuidFlag(c, "group")
		if err != nil {
			return nil, err
		}
		device, err := uuidFlag(c, "device")
		if err != nil {
			return nil, err
		}
		if op == domain.GroupAdd {
			return registry.AddToGroup(ctx, group, device)
		}
		return registry.RemoveFromGroup(ctx, group, device)
	}
	return nil, unsupported(op)
}
