package command

import (
	"context"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/ota-go/internal/cli/output"
	"github.com/yndnr/ota-go/internal/core/domain"
	"github.com/yndnr/ota-go/internal/telemetry/logger"
)

// globalValueFlags are the global flags that consume the following token.
var globalValueFlags = map[string]bool{
	"config":       true,
	"c":            true,
	"log-level":    true,
	"metrics-file": true,
}

// Normalize lower-cases the resource and subcommand tokens of args so the
// grammar is case-insensitive. args[0] is the program name. Tokens that are
// not part of the vocabulary are left untouched.
func Normalize(args []string) []string {
	out := append([]string(nil), args...)

	i := 1
	for ; i < len(out); i++ {
		a := out[i]
		if a == "--" {
			return out
		}
		if !strings.HasPrefix(a, "-") {
			break
		}
		name := strings.TrimLeft(a, "-")
		if !strings.Contains(name, "=") && globalValueFlags[name] {
			i++
		}
	}
	if i >= len(out) {
		return out
	}

	r, err := domain.ParseResource(out[i])
	if err != nil {
		return out
	}
	out[i] = r.String()
	if r == domain.ResourceInit || i+1 >= len(out) {
		return out
	}
	if sub, err := domain.ParseSubcommand(r, out[i+1]); err == nil {
		out[i+1] = sub.String()
	}
	return out
}

// leaf is the declaration of one subcommand.
type leaf struct {
	usage string
	flags []cli.Flag
}

func leafFor(sub domain.Subcommand) leaf {
	switch s := sub.(type) {
	case domain.CampaignOp:
		return campaignLeaf(s)
	case domain.DeviceOp:
		return deviceLeaf(s)
	case domain.GroupOp:
		return groupLeaf(s)
	case domain.PackageOp:
		return packageLeaf(s)
	case domain.UpdateOp:
		return updateLeaf(s)
	}
	return leaf{}
}

var resourceUsage = map[domain.Resource]string{
	domain.ResourceCampaign: "Manage campaigns",
	domain.ResourceDevice:   "Manage devices",
	domain.ResourceGroup:    "Manage device groups",
	domain.ResourcePackage:  "Manage packages in the software repository",
	domain.ResourceUpdate:   "Manage multi-target updates",
}

// commands builds one command per resource of the domain vocabulary.
func commands() []*cli.Command {
	var cmds []*cli.Command
	for _, r := range domain.Resources() {
		if r == domain.ResourceInit {
			cmds = append(cmds, initCommand())
			continue
		}
		cmd := &cli.Command{
			Name:            r.String(),
			Usage:           resourceUsage[r],
			Action:          unknownSubcommand(r),
			HideHelpCommand: true,
		}
		for _, sub := range domain.Subcommands(r) {
			l := leafFor(sub)
			cmd.Subcommands = append(cmd.Subcommands, &cli.Command{
				Name:            sub.String(),
				Usage:           l.usage,
				Flags:           l.flags,
				Action:          route(domain.Command{Resource: r, Sub: sub}),
				HideHelpCommand: true,
			})
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

// route returns the action running cmd: dispatch, render, then fail on an
// error status.
func route(cmd domain.Command) cli.ActionFunc {
	return func(c *cli.Context) error {
		e := envFrom(c)
		if e == nil {
			return domain.ErrArgs.WithDetails("command environment not initialized")
		}

		ctx := logger.WithLogger(c.Context, logger.Default().With("command", cmd.String()))
		logger.L(ctx).Debug("dispatching command")

		res, err := dispatch(ctx, c, e, cmd)
		if err != nil {
			return err
		}
		if err := output.Render(e.stdout, res, e.flags.Table); err != nil {
			return domain.ErrFilesystem.WithCause(err)
		}
		return output.StatusError(res)
	}
}

// dispatch invokes the handler of cmd.
func dispatch(ctx context.Context, c *cli.Context, e *env, cmd domain.Command) (output.Result, error) {
	switch sub := cmd.Sub.(type) {
	case nil:
		return runInit(c, e)
	case domain.CampaignOp:
		return runCampaign(ctx, c, e, sub)
	case domain.DeviceOp:
		return runDevice(ctx, c, e, sub)
	case domain.GroupOp:
		return runGroup(ctx, c, e, sub)
	case domain.PackageOp:
		return runPackage(ctx, c, e, sub)
	case domain.UpdateOp:
		return runUpdate(ctx, c, e, sub)
	}
	return nil, domain.ErrUnknownCommand.WithDetails("unknown command: " + cmd.Resource.String())
}

func unsupported(sub domain.Subcommand) error {
	return domain.ErrUnknownCommand.WithDetailsf("unsupported %s subcommand", sub.Resource())
}

// unknownResource catches tokens that name no resource.
func unknownResource(c *cli.Context) error {
	if !c.Args().Present() {
		return domain.ErrArgs.WithDetails("a command is required, see `ota --help`")
	}
	_, err := domain.ParseResource(c.Args().First())
	if err == nil {
		err = domain.ErrUnknownCommand.WithDetails("unknown command: " + c.Args().First())
	}
	return err
}

// unknownSubcommand catches a missing or unknown subcommand of r.
func unknownSubcommand(r domain.Resource) cli.ActionFunc {
	return func(c *cli.Context) error {
		_, err := domain.ParseCommand(r.String(), c.Args().First())
		if err == nil {
			err = domain.ErrUnknownCommand.WithDetails("unknown " + r.String() + " subcommand: " + c.Args().First())
		}
		return err
	}
}
