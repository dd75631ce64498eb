package command

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/ota-go/internal/cli/output"
	"github.com/yndnr/ota-go/internal/core/domain"
)

func campaignLeaf(op domain.CampaignOp) leaf {
	switch op {
	case domain.CampaignList:
		return leaf{"List campaigns, or show one", []cli.Flag{
			stringFlag("campaign", "Campaign ID", false),
		}}
	case domain.CampaignCreate:
		return leaf{"Create a campaign", []cli.Flag{
			stringFlag("name", "Campaign name", true),
			stringFlag("update", "Update ID", true),
			&cli.StringSliceFlag{Name: "groups", Usage: "Device group IDs", Required: true},
		}}
	case domain.CampaignLaunch:
		return leaf{"Launch a campaign", []cli.Flag{stringFlag("campaign", "Campaign ID", true)}}
	case domain.CampaignCancel:
		return leaf{"Cancel a campaign", []cli.Flag{stringFlag("campaign", "Campaign ID", true)}}
	case domain.CampaignListUpdates:
		return leaf{"List updates available to campaigns", nil}
	case domain.CampaignCreateUpdate:
		return leaf{"Register a multi-target update for campaigns", []cli.Flag{
			stringFlag("update", "Multi-target update ID", true),
			stringFlag("name", "Update name", true),
			stringFlag("description", "Update description", true),
		}}
	}
	return leaf{}
}

func runCampaign(ctx context.Context, c *cli.Context, e *env, op domain.CampaignOp) (output.Result, error) {
	campaigner := e.campaigner()

	switch op {
	case domain.CampaignList:
		if !c.IsSet("campaign") {
			return campaigner.ListCampaigns(ctx, nil)
		}
		id, err := uuidFlag(c, "campaign")
		if err != nil {
			return nil, err
		}
		return campaigner.ListCampaigns(ctx, &id)

	case domain.CampaignCreate:
		update, err := uuidFlag(c, "update")
		if err != nil {
			return nil, err
		}
		groups, err := uuidSliceFlag(c, "groups")
		if err != nil {
			return nil, err
		}
		return campaigner.CreateCampaign(ctx, c.String("name"), update, groups)

	case domain.CampaignLaunch:
		id, err := uuidFlag(c, "campaign")
		if err != nil {
			return nil, err
		}
		return campaigner.LaunchCampaign(ctx, id)

	case domain.CampaignCancel:
		id, err := uuidFlag(c, "campaign")
		if err != nil {
			return nil, err
		}
		return campaigner.CancelCampaign(ctx, id)

	case domain.CampaignListUpdates:
		return campaigner.ListUpdates(ctx)

	case domain.CampaignCreateUpdate:
		update, err := uuidFlag(c, "update")
		if err != nil {
			return nil, err
		}
		return campaigner.CreateUpdate(ctx, update, c.String("name"), c.String("description"))
	}
	return nil, unsupported(op)
}
