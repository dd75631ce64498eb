package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/yndnr/ota-go/internal/cli/connection"
	"github.com/yndnr/ota-go/internal/cli/output"
	"github.com/yndnr/ota-go/internal/core/domain"
	"github.com/yndnr/ota-go/internal/telemetry/logger"
)

var campaignColumns = []output.Column{
	{Header: "ID", Path: "id"},
	{Header: "NAME", Path: "name"},
	{Header: "UPDATE", Path: "update"},
	{Header: "STATUS", Path: "status"},
	{Header: "CREATED", Path: "createdAt"},
}

// Campaigner manages campaigns and the updates they roll out.
type Campaigner struct {
	doer Doer
}

// NewCampaigner creates the campaigner binding.
func NewCampaigner(doer Doer) *Campaigner {
	return &Campaigner{doer: doer}
}

func (c *Campaigner) send(ctx context.Context, method, path string, body any) (*connection.Response, error) {
	return c.doer.Do(ctx, domain.ServiceCampaigner, connection.Request{
		Method: method,
		Path:   V1 + path,
		JSON:   body,
	})
}

func (c *Campaigner) raw(ctx context.Context, method, path string, body any) (output.Result, error) {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	return rawResult(resp), nil
}

// ListCampaigns lists every campaign, or the details of one when id is set.
func (c *Campaigner) ListCampaigns(ctx context.Context, id *uuid.UUID) (output.Result, error) {
	if id != nil {
		return c.raw(ctx, http.MethodGet, "campaigns/"+id.String(), nil)
	}
	resp, err := c.send(ctx, http.MethodGet, "campaigns", nil)
	if err != nil {
		return nil, err
	}
	return tableResult(resp, "values", campaignColumns...), nil
}

// createCampaign is the campaign creation body.
type createCampaign struct {
	Name   string      `json:"name"`
	Update uuid.UUID   `json:"update"`
	Groups []uuid.UUID `json:"groups"`
}

// CreateCampaign creates a campaign rolling update out to groups.
func (c *Campaigner) CreateCampaign(ctx context.Context, name string, update uuid.UUID, groups []uuid.UUID) (output.Result, error) {
	logger.L(ctx).Debug("creating campaign", "name", name, "update", update, "groups", len(groups))
	return c.raw(ctx, http.MethodPost, "campaigns", createCampaign{Name: name, Update: update, Groups: groups})
}

// LaunchCampaign starts a created campaign.
func (c *Campaigner) LaunchCampaign(ctx context.Context, id uuid.UUID) (output.Result, error) {
	logger.L(ctx).Debug("launching campaign", "campaign", id)
	return c.raw(ctx, http.MethodPost, "campaigns/"+id.String()+"/launch", nil)
}

// CancelCampaign stops a running campaign.
func (c *Campaigner) CancelCampaign(ctx context.Context, id uuid.UUID) (output.Result, error) {
	logger.L(ctx).Debug("cancelling campaign", "campaign", id)
	return c.raw(ctx, http.MethodPost, "campaigns/"+id.String()+"/cancel", nil)
}

// ListUpdates lists the updates campaigns can refer to.
func (c *Campaigner) ListUpdates(ctx context.Context) (output.Result, error) {
	return c.raw(ctx, http.MethodGet, "updates", nil)
}

type updateSource struct {
	ID         uuid.UUID `json:"id"`
	SourceType string    `json:"sourceType"`
}

type createUpdate struct {
	UpdateSource updateSource `json:"updateSource"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
}

// CreateUpdate registers a director multi-target update with the
// campaigner so campaigns can use it.
func (c *Campaigner) CreateUpdate(ctx context.Context, update uuid.UUID, name, description string) (output.Result, error) {
	logger.L(ctx).Debug("creating campaign update", "update", update, "name", name)
	return c.raw(ctx, http.MethodPost, "updates", createUpdate{
		UpdateSource: updateSource{ID: update, SourceType: "multi_target"},
		Name:         name,
		Description:  description,
	})
}
