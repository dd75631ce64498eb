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

// Director creates and assigns multi-target updates.
type Director struct {
	doer Doer
}

// NewDirector creates the director binding.
func NewDirector(doer Doer) *Director {
	return &Director{doer: doer}
}

// CreateUpdate registers a multi-target update. The response body carries
// the new update ID.
func (d *Director) CreateUpdate(ctx context.Context, updates *domain.TufUpdates) (output.Result, error) {
	logger.L(ctx).Debug("creating multi-target update", "targets", len(updates.Targets))
	resp, err := d.doer.Do(ctx, domain.ServiceDirector, connection.Request{
		Method: http.MethodPost,
		Path:   V1 + "multi_target_updates",
		JSON:   updates,
	})
	if err != nil {
		return nil, err
	}
	return rawResult(resp), nil
}

// LaunchUpdate assigns an update to a single device.
func (d *Director) LaunchUpdate(ctx context.Context, update, device uuid.UUID) (output.Result, error) {
	logger.L(ctx).Debug("launching multi-target update", "update", update, "device", device)
	resp, err := d.doer.Do(ctx, domain.ServiceDirector, connection.Request{
		Method: http.MethodPut,
		Path:   V1 + "admin/devices/" + device.String() + "/multi_target_update/" + update.String(),
	})
	if err != nil {
		return nil, err
	}
	return rawResult(resp), nil
}
